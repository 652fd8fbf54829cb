package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"interview-prep/internal/domain"
	"interview-prep/internal/repository"
)

const createFeedbackTable = `
CREATE TABLE IF NOT EXISTS feedback (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER REFERENCES users(id),
	category TEXT NOT NULL,
	payload TEXT NOT NULL,
	transcript TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) repository.FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFeedbackTable); err != nil {
		return fmt.Errorf("create feedback table: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) (int64, error) {
	fb.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(fb.Payload)
	if err != nil {
		return 0, fmt.Errorf("marshal feedback payload: %w", err)
	}
	transcript, err := json.Marshal(fb.Transcript)
	if err != nil {
		return 0, fmt.Errorf("marshal feedback transcript: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO feedback (user_id, category, payload, transcript, created_at)
VALUES (?, ?, ?, ?, ?)`,
		fb.UserID,
		fb.Category,
		string(payload),
		string(transcript),
		fb.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("feedback last insert id: %w", err)
	}
	fb.ID = id
	return id, nil
}

func (r *FeedbackRepository) ListByCategory(ctx context.Context, category string) ([]domain.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, category, payload, transcript, created_at
FROM feedback
WHERE category = ?
ORDER BY created_at DESC`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var (
			fb         domain.Feedback
			payload    string
			transcript string
		)
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Category, &payload, &transcript, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &fb.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal feedback payload: %w", err)
		}
		if err := json.Unmarshal([]byte(transcript), &fb.Transcript); err != nil {
			return nil, fmt.Errorf("unmarshal feedback transcript: %w", err)
		}
		result = append(result, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return result, nil
}
