package repository

import (
	"context"

	"interview-prep/internal/domain"
)

// FeedbackRepository defines persistence operations for interview feedback.
// Records are append-only; there is no update or delete.
type FeedbackRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, fb *domain.Feedback) (int64, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Feedback, error)
}
