package service

import (
	"context"
	"errors"
	"fmt"

	"interview-prep/internal/domain"
	"interview-prep/internal/repository"
)

// ErrEmptyFeedback is returned when a submission carries no payload at all.
var ErrEmptyFeedback = errors.New("feedback is required")

// FeedbackService persists interview feedback records.
type FeedbackService interface {
	Save(ctx context.Context, userID *int64, category string, payload map[string]any, transcript []domain.QA) (*domain.Feedback, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Feedback, error)
}

type feedbackService struct {
	feedback repository.FeedbackRepository
}

func NewFeedbackService(feedback repository.FeedbackRepository) FeedbackService {
	return &feedbackService{feedback: feedback}
}

// Save validates presence only; the payload is an opaque client document.
func (s *feedbackService) Save(ctx context.Context, userID *int64, category string, payload map[string]any, transcript []domain.QA) (*domain.Feedback, error) {
	if category == "" {
		return nil, ErrEmptyFeedback
	}
	if len(payload) == 0 {
		return nil, ErrEmptyFeedback
	}

	fb := &domain.Feedback{
		UserID:     userID,
		Category:   category,
		Payload:    payload,
		Transcript: transcript,
	}
	if _, err := s.feedback.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return fb, nil
}

func (s *feedbackService) ListByCategory(ctx context.Context, category string) ([]domain.Feedback, error) {
	return s.feedback.ListByCategory(ctx, category)
}
