package repository

import (
	"context"

	"interview-prep/internal/domain"
)

// UserUpdate carries a partial profile update. Nil fields keep their prior
// value; a non-nil Avatar replaces the stored image together with its
// extension.
type UserUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	College    *string
	Course     *string
	CareerGoal *string
	Avatar     []byte
	AvatarExt  string
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, update UserUpdate) error
}
