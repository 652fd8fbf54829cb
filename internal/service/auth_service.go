package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"interview-prep/internal/domain"
	"interview-prep/internal/repository"
	"interview-prep/internal/session"
)

var (
	// ErrMissingFields indicates a required registration or login field was empty.
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists is returned when registering with an email already in use.
	ErrEmailExists = errors.New("email already exists")
)

// LoginResult carries everything the login endpoint needs to answer.
type LoginResult struct {
	User            *domain.User
	SessionToken    string
	ProfileComplete bool
}

// AuthService describes account lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionToken string) error
}

type authService struct {
	users    repository.UserRepository
	sessions session.Store
}

func NewAuthService(users repository.UserRepository, sessions session.Store) AuthService {
	return &authService{users: users, sessions: sessions}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CareerGoal:   domain.DefaultCareerGoal,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &LoginResult{
		User:            sanitizeUser(user),
		SessionToken:    token,
		ProfileComplete: user.ProfileComplete(),
	}, nil
}

// Logout is idempotent: destroying an unknown or empty token succeeds.
func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionToken)
}

// sanitizeUser strips the password hash before a user leaves the service layer.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
