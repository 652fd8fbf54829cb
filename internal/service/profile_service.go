package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"interview-prep/internal/domain"
	"interview-prep/internal/repository"
	"interview-prep/internal/storage"
)

var (
	// ErrUserNotFound is returned when the session points at a deleted user.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnsupportedImage is returned for avatar uploads outside the allowed types.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

var allowedImageExts = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// ProfileUpdate carries a partial profile edit. Nil fields are untouched; a
// non-empty Image replaces the stored avatar when its filename extension is
// allowed.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	College    *string
	Course     *string
	CareerGoal *string
	Image      []byte
	ImageName  string
}

// MirrorConfig points the optional S3 avatar mirror at its destination.
type MirrorConfig struct {
	Bucket    string
	KeyPrefix string
}

// ProfileService reads and partially updates the authenticated user's profile.
type ProfileService interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
	Update(ctx context.Context, userID int64, update ProfileUpdate) error
}

type profileService struct {
	users  repository.UserRepository
	mirror storage.Service
	cfg    MirrorConfig
	logger *logrus.Logger
}

func NewProfileService(users repository.UserRepository, mirror storage.Service, cfg MirrorConfig, logger *logrus.Logger) ProfileService {
	return &profileService{users: users, mirror: mirror, cfg: cfg, logger: logger}
}

func (s *profileService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *profileService) Update(ctx context.Context, userID int64, update ProfileUpdate) error {
	repoUpdate := repository.UserUpdate{
		Name:       trimmed(update.Name),
		Email:      lowered(update.Email),
		Phone:      trimmed(update.Phone),
		College:    trimmed(update.College),
		Course:     trimmed(update.Course),
		CareerGoal: trimmed(update.CareerGoal),
	}

	var contentType string
	if len(update.Image) > 0 {
		ext := strings.ToLower(path.Ext(update.ImageName))
		ct, ok := allowedImageExts[ext]
		if !ok {
			return ErrUnsupportedImage
		}
		repoUpdate.Avatar = update.Image
		repoUpdate.AvatarExt = ext
		contentType = ct
	}

	mirroring := repoUpdate.Avatar != nil && s.mirror != nil && s.cfg.Bucket != ""

	// the mirror key embeds the extension, so a format change orphans the old
	// object; remember the pre-update extension to clean it up after the write
	var staleExt string
	if mirroring {
		if prev, err := s.users.GetByID(ctx, userID); err == nil {
			staleExt = prev.AvatarExt
		}
	}

	if err := s.users.Update(ctx, userID, repoUpdate); err != nil {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "not found"):
			return ErrUserNotFound
		case strings.Contains(msg, "already exists"):
			return ErrEmailExists
		}
		return err
	}

	// best effort: the row is canonical, a mirror failure must not fail the edit
	if mirroring {
		key := avatarKey(s.cfg.KeyPrefix, userID, repoUpdate.AvatarExt)
		_, err := s.mirror.PutObject(ctx, bytes.NewReader(repoUpdate.Avatar), storage.UploadOptions{
			Bucket:      s.cfg.Bucket,
			Key:         key,
			ContentType: contentType,
		})
		if err != nil && s.logger != nil {
			s.logger.Warnf("mirror avatar for user %d: %v", userID, err)
		}

		if staleExt != "" && staleExt != repoUpdate.AvatarExt {
			staleKey := avatarKey(s.cfg.KeyPrefix, userID, staleExt)
			if err := s.mirror.DeleteObject(ctx, s.cfg.Bucket, staleKey); err != nil && s.logger != nil {
				s.logger.Warnf("remove stale avatar %s for user %d: %v", staleKey, userID, err)
			}
		}
	}

	return nil
}

func avatarKey(prefix string, userID int64, ext string) string {
	prefix = strings.Trim(prefix, "/")
	name := fmt.Sprintf("user-%d%s", userID, ext)
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func lowered(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	return &v
}
