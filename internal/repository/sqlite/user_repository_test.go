package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"interview-prep/internal/domain"
	"interview-prep/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	repo := NewUserRepository(newTestDB(t))
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init user repo: %v", err)
	}
	return repo
}

func testUser() *domain.User {
	return &domain.User{
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$somehash",
		Phone:        "12345",
		College:      "MIT",
		Course:       "CS",
		CareerGoal:   domain.DefaultCareerGoal,
		Avatar:       []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A},
		AvatarExt:    ".png",
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	user := testUser()

	id, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	byEmail, err := repo.GetByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if byEmail.Name != "Alice" || byEmail.CareerGoal != domain.DefaultCareerGoal {
		t.Fatalf("fields mismatch: %+v", byEmail)
	}
	if !bytes.Equal(byEmail.Avatar, user.Avatar) {
		t.Fatal("avatar bytes not preserved")
	}

	byID, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if byID.Email != "alice@x.com" {
		t.Fatalf("email mismatch: %q", byID.Email)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	if _, err := repo.Create(context.Background(), testUser()); err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	_, err := repo.Create(context.Background(), testUser())
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestUserRepository_UpdateDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	first := testUser()
	if _, err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	second := testUser()
	second.Email = "other@x.com"
	id, err := repo.Create(context.Background(), second)
	if err != nil {
		t.Fatalf("second Create error: %v", err)
	}

	err = repo.Update(context.Background(), id, repository.UserUpdate{Email: &first.Email})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	if _, err := repo.GetByEmail(context.Background(), "ghost@x.com"); err == nil {
		t.Fatal("expected error for missing user")
	}
	if _, err := repo.GetByID(context.Background(), 12345); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestUserRepository_PartialUpdate(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	user := testUser()
	id, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	phone := "99999"
	if err := repo.Update(context.Background(), id, repository.UserUpdate{Phone: &phone}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	after, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if after.Phone != "99999" {
		t.Fatalf("phone not updated: %q", after.Phone)
	}
	if after.Name != user.Name || after.College != user.College || after.Course != user.Course {
		t.Fatal("unspecified fields changed")
	}
	if !bytes.Equal(after.Avatar, user.Avatar) || after.AvatarExt != user.AvatarExt {
		t.Fatal("avatar changed without an image in the update")
	}
	if after.PasswordHash != user.PasswordHash {
		t.Fatal("password hash changed by profile update")
	}
}

func TestUserRepository_UpdateAvatar(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	id, err := repo.Create(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newAvatar := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	err = repo.Update(context.Background(), id, repository.UserUpdate{
		Avatar:    newAvatar,
		AvatarExt: ".jpg",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	after, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !bytes.Equal(after.Avatar, newAvatar) || after.AvatarExt != ".jpg" {
		t.Fatalf("avatar not replaced: ext=%q", after.AvatarExt)
	}
}

func TestUserRepository_UpdateMissingUser(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	name := "Bob"
	err := repo.Update(context.Background(), 999, repository.UserUpdate{Name: &name})
	if err == nil {
		t.Fatal("expected error updating missing user")
	}
}

func TestUserRepository_EmptyUpdateIsNoop(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	id, err := repo.Create(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := repo.Update(context.Background(), id, repository.UserUpdate{}); err != nil {
		t.Fatalf("empty Update error: %v", err)
	}
}
