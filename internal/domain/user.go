package domain

import "time"

// DefaultCareerGoal is assigned at registration until the user edits it.
const DefaultCareerGoal = "Software Engineer"

// User represents a registered account and its interview-prep profile.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	College      string
	Course       string
	CareerGoal   string
	Avatar       []byte
	AvatarExt    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileComplete reports whether the mandatory profile fields are all set.
// Login uses it to decide whether the client should be redirected to the
// profile form.
func (u *User) ProfileComplete() bool {
	return u.Phone != "" && u.College != "" && u.Course != "" && len(u.Avatar) > 0
}
