package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is what a verified bearer token tells us about the caller.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  User
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultUserName is the local part of the email address.
func DefaultUserName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
