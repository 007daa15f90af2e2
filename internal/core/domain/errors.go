package domain

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSummaryNotFound = errors.New("summary not found")
	ErrSummaryConflict = errors.New("summary already exists for this date")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")

	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")

	ErrProviderNotConfigured    = errors.New("summary provider not configured")
	ErrProviderUnauthorized     = errors.New("summary provider rejected the api key")
	ErrProviderQuotaExceeded    = errors.New("summary provider quota exceeded")
	ErrProviderModelUnavailable = errors.New("summary provider model unavailable")
	ErrSummaryGeneration        = errors.New("summary generation failed")
)
