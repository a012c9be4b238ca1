// Package common contains shared constants and sentinel errors used across
// Inkwell components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Sync-specific errors.
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrOffline        = errors.New("no network connectivity")
	ErrSyncFailed     = errors.New("sync failed")

	// Validation errors.
	ErrInvalidMoodScore = errors.New("mood score must be between 0 and 1")
	ErrEmptyContent     = errors.New("entry content must not be empty")

	// Auth errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)
