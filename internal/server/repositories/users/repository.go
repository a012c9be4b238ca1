// Package users persists user accounts.
package users

import (
	"context"

	"github.com/inkwell-journal/inkwell/internal/server/models"
)

type Repository interface {
	// Create inserts a new account. common.ErrEmailTaken is returned when the
	// email is already registered.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)

	// GetByEmail returns the account for email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
