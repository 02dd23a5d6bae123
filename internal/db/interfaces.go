package db

import (
	"context"

	"planhub-backend-go/internal/models"
)

// UserRepository defines the interface for user document storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// Create stores a new user document. At most one of any concurrent
	// Create calls for the same id succeeds; the rest fail with
	// ErrAlreadyExists and leave the winner's document untouched.
	Create(ctx context.Context, user *models.User) error
	// Update merges only the supplied top-level fields into the document.
	// Every call refreshes lastLogin, whether or not the caller supplied it.
	// Fails with ErrNotFound when the document is absent.
	Update(ctx context.Context, userID string, fields map[string]interface{}) error
}

// AuditRepository defines the interface for audit log storage operations.
type AuditRepository interface {
	Create(ctx context.Context, entry models.AuditLog) error
}
