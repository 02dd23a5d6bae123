package core

import (
	"context"

	"planhub-backend-go/internal/models"
)

// UserService defines the interface for user profile and plan operations.
type UserService interface {
	// Create stores a new user record for the authenticated identity.
	// Exactly one of any concurrent Create calls for the same id succeeds.
	Create(ctx context.Context, subjectID, email string, req models.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) error
	// ChangePlan replaces the user's plan wholesale with a fresh active plan
	// of the requested tier. Any valid tier may be requested from any state.
	ChangePlan(ctx context.Context, userID string, req models.ChangePlanRequest) (*models.Plan, error)
	Stats(ctx context.Context, userID string) (*models.UserStats, error)
}

// AuditService records account events. Recording is best effort and never
// fails the calling request.
type AuditService interface {
	Record(ctx context.Context, entry models.AuditLog)
}
