package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planhub-backend-go/internal/db"
	"planhub-backend-go/internal/models"
)

var (
	// ErrUserNotFound is returned when no user record exists for an id.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when creation repeats or races.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	audit    AuditService
	now      func() time.Time
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, audit AuditService) UserService {
	return &userService{
		userRepo: userRepo,
		audit:    audit,
		now:      time.Now,
	}
}

// Create stores a new user record keyed by the authenticated subject id.
// The plan defaults to a fresh trial when the request names no tier (or
// names trial without an explicit end). Duplicate or racing creates fail
// with ErrUserAlreadyExists and never overwrite the winner.
func (s *userService) Create(ctx context.Context, subjectID, email string, req models.CreateUserRequest) (*models.User, error) {
	if subjectID == "" {
		return nil, errors.New("subjectID cannot be empty for Create operation")
	}
	now := s.now().UTC()

	var plan models.Plan
	if req.PlanType == "" || (req.PlanType == models.PlanTrial && req.SubscriptionEnd == nil) {
		plan = NewTrialPlan(now)
		plan.ExternalBillingID = req.ExternalBillingID
	} else {
		p, err := NewPlan(req.PlanType, req.SubscriptionEnd, req.ExternalBillingID, now)
		if err != nil {
			return nil, err
		}
		plan = p
	}

	user := &models.User{
		ID:          subjectID,
		Email:       email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Plan:        plan,
		CreatedAt:   now,
		LastLogin:   now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: id '%s'", ErrUserAlreadyExists, subjectID)
		}
		return nil, fmt.Errorf("failed to create user '%s': %w", subjectID, err)
	}

	s.audit.Record(ctx, models.AuditLog{
		UserID: subjectID,
		Action: models.AuditActionUserCreate,
		Details: map[string]interface{}{
			"planType": string(user.Plan.Type),
		},
	})
	return user, nil
}

// GetByID returns the stored user record. A successful read also refreshes
// lastLogin; the touch is best effort and a failed touch never fails the read.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}

	now := s.now().UTC()
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"lastLogin": now}); err == nil {
		user.LastLogin = now
	}
	return user, nil
}

// UpdateProfile merges only the supplied fields into the stored record.
// Omitted fields are left untouched except lastLogin, which every update
// refreshes.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) error {
	fields := map[string]interface{}{
		"lastLogin": s.now().UTC(),
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.DisplayName != nil {
		fields["displayName"] = *req.DisplayName
	}
	if req.PhotoURL != nil {
		fields["photoURL"] = *req.PhotoURL
	}

	if err := s.userRepo.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: id '%s'", ErrUserNotFound, userID)
		}
		return fmt.Errorf("failed to update user '%s': %w", userID, err)
	}
	return nil
}

// ChangePlan replaces the user's plan wholesale with a fresh active plan of
// the requested tier. The previous end date and billing id are discarded
// unless the request resupplies them. Nothing is written when the tier is
// invalid or the user does not exist.
func (s *userService) ChangePlan(ctx context.Context, userID string, req models.ChangePlanRequest) (*models.Plan, error) {
	now := s.now().UTC()
	plan, err := NewPlan(req.PlanType, req.SubscriptionEnd, req.ExternalBillingID, now)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load user '%s' for plan change: %w", userID, err)
	}

	fields := map[string]interface{}{
		"plan":      plan,
		"lastLogin": now,
	}
	if err := s.userRepo.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to change plan for user '%s': %w", userID, err)
	}

	s.audit.Record(ctx, models.AuditLog{
		UserID: userID,
		Action: models.AuditActionPlanChange,
		Details: map[string]interface{}{
			"planType": string(plan.Type),
		},
	})
	return &plan, nil
}

// Stats derives the plan summary for a user: tier, days remaining (nil for
// non-expiring plans), expiry flag and membership start.
func (s *userService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: id '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}

	now := s.now().UTC()
	return &models.UserStats{
		PlanType:      user.Plan.Type,
		DaysRemaining: DaysRemaining(user.Plan, now),
		IsExpired:     IsExpired(user.Plan, now),
		MemberSince:   user.CreatedAt,
	}, nil
}
