package models

import "time"

// GenerateTokenRequest represents the request body for issuing a bearer token.
type GenerateTokenRequest struct {
	UserID string `json:"userId" binding:"required"`
	Email  string `json:"email" binding:"required"`
}

// CreateUserRequest represents the optional request body for creating the
// authenticated user's profile. An empty body yields a fresh trial plan.
type CreateUserRequest struct {
	DisplayName       string     `json:"displayName,omitempty"`
	PhotoURL          string     `json:"photoURL,omitempty"`
	PlanType          PlanType   `json:"planType,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscriptionEnd,omitempty"`
	ExternalBillingID string     `json:"externalBillingId,omitempty"`
}

// UpdateProfileRequest represents the request body for a partial profile
// update. Pointers distinguish fields omitted from fields set to empty.
type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

// ChangePlanRequest represents the request body for replacing the user's plan.
type ChangePlanRequest struct {
	PlanType          PlanType   `json:"planType" binding:"required"`
	SubscriptionEnd   *time.Time `json:"subscriptionEnd,omitempty"`
	ExternalBillingID string     `json:"externalBillingId,omitempty"`
}

// UserStats summarizes the plan state of a user.
// DaysRemaining is null for non-expiring plans.
type UserStats struct {
	PlanType      PlanType  `json:"planType"`
	DaysRemaining *int      `json:"daysRemaining"`
	IsExpired     bool      `json:"isExpired"`
	MemberSince   time.Time `json:"memberSince"`
}
