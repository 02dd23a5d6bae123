package core

import (
	"errors"
	"fmt"
	"time"

	"planhub-backend-go/internal/models"
)

// ErrInvalidPlanType is returned when a plan transition names an unknown tier.
var ErrInvalidPlanType = errors.New("invalid plan type")

// TrialDuration is how long a newly created trial plan lasts.
const TrialDuration = 7 * 24 * time.Hour

const day = 24 * time.Hour

// NewTrialPlan builds the plan given to first-time users: an active trial
// expiring in seven days. This is the only transition that sets an expiry on
// its own; every other tier is non-expiring unless the caller supplies an
// end date explicitly.
func NewTrialPlan(now time.Time) models.Plan {
	end := now.Add(TrialDuration)
	return models.Plan{
		Type:              models.PlanTrial,
		Status:            models.PlanStatusActive,
		SubscriptionStart: now,
		SubscriptionEnd:   &end,
		LastUpdated:       now,
	}
}

// NewPlan builds a brand-new active plan of the requested tier. It is a full
// replacement, not an incremental edit: any prior billing id or end date is
// discarded unless resupplied by the caller. An unknown tier fails with
// ErrInvalidPlanType and mutates nothing.
func NewPlan(requestedType models.PlanType, requestedEnd *time.Time, billingID string, now time.Time) (models.Plan, error) {
	if !requestedType.Valid() {
		return models.Plan{}, fmt.Errorf("%w: %q", ErrInvalidPlanType, requestedType)
	}
	return models.Plan{
		Type:              requestedType,
		Status:            models.PlanStatusActive,
		SubscriptionStart: now,
		SubscriptionEnd:   requestedEnd,
		ExternalBillingID: billingID,
		LastUpdated:       now,
	}, nil
}

// DaysRemaining reports how many days are left before the plan expires,
// rounding up: a plan with 30 minutes left reports 1, not 0. Nil means the
// plan never expires. Never negative.
func DaysRemaining(plan models.Plan, now time.Time) *int {
	if plan.SubscriptionEnd == nil {
		return nil
	}
	remaining := plan.SubscriptionEnd.Sub(now)
	days := int((remaining + day - 1) / day)
	if days < 0 {
		days = 0
	}
	return &days
}

// IsExpired reports whether the plan's end has strictly passed. A plan ending
// exactly now is not yet expired; a nil end never expires.
func IsExpired(plan models.Plan, now time.Time) bool {
	return plan.SubscriptionEnd != nil && now.After(*plan.SubscriptionEnd)
}
