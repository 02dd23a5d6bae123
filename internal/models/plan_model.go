package models

import "time"

// PlanType identifies the subscription tier a user is on.
type PlanType string

const (
	PlanFree  PlanType = "free"
	PlanTrial PlanType = "trial"
	PlanPro   PlanType = "pro"
	PlanPlus  PlanType = "plus"
)

// Valid reports whether t is one of the known plan tiers.
func (t PlanType) Valid() bool {
	switch t {
	case PlanFree, PlanTrial, PlanPro, PlanPlus:
		return true
	}
	return false
}

// PlanStatus describes the lifecycle state of a plan.
type PlanStatus string

const (
	PlanStatusActive PlanStatus = "active"
)

// Plan is the subscription record embedded in a user document.
// A nil SubscriptionEnd means the plan never expires.
type Plan struct {
	Type              PlanType   `json:"type" firestore:"type"`
	Status            PlanStatus `json:"status" firestore:"status"`
	SubscriptionStart time.Time  `json:"subscriptionStart" firestore:"subscriptionStart"`
	SubscriptionEnd   *time.Time `json:"subscriptionEnd,omitempty" firestore:"subscriptionEnd"`
	ExternalBillingID string     `json:"externalBillingId,omitempty" firestore:"externalBillingId,omitempty"`
	LastUpdated       time.Time  `json:"lastUpdated" firestore:"lastUpdated"`
}
