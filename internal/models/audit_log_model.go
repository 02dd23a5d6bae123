package models

import "time"

// Audit actions recorded by this service.
const (
	AuditActionUserCreate = "USER_CREATE"
	AuditActionPlanChange = "PLAN_CHANGE"
)

// AuditLog represents a recorded account event.
type AuditLog struct {
	ID        string                 `json:"id" firestore:"-"`
	Timestamp time.Time              `json:"timestamp" firestore:"timestamp"`
	UserID    string                 `json:"userId" firestore:"userId"` // Who performed the action
	Action    string                 `json:"action" firestore:"action"`
	Details   map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
