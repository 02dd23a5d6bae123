package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"planhub-backend-go/internal/models"
)

const auditCollection = "audit_logs"

// firestoreAuditRepository implements the AuditRepository interface using Firestore.
type firestoreAuditRepository struct {
	client *firestore.Client
}

// NewFirestoreAuditRepository creates a new instance of firestoreAuditRepository.
func NewFirestoreAuditRepository(client *firestore.Client) AuditRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AuditRepository.")
	}
	return &firestoreAuditRepository{client: client}
}

// Create appends an audit log document. Entries are immutable once written.
func (r *firestoreAuditRepository) Create(ctx context.Context, entry models.AuditLog) error {
	if entry.ID == "" {
		return errors.New("audit entry ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(auditCollection).Doc(entry.ID).Create(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry '%s': %w", entry.ID, err)
	}
	return nil
}
