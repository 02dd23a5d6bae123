package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"planhub-backend-go/internal/db"
	"planhub-backend-go/internal/models"
)

// auditService implements the AuditService interface. Writes are best
// effort: a failed audit write is logged and never fails the caller.
type auditService struct {
	auditRepo db.AuditRepository
	logger    *zap.Logger
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(auditRepo db.AuditRepository, logger *zap.Logger) AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &auditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record persists an audit log entry, filling in the id and timestamp when
// the caller left them unset.
func (s *auditService) Record(ctx context.Context, entry models.AuditLog) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit log entry",
			zap.String("action", entry.Action),
			zap.String("userId", entry.UserID),
			zap.Error(err),
		)
	}
}
