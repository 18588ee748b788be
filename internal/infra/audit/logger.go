package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/crewscore/crewscore/internal/domain"
)

// Logger implements domain.AuditLogger on structured logs. Events are not
// persisted beyond the log sink; failures to log never propagate to the
// caller.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) AuditLog(ctx context.Context, actorID, operation, resourceID string, success bool, err error) {
	event := domain.AuditEvent{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		Operation:  operation,
		ResourceID: resourceID,
		Success:    success,
		Timestamp:  time.Now().UTC(),
	}
	if err != nil {
		event.Error = err.Error()
	}

	attrs := []any{
		"audit_id", event.ID,
		"actor_id", event.ActorID,
		"operation", event.Operation,
		"resource_id", event.ResourceID,
		"success", event.Success,
	}
	if event.Error != "" {
		attrs = append(attrs, "error", event.Error)
	}

	if success {
		l.logger.InfoContext(ctx, "audit", attrs...)
	} else {
		l.logger.WarnContext(ctx, "audit", attrs...)
	}
}

// Nop is an AuditLogger that drops everything. Used in tests.
type Nop struct{}

func (Nop) AuditLog(ctx context.Context, actorID, operation, resourceID string, success bool, err error) {
}
