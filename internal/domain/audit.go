package domain

import (
	"context"
	"time"
)

// AuditLogger records who did what to which resource. Implementations must
// never fail the calling operation.
type AuditLogger interface {
	AuditLog(ctx context.Context, actorID, operation, resourceID string, success bool, err error)
}

// AuditEvent is one recorded decision or mutation.
type AuditEvent struct {
	ID         string
	ActorID    string
	Operation  string
	ResourceID string
	Success    bool
	Error      string
	Timestamp  time.Time
}
