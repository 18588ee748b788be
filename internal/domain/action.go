package domain

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/crewscore/crewscore/internal/errors"
)

// ActionStatus tracks the proof-review lifecycle of a submission.
type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "pending"
	ActionStatusApproved ActionStatus = "approved"
	ActionStatusRejected ActionStatus = "rejected"
)

// Action is a member's claim to have completed an activity, backed by proof.
// It starts pending and is settled exactly once by a lead.
type Action struct {
	ID            ActionID
	ActivityID    ActivityID
	PersonID      PersonID
	ProofRef      string
	Status        ActionStatus
	ReviewedBy    PersonID
	AwardedPoints int
	SubmittedAt   time.Time
	ReviewedAt    *time.Time
}

// NewAction builds a pending Action. proofRef points at the stored evidence.
func NewAction(activityID ActivityID, personID PersonID, proofRef string) (*Action, error) {
	if activityID.IsZero() {
		return nil, fmt.Errorf("%w: activity id is required", apperrors.ErrInvalidInput)
	}
	if personID.IsZero() {
		return nil, fmt.Errorf("%w: person id is required", apperrors.ErrInvalidInput)
	}
	if proofRef == "" {
		return nil, fmt.Errorf("%w: proof is required", apperrors.ErrInvalidInput)
	}

	return &Action{
		ID:          NewActionID(),
		ActivityID:  activityID,
		PersonID:    personID,
		ProofRef:    proofRef,
		Status:      ActionStatusPending,
		SubmittedAt: time.Now().UTC(),
	}, nil
}

// Approve settles a pending action, recording the reviewer and the points
// that were awarded to the submitter.
func (a *Action) Approve(reviewer PersonID, points int) error {
	if a.Status != ActionStatusPending {
		return fmt.Errorf("%w: action %s is already %s", apperrors.ErrConflict, a.ID, a.Status)
	}
	now := time.Now().UTC()
	a.Status = ActionStatusApproved
	a.ReviewedBy = reviewer
	a.AwardedPoints = points
	a.ReviewedAt = &now
	return nil
}

// Reject settles a pending action without awarding points.
func (a *Action) Reject(reviewer PersonID) error {
	if a.Status != ActionStatusPending {
		return fmt.Errorf("%w: action %s is already %s", apperrors.ErrConflict, a.ID, a.Status)
	}
	now := time.Now().UTC()
	a.Status = ActionStatusRejected
	a.ReviewedBy = reviewer
	a.ReviewedAt = &now
	return nil
}

// ActionRepository stores submissions.
type ActionRepository interface {
	FindByID(ctx context.Context, id ActionID) (*Action, error)
	Save(ctx context.Context, action *Action) error
	ListByActivity(ctx context.Context, activityID ActivityID) ([]*Action, error)
	ListByPerson(ctx context.Context, personID PersonID) ([]*Action, error)
}

// ProofStore holds the evidence payload attached to an action. Put returns an
// opaque reference recorded on the Action.
type ProofStore interface {
	Put(ctx context.Context, actionID ActionID, payload []byte, contentType string) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
}
