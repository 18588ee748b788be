package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/crewscore/crewscore/internal/errors"
)

func newPendingAction(t *testing.T) *Action {
	t.Helper()
	action, err := NewAction(NewActivityID(), NewPersonID(), "proofs/abc")
	require.NoError(t, err)
	return action
}

func TestNewAction(t *testing.T) {
	action := newPendingAction(t)
	assert.Equal(t, ActionStatusPending, action.Status)
	assert.True(t, action.ReviewedBy.IsZero())
	assert.Nil(t, action.ReviewedAt)
	assert.Zero(t, action.AwardedPoints)
}

func TestNewAction_Invalid(t *testing.T) {
	_, err := NewAction(ActivityID{}, NewPersonID(), "ref")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = NewAction(NewActivityID(), PersonID{}, "ref")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = NewAction(NewActivityID(), NewPersonID(), "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestActionApprove(t *testing.T) {
	action := newPendingAction(t)
	reviewer := NewPersonID()

	require.NoError(t, action.Approve(reviewer, 25))
	assert.Equal(t, ActionStatusApproved, action.Status)
	assert.Equal(t, reviewer, action.ReviewedBy)
	assert.Equal(t, 25, action.AwardedPoints)
	assert.NotNil(t, action.ReviewedAt)

	// Settled exactly once.
	err := action.Approve(reviewer, 25)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	err = action.Reject(reviewer)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestActionReject(t *testing.T) {
	action := newPendingAction(t)
	reviewer := NewPersonID()

	require.NoError(t, action.Reject(reviewer))
	assert.Equal(t, ActionStatusRejected, action.Status)
	assert.Equal(t, reviewer, action.ReviewedBy)
	assert.Zero(t, action.AwardedPoints)

	err := action.Approve(reviewer, 10)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}
