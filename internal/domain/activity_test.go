package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/crewscore/crewscore/internal/errors"
)

func TestNewActivity(t *testing.T) {
	creator := NewPersonID()

	activity, err := NewActivity("  Code Review Week  ", " review PRs ", 25, creator)
	require.NoError(t, err)
	assert.Equal(t, "Code Review Week", activity.Title)
	assert.Equal(t, "review PRs", activity.Description)
	assert.Equal(t, 25, activity.Points)
	assert.Equal(t, creator, activity.CreatedBy)
	assert.True(t, activity.Active)
}

func TestNewActivity_Invalid(t *testing.T) {
	creator := NewPersonID()

	_, err := NewActivity("  ", "", 10, creator)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = NewActivity("Title", "", 0, creator)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = NewActivity("Title", "", -5, creator)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = NewActivity("Title", "", 10, PersonID{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestActivityRename(t *testing.T) {
	activity, err := NewActivity("Old", "old desc", 10, NewPersonID())
	require.NoError(t, err)

	require.NoError(t, activity.Rename("New", "new desc"))
	assert.Equal(t, "New", activity.Title)
	assert.Equal(t, "new desc", activity.Description)

	err = activity.Rename("  ", "desc")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestActivityDeactivate(t *testing.T) {
	activity, err := NewActivity("Title", "", 10, NewPersonID())
	require.NoError(t, err)

	require.NoError(t, activity.Deactivate())
	assert.False(t, activity.Active)

	err = activity.Deactivate()
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}
