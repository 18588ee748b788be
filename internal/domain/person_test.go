package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/crewscore/crewscore/internal/errors"
)

func newTestPerson(t *testing.T, role Role) *Person {
	t.Helper()
	p, err := NewPerson("Alice", "alice@example.com", role)
	require.NoError(t, err)
	return p
}

func TestNewPerson(t *testing.T) {
	p, err := NewPerson("  Alice  ", "  Alice@Example.COM ", RoleMember)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, RoleMember, p.Role)
	assert.Zero(t, p.Reputation)
	assert.False(t, p.ID.IsZero())
}

func TestNewPerson_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		pname string
		email string
		role  Role
	}{
		{name: "blank name", pname: "  ", email: "a@b.com", role: RoleMember},
		{name: "blank email", pname: "Alice", email: "", role: RoleMember},
		{name: "malformed email", pname: "Alice", email: "not-an-email", role: RoleMember},
		{name: "unknown role", pname: "Alice", email: "a@b.com", role: Role("admin")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPerson(tc.pname, tc.email, tc.role)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestPersonCanCreateActivities(t *testing.T) {
	assert.False(t, newTestPerson(t, RoleMember).CanCreateActivities())
	assert.True(t, newTestPerson(t, RoleLead).CanCreateActivities())
}

func TestPersonCanAuthenticateWithEmail(t *testing.T) {
	p := newTestPerson(t, RoleMember)

	assert.True(t, p.CanAuthenticateWithEmail("alice@example.com"))
	assert.True(t, p.CanAuthenticateWithEmail("ALICE@EXAMPLE.COM"))
	assert.True(t, p.CanAuthenticateWithEmail("  alice@example.com  "))
	assert.False(t, p.CanAuthenticateWithEmail("bob@example.com"))
	assert.False(t, p.CanAuthenticateWithEmail(""))
	assert.False(t, p.CanAuthenticateWithEmail("   "))
}

func TestPersonHasPermissionFor(t *testing.T) {
	member := newTestPerson(t, RoleMember)
	lead := newTestPerson(t, RoleLead)

	assert.True(t, member.HasPermissionFor(OpSubmitAction))
	assert.False(t, member.HasPermissionFor(OpCreateActivity))
	assert.True(t, lead.HasPermissionFor(OpCreateActivity))
	assert.False(t, member.HasPermissionFor(Operation("")))
	assert.False(t, lead.HasPermissionFor(Operation("")))
}

func TestPersonCanManageActivity(t *testing.T) {
	member := newTestPerson(t, RoleMember)
	lead := newTestPerson(t, RoleLead)
	activityID := NewActivityID()

	assert.False(t, member.CanManageActivity(activityID))
	assert.True(t, lead.CanManageActivity(activityID))
	assert.False(t, lead.CanManageActivity(ActivityID{}))
}

func TestPersonCanSubmitActionAs(t *testing.T) {
	member := newTestPerson(t, RoleMember)
	lead := newTestPerson(t, RoleLead)

	assert.True(t, member.CanSubmitActionAs(member.ID))
	assert.False(t, member.CanSubmitActionAs(lead.ID))
	// No role submits on someone else's behalf.
	assert.False(t, lead.CanSubmitActionAs(member.ID))
	assert.False(t, member.CanSubmitActionAs(PersonID{}))
}

func TestPersonUpdateReputation(t *testing.T) {
	p := newTestPerson(t, RoleMember)

	p.UpdateReputation(50)
	assert.Equal(t, 50, p.Reputation)

	p.UpdateReputation(-30)
	assert.Equal(t, 20, p.Reputation)

	// Clamped at zero, never negative.
	p.UpdateReputation(-100)
	assert.Equal(t, 0, p.Reputation)

	// No upper bound.
	p.UpdateReputation(1_000_000)
	assert.Equal(t, 1_000_000, p.Reputation)
}

func TestPersonEquals(t *testing.T) {
	a := newTestPerson(t, RoleMember)
	b := newTestPerson(t, RoleMember)

	assert.True(t, a.Equals(a))
	assert.False(t, a.Equals(b))
	assert.False(t, a.Equals(nil))

	// Identity only: same id, different attributes.
	clone := *a
	clone.Name = "Renamed"
	clone.Reputation = 99
	assert.True(t, a.Equals(&clone))
}
