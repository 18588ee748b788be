package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
	"github.com/crewscore/crewscore/internal/infra/persistence"
)

func setup(t *testing.T) (*Service, domain.PersonRepository) {
	t.Helper()
	repo := persistence.NewInMemoryPersonRepository()
	return NewService(repo), repo
}

func savePerson(t *testing.T, repo domain.PersonRepository, name, email string, role domain.Role) *domain.Person {
	t.Helper()
	p, err := domain.NewPerson(name, email, role)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func contextFor(p *domain.Person) domain.AuthenticationContext {
	return domain.NewAuthenticationContext(p.ID, p.Email, []domain.Role{p.Role})
}

func requireAuthzError(t *testing.T, err error) *apperrors.AuthorizationError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuthorization))
	var authzErr *apperrors.AuthorizationError
	require.True(t, errors.As(err, &authzErr))
	return authzErr
}

func TestValidateUserCanActAs(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	alice := savePerson(t, repo, "Alice", "alice@example.com", domain.RoleMember)
	bob := savePerson(t, repo, "Bob", "bob@example.com", domain.RoleLead)

	t.Run("self is allowed", func(t *testing.T) {
		require.NoError(t, svc.ValidateUserCanActAs(ctx, contextFor(alice), alice.ID))
	})

	t.Run("other is denied regardless of role", func(t *testing.T) {
		err := svc.ValidateUserCanActAs(ctx, contextFor(bob), alice.ID)
		authzErr := requireAuthzError(t, err)
		assert.Equal(t, bob.ID.String(), authzErr.UserID)
	})

	t.Run("anonymous is denied with authentication required", func(t *testing.T) {
		err := svc.ValidateUserCanActAs(ctx, domain.AnonymousContext(), alice.ID)
		authzErr := requireAuthzError(t, err)
		assert.Equal(t, "authentication required", authzErr.Message)
	})

	t.Run("zero target never matches", func(t *testing.T) {
		err := svc.ValidateUserCanActAs(ctx, contextFor(alice), domain.PersonID{})
		requireAuthzError(t, err)
	})
}

func TestValidateRolePermission(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	member := savePerson(t, repo, "Alice", "alice@example.com", domain.RoleMember)
	lead := savePerson(t, repo, "Bob", "bob@example.com", domain.RoleLead)

	t.Run("member holds member operations", func(t *testing.T) {
		require.NoError(t, svc.ValidateRolePermission(ctx, contextFor(member), domain.OpSubmitAction))
		require.NoError(t, svc.ValidateRolePermission(ctx, contextFor(member), domain.OpViewLeaderboard))
	})

	t.Run("member denied lead operations", func(t *testing.T) {
		err := svc.ValidateRolePermission(ctx, contextFor(member), domain.OpCreateActivity)
		authzErr := requireAuthzError(t, err)
		assert.Equal(t, string(domain.OpCreateActivity), authzErr.Operation)
	})

	t.Run("lead holds everything", func(t *testing.T) {
		for _, op := range domain.RoleLead.Operations() {
			require.NoError(t, svc.ValidateRolePermission(ctx, contextFor(lead), op))
		}
	})

	t.Run("anonymous is denied", func(t *testing.T) {
		err := svc.ValidateRolePermission(ctx, domain.AnonymousContext(), domain.OpViewProfile)
		authzErr := requireAuthzError(t, err)
		assert.Equal(t, "authentication required", authzErr.Message)
	})

	t.Run("unknown person is denied like missing permission", func(t *testing.T) {
		ghost := domain.NewAuthenticationContext(domain.NewPersonID(), "ghost@example.com", []domain.Role{domain.RoleLead})
		err := svc.ValidateRolePermission(ctx, ghost, domain.OpViewProfile)
		requireAuthzError(t, err)
	})

	t.Run("stale context roles are not trusted", func(t *testing.T) {
		// The token says lead, the store says member. The store wins.
		stale := domain.NewAuthenticationContext(member.ID, member.Email, []domain.Role{domain.RoleLead})
		err := svc.ValidateRolePermission(ctx, stale, domain.OpCreateActivity)
		requireAuthzError(t, err)
	})

	t.Run("role change takes effect without reauthentication", func(t *testing.T) {
		promoted := savePerson(t, repo, "Carol", "carol@example.com", domain.RoleMember)
		actx := contextFor(promoted)

		err := svc.ValidateRolePermission(ctx, actx, domain.OpCreateActivity)
		requireAuthzError(t, err)

		promoted.Role = domain.RoleLead
		require.NoError(t, repo.Save(ctx, promoted))

		require.NoError(t, svc.ValidateRolePermission(ctx, actx, domain.OpCreateActivity))
	})
}

func TestEnforceResourceAccess(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	alice := savePerson(t, repo, "Alice", "alice@example.com", domain.RoleMember)

	require.NoError(t, svc.EnforceResourceAccess(ctx, contextFor(alice), "resource-1"))

	err := svc.EnforceResourceAccess(ctx, domain.AnonymousContext(), "resource-1")
	authzErr := requireAuthzError(t, err)
	assert.Equal(t, "authentication required", authzErr.Message)
	assert.Equal(t, "resource-1", authzErr.ResourceID)

	ghost := domain.NewAuthenticationContext(domain.NewPersonID(), "ghost@example.com", nil)
	err = svc.EnforceResourceAccess(ctx, ghost, "resource-1")
	requireAuthzError(t, err)
}

func TestEnforceActivityOwnership(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	member := savePerson(t, repo, "Alice", "alice@example.com", domain.RoleMember)
	lead := savePerson(t, repo, "Bob", "bob@example.com", domain.RoleLead)
	other := savePerson(t, repo, "Carol", "carol@example.com", domain.RoleLead)
	activityID := domain.NewActivityID()

	t.Run("any lead manages any activity", func(t *testing.T) {
		require.NoError(t, svc.EnforceActivityOwnership(ctx, contextFor(lead), activityID))
		require.NoError(t, svc.EnforceActivityOwnership(ctx, contextFor(other), activityID))
	})

	t.Run("member is denied", func(t *testing.T) {
		err := svc.EnforceActivityOwnership(ctx, contextFor(member), activityID)
		authzErr := requireAuthzError(t, err)
		assert.Equal(t, activityID.String(), authzErr.ResourceID)
		assert.Equal(t, string(domain.OpManageActivity), authzErr.Operation)
	})

	t.Run("zero activity id is denied even for leads", func(t *testing.T) {
		err := svc.EnforceActivityOwnership(ctx, contextFor(lead), domain.ActivityID{})
		requireAuthzError(t, err)
	})

	t.Run("anonymous is denied", func(t *testing.T) {
		err := svc.EnforceActivityOwnership(ctx, domain.AnonymousContext(), activityID)
		authzErr := requireAuthzError(t, err)
		assert.Equal(t, "authentication required", authzErr.Message)
	})
}
