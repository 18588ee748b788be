package authz

import (
	"context"
	"fmt"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
)

// Service is the single decision point for every state-changing or sensitive
// operation. It holds no state of its own beyond a read dependency on the
// person store; each call is an independent check against the live snapshot.
//
// Every denial is an *apperrors.AuthorizationError. A person lookup failure
// surfaces as the same error type as a missing permission, so callers cannot
// tell "no such user" from "no access".
type Service struct {
	persons domain.PersonRepository
}

func NewService(persons domain.PersonRepository) *Service {
	return &Service{persons: persons}
}

// ValidateUserCanActAs enforces the self-only rule: the context's user must
// be the target person. Used for operations performed on one's own behalf.
func (s *Service) ValidateUserCanActAs(ctx context.Context, actx domain.AuthenticationContext, target domain.PersonID) error {
	if !actx.Authenticated {
		return apperrors.NewAuthorizationError("authentication required").
			WithResource(target.String())
	}

	if !actx.CanActAs(target) {
		return apperrors.NewAuthorizationError(
			fmt.Sprintf("user %s cannot act as %s", actx.UserID, target)).
			WithUser(actx.UserID.String()).
			WithResource(target.String())
	}

	return nil
}

// ValidateRolePermission checks that the calling user's role grants op. The
// person is re-fetched from the store on every call; roles embedded in the
// context are never trusted, so a stale or forged context cannot keep a
// permission after a role change.
func (s *Service) ValidateRolePermission(ctx context.Context, actx domain.AuthenticationContext, op domain.Operation) error {
	if !actx.Authenticated {
		return apperrors.NewAuthorizationError("authentication required").
			WithOperation(string(op))
	}

	person, err := s.persons.FindByID(ctx, actx.UserID)
	if err != nil {
		return apperrors.NewAuthorizationError("person not found").
			WithUser(actx.UserID.String()).
			WithOperation(string(op))
	}

	if !person.HasPermissionFor(op) {
		return apperrors.NewAuthorizationError("permission denied").
			WithUser(actx.UserID.String()).
			WithOperation(string(op))
	}

	return nil
}

// EnforceResourceAccess requires an authenticated caller that still resolves
// to a real person. There are no resource-specific ownership rules yet; this
// is the intentionally permissive baseline.
func (s *Service) EnforceResourceAccess(ctx context.Context, actx domain.AuthenticationContext, resourceID string) error {
	if !actx.Authenticated {
		return apperrors.NewAuthorizationError("authentication required").
			WithResource(resourceID)
	}

	if _, err := s.persons.FindByID(ctx, actx.UserID); err != nil {
		return apperrors.NewAuthorizationError("person not found").
			WithUser(actx.UserID.String()).
			WithResource(resourceID)
	}

	return nil
}

// EnforceActivityOwnership requires that the calling user may manage the
// given activity. Effectively "is a lead": creator ownership is not part of
// the rule at this point.
func (s *Service) EnforceActivityOwnership(ctx context.Context, actx domain.AuthenticationContext, activityID domain.ActivityID) error {
	if !actx.Authenticated {
		return apperrors.NewAuthorizationError("authentication required").
			WithResource(activityID.String())
	}

	person, err := s.persons.FindByID(ctx, actx.UserID)
	if err != nil {
		return apperrors.NewAuthorizationError("person not found").
			WithUser(actx.UserID.String()).
			WithResource(activityID.String())
	}

	if !person.CanManageActivity(activityID) {
		return apperrors.NewAuthorizationError(
			fmt.Sprintf("user %s cannot manage activity %s", actx.UserID, activityID)).
			WithUser(actx.UserID.String()).
			WithOperation(string(domain.OpManageActivity)).
			WithResource(activityID.String())
	}

	return nil
}
