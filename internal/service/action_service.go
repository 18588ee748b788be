package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crewscore/crewscore/internal/authz"
	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
	"github.com/crewscore/crewscore/internal/validation"
	"github.com/crewscore/crewscore/pkg/cache"
)

// ActionService orchestrates the submit-and-review workflow. Submission is
// self-only; review is lead-only and awarding points is the one place this
// system mutates reputation.
type ActionService struct {
	actions     domain.ActionRepository
	activities  domain.ActivityRepository
	persons     domain.PersonRepository
	proofs      domain.ProofStore
	authorizer  *authz.Service
	validator   *validation.RequestValidator
	audit       domain.AuditLogger
	leaderboard cache.Store[string, []LeaderboardEntry]
	logger      *slog.Logger
}

func NewActionService(
	actions domain.ActionRepository,
	activities domain.ActivityRepository,
	persons domain.PersonRepository,
	proofs domain.ProofStore,
	authorizer *authz.Service,
	validator *validation.RequestValidator,
	audit domain.AuditLogger,
	leaderboard cache.Store[string, []LeaderboardEntry],
	logger *slog.Logger,
) *ActionService {
	return &ActionService{
		actions:     actions,
		activities:  activities,
		persons:     persons,
		proofs:      proofs,
		authorizer:  authorizer,
		validator:   validator,
		audit:       audit,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Submit records a member's claim on an activity, with proof. The caller may
// only submit as themselves; no role overrides that.
func (s *ActionService) Submit(ctx context.Context, actx domain.AuthenticationContext, req validation.SubmitActionRequest) (*ActionDTO, error) {
	if err := s.validator.ValidateSubmitActionRequest(req); err != nil {
		return nil, err
	}

	personID, err := domain.PersonIDFromString(req.PersonID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	activityID, err := domain.ActivityIDFromString(req.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if err := s.authorizer.ValidateUserCanActAs(ctx, actx, personID); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpSubmitAction), activityID.String(), false, err)
		return nil, err
	}
	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpSubmitAction); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpSubmitAction), activityID.String(), false, err)
		return nil, err
	}

	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if !activity.Active {
		return nil, fmt.Errorf("%w: activity %s is closed for submissions", apperrors.ErrConflict, activityID)
	}

	action, err := domain.NewAction(activityID, personID, "pending-upload")
	if err != nil {
		return nil, err
	}

	ref, err := s.proofs.Put(ctx, action.ID, req.Proof, req.ContentType)
	if err != nil {
		return nil, err
	}
	action.ProofRef = ref

	if err := s.actions.Save(ctx, action); err != nil {
		return nil, err
	}

	s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpSubmitAction), action.ID.String(), true, nil)
	s.logger.InfoContext(ctx, "action submitted",
		"action_id", action.ID.String(), "activity_id", activityID.String())
	return toActionDTO(action), nil
}

// Review settles a pending action. Approval awards the activity's points to
// the submitter and invalidates the cached leaderboard.
func (s *ActionService) Review(ctx context.Context, actx domain.AuthenticationContext, req validation.ReviewActionRequest) (*ActionDTO, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	actionID, err := domain.ActionIDFromString(req.ActionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpValidateProof); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpValidateProof), actionID.String(), false, err)
		return nil, err
	}

	action, err := s.actions.FindByID(ctx, actionID)
	if err != nil {
		return nil, err
	}

	if !req.Approve {
		if err := action.Reject(actx.UserID); err != nil {
			return nil, err
		}
		if err := s.actions.Save(ctx, action); err != nil {
			return nil, err
		}
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpValidateProof), actionID.String(), true, nil)
		return toActionDTO(action), nil
	}

	activity, err := s.activities.FindByID(ctx, action.ActivityID)
	if err != nil {
		return nil, err
	}

	if err := action.Approve(actx.UserID, activity.Points); err != nil {
		return nil, err
	}

	submitter, err := s.persons.FindByID(ctx, action.PersonID)
	if err != nil {
		return nil, err
	}
	submitter.UpdateReputation(activity.Points)
	if err := s.persons.Save(ctx, submitter); err != nil {
		return nil, err
	}

	if err := s.actions.Save(ctx, action); err != nil {
		return nil, err
	}

	s.leaderboard.Delete(ctx, leaderboardCacheKey)
	s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpValidateProof), actionID.String(), true, nil)
	s.logger.InfoContext(ctx, "action approved",
		"action_id", actionID.String(), "points", activity.Points,
		"person_id", submitter.ID.String())
	return toActionDTO(action), nil
}

// GetProof returns the stored evidence. Allowed for the submitter and for
// anyone holding validate_proof.
func (s *ActionService) GetProof(ctx context.Context, actx domain.AuthenticationContext, actionID string) ([]byte, error) {
	id, err := domain.ActionIDFromString(actionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if err := s.authorizer.EnforceResourceAccess(ctx, actx, id.String()); err != nil {
		return nil, err
	}

	action, err := s.actions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actx.CanActAs(action.PersonID) {
		if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpValidateProof); err != nil {
			s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpValidateProof), id.String(), false, err)
			return nil, err
		}
	}

	return s.proofs.Get(ctx, action.ProofRef)
}

// ListByActivity returns all submissions for an activity, pending included.
// Lead-only: the listing exists to review proofs.
func (s *ActionService) ListByActivity(ctx context.Context, actx domain.AuthenticationContext, activityID string) ([]*ActionDTO, error) {
	id, err := domain.ActivityIDFromString(activityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpValidateProof); err != nil {
		return nil, err
	}

	actions, err := s.actions.ListByActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ActionDTO, len(actions))
	for i, a := range actions {
		dtos[i] = toActionDTO(a)
	}
	return dtos, nil
}
