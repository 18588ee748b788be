package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crewscore/crewscore/internal/authz"
	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
	"github.com/crewscore/crewscore/internal/validation"
)

// ActivityService orchestrates activity use cases. Creation and management
// are lead-only; listing is open to any member.
type ActivityService struct {
	activities domain.ActivityRepository
	authorizer *authz.Service
	validator  *validation.RequestValidator
	audit      domain.AuditLogger
	logger     *slog.Logger
}

func NewActivityService(
	activities domain.ActivityRepository,
	authorizer *authz.Service,
	validator *validation.RequestValidator,
	audit domain.AuditLogger,
	logger *slog.Logger,
) *ActivityService {
	return &ActivityService{
		activities: activities,
		authorizer: authorizer,
		validator:  validator,
		audit:      audit,
		logger:     logger,
	}
}

// Create opens a new activity worth a fixed number of points.
func (s *ActivityService) Create(ctx context.Context, actx domain.AuthenticationContext, req validation.CreateActivityRequest) (*ActivityDTO, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpCreateActivity); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpCreateActivity), "", false, err)
		return nil, err
	}

	activity, err := domain.NewActivity(req.Title, req.Description, req.Points, actx.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.activities.Save(ctx, activity); err != nil {
		return nil, err
	}

	s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpCreateActivity), activity.ID.String(), true, nil)
	s.logger.InfoContext(ctx, "activity created",
		"activity_id", activity.ID.String(), "points", activity.Points)
	return toActivityDTO(activity), nil
}

// Update renames an activity. Any lead may manage any activity.
func (s *ActivityService) Update(ctx context.Context, actx domain.AuthenticationContext, req validation.UpdateActivityRequest) (*ActivityDTO, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	id, err := domain.ActivityIDFromString(req.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if err := s.authorizer.EnforceActivityOwnership(ctx, actx, id); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpManageActivity), id.String(), false, err)
		return nil, err
	}

	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := activity.Rename(req.Title, req.Description); err != nil {
		return nil, err
	}

	if err := s.activities.Save(ctx, activity); err != nil {
		return nil, err
	}

	s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpManageActivity), id.String(), true, nil)
	return toActivityDTO(activity), nil
}

// Deactivate closes an activity for new submissions.
func (s *ActivityService) Deactivate(ctx context.Context, actx domain.AuthenticationContext, activityID string) (*ActivityDTO, error) {
	id, err := domain.ActivityIDFromString(activityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpDeactivateActivity); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpDeactivateActivity), id.String(), false, err)
		return nil, err
	}
	if err := s.authorizer.EnforceActivityOwnership(ctx, actx, id); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpDeactivateActivity), id.String(), false, err)
		return nil, err
	}

	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := activity.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.activities.Save(ctx, activity); err != nil {
		return nil, err
	}

	s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpDeactivateActivity), id.String(), true, nil)
	s.logger.InfoContext(ctx, "activity deactivated", "activity_id", id.String())
	return toActivityDTO(activity), nil
}

// List returns activities visible to the caller; by default only active
// ones.
func (s *ActivityService) List(ctx context.Context, actx domain.AuthenticationContext, includeInactive bool) ([]*ActivityDTO, error) {
	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpViewActivities); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpViewActivities), "", false, err)
		return nil, err
	}

	activities, err := s.activities.List(ctx, !includeInactive)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ActivityDTO, len(activities))
	for i, a := range activities {
		dtos[i] = toActivityDTO(a)
	}
	return dtos, nil
}
