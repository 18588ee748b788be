package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/crewscore/crewscore/internal/errors"
)

// Activity is something a lead opens for members to earn reputation on.
type Activity struct {
	ID          ActivityID
	Title       string
	Description string
	Points      int
	CreatedBy   PersonID
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewActivity builds an active Activity worth a fixed number of points per
// approved action.
func NewActivity(title, description string, points int, createdBy PersonID) (*Activity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrInvalidInput)
	}
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive, got %d", apperrors.ErrInvalidInput, points)
	}
	if createdBy.IsZero() {
		return nil, fmt.Errorf("%w: creator is required", apperrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	return &Activity{
		ID:          NewActivityID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Points:      points,
		CreatedBy:   createdBy,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rename updates the title and description.
func (a *Activity) Rename(title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrInvalidInput)
	}
	a.Title = title
	a.Description = strings.TrimSpace(description)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Deactivate closes the activity for new submissions.
func (a *Activity) Deactivate() error {
	if !a.Active {
		return fmt.Errorf("%w: activity %s is already inactive", apperrors.ErrConflict, a.ID)
	}
	a.Active = false
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// ActivityRepository stores activities.
type ActivityRepository interface {
	FindByID(ctx context.Context, id ActivityID) (*Activity, error)
	Save(ctx context.Context, activity *Activity) error
	List(ctx context.Context, activeOnly bool) ([]*Activity, error)
}
