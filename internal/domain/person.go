package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/crewscore/crewscore/internal/errors"
)

// Person is the aggregate for identity, role and reputation. Identity is the
// PersonID alone; every other field may change without affecting equality.
type Person struct {
	ID         PersonID
	Name       string
	Email      string
	Role       Role
	Reputation int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPerson builds a Person with a fresh id and zero reputation. Name and
// email are trimmed; email is stored lowercased so comparisons stay
// case-insensitive.
func NewPerson(name, email string, role Role) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrInvalidInput)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", apperrors.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email %q", apperrors.ErrInvalidInput, email)
	}

	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, role)
	}

	now := time.Now().UTC()
	return &Person{
		ID:        NewPersonID(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanCreateActivities reports whether this person may create activities.
func (p *Person) CanCreateActivities() bool {
	return p.Role == RoleLead
}

// CanAuthenticateWithEmail reports whether candidate names this person's
// email. Comparison trims whitespace and ignores case; blank input is false.
func (p *Person) CanAuthenticateWithEmail(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	return strings.EqualFold(candidate, p.Email)
}

// HasPermissionFor reports whether the person's role grants op. The zero
// Operation, or anything outside the closed vocabulary, is never granted.
func (p *Person) HasPermissionFor(op Operation) bool {
	return p.Role.Permits(op)
}

// CanManageActivity reports whether the person may manage the given activity.
// Any lead manages any activity; creator ownership is deliberately not
// checked at this point.
func (p *Person) CanManageActivity(activityID ActivityID) bool {
	if activityID.IsZero() {
		return false
	}
	return p.Role == RoleLead
}

// CanSubmitActionAs reports whether the person may submit an action on behalf
// of target. Self only: no role, lead included, submits for someone else.
func (p *Person) CanSubmitActionAs(target PersonID) bool {
	if target.IsZero() {
		return false
	}
	return target == p.ID
}

// UpdateReputation adds points, which may be negative. The score is clamped
// at zero and has no upper bound.
func (p *Person) UpdateReputation(points int) {
	p.Reputation += points
	if p.Reputation < 0 {
		p.Reputation = 0
	}
	p.UpdatedAt = time.Now().UTC()
}

// Equals compares by identity only.
func (p *Person) Equals(other *Person) bool {
	if other == nil {
		return false
	}
	return p.ID == other.ID
}

// PersonRepository is the lookup and persistence capability this core depends
// on. Implementations surface apperrors.ErrNotFound for missing ids or
// emails; the core never caches results across calls.
type PersonRepository interface {
	FindByID(ctx context.Context, id PersonID) (*Person, error)
	FindByEmail(ctx context.Context, email string) (*Person, error)
	Save(ctx context.Context, person *Person) error
	Leaderboard(ctx context.Context, limit int) ([]*Person, error)
}
