package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crewscore/crewscore/internal/authz"
	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
	"github.com/crewscore/crewscore/internal/validation"
	"github.com/crewscore/crewscore/pkg/cache"
)

// leaderboardCacheKey is the single cache slot for the ranked leaderboard.
const leaderboardCacheKey = "leaderboard"

// PersonService orchestrates person use cases. Registration is open; every
// read past that goes through the authorizer first.
type PersonService struct {
	persons     domain.PersonRepository
	authorizer  *authz.Service
	validator   *validation.RequestValidator
	audit       domain.AuditLogger
	leaderboard cache.Store[string, []LeaderboardEntry]
	limit       int
	logger      *slog.Logger
}

func NewPersonService(
	persons domain.PersonRepository,
	authorizer *authz.Service,
	validator *validation.RequestValidator,
	audit domain.AuditLogger,
	leaderboard cache.Store[string, []LeaderboardEntry],
	limit int,
	logger *slog.Logger,
) *PersonService {
	return &PersonService{
		persons:     persons,
		authorizer:  authorizer,
		validator:   validator,
		audit:       audit,
		leaderboard: leaderboard,
		limit:       limit,
		logger:      logger,
	}
}

// Register creates a person with zero reputation. Duplicate emails are
// rejected.
func (s *PersonService) Register(ctx context.Context, req validation.RegisterPersonRequest) (*PersonDTO, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if existing, err := s.persons.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	person, err := domain.NewPerson(req.Name, req.Email, role)
	if err != nil {
		return nil, err
	}

	if err := s.persons.Save(ctx, person); err != nil {
		return nil, err
	}

	s.audit.AuditLog(ctx, person.ID.String(), "register_person", person.ID.String(), true, nil)
	s.logger.InfoContext(ctx, "person registered",
		"person_id", person.ID.String(), "role", string(person.Role))
	return toPersonDTO(person), nil
}

// GetProfile returns a person's profile to any authenticated caller holding
// the view_profile permission.
func (s *PersonService) GetProfile(ctx context.Context, actx domain.AuthenticationContext, personID string) (*PersonDTO, error) {
	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpViewProfile); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpViewProfile), personID, false, err)
		return nil, err
	}

	id, err := domain.PersonIDFromString(personID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	person, err := s.persons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPersonDTO(person), nil
}

// Leaderboard returns persons ranked by reputation, highest first. Results
// are served from a TTL cache; approval of a proof invalidates it.
func (s *PersonService) Leaderboard(ctx context.Context, actx domain.AuthenticationContext) ([]LeaderboardEntry, error) {
	if err := s.authorizer.ValidateRolePermission(ctx, actx, domain.OpViewLeaderboard); err != nil {
		s.audit.AuditLog(ctx, actx.UserID.String(), string(domain.OpViewLeaderboard), "", false, err)
		return nil, err
	}

	if entries, ok := s.leaderboard.Get(ctx, leaderboardCacheKey); ok {
		return entries, nil
	}

	persons, err := s.persons.Leaderboard(ctx, s.limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(persons))
	for i, p := range persons {
		entries[i] = LeaderboardEntry{
			Rank:       i + 1,
			PersonID:   p.ID.String(),
			Name:       p.Name,
			Reputation: p.Reputation,
		}
	}

	s.leaderboard.Set(ctx, leaderboardCacheKey, entries, 0)
	return entries, nil
}
