package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crewscore/crewscore/internal/authz"
	"github.com/crewscore/crewscore/internal/domain"
	infraaudit "github.com/crewscore/crewscore/internal/infra/audit"
	"github.com/crewscore/crewscore/internal/infra/persistence"
	"github.com/crewscore/crewscore/internal/infra/storage"
	"github.com/crewscore/crewscore/internal/service"
	"github.com/crewscore/crewscore/internal/validation"
	"github.com/crewscore/crewscore/pkg/cache"
)

// fixture wires the full service stack on in-memory infrastructure.
type fixture struct {
	persons    *persistence.InMemoryPersonRepository
	activities *persistence.InMemoryActivityRepository
	actions    *persistence.InMemoryActionRepository
	proofs     *storage.InMemoryProofStore

	personSvc   *service.PersonService
	activitySvc *service.ActivityService
	actionSvc   *service.ActionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	persons := persistence.NewInMemoryPersonRepository()
	activities := persistence.NewInMemoryActivityRepository()
	actions := persistence.NewInMemoryActionRepository()
	proofs := storage.NewInMemoryProofStore()

	authorizer := authz.NewService(persons)
	requestValidator, err := validation.NewRequestValidator()
	require.NoError(t, err)

	audit := infraaudit.Nop{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	leaderboard := cache.New[string, []service.LeaderboardEntry]()
	t.Cleanup(leaderboard.Stop)

	return &fixture{
		persons:    persons,
		activities: activities,
		actions:    actions,
		proofs:     proofs,
		personSvc: service.NewPersonService(
			persons, authorizer, requestValidator, audit, leaderboard, 100, logger),
		activitySvc: service.NewActivityService(
			activities, authorizer, requestValidator, audit, logger),
		actionSvc: service.NewActionService(
			actions, activities, persons, proofs, authorizer, requestValidator,
			audit, leaderboard, logger),
	}
}

func (f *fixture) registerPerson(t *testing.T, name, email, role string) *service.PersonDTO {
	t.Helper()
	dto, err := f.personSvc.Register(context.Background(), validation.RegisterPersonRequest{
		Name:  name,
		Email: email,
		Role:  role,
	})
	require.NoError(t, err)
	return dto
}

func (f *fixture) contextFor(t *testing.T, dto *service.PersonDTO) domain.AuthenticationContext {
	t.Helper()
	id, err := domain.PersonIDFromString(dto.ID)
	require.NoError(t, err)
	role, err := domain.ParseRole(dto.Role)
	require.NoError(t, err)
	return domain.NewAuthenticationContext(id, dto.Email, []domain.Role{role})
}

func (f *fixture) createActivity(t *testing.T, actx domain.AuthenticationContext, title string, points int) *service.ActivityDTO {
	t.Helper()
	dto, err := f.activitySvc.Create(context.Background(), actx, validation.CreateActivityRequest{
		Title:  title,
		Points: points,
	})
	require.NoError(t, err)
	return dto
}
