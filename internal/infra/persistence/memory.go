package persistence

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
)

// InMemoryPersonRepository is a map-backed domain.PersonRepository. It stores
// and returns copies, so a caller mutating a Person must Save it for the
// change to become visible.
type InMemoryPersonRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.Person
	byEmail map[string]string
}

func NewInMemoryPersonRepository() *InMemoryPersonRepository {
	return &InMemoryPersonRepository{
		byID:    make(map[string]domain.Person),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryPersonRepository) FindByID(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	person, ok := r.byID[id.String()]
	if !ok {
		return nil, fmt.Errorf("%w: person %s", apperrors.ErrNotFound, id)
	}
	return &person, nil
}

func (r *InMemoryPersonRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, fmt.Errorf("%w: no person with that email", apperrors.ErrNotFound)
	}
	person := r.byID[id]
	return &person, nil
}

func (r *InMemoryPersonRepository) Save(ctx context.Context, person *domain.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[person.ID.String()] = *person
	r.byEmail[person.Email] = person.ID.String()
	return nil
}

// Leaderboard returns up to limit persons ordered by reputation, highest
// first. Ties break on name to keep the order stable.
func (r *InMemoryPersonRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := make([]*domain.Person, 0, len(r.byID))
	for _, p := range r.byID {
		person := p
		persons = append(persons, &person)
	}

	sort.Slice(persons, func(i, j int) bool {
		if persons[i].Reputation != persons[j].Reputation {
			return persons[i].Reputation > persons[j].Reputation
		}
		return persons[i].Name < persons[j].Name
	})

	if limit > 0 && len(persons) > limit {
		persons = persons[:limit]
	}
	return persons, nil
}

// InMemoryActivityRepository is a map-backed domain.ActivityRepository.
type InMemoryActivityRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Activity
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{items: make(map[string]domain.Activity)}
}

func (r *InMemoryActivityRepository) FindByID(ctx context.Context, id domain.ActivityID) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.items[id.String()]
	if !ok {
		return nil, fmt.Errorf("%w: activity %s", apperrors.ErrNotFound, id)
	}
	return &activity, nil
}

func (r *InMemoryActivityRepository) Save(ctx context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[activity.ID.String()] = *activity
	return nil
}

func (r *InMemoryActivityRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]*domain.Activity, 0, len(r.items))
	for _, a := range r.items {
		if activeOnly && !a.Active {
			continue
		}
		activity := a
		activities = append(activities, &activity)
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.Before(activities[j].CreatedAt)
	})
	return activities, nil
}

// InMemoryActionRepository is a map-backed domain.ActionRepository.
type InMemoryActionRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Action
}

func NewInMemoryActionRepository() *InMemoryActionRepository {
	return &InMemoryActionRepository{items: make(map[string]domain.Action)}
}

func (r *InMemoryActionRepository) FindByID(ctx context.Context, id domain.ActionID) (*domain.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.items[id.String()]
	if !ok {
		return nil, fmt.Errorf("%w: action %s", apperrors.ErrNotFound, id)
	}
	return &action, nil
}

func (r *InMemoryActionRepository) Save(ctx context.Context, action *domain.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[action.ID.String()] = *action
	return nil
}

func (r *InMemoryActionRepository) ListByActivity(ctx context.Context, activityID domain.ActivityID) ([]*domain.Action, error) {
	return r.list(func(a *domain.Action) bool { return a.ActivityID == activityID })
}

func (r *InMemoryActionRepository) ListByPerson(ctx context.Context, personID domain.PersonID) ([]*domain.Action, error) {
	return r.list(func(a *domain.Action) bool { return a.PersonID == personID })
}

func (r *InMemoryActionRepository) list(match func(*domain.Action) bool) ([]*domain.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]*domain.Action, 0)
	for _, a := range r.items {
		action := a
		if match(&action) {
			actions = append(actions, &action)
		}
	}

	sort.Slice(actions, func(i, j int) bool {
		return actions[i].SubmittedAt.Before(actions[j].SubmittedAt)
	})
	return actions, nil
}
