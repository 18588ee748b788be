package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	consts "github.com/crewscore/crewscore/internal/constants"
	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
)

const queryTimeout = 3 * time.Second

// PostgresPersonRepository implements domain.PersonRepository on pgx.
type PostgresPersonRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresPersonRepository(db *pgxpool.Pool, logger *slog.Logger) *PostgresPersonRepository {
	return &PostgresPersonRepository{db: db, logger: logger}
}

func (r *PostgresPersonRepository) FindByID(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, consts.Queries[consts.StmtGetPerson], id.String())
	person, err := scanPersonRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: person %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get person %s: %w", id, err)
	}
	return person, nil
}

func (r *PostgresPersonRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, consts.Queries[consts.StmtGetPersonByEmail], email)
	person, err := scanPersonRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no person with that email", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get person by email: %w", err)
	}
	return person, nil
}

func (r *PostgresPersonRepository) Save(ctx context.Context, person *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, consts.Queries[consts.StmtUpsertPerson],
		person.ID.String(), person.Name, person.Email, string(person.Role),
		person.Reputation, person.CreatedAt, person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save person %s: %w", person.ID, err)
	}
	return nil
}

func (r *PostgresPersonRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, consts.Queries[consts.StmtLeaderboard], limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var persons []*domain.Person
	for rows.Next() {
		person, err := scanPersonRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		persons = append(persons, person)
	}
	return persons, rows.Err()
}

func scanPersonRow(row pgx.Row) (*domain.Person, error) {
	var (
		idStr, name, email, role string
		reputation               int
		createdAt, updatedAt     time.Time
	)
	if err := row.Scan(&idStr, &name, &email, &role, &reputation, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := domain.PersonIDFromString(idStr)
	if err != nil {
		return nil, err
	}

	return &domain.Person{
		ID:         id,
		Name:       name,
		Email:      email,
		Role:       domain.Role(role),
		Reputation: reputation,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// PostgresActivityRepository implements domain.ActivityRepository on pgx.
type PostgresActivityRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresActivityRepository(db *pgxpool.Pool, logger *slog.Logger) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db, logger: logger}
}

func (r *PostgresActivityRepository) FindByID(ctx context.Context, id domain.ActivityID) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, consts.Queries[consts.StmtGetActivity], id.String())
	activity, err := scanActivityRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: activity %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get activity %s: %w", id, err)
	}
	return activity, nil
}

func (r *PostgresActivityRepository) Save(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, consts.Queries[consts.StmtUpsertActivity],
		activity.ID.String(), activity.Title, activity.Description, activity.Points,
		activity.CreatedBy.String(), activity.Active, activity.CreatedAt, activity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", activity.ID, err)
	}
	return nil
}

func (r *PostgresActivityRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, consts.Queries[consts.StmtListActivities], activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		activity, err := scanActivityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func scanActivityRow(row pgx.Row) (*domain.Activity, error) {
	var (
		idStr, title, description, createdByStr string
		points                                  int
		active                                  bool
		createdAt, updatedAt                    time.Time
	)
	if err := row.Scan(&idStr, &title, &description, &points, &createdByStr, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := domain.ActivityIDFromString(idStr)
	if err != nil {
		return nil, err
	}
	createdBy, err := domain.PersonIDFromString(createdByStr)
	if err != nil {
		return nil, err
	}

	return &domain.Activity{
		ID:          id,
		Title:       title,
		Description: description,
		Points:      points,
		CreatedBy:   createdBy,
		Active:      active,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// PostgresActionRepository implements domain.ActionRepository on pgx.
type PostgresActionRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresActionRepository(db *pgxpool.Pool, logger *slog.Logger) *PostgresActionRepository {
	return &PostgresActionRepository{db: db, logger: logger}
}

func (r *PostgresActionRepository) FindByID(ctx context.Context, id domain.ActionID) (*domain.Action, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, consts.Queries[consts.StmtGetAction], id.String())
	action, err := scanActionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: action %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get action %s: %w", id, err)
	}
	return action, nil
}

func (r *PostgresActionRepository) Save(ctx context.Context, action *domain.Action) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var reviewedBy *string
	if !action.ReviewedBy.IsZero() {
		s := action.ReviewedBy.String()
		reviewedBy = &s
	}

	_, err := r.db.Exec(ctx, consts.Queries[consts.StmtUpsertAction],
		action.ID.String(), action.ActivityID.String(), action.PersonID.String(),
		action.ProofRef, string(action.Status), reviewedBy, action.AwardedPoints,
		action.SubmittedAt, action.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to save action %s: %w", action.ID, err)
	}
	return nil
}

func (r *PostgresActionRepository) ListByActivity(ctx context.Context, activityID domain.ActivityID) ([]*domain.Action, error) {
	return r.listByTarget(ctx, "activity", activityID.String())
}

func (r *PostgresActionRepository) ListByPerson(ctx context.Context, personID domain.PersonID) ([]*domain.Action, error) {
	return r.listByTarget(ctx, "person", personID.String())
}

func (r *PostgresActionRepository) listByTarget(ctx context.Context, kind, id string) ([]*domain.Action, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, consts.Queries[consts.StmtListActionsByTarget], kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var actions []*domain.Action
	for rows.Next() {
		action, err := scanActionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action row: %w", err)
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

func scanActionRow(row pgx.Row) (*domain.Action, error) {
	var (
		idStr, activityStr, personStr, proofRef, status string
		reviewedByStr                                   *string
		awardedPoints                                   int
		submittedAt                                     time.Time
		reviewedAt                                      *time.Time
	)
	if err := row.Scan(&idStr, &activityStr, &personStr, &proofRef, &status,
		&reviewedByStr, &awardedPoints, &submittedAt, &reviewedAt); err != nil {
		return nil, err
	}

	id, err := domain.ActionIDFromString(idStr)
	if err != nil {
		return nil, err
	}
	activityID, err := domain.ActivityIDFromString(activityStr)
	if err != nil {
		return nil, err
	}
	personID, err := domain.PersonIDFromString(personStr)
	if err != nil {
		return nil, err
	}

	action := &domain.Action{
		ID:            id,
		ActivityID:    activityID,
		PersonID:      personID,
		ProofRef:      proofRef,
		Status:        domain.ActionStatus(status),
		AwardedPoints: awardedPoints,
		SubmittedAt:   submittedAt,
		ReviewedAt:    reviewedAt,
	}

	if reviewedByStr != nil {
		reviewedBy, err := domain.PersonIDFromString(*reviewedByStr)
		if err != nil {
			return nil, err
		}
		action.ReviewedBy = reviewedBy
	}

	return action, nil
}
