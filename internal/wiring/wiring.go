package wiring

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewscore/crewscore/internal/authz"
	"github.com/crewscore/crewscore/internal/config"
	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
	infraaudit "github.com/crewscore/crewscore/internal/infra/audit"
	infraauth "github.com/crewscore/crewscore/internal/infra/auth"
	"github.com/crewscore/crewscore/internal/infra/persistence"
	"github.com/crewscore/crewscore/internal/infra/storage"
	"github.com/crewscore/crewscore/internal/server"
	"github.com/crewscore/crewscore/internal/service"
	"github.com/crewscore/crewscore/internal/validation"
	"github.com/crewscore/crewscore/pkg/cache"
)

// App is the composed application: every service wired to its dependencies,
// ready to serve.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Classifier *apperrors.ErrorClassifier

	Persons    domain.PersonRepository
	Activities domain.ActivityRepository
	Actions    domain.ActionRepository
	Proofs     domain.ProofStore

	Authorizer  *authz.Service
	Auth        *service.AuthService
	PersonSvc   *service.PersonService
	ActivitySvc *service.ActivityService
	ActionSvc   *service.ActionService

	Server *server.Server
	Port   int

	pool             *pgxpool.Pool
	leaderboardCache *cache.Cache[string, []service.LeaderboardEntry]
}

// Build loads the configuration and constructs the full dependency graph.
// Repositories and the proof store are selected by config; everything else is
// fixed.
func Build(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Classifier: apperrors.NewErrorClassifier(logger),
	}

	if err := app.provideRepositories(ctx); err != nil {
		return nil, err
	}
	if err := app.provideProofStore(ctx); err != nil {
		return nil, err
	}
	if err := app.provideServices(); err != nil {
		return nil, err
	}

	srv, port, err := server.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.Server = srv
	app.Port = port

	return app, nil
}

func (a *App) provideRepositories(ctx context.Context) error {
	switch a.Config.Persistence.Driver {
	case config.DriverPostgres:
		pool, err := persistence.NewConnectionPool(ctx, a.Config.Persistence.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.pool = pool
		a.Persons = persistence.NewPostgresPersonRepository(pool, a.Logger)
		a.Activities = persistence.NewPostgresActivityRepository(pool, a.Logger)
		a.Actions = persistence.NewPostgresActionRepository(pool, a.Logger)
	default:
		a.Persons = persistence.NewInMemoryPersonRepository()
		a.Activities = persistence.NewInMemoryActivityRepository()
		a.Actions = persistence.NewInMemoryActionRepository()
	}
	return nil
}

func (a *App) provideProofStore(ctx context.Context) error {
	switch a.Config.Storage.Provider {
	case config.StorageS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(a.Config.Storage.Region))
		if err != nil {
			return fmt.Errorf("failed to load aws config: %w", err)
		}
		a.Proofs = storage.NewS3ProofStore(awsCfg, a.Config.Storage.Bucket, a.Logger)
	default:
		a.Proofs = storage.NewInMemoryProofStore()
	}
	return nil
}

func (a *App) provideServices() error {
	requestValidator, err := validation.NewRequestValidator()
	if err != nil {
		return fmt.Errorf("failed to build request validator: %w", err)
	}

	auditLogger := infraaudit.NewLogger(a.Logger)
	a.Authorizer = authz.NewService(a.Persons)

	tokenManager, err := infraauth.NewTokenManager(
		a.Config.Auth.JWTRSAPrivateKey, infraauth.NewInMemoryTokenStore())
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}

	credentials, err := infraauth.NewFileCredentialStore(a.Config.Auth.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to load credential store: %w", err)
	}

	a.Auth = service.NewAuthService(
		a.Persons, credentials, tokenManager, a.Config.Auth.TokenTTL, auditLogger)

	a.leaderboardCache = cache.New[string, []service.LeaderboardEntry](
		cache.WithDefaultTTL[string, []service.LeaderboardEntry](a.Config.Leaderboard.CacheTTL),
	)

	a.PersonSvc = service.NewPersonService(
		a.Persons, a.Authorizer, requestValidator, auditLogger,
		a.leaderboardCache, a.Config.Leaderboard.Limit, a.Logger)
	a.ActivitySvc = service.NewActivityService(
		a.Activities, a.Authorizer, requestValidator, auditLogger, a.Logger)
	a.ActionSvc = service.NewActionService(
		a.Actions, a.Activities, a.Persons, a.Proofs,
		a.Authorizer, requestValidator, auditLogger,
		a.leaderboardCache, a.Logger)

	return nil
}

// Run starts the server and blocks until shutdown.
func (a *App) Run() error {
	return a.Server.RunBlocking()
}

// Close releases pooled resources. Safe to call after Run returns.
func (a *App) Close() {
	if a.leaderboardCache != nil {
		a.leaderboardCache.Stop()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
