// Package app wires configuration, repositories, services, and the HTTP
// router into a runnable server. Without DB_URL it falls back to seeded
// in-memory repositories, which is how local development runs.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totohockey/totohockey/external/postgrest"
	"github.com/totohockey/totohockey/internal/config"
	"github.com/totohockey/totohockey/internal/domain/league"
	"github.com/totohockey/totohockey/internal/domain/match"
	"github.com/totohockey/totohockey/internal/domain/prediction"
	"github.com/totohockey/totohockey/internal/domain/round"
	"github.com/totohockey/totohockey/internal/domain/team"
	"github.com/totohockey/totohockey/internal/domain/user"
	"github.com/totohockey/totohockey/internal/infrastructure/account/gotrue"
	cacherepo "github.com/totohockey/totohockey/internal/infrastructure/repository/cache"
	"github.com/totohockey/totohockey/internal/infrastructure/repository/memory"
	"github.com/totohockey/totohockey/internal/infrastructure/repository/postgres"
	"github.com/totohockey/totohockey/internal/interfaces/httpapi"
	basecache "github.com/totohockey/totohockey/internal/platform/cache"
	idgen "github.com/totohockey/totohockey/internal/platform/id"
	"github.com/totohockey/totohockey/internal/platform/logging"
	"github.com/totohockey/totohockey/internal/platform/resilience"
	"github.com/totohockey/totohockey/internal/usecase"
)

type repositories struct {
	teams       team.Repository
	rounds      round.Repository
	matches     match.Repository
	predictions prediction.Repository
	leagues     league.Repository
	profiles    user.ProfileRepository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.rounds = cacherepo.NewRoundRepository(repos.rounds, store)
	}

	appLogger := logging.Default()

	var procs *postgrest.Client
	if cfg.PostgRESTEnabled {
		procs = postgrest.NewClient(postgrest.ClientConfig{
			BaseURL:    cfg.PostgRESTBaseURL,
			ServiceKey: cfg.PostgRESTServiceKey,
			Retries:    cfg.PostgRESTRetries,
			Timeout:    cfg.PostgRESTTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PostgRESTCircuitEnabled,
				FailureThreshold: cfg.PostgRESTCircuitFailureCount,
				OpenTimeout:      cfg.PostgRESTCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PostgRESTCircuitHalfOpenMaxReq,
			},
		}, appLogger)
	}

	gen := idgen.NewRandomGenerator()

	var scoringSvc *usecase.ScoringService
	if procs != nil {
		scoringSvc = usecase.NewScoringService(repos.predictions, repos.matches, procs, appLogger, cfg.ScoringWorkers)
	} else {
		scoringSvc = usecase.NewScoringService(repos.predictions, repos.matches, nil, appLogger, cfg.ScoringWorkers)
	}
	predictionSvc := usecase.NewPredictionService(repos.predictions, repos.matches, repos.rounds, repos.leagues, repos.profiles, gen)
	competitionSvc := usecase.NewCompetitionService(repos.teams, repos.rounds, repos.matches, scoringSvc, gen)
	leagueSvc := usecase.NewLeagueService(repos.leagues, scoringSvc, gen)
	leaderboardSvc := usecase.NewLeaderboardService(repos.predictions, repos.leagues, repos.profiles)

	verifier := gotrue.NewClient(
		&http.Client{Timeout: cfg.GoTrueTimeout},
		cfg.GoTrueBaseURL,
		cfg.GoTrueAPIKey,
		logger,
	)

	handler := httpapi.NewHandler(predictionSvc, competitionSvc, leagueSvc, leaderboardSvc, scoringSvc, logger)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handler:            handler,
		TokenVerifier:      verifier,
		InternalJobToken:   cfg.InternalJobToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("DB_URL not set, using in-memory repositories with seed data")
		return repositories{
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			rounds:      memory.NewRoundRepository(memory.SeedRounds()),
			matches:     memory.NewMatchRepository(memory.SeedMatches()),
			predictions: memory.NewPredictionRepository(nil),
			leagues:     memory.NewLeagueRepository(nil),
			profiles:    memory.NewProfileRepository(memory.SeedProfiles()),
		}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect database: %w", err)
	}

	return repositories{
		teams:       postgres.NewTeamRepository(db),
		rounds:      postgres.NewRoundRepository(db),
		matches:     postgres.NewMatchRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		leagues:     postgres.NewLeagueRepository(db),
		profiles:    postgres.NewProfileRepository(db),
	}, nil
}
