package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/openfantasy/rooms/internal/config"
	"github.com/openfantasy/rooms/internal/domain/club"
	"github.com/openfantasy/rooms/internal/domain/gameweek"
	"github.com/openfantasy/rooms/internal/domain/league"
	"github.com/openfantasy/rooms/internal/domain/player"
	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/domain/roster"
	"github.com/openfantasy/rooms/internal/domain/standing"
	"github.com/openfantasy/rooms/internal/infrastructure/account/introspect"
	"github.com/openfantasy/rooms/internal/infrastructure/notifier"
	cacherepo "github.com/openfantasy/rooms/internal/infrastructure/repository/cache"
	"github.com/openfantasy/rooms/internal/infrastructure/repository/memory"
	"github.com/openfantasy/rooms/internal/infrastructure/repository/postgres"
	"github.com/openfantasy/rooms/internal/interfaces/httpapi"
	basecache "github.com/openfantasy/rooms/internal/platform/cache"
	idgen "github.com/openfantasy/rooms/internal/platform/id"
	"github.com/openfantasy/rooms/internal/platform/logging"
	"github.com/openfantasy/rooms/internal/platform/resilience"
	"github.com/openfantasy/rooms/internal/usecase"
)

const bootstrapTimeout = 30 * time.Second

type repositories struct {
	room     room.Repository
	gameweek gameweek.Repository
	team     roster.Repository
	standing standing.Repository
	league   league.Repository
	club     club.Repository
	player   player.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router into
// a ready-to-run server. With DB_URL set it runs against postgres,
// otherwise everything lives in seeded in-memory repositories. A
// database handle, when opened, is closed through the server's
// shutdown hooks.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		repos repositories
		db    *sqlx.DB
	)

	if cfg.DBURL != "" {
		var err error
		db, err = openDatabase(cfg)
		if err != nil {
			return nil, err
		}

		seedCtx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
		defer cancel()
		if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}

		repos = repositories{
			room:     postgres.NewRoomRepository(db),
			gameweek: postgres.NewGameweekRepository(db),
			team:     postgres.NewTeamRepository(db),
			standing: postgres.NewStandingRepository(db),
			league:   postgres.NewLeagueRepository(db),
			club:     postgres.NewClubRepository(db),
			player:   postgres.NewPlayerRepository(db),
		}
		logger.Info("using postgres repositories", "db", dbNameFromURL(cfg.DBURL))
	} else {
		teams := memory.NewTeamRepository()
		standings := memory.NewStandingRepository()
		repos = repositories{
			room:     memory.NewRoomRepository(teams, standings),
			gameweek: memory.NewGameweekRepository(memory.SeedGameweeks()),
			team:     teams,
			standing: standings,
			league:   memory.NewLeagueRepository(memory.SeedLeagues()),
			club:     memory.NewClubRepository(memory.SeedClubs()),
			player:   memory.NewPlayerRepository(memory.SeedPlayers()),
		}
		logger.Info("DB_URL not set, using in-memory repositories")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.league = cacherepo.NewLeagueRepository(repos.league, store)
		repos.club = cacherepo.NewClubRepository(repos.club, store)
		repos.player = cacherepo.NewPlayerRepository(repos.player, store)
	}

	idGen := idgen.NewRandomGenerator()

	roomSvc := usecase.NewRoomService(repos.room, repos.league, idGen)
	rosterSvc := usecase.NewRosterService(repos.team, repos.player, repos.gameweek, repos.room, idGen)
	gameweekSvc := usecase.NewGameweekService(repos.gameweek, repos.league, idGen)
	catalogSvc := usecase.NewCatalogService(repos.league, repos.club, repos.player)

	webhook := notifier.NewWebhookNotifier(notifier.WebhookConfig{
		URL:     cfg.WebhookURL,
		Token:   cfg.WebhookToken,
		Timeout: cfg.WebhookTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.WebhookCircuitEnabled,
			FailureThreshold: cfg.WebhookCircuitFailureCount,
			OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
		},
	}, logger)

	standingsSvc := usecase.NewStandingsService(
		repos.standing,
		repos.room,
		repos.team,
		repos.gameweek,
		webhook,
		logger,
	)
	standingsSvc.SetRecomputeWorkerCap(cfg.RecomputeMaxWorkers)

	accountClient := introspect.NewClient(introspect.ClientConfig{
		BaseURL:        cfg.AccountBaseURL,
		IntrospectPath: cfg.AccountIntrospectPath,
		Timeout:        cfg.AccountTimeout,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(roomSvc, rosterSvc, gameweekSvc, standingsSvc, catalogSvc, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins, cfg.ScoringToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	if db != nil {
		server.RegisterOnShutdown(func() {
			_ = db.Close()
		})
	}

	return server, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
