package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/yomogi/ghostboard/client"
	"github.com/yomogi/ghostboard/internal/config"
	"github.com/yomogi/ghostboard/internal/infra/database"
	"github.com/yomogi/ghostboard/internal/infra/gateway"
	"github.com/yomogi/ghostboard/internal/infra/moderation"
	"github.com/yomogi/ghostboard/internal/infra/repository"
	"github.com/yomogi/ghostboard/internal/infra/sessioncache"
	"github.com/yomogi/ghostboard/internal/present/rest"
	restmiddleware "github.com/yomogi/ghostboard/internal/present/rest/middleware"
	"github.com/yomogi/ghostboard/internal/service"
	"github.com/yomogi/ghostboard/internal/tracer"
	"github.com/yomogi/ghostboard/internal/usecase"
)

func main() {
	configPath := os.Getenv("GHOSTBOARD_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if conf.Server.EnableTrace {
		shutdown, err := tracer.Setup(context.Background(), conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to set up tracing: " + err.Error())
		}
		defer shutdown(context.Background())
	}

	var repo usecase.EngagementRepository
	if conf.Server.PostgresDsn != "" {
		db, err := database.NewPostgres(conf.Server.PostgresDsn)
		if err != nil {
			panic("failed to connect database")
		}
		if err := database.MigratePostgres(db); err != nil {
			panic("failed to migrate database")
		}
		repo = repository.NewEngagementRepository(db)
	} else {
		slog.Warn("no postgres DSN configured, engagement state is in-memory only", slog.String("module", "main"))
		repo = repository.NewMemoryEngagementRepository()
	}

	var sessions usecase.SessionStore
	if conf.Server.MemcachedAddr != "" {
		sessions = sessioncache.NewStore(database.NewMemcached(conf.Server.MemcachedAddr))
	} else {
		sessions = sessioncache.NewMemoryStore()
	}

	var signal *service.SignalService
	if conf.Server.RedisAddr != "" {
		signal = service.NewSignalService(database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisDB))
	}

	checker, err := moderation.NewChecker(conf.Moderation.ProhibitedWords)
	if err != nil {
		panic("failed to build moderation checker: " + err.Error())
	}

	cl := client.New(conf.Social.BaseURL, conf.Social.BearerToken)
	feedGateway := gateway.NewFeedGateway(cl)

	authService := service.NewAuthService(conf.Auth.JWTSecret, conf.Auth.Audience)

	feedUC := usecase.NewFeedUsecase(
		repo,
		feedGateway,
		conf.Social.AccountRef,
		conf.Feed.FetchLimit,
		conf.Feed.FreshnessWindow,
	)

	var events usecase.EventPublisher
	if signal != nil {
		events = signal
	}

	confessionUC := usecase.NewConfessionUsecase(repo, feedGateway, checker, events)
	engagementUC := usecase.NewEngagementUsecase(repo, checker, sessions)
	sessionUC := usecase.NewSessionUsecase(sessions, authService, conf.Auth.SessionTTL)

	handler := rest.NewHandler(feedUC, confessionUC, engagementUC, sessionUC, signal)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("ghostboard"))
	}

	authMiddleware := restmiddleware.NewAuthMiddleware(authService)
	e.Use(authMiddleware.IdentifyIdentity)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}
