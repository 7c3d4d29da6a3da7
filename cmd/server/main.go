package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"roleplay/api/internal/config"
	"roleplay/api/internal/handlers"
	"roleplay/api/internal/jobs"
	"roleplay/api/internal/metrics"
	appmiddleware "roleplay/api/internal/middleware"
	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"
	"roleplay/api/internal/routers"
	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	newDialector     = func(dsn string) gorm.Dialector { return postgres.Open(dsn) }
	gormOpen         = defaultGormOpen
	httpListenServe  = http.ListenAndServe
	dbConnectTimeout time.Duration
	runAutoMigrate   = func(db *gorm.DB, dst ...interface{}) error { return db.AutoMigrate(dst...) }
	newLogger        = zap.NewProduction
	exitFunc         = os.Exit
	logFatalFn       = defaultLogFatal
)

func defaultGormOpen(dsn string) (*gorm.DB, error) {
	return gorm.Open(newDialector(dsn), &gorm.Config{TranslateError: true})
}

func defaultLogFatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	exitFunc(1)
}

func resetServerGlobals() {
	newDialector = func(dsn string) gorm.Dialector { return postgres.Open(dsn) }
	gormOpen = defaultGormOpen
	httpListenServe = http.ListenAndServe
	dbConnectTimeout = 0
	runAutoMigrate = func(db *gorm.DB, dst ...interface{}) error { return db.AutoMigrate(dst...) }
	newLogger = zap.NewProduction
	exitFunc = os.Exit
	logFatalFn = defaultLogFatal
}

// connectWithRetry keeps dialing postgres until it answers a ping or the
// timeout elapses.
func connectWithRetry(dsn string, timeout time.Duration, logger *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	backoff := 100 * time.Millisecond
	var lastErr error

	for {
		db, err := gormOpen(dsn)
		if err == nil {
			if err = ping(db); err == nil {
				return db, nil
			}
		}
		lastErr = err

		if time.Now().After(deadline) {
			break
		}
		logger.Warn("database not ready, retrying", zap.Error(err), zap.Duration("backoff", backoff))
		time.Sleep(backoff)
		if backoff < 2*time.Second {
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("failed to connect to database: %w", lastErr)
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

type server struct {
	handler http.Handler
	sweeper *jobs.TokenSweeper
	cleanup func()
}

func buildServer(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) (*server, error) {
	userRepo := &repositories.UserRepository{DB: db}
	tokenRepo := &repositories.TokenRepository{DB: db}
	groupRepo := &repositories.GroupRepository{DB: db}
	requestRepo := &repositories.GroupRequestRepository{DB: db}
	sessionStore := &repositories.SessionStore{RDB: rdb}

	ctx, cancel := context.WithCancel(context.Background())
	mailNotifier := services.NewMailNotifier(utils.NewSMTPMailer(cfg.SMTP), logger)
	cleanup := func() {
		cancel()
		mailNotifier.Wait()
	}

	var notifier services.ResetNotifier
	if cfg.SkipRedisSubscriber {
		logger.Info("redis mail subscriber disabled, sending reset mail in-process")
		notifier = mailNotifier
	} else {
		notifier = services.NewRedisResetPublisher(rdb, mailNotifier)
		subscriber := services.NewMailSubscriber(rdb, mailNotifier, logger)
		go subscriber.Run(ctx, nil)
	}

	userService := services.NewUserService(userRepo, logger)
	sessionService := services.NewSessionService(userRepo, sessionStore, cfg.JWTSecret, cfg.SessionTTL, time.Now, logger)
	passwordService := services.NewPasswordService(userRepo, tokenRepo, notifier, time.Now, logger)
	groupService := services.NewGroupService(groupRepo, userRepo, logger)
	requestService := services.NewGroupRequestService(requestRepo, groupRepo, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	requireAuth := appmiddleware.RequireAuth(sessionService)
	routers.AuthRoutes(r, handlers.NewSessionHandler(sessionService, logger), handlers.NewPasswordHandler(passwordService, logger), requireAuth)
	routers.UserRoutes(r, handlers.NewUserHandler(userService, logger), requireAuth)
	routers.GroupRoutes(r, handlers.NewGroupHandler(groupService, logger), handlers.NewGroupRequestHandler(requestService, logger), requireAuth)

	sweeper := jobs.NewTokenSweeper(tokenRepo, cfg.TokenRetention, cfg.TokenSweepSchedule, logger)
	if err := sweeper.Start(); err != nil {
		cleanup()
		return nil, err
	}

	return &server{handler: r, sweeper: sweeper, cleanup: cleanup}, nil
}

func run() error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	timeout := cfg.DBConnectTimeout
	if dbConnectTimeout > 0 {
		timeout = dbConnectTimeout
	}
	db, err := connectWithRetry(cfg.DSN(), timeout, logger)
	if err != nil {
		return err
	}
	if err := models.SetupJoinTables(db); err != nil {
		return fmt.Errorf("failed to register join tables: %w", err)
	}
	if err := runAutoMigrate(db, models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	srv, err := buildServer(cfg, db, rdb, logger)
	if err != nil {
		return err
	}
	defer srv.cleanup()
	defer srv.sweeper.Stop()

	addr := ":" + cfg.Port
	logger.Info("roleplay api listening", zap.String("addr", addr))
	if err := httpListenServe(addr, srv.handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		logFatalFn(err)
	}
}
