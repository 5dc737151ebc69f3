package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/showroom/vehicle-catalog/internal/api"
	"github.com/showroom/vehicle-catalog/internal/api/metrics"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
	"github.com/showroom/vehicle-catalog/internal/core/service"
	"github.com/showroom/vehicle-catalog/internal/dataset"
	"github.com/showroom/vehicle-catalog/internal/infrastructure/config"
	mongodb "github.com/showroom/vehicle-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/showroom/vehicle-catalog/internal/infrastructure/db/redis"
	"github.com/showroom/vehicle-catalog/internal/infrastructure/http/handlers"
	"github.com/showroom/vehicle-catalog/internal/infrastructure/queue"
	"github.com/showroom/vehicle-catalog/internal/infrastructure/security"
	"github.com/showroom/vehicle-catalog/internal/session"
	"github.com/showroom/vehicle-catalog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Vehicle Catalog
// @version      1.0
// @description  Vehicle listing with session-based access control and an admin panel.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "vehicle-catalog",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	accountRepo := mongodb.NewAccountRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	if err := mongodb.EnsureIndexes(ctx, accountRepo, vehicleRepo); err != nil {
		return err
	}

	readiness := map[string]handlers.Check{"mongodb": mongodb.Pinger(db)}

	var cache ports.VehicleCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redisdb.NewVehicleCache(rdb, cfg.Redis.CacheTTL)
		readiness["redis"] = redisdb.Pinger(rdb)
	} else {
		log.Info().Msg("REDIS_ADDR not set, vehicle cache disabled")
	}

	// --- Seeding (must finish before serving) ---
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	cars, err := dataset.Bundled()
	if err != nil {
		return err
	}
	seeder := service.NewSeeder(accountRepo, vehicleRepo, hasher,
		service.DefaultAccounts(cfg.Seed.AdminPassword, cfg.Seed.UserPassword), cars, log)
	report, err := seeder.Run(ctx)
	if err != nil {
		return err
	}
	metrics.SeededRecordsTotal.WithLabelValues("account").Add(float64(report.AccountsCreated))
	metrics.SeededRecordsTotal.WithLabelValues("vehicle").Add(float64(report.VehiclesLoaded))

	// --- Services ---
	audit := queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, log)
	audit.Start(ctx)

	accountService := service.NewAccountService(accountRepo, hasher, audit, log)
	vehicleService := service.NewVehicleService(vehicleRepo, cache, log)

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret, err = session.RandomSecret()
		if err != nil {
			return err
		}
		log.Warn().Msg("SESSION_SECRET not set, using a random secret; sessions end on restart")
	}
	sessions := session.NewManager(session.NewMemoryStore(), accountService, secret)

	// --- HTTP ---
	e, err := api.NewRouter(api.Deps{
		Accounts: accountService,
		Vehicles: vehicleService,
		Sessions: sessions,
		Cookie: session.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		Readiness: readiness,
		Log:       log,
		Metrics:   true,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
