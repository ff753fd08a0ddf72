package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	grpcctx "github.com/dtroode/healthperm-server/internal/api/grpc/context"
	"github.com/dtroode/healthperm-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/healthperm-server/internal/api/grpc/server"
	httpapi "github.com/dtroode/healthperm-server/internal/api/http"
	"github.com/dtroode/healthperm-server/internal/clock"
	"github.com/dtroode/healthperm-server/internal/config"
	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/metrics"
	"github.com/dtroode/healthperm-server/internal/model"
	"github.com/dtroode/healthperm-server/internal/repository/memory"
	"github.com/dtroode/healthperm-server/internal/repository/postgres"
	"github.com/dtroode/healthperm-server/internal/server"
	"github.com/dtroode/healthperm-server/internal/service"
	storage "github.com/dtroode/healthperm-server/internal/storage/minio"
	"github.com/dtroode/healthperm-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	logAppVersion()

	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Database.Driver)
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Left as a nil interface when disabled so the archive service reports Unavailable.
	var archiveStorage model.Storage
	if cfg.Storage.Enabled {
		client, err := storage.Connect(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		archiveStorage = client
	}

	registrar := model.Identity(cfg.Registrar.Identity)
	clk := clock.NewMonotonic()

	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL), logger)
	ctxMgr := grpcctx.NewManager()

	services := router.Services{
		Identity:     service.NewIdentity(store, clk, m, logger),
		Verification: service.NewVerification(store, clk, registrar, m, logger),
		Ledger:       service.NewLedger(store, clk, m, logger),
		Audit:        service.NewAudit(store, clk, registrar, m, logger),
		Archive:      service.NewArchive(store, archiveStorage, registrar, logger),
	}

	r := router.New(services, tokenService, ctxMgr, m, logger)
	apiServer := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	opsServer := httpapi.NewHTTPServer(httpapi.NewRouter(store, registry, logger), cfg.Metrics.Addr)

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting gRPC server", "address", apiServer.Address(), "registrar", registrar)
		return apiServer.Start(sl)
	})
	g.Go(func() error {
		logger.Info("Starting HTTP server", "address", opsServer.Address())
		return opsServer.Start(server.NewPlainListener())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		for _, s := range []model.Server{apiServer, opsServer} {
			if err := s.Stop(shutdownCtx); err != nil {
				logger.Error("error during server shutdown", "error", err, "address", s.Address())
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		closeStore()
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// openStore returns the Transactor selected by cfg and a func releasing it.
func openStore(ctx context.Context, cfg config.Database) (model.Transactor, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), func() {}, nil
	default:
		db, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(db), func() { _ = db.Close() }, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
