package main

import (
	"context"
	"crypto/tls"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/httpsource"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/redis"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/sqlite"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/web"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/config"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/metrics"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/farm-service/pkg/farmapi"
	"github.com/quentinrf/plant-monitor/services/farm-service/pkg/tlsconfig"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	flag.Parse()

	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("failed to load configuration")
	}
	setupLogger(cfg.Log)

	log.Info().Msg("starting farm service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize snapshot cache
	store, closeStore := openStore(ctx, cfg.Store)
	defer closeStore()

	// Initialize live source
	fetcher := newFetcher(cfg.Live)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	resolver := ports.NewResolver(store, cfg.Fallbacks())

	dashboard := ports.NewDashboard(ports.DashboardConfig{
		Farms:    cfg.FarmIDs(),
		LiveFarm: cfg.Live.FarmID,
		Interval: cfg.Live.Interval,
	}, resolver, fetcher, store, m)
	feeds := dashboard.Start(ctx)

	views := ports.NewViews(resolver, ports.ViewsConfig{
		Sampler: ports.SamplerConfig{
			Interval: cfg.Charts.Interval,
			Capacity: cfg.Charts.Capacity,
			NewRand:  ports.SeededRand(cfg.Charts.Seed),
		},
		MaxViews:    cfg.Charts.MaxViews,
		IdleTimeout: cfg.Charts.IdleTimeout,
	}, m)
	reaper := views.StartReaper(ctx)

	// Configure TLS if certificates are provided
	var serverTLS *tls.Config
	if cfg.TLS.Enabled() {
		serverTLS, err = tlsconfig.LoadServerTLS(cfg.TLS.Cert, cfg.TLS.Key, cfg.TLS.CA)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		log.Info().Msg("mTLS enabled")
	} else {
		log.Warn().Msg("tls.cert not set, starting without TLS (dev mode only)")
	}

	// Create gRPC server
	serverOpts := []grpc.ServerOption{
		grpc.UnaryInterceptor(grpcAdapter.UnaryMetricsInterceptor(m)),
		grpc.StreamInterceptor(grpcAdapter.StreamMetricsInterceptor(m)),
	}
	if serverTLS != nil {
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(serverTLS)))
	}
	grpcServer := grpc.NewServer(serverOpts...)
	farmHandler := grpcAdapter.NewFarmServiceHandler(dashboard)
	farmapi.RegisterFarmServiceServer(grpcServer, farmHandler)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(farmapi.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	listener, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPC.Addr).Msg("failed to listen")
	}
	log.Info().Str("addr", cfg.GRPC.Addr).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve gRPC")
		}
	}()

	// Start HTTP server
	httpServer := web.NewServer(cfg.HTTP.Addr, web.NewRouter(dashboard, views, registry, web.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}), serverTLS)
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to serve HTTP")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	healthServer.Shutdown()
	if err := httpServer.Stop(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown incomplete")
	}
	grpcAdapter.GracefulStop(grpcServer, farmHandler, 10*time.Second)
	reaper.Cancel()
	views.CloseAll()
	feeds.Cancel()

	log.Info().Msg("server stopped")
}

func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == config.FormatJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// openStore selects the snapshot cache backend; the returned func releases it
func openStore(ctx context.Context, cfg config.StoreConfig) (domain.SnapshotStore, func()) {
	switch cfg.Type {
	case config.StoreSQLite:
		s, err := sqlite.NewSnapshotStore(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.SQLitePath).Msg("failed to open SQLite database")
		}
		log.Info().Str("db_path", cfg.SQLitePath).Msg("initialized SQLite snapshot store")
		return s, func() { s.Close() }
	case config.StoreRedis:
		s, err := redis.NewSnapshotStore(ctx, cfg.RedisURL, cfg.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		log.Info().Dur("ttl", cfg.TTL).Msg("initialized Redis snapshot store")
		return s, func() { s.Close() }
	default:
		log.Info().Msg("initialized in-memory snapshot store")
		return memory.NewSnapshotStore(), func() {}
	}
}

func newFetcher(cfg config.LiveConfig) ports.SnapshotFetcher {
	if cfg.Source == config.SourceMock {
		mc := cfg.Mock
		log.Info().Str("farm_id", cfg.FarmID).Msg("initialized mock live source")
		return mock.NewFakeFetcher(mc.Temperature, mc.Humidity, mc.Sunlight, mc.Variation, mc.Seed)
	}

	var clientTLS *tls.Config
	if cfg.TLS.Enabled() {
		var err error
		clientTLS, err = tlsconfig.LoadClientTLS(cfg.TLS.Cert, cfg.TLS.Key, cfg.TLS.CA)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load live endpoint TLS config")
		}
	}

	log.Info().Str("farm_id", cfg.FarmID).Str("endpoint", cfg.Endpoint).Msg("initialized HTTP live source")
	return httpsource.NewClient(cfg.Endpoint, cfg.Timeout, clientTLS)
}
