package commands

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/northlake-labs/opcua-server/internal/logger"
	"github.com/northlake-labs/opcua-server/pkg/adminapi/auth"
	grpcapi "github.com/northlake-labs/opcua-server/pkg/adminapi/grpc"
	httpapi "github.com/northlake-labs/opcua-server/pkg/adminapi/http"
	"github.com/northlake-labs/opcua-server/pkg/blobstore/s3"
	"github.com/northlake-labs/opcua-server/pkg/config"
	cpstore "github.com/northlake-labs/opcua-server/pkg/controlplane/store"
	"github.com/northlake-labs/opcua-server/pkg/telemetry"
	"github.com/northlake-labs/opcua-server/pkg/telemetry/metrics"
	"github.com/northlake-labs/opcua-server/pkg/telemetry/tracing"
	"github.com/northlake-labs/opcua-server/pkg/ua/attribute"
	"github.com/northlake-labs/opcua-server/pkg/ua/externalns"
	"github.com/northlake-labs/opcua-server/pkg/ua/nodestore"
	nsbadger "github.com/northlake-labs/opcua-server/pkg/ua/nodestore/badger"
	nsmemory "github.com/northlake-labs/opcua-server/pkg/ua/nodestore/memory"
	nspostgres "github.com/northlake-labs/opcua-server/pkg/ua/nodestore/postgres"
	"github.com/northlake-labs/opcua-server/pkg/ua/service"
)

var foreground bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the opcuad server",
	Long: `Start the opcuad server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/opcuad/config.yaml.`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", true, "Run in foreground")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracingShutdown, err := tracing.Init(ctx, tracing.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "opcuad",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := tracingShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	profilingShutdown, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "opcuad",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	if cfg.Metrics.Enabled {
		metrics.Init()
		attribute.OnRetry = metrics.RecordEditRetry
	}

	store, closeStore, err := openNodeStore(ctx, cfg.NodeStore)
	if err != nil {
		return fmt.Errorf("failed to open node store: %w", err)
	}
	defer closeStore()

	if cfg.Blobstore.Enabled {
		if _, err := s3.Open(ctx, s3.Config{
			Bucket:          cfg.Blobstore.Bucket,
			KeyPrefix:       cfg.Blobstore.KeyPrefix,
			Region:          cfg.Blobstore.Region,
			Endpoint:        cfg.Blobstore.Endpoint,
			AccessKeyID:     cfg.Blobstore.AccessKeyID,
			SecretAccessKey: cfg.Blobstore.SecretAccessKey,
		}); err != nil {
			return fmt.Errorf("failed to open blobstore: %w", err)
		}
	}

	svc := service.New(store, externalns.NewRegistry())

	mux := httpapi.NewMux(svc)
	httpServer := &http.Server{Addr: cfg.Admin.HTTPAddr, Handler: mux}
	go func() {
		logger.Info("admin HTTP listening", "addr", cfg.Admin.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin HTTP server error", "error", err)
		}
	}()

	grpcServer, grpcListener, closeRegistry, err := newAdminGRPCServer(cfg, svc)
	if err != nil {
		return fmt.Errorf("failed to start admin gRPC server: %w", err)
	}
	defer closeRegistry()
	go func() {
		logger.Info("admin gRPC listening", "addr", cfg.Admin.GRPCAddr)
		if err := grpcServer.Serve(grpcListener); err != nil {
			logger.Error("admin gRPC server error", "error", err)
		}
	}()

	logger.Info("opcuad started", "nodestore", cfg.NodeStore.Type)
	fmt.Println("opcuad - OPC UA address-space server")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()

	return nil
}

// newAdminGRPCServer builds and binds the AddressSpaceAdmin gRPC
// server, deriving its JWT signing secret from configuration and, when
// enabled, attaching a persistent namespace registry. The returned
// close function releases the registry's connection pool and must be
// called on shutdown.
func newAdminGRPCServer(cfg *config.Config, svc *service.Service) (*grpc.Server, net.Listener, func(), error) {
	authSvc, err := auth.NewService(auth.Config{Secret: cfg.Admin.JWTSecret})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid admin JWT configuration: %w", err)
	}

	lis, err := net.Listen("tcp", cfg.Admin.GRPCAddr)
	if err != nil {
		return nil, nil, nil, err
	}

	grpcSrv, closeRegistry, err := grpcapi.NewGRPCServerWithConfig(svc, authSvc, registryConfig(cfg.Admin.Registry))
	if err != nil {
		_ = lis.Close()
		return nil, nil, nil, err
	}

	return grpcSrv, lis, closeRegistry, nil
}

// registryConfig adapts the admin config's registry section into a
// controlplane/store.Config, or nil when the registry is disabled.
func registryConfig(cfg config.RegistryConfig) *cpstore.Config {
	if !cfg.Enabled {
		return nil
	}
	return &cpstore.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Database: cfg.Database,
		User:     cfg.User,
		Password: cfg.Password,
		SSLMode:  cfg.SSLMode,
	}
}

// openNodeStore opens the configured NodeStore backend, returning a
// close function that releases its resources.
func openNodeStore(ctx context.Context, cfg config.NodeStoreConfig) (nodestore.Store, func(), error) {
	switch cfg.Type {
	case "memory", "":
		return nsmemory.New(), func() {}, nil
	case "badger":
		st, err := nsbadger.Open(cfg.Badger.Dir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "postgres":
		st, err := nspostgres.Open(ctx, nspostgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			Database:        cfg.Postgres.Database,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxConns:        cfg.Postgres.MaxConns,
			MinConns:        cfg.Postgres.MinConns,
			MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
			ConnectTimeout:  cfg.Postgres.ConnectTimeout,
			AutoMigrate:     cfg.Postgres.AutoMigrate,
		})
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown nodestore type: %q", cfg.Type)
	}
}
