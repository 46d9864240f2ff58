package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/navstack-dev/navstack/internal/config"
	naverrors "github.com/navstack-dev/navstack/internal/errors"
	"github.com/navstack-dev/navstack/internal/routes"
	"github.com/navstack-dev/navstack/pkg/host"
	"github.com/navstack-dev/navstack/pkg/middleware"
	"github.com/navstack-dev/navstack/pkg/nav"
	"github.com/navstack-dev/navstack/pkg/snapshot"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       int
		hostFlag   string
		restore    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the navigation stack server",
		Long: `Start the navigation stack server.

The server loads navstack.json and the routes manifest, builds the
initial stack from the first declared route, and serves the stack over
HTTP and WebSocket.

Examples:
  navstack serve
  navstack serve --port=8080
  navstack serve --config=./deploy/navstack.json --restore`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, port, hostFlag, restore)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to navstack.json (default: walk up from cwd)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from navstack.json)")
	cmd.Flags().StringVarP(&hostFlag, "host", "H", "", "Host to bind to (default from navstack.json)")
	cmd.Flags().BoolVar(&restore, "restore", false, "Restore the stack from the last snapshot on start")

	return cmd
}

func runServe(configPath string, port int, hostFlag string, restore bool) error {
	// .env is optional; environment overrides still apply without it.
	_ = godotenv.Load()

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Server.Port = port
	}
	if hostFlag != "" {
		cfg.Server.Host = hostFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	manifest, err := routes.Load(cfg.RoutesPath())
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delegate, err := nav.New(ctx,
		nav.NewDestination(manifest.Routes[0].Path, nil),
		manifest.Builders(),
		nav.WithLogger(logger),
		nav.WithLocationReporting(cfg.ReportLocation()),
		nav.WithResolverCacheSize(cfg.Navigation.ResolverCacheSize),
	)
	if err != nil {
		return err
	}

	store, err := newSnapshotStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ttl, err := cfg.SnapshotTTL()
	if err != nil {
		return err
	}

	opts := []host.Option{
		host.WithLogger(logger),
		host.WithSnapshotStore(store, cfg.Snapshot.Key, ttl),
	}
	var interceptors []host.Interceptor
	if cfg.Metrics.Enabled {
		interceptors = append(interceptors, middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
		))
	}
	if cfg.Tracing.Enabled {
		interceptors = append(interceptors, middleware.OpenTelemetry(
			middleware.WithTracerName(cfg.Tracing.TracerName),
		))
	}
	if len(interceptors) > 0 {
		opts = append(opts, host.WithInterceptors(interceptors...))
	}

	h := host.New(delegate, opts...)

	if restore {
		if err := h.Restore(ctx); err != nil {
			return naverrors.New("E141").Wrap(err).
				WithSuggestion("Check the snapshot backend settings or start without --restore")
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", h.Handler())
	if cfg.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: mux,
	}

	printBanner()
	fmt.Println()
	success("Serving %d routes on http://%s", len(manifest.Routes), cfg.Address())
	info("snapshot backend: %s", cfg.Snapshot.Backend)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return naverrors.New("E140").Wrap(err)
	case <-sigCh:
		fmt.Println("\n\n  Shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// newSnapshotStore builds the snapshot store selected in navstack.json.
func newSnapshotStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.BackendMemory:
		return snapshot.NewMemoryStore(), nil

	case config.BackendRedis:
		var opts []snapshot.RedisOption
		if cfg.Snapshot.Redis.Prefix != "" {
			opts = append(opts, snapshot.WithPrefix(cfg.Snapshot.Redis.Prefix))
		}
		return snapshot.NewRedisStore(
			cfg.Snapshot.Redis.Addr,
			cfg.Snapshot.Redis.Password,
			cfg.Snapshot.Redis.DB,
			opts...,
		), nil

	case config.BackendS3:
		loadOpts := []func(*awsconfig.LoadOptions) error{}
		if cfg.Snapshot.S3.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Snapshot.S3.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, naverrors.New("E141").Wrap(err).
				WithSuggestion("Check AWS credentials and region settings")
		}
		return snapshot.NewS3Store(
			s3.NewFromConfig(awsCfg),
			cfg.Snapshot.S3.Bucket,
			cfg.Snapshot.S3.Prefix,
		), nil

	default:
		return nil, naverrors.New("E103").
			WithDetail("Backend " + cfg.Snapshot.Backend + " is not supported")
	}
}
