package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/canonical/scim-admin-ui/internal/config"
	"github.com/canonical/scim-admin-ui/internal/k8s"
	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring/prometheus"
	"github.com/canonical/scim-admin-ui/internal/resource"
	"github.com/canonical/scim-admin-ui/internal/tracing"
	"github.com/canonical/scim-admin-ui/internal/version"
	"github.com/canonical/scim-admin-ui/pkg/registry"
	"github.com/canonical/scim-admin-ui/pkg/serviceprovider"
	"github.com/canonical/scim-admin-ui/pkg/views"
	"github.com/canonical/scim-admin-ui/pkg/web"
)

func main() {

	specs := new(config.EnvSpec)

	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	flags := config.NewFlags()

	switch {
	case flags.ShowVersion:
		fmt.Printf("App Version: %s\n", version.Version)
		os.Exit(0)
	default:
		break
	}

	logger := logging.NewLogger(specs.LogLevel, specs.LogFile)

	monitor := prometheus.NewMonitor("scim-admin-ui", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	source, err := resourceSource(specs)

	if err != nil {
		logger.Fatalf("failed setting up resource table source: %s", err)
	}

	reg, err := registry.NewRegistry(
		context.Background(),
		&registry.Config{
			BaseURL:    specs.SCIMBaseURL,
			Source:     source,
			HTTPClient: resource.NewHTTPClient(specs.SCIMTimeout),
		},
		tracer, monitor, logger,
	)

	if err != nil {
		logger.Fatalf("invalid resource table: %s", err)
	}

	spClient, err := reg.Get("ServiceProvider")

	if err != nil {
		logger.Fatal(err)
	}

	viewsService := views.NewService(&views.Config{TTL: specs.ViewTTL}, tracer, monitor, logger)

	spService := serviceprovider.NewService(
		&serviceprovider.Config{EagerFetch: specs.EagerFetch},
		resource.NewTyped[serviceprovider.ServiceProvider](spClient),
		viewsService,
		tracer, monitor, logger,
	)

	router := web.NewRouter(
		&web.Config{
			Views:           viewsService,
			ServiceProvider: spService,
			CORSOrigins:     specs.CORSOrigins,
			RequestLogging:  specs.Debug,
		},
		tracer, monitor, logger,
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweep(sweepCtx, viewsService, specs.SweepInterval)

	logger.Infof("Starting server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal.
	<-c

	stopSweep()

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// Doesn't block if no connections, but will otherwise wait
	// until the timeout deadline.
	srv.Shutdown(ctx)

	logger.Desugar().Sync()

	logger.Info("Shutting down")
	os.Exit(0)

}

// resourceSource picks the resource table: a ConfigMap, then a file, then the built-in table
func resourceSource(specs *config.EnvSpec) (registry.SourceInterface, error) {
	switch {
	case specs.ResourcesCM != "":
		k8sCoreV1, err := k8s.NewCoreV1Client(specs.Kubeconfig)

		if err != nil {
			return nil, err
		}

		return &registry.ConfigMapSource{
			Name:      specs.ResourcesCM,
			Namespace: specs.ResourcesCMNS,
			Key:       specs.ResourcesCMKey,
			K8s:       k8sCoreV1,
		}, nil
	case specs.ResourcesFile != "":
		return &registry.FileSource{Path: specs.ResourcesFile}, nil
	default:
		return registry.StaticSource(registry.DefaultTable), nil
	}
}

func sweep(ctx context.Context, s *views.Service, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}
