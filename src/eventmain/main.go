package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdk_trace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/eventproducers/optionsapi"
	"github.com/kerrybackapps/options-market-data/src/eventservices"
	"github.com/kerrybackapps/options-market-data/src/logger"
	"github.com/kerrybackapps/options-market-data/src/utils"
)

const serviceName = "options-market-data"

func main() {
	run()
}

// setupOTelSDK bootstraps the OpenTelemetry pipeline.
// If it does not return an error, make sure to call shutdown for proper cleanup.
func setupOTelSDK(ctx context.Context) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	// shutdown calls cleanup functions registered via shutdownFuncs.
	// The errors from the calls are joined.
	// Each registered cleanup will be invoked once.
	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	// handleErr calls shutdown for cleanup and makes sure that all errors are returned.
	handleErr := func(inErr error) {
		err = errors.Join(inErr, shutdown(ctx))
	}

	prop := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(prop)

	traceExporter, err := otlptrace.New(ctx, otlptracehttp.NewClient())
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", serviceName)))
	if err != nil {
		handleErr(err)
		return
	}

	tracerProvider := sdk_trace.NewTracerProvider(
		sdk_trace.WithBatcher(traceExporter),
		sdk_trace.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		handleErr(err)
		return
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	if err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second)); err != nil {
		handleErr(err)
		return
	}

	return
}

func run() {
	goEnv := utils.GetEnvOrDefault("GO_ENV", "development")
	envDir := utils.GetEnvOrDefault("PROJECTS_DIR", ".")

	if err := utils.InitEnvironmentVariables(envDir, goEnv); err != nil {
		log.Panic(err)
	}

	logger.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	log.Infof("Log level set to %v", log.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up OpenTelemetry.
	if strings.ToLower(os.Getenv("OTEL_ENABLED")) == "true" {
		logger.AddTelemetryHook()

		otelShutdown, err := setupOTelSDK(ctx)
		if err != nil {
			log.Fatalf("failed to setup OpenTelemetry: %v", err)
		}

		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				log.Errorf("failed to shutdown OpenTelemetry: %v", err)
			}
		}()
	}

	config, err := eventservices.LoadViewerConfig()
	if err != nil {
		log.Fatalf("failed to load viewer config: %v", err)
	}

	loc, err := eventmodels.LoadDisplayLocation(config.GetTimezone())
	if err != nil {
		log.Fatalf("failed to load display timezone: %v", err)
	}

	provider, err := eventservices.NewMarketDataProvider(config, eventservices.ProviderCredentialsFromEnv())
	if err != nil {
		log.Fatalf("failed to create market data provider: %v", err)
	}

	port := utils.GetEnvOrDefault("PORT", "8080")

	// Setup router
	router := mux.NewRouter()
	optionsapi.SetupHandler(router, &optionsapi.ReadOptionsTableExecutor{
		Provider: provider,
		Extended: config.GetExtendedColumns(),
		Location: loc,
	}, config)

	// Setup web server
	srv := &http.Server{
		Handler:           router,
		Addr:              fmt.Sprintf(":%s", port),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// Start web server
	go func() {
		log.Infof("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Create channel for shutdown signals.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	signal.Notify(stop, syscall.SIGTERM)

	log.Info("Main: init complete")

	// Block here until program is shut down
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shutdown server: %v", err)
	}

	cancel()

	log.Info("Main: gracefully stopped!")
}
