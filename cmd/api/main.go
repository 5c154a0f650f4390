package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/minhquyminhquy/LocalLens/config"
	"github.com/minhquyminhquy/LocalLens/pkg/enrichment"
	"github.com/minhquyminhquy/LocalLens/pkg/events"
	"github.com/minhquyminhquy/LocalLens/pkg/genai"
	"github.com/minhquyminhquy/LocalLens/pkg/identify"
	"github.com/minhquyminhquy/LocalLens/pkg/kafka"
	"github.com/minhquyminhquy/LocalLens/pkg/logging"
	"github.com/minhquyminhquy/LocalLens/pkg/matching"
	"github.com/minhquyminhquy/LocalLens/pkg/middleware"
	"github.com/minhquyminhquy/LocalLens/pkg/places"
	"github.com/minhquyminhquy/LocalLens/pkg/routes/health"
	identifyroute "github.com/minhquyminhquy/LocalLens/pkg/routes/identify"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing/exporters"
	"github.com/minhquyminhquy/LocalLens/pkg/vision"
)

const version = "1.0.0"

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read configuration: %v\n", err)
		os.Exit(1)
	}

	logger, cleanupLogger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLogs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanupLogger()

	ctx := context.Background()

	if cfg.TracingEnabled {
		var exporter sdktrace.SpanExporter = &exporters.ConsoleExporter{}
		if cfg.OTLPEndpoint != "" {
			exporter, err = exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
				Endpoint: cfg.OTLPEndpoint,
				Protocol: cfg.OTLPProtocol,
				Insecure: cfg.OTLPInsecure,
				Timeout:  10 * time.Second,
			})
			if err != nil {
				logger.WithError(err).Error("Failed to create trace exporter")
				os.Exit(1)
			}
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", cfg.AppName),
				attribute.String("service.version", version),
			)),
		)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()

		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})
		tracing.SetTracer(tp.Tracer(cfg.AppName))
	}

	placesClient := places.NewClient(places.Config{
		BaseURL:      cfg.PlacesBaseURL,
		APIKey:       cfg.GoogleMapsAPIKey,
		RadiusMeters: cfg.SearchRadiusMeters,
		Category:     cfg.PlaceCategory,
		Timeout:      cfg.PlacesTimeout,
	}, logger)

	genaiClient := genai.NewClient(genai.Config{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.GeminiTimeout,
	}, logger)

	matcher := vision.NewMatcher(genaiClient, cfg.VisionModel, logger)
	resolver := matching.NewResolver(logger)
	summarizer := enrichment.NewSummarizer(genaiClient, cfg.SummaryModel, logger)
	enricher := enrichment.NewEnricher(placesClient, summarizer, cfg.MaxReviews, logger)

	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()
	}
	emitter := events.NewEmitter(producer, logger)

	service := identify.NewService(placesClient, matcher, resolver, enricher, emitter, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(middleware.Context())
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message":  "Restaurant Identifier API",
			"version":  version,
			"endpoint": "/identify-restaurant",
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	identifyroute.NewHandler(service, cfg.MaxImageBytes, logger).RegisterRoutes(e)

	checker := health.NewChecker(placesClient, genaiClient, version)
	checker.RegisterRoutes(e)
	checker.SetReady(true)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		ReadTimeout:       time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		logger.WithFields(map[string]any{
			"app":  cfg.AppName,
			"port": cfg.Port,
		}).Info("Starting server")

		if err := e.StartServer(srv); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server stopped unexpectedly")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	checker.SetReady(false)
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
}
