package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

// Attribute keys for the club-specific instruments
const (
	attrBusinessAction    = "golfclub.business.action"
	attrBusinessOutcome   = "golfclub.business.outcome"
	attrExternalTarget    = "golfclub.external.target"
	attrExternalOperation = "golfclub.external.operation"
)

var (
	httpRequestsCounter   metric.Int64Counter
	httpRequestDuration   metric.Float64Histogram
	externalCallsCounter  metric.Int64Counter
	externalCallErrors    metric.Int64Counter
	externalCallDuration  metric.Float64Histogram
	businessEventsCounter metric.Int64Counter
	metricsHandler        http.Handler

	initialized int32
	attempted   int32
	initOnce    sync.Once
	initErr     error
)

// Config holds the configuration for OpenTelemetry metrics
type Config struct {
	// Enabled switches metrics collection off entirely when false
	Enabled bool `env:"ENABLE_OBSERVABILITY" envDefault:"true"`
	// ExporterType can be "prometheus", "otlp", or "none"
	ExporterType   string `env:"OTEL_METRICS_EXPORTER" envDefault:"prometheus"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"golf-club-api"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"dev"`
	// OTLPEndpoint is the collector URL, required for the otlp exporter
	OTLPEndpoint    string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders     map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envKeyValSeparator:"="`
	OTLPTLSInsecure bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	// HistogramBuckets are the duration bucket boundaries in seconds
	HistogramBuckets []float64 `env:"OTEL_HISTOGRAM_BUCKETS" envDefault:".005,.01,.025,.05,.1,.25,.5,1,2.5,5,10"`
}

// ConfigFromEnv reads the metrics configuration from the environment
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse metrics configuration: %w", err)
	}
	return cfg, nil
}

// Initialize sets up OpenTelemetry metrics. Only the first call has any effect.
func Initialize(cfg Config) error {
	initOnce.Do(func() {
		atomic.StoreInt32(&attempted, 1)
		if !cfg.Enabled {
			slog.Info("Observability disabled, metrics will not be collected")
			initErr = errors.New("observability disabled")
			return
		}
		initErr = initialize(context.Background(), cfg)
		if initErr != nil {
			slog.Error("Failed to initialize OpenTelemetry metrics, metrics will be disabled",
				"error", initErr,
				"service", cfg.ServiceName)
			return
		}
		atomic.StoreInt32(&initialized, 1)
	})
	return initErr
}

// ensureInitialized initialises from the environment when Initialize was never called
func ensureInitialized() {
	if atomic.LoadInt32(&attempted) == 1 {
		return
	}
	cfg, err := ConfigFromEnv()
	if err != nil {
		slog.Warn("Invalid metrics configuration, using defaults", "error", err)
		cfg = Config{Enabled: true, ExporterType: "prometheus", ServiceName: "golf-club-api", ServiceVersion: "dev"}
	}
	_ = Initialize(cfg)
}

// IsInitialized reports whether metrics are being collected
func IsInitialized() bool {
	ensureInitialized()
	return atomic.LoadInt32(&initialized) == 1
}

func initialize(ctx context.Context, cfg Config) error {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	reader, handler, err := newReader(ctx, cfg)
	if err != nil {
		return err
	}
	metricsHandler = handler

	buckets := cfg.HistogramBuckets
	if len(buckets) == 0 {
		buckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	}
	bucketView := func(name string) sdkmetric.View {
		return sdkmetric.NewView(
			sdkmetric.Instrument{Name: name},
			sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{Boundaries: buckets}},
		)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
		sdkmetric.WithView(bucketView("http_request_duration_seconds")),
		sdkmetric.WithView(bucketView("external_call_duration_seconds")),
	)
	otel.SetMeterProvider(provider)
	meter := otel.Meter("golf-club-api")

	if err := runtime.Start(
		runtime.WithMinimumReadMemStatsInterval(10*time.Second),
		runtime.WithMeterProvider(provider),
	); err != nil {
		return fmt.Errorf("failed to start runtime metrics: %w", err)
	}

	if httpRequestsCounter, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"), metric.WithUnit("1")); err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}
	if httpRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"), metric.WithUnit("s")); err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}
	if externalCallsCounter, err = meter.Int64Counter("external_calls_total",
		metric.WithDescription("Total number of calls to backing services"), metric.WithUnit("1")); err != nil {
		return fmt.Errorf("failed to create external_calls_total counter: %w", err)
	}
	if externalCallErrors, err = meter.Int64Counter("external_call_errors_total",
		metric.WithDescription("Total number of failed calls to backing services"), metric.WithUnit("1")); err != nil {
		return fmt.Errorf("failed to create external_call_errors_total counter: %w", err)
	}
	if externalCallDuration, err = meter.Float64Histogram("external_call_duration_seconds",
		metric.WithDescription("Backing service call duration in seconds"), metric.WithUnit("s")); err != nil {
		return fmt.Errorf("failed to create external_call_duration_seconds histogram: %w", err)
	}
	if businessEventsCounter, err = meter.Int64Counter("business_events_total",
		metric.WithDescription("Total number of membership and tournament events"), metric.WithUnit("1")); err != nil {
		return fmt.Errorf("failed to create business_events_total counter: %w", err)
	}
	return nil
}

func newReader(ctx context.Context, cfg Config) (sdkmetric.Reader, http.Handler, error) {
	switch cfg.ExporterType {
	case "prometheus", "":
		reg := prometheus.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		slog.Info("Initialized OpenTelemetry metrics with Prometheus exporter", "service", cfg.ServiceName)
		return exporter, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil

	case "otlp":
		if cfg.OTLPEndpoint == "" {
			return nil, nil, errors.New("OTLP endpoint is required when using OTLP exporter")
		}
		endpointURL, err := url.Parse(cfg.OTLPEndpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid OTLP endpoint URL: %w", err)
		}
		if endpointURL.Scheme != "https" && !cfg.OTLPTLSInsecure {
			return nil, nil, fmt.Errorf("OTLP endpoint must use HTTPS (got: %s), set OTEL_EXPORTER_OTLP_INSECURE=true to allow plain HTTP", endpointURL.Scheme)
		}

		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpointURL.Host)}
		if endpointURL.Scheme == "http" {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		if len(cfg.OTLPHeaders) > 0 {
			opts = append(opts, otlpmetrichttp.WithHeaders(cfg.OTLPHeaders))
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		slog.Info("Initialized OpenTelemetry metrics with OTLP exporter",
			"service", cfg.ServiceName,
			"endpoint", cfg.OTLPEndpoint)
		return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second)),
			staticHandler(http.StatusOK, "# Metrics exported via OTLP\n"), nil

	case "none":
		slog.Info("OpenTelemetry metrics export disabled", "service", cfg.ServiceName)
		return sdkmetric.NewManualReader(), staticHandler(http.StatusOK, "# Metrics disabled\n"), nil

	default:
		return nil, nil, fmt.Errorf("unknown exporter type: %s (supported: prometheus, otlp, none)", cfg.ExporterType)
	}
}

func staticHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Handler returns the /metrics endpoint handler
func Handler() http.Handler {
	ensureInitialized()
	if atomic.LoadInt32(&initialized) == 0 || metricsHandler == nil {
		return staticHandler(http.StatusServiceUnavailable, "# Metrics not initialized\n")
	}
	return metricsHandler
}

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware records request count and latency labelled with the chi route pattern,
// which keeps ids out of the label values
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	ensureInitialized()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&initialized) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := routePattern(r)
		httpRequestsCounter.Add(context.Background(), 1,
			metric.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(rw.statusCode),
			),
		)
		httpRequestDuration.Record(context.Background(), time.Since(start).Seconds(),
			metric.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
			),
		)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return strings.TrimSuffix(pattern, "/*")
		}
	}
	return "unknown"
}

// RecordExternalCall records one call to a backing service such as the database or Redis
func RecordExternalCall(target, operation string, duration time.Duration, err error) {
	ensureInitialized()
	if atomic.LoadInt32(&initialized) == 0 {
		return
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String(attrExternalTarget, target),
		attribute.String(attrExternalOperation, operation),
	)
	externalCallsCounter.Add(ctx, 1, attrs)
	externalCallDuration.Record(ctx, duration.Seconds(), attrs)
	if err != nil {
		externalCallErrors.Add(ctx, 1, attrs)
	}
}

// RecordBusinessEvent records a membership or tournament event and its outcome
func RecordBusinessEvent(action, outcome string) {
	ensureInitialized()
	if atomic.LoadInt32(&initialized) == 0 {
		return
	}

	businessEventsCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(attrBusinessAction, action),
			attribute.String(attrBusinessOutcome, outcome),
		),
	)
}
