package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeBarney88/golf-club-api/monitoring"
	"github.com/redis/go-redis/v9"
)

// publishTimeout bounds a single XADD
const publishTimeout = 5 * time.Second

// Publisher sends management events somewhere durable
type Publisher interface {
	IsEnabled() bool
	// LogEvent publishes asynchronously; failures are logged, never returned
	LogEvent(ctx context.Context, event *Event)
	Close() error
}

// Config holds the Redis connection used for the audit stream
type Config struct {
	Enabled  bool
	Addr     string
	Username string
	Password string
	DB       int
	Stream   string
}

// NewPublisher returns a Redis stream publisher, or a no-op publisher when auditing is disabled.
// An unreachable Redis disables auditing rather than failing startup.
func NewPublisher(cfg Config) Publisher {
	if !cfg.Enabled || cfg.Addr == "" {
		slog.Info("Audit publisher disabled",
			"reason", "AUDIT_ENABLED=false or REDIS_ADDR not configured",
			"impact", "Service will continue running but management events will not be published")
		return NoopPublisher{}
	}

	publisher, err := NewRedisPublisher(cfg)
	if err != nil {
		slog.Warn("Audit publisher disabled, Redis unavailable", "addr", cfg.Addr, "error", err)
		return NoopPublisher{}
	}
	slog.Info("Audit publisher initialized", "addr", cfg.Addr, "stream", cfg.Stream)
	return publisher
}

// RedisPublisher appends management events to a Redis stream with XADD
type RedisPublisher struct {
	client *redis.Client
	stream string

	inflight     sync.WaitGroup
	closeTimeout time.Duration
}

// NewRedisPublisher connects to Redis and verifies the connection
func NewRedisPublisher(cfg Config) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return newRedisPublisher(client, cfg.Stream), nil
}

func newRedisPublisher(client *redis.Client, stream string) *RedisPublisher {
	if stream == "" {
		stream = "golf-club-audit"
	}
	return &RedisPublisher{client: client, stream: stream, closeTimeout: publishTimeout}
}

func (p *RedisPublisher) IsEnabled() bool {
	return true
}

// LogEvent publishes in a background goroutine detached from the request context
func (p *RedisPublisher) LogEvent(_ context.Context, event *Event) {
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if _, err := p.Publish(ctx, event); err != nil {
			slog.Error("Failed to publish audit event", "error", err, "action", event.Action, "resource", event.Resource)
		}
	}()
}

// Publish appends the event to the stream and returns the generated message id
func (p *RedisPublisher) Publish(ctx context.Context, event *Event) (string, error) {
	start := time.Now()
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: event.Values(),
	}).Result()
	monitoring.RecordExternalCall("redis", "xadd", time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("failed to XADD to stream %s: %w", p.stream, err)
	}
	return id, nil
}

// Close waits for in-flight events, at most closeTimeout, then closes the client
func (p *RedisPublisher) Close() error {
	done := make(chan struct{})
	go func() {
		p.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(p.closeTimeout):
		slog.Warn("Audit publisher closing with events still in flight", "waited", p.closeTimeout)
	}
	return p.client.Close()
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) IsEnabled() bool { return false }

func (NoopPublisher) LogEvent(context.Context, *Event) {}

func (NoopPublisher) Close() error { return nil }
