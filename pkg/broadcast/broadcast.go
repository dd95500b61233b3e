// Package broadcast fans controller snapshots out over Redis pub/sub so
// remote renderers can follow the browser state. Nothing is written to
// Redis keys; messages are delivered to current subscribers only.
package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/user-directory-client/pkg/controller"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultChannel is the pub/sub channel snapshots are published on.
const DefaultChannel = "directory:state"

// DefaultPublishTimeout bounds a single PUBLISH issued from Observe.
const DefaultPublishTimeout = 2 * time.Second

// Prometheus metrics for state broadcasting.
var (
	publishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_broadcast_published_total",
		Help: "Total snapshots published to Redis",
	})

	publishErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_broadcast_errors_total",
		Help: "Total failed snapshot publishes or undecodable messages",
	})
)

// Publisher publishes controller snapshots as JSON views.
// It implements controller.Observer.
type Publisher struct {
	redis   redis.UniversalClient
	channel string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPublisher creates a publisher for channel. An empty channel selects
// DefaultChannel.
func NewPublisher(rdb redis.UniversalClient, channel string) (*Publisher, error) {
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if channel == "" {
		channel = DefaultChannel
	}

	return &Publisher{
		redis:   rdb,
		channel: channel,
		timeout: DefaultPublishTimeout,
		logger:  log.With().Str("component", "state-broadcast").Str("channel", channel).Logger(),
	}, nil
}

// SetTimeout overrides the per-publish timeout used by Observe.
func (p *Publisher) SetTimeout(d time.Duration) {
	p.timeout = d
}

// Channel returns the channel the publisher writes to.
func (p *Publisher) Channel() string {
	return p.channel
}

// Publish sends the view of snap to the channel.
func (p *Publisher) Publish(ctx context.Context, snap controller.Snapshot) error {
	data, err := json.Marshal(snap.View())
	if err != nil {
		publishErrorsTotal.Inc()
		return fmt.Errorf("marshal view: %w", err)
	}

	receivers, err := p.redis.Publish(ctx, p.channel, data).Result()
	if err != nil {
		publishErrorsTotal.Inc()
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}

	publishedTotal.Inc()
	p.logger.Debug().
		Uint64("version", snap.Version).
		Str("state", snap.State.Name()).
		Int64("receivers", receivers).
		Msg("Snapshot published")

	return nil
}

// Observe publishes snap with the configured timeout. Failures are logged
// and never reach the controller.
func (p *Publisher) Observe(snap controller.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.Publish(ctx, snap); err != nil {
		p.logger.Warn().
			Err(err).
			Uint64("version", snap.Version).
			Msg("Failed to publish snapshot")
	}
}

// Subscribe listens on channel and yields decoded views until ctx is done.
// The returned channel is closed when the subscription ends.
func Subscribe(ctx context.Context, rdb redis.UniversalClient, channel string) (<-chan controller.View, error) {
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if channel == "" {
		channel = DefaultChannel
	}

	pubsub := rdb.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	logger := log.With().Str("component", "state-broadcast").Str("channel", channel).Logger()
	out := make(chan controller.View)

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var view controller.View
				if err := json.Unmarshal([]byte(msg.Payload), &view); err != nil {
					publishErrorsTotal.Inc()
					logger.Warn().Err(err).Msg("Dropping undecodable message")
					continue
				}

				select {
				case out <- view:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
