package oracles

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/gerreth/udacity-flight-surety/module"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
)

// errSubscriptionClosed is reported when a subscription ends without an error.
var errSubscriptionClosed = errors.New("subscription closed")

// SubscribeFunc opens a subscription to a contract event. Events are delivered to a
// sink owned by the caller.
type SubscribeFunc func(ctx context.Context) (event.Subscription, error)

// SubscriberConfig defines how dropped subscriptions are handled.
type SubscriberConfig struct {
	// Resubscribe enables re-opening dropped subscriptions. When disabled, a dropped
	// subscription is logged and never re-opened.
	Resubscribe bool
	// Backoff is the initial wait between two subscription attempts, increasing
	// exponentially for subsequent attempts.
	Backoff time.Duration `validate:"gt=0"`
	// BackoffMax caps the wait between two subscription attempts.
	BackoffMax time.Duration `validate:"gtefield=Backoff"`
	// JitterPercent randomizes every wait by up to the given percentage.
	JitterPercent uint64 `validate:"lte=100"`
}

func DefaultSubscriberConfig() SubscriberConfig {
	return SubscriberConfig{
		Resubscribe:   true,
		Backoff:       time.Second,
		BackoffMax:    time.Minute,
		JitterPercent: 10,
	}
}

// Subscriber keeps a subscription to one contract event open for as long as its
// context lives.
type Subscriber struct {
	log       zerolog.Logger
	metrics   module.OracleMetrics
	event     string
	subscribe SubscribeFunc
	config    SubscriberConfig
}

func NewSubscriber(
	log zerolog.Logger,
	metrics module.OracleMetrics,
	event string,
	subscribe SubscribeFunc,
	config SubscriberConfig,
) *Subscriber {
	return &Subscriber{
		log:       log.With().Str("module", "oracle_subscriber").Str("event", event).Logger(),
		metrics:   metrics,
		event:     event,
		subscribe: subscribe,
		config:    config,
	}
}

// Run blocks until the context is cancelled. A subscription which cannot be opened is
// handled like a dropped one. With resubscription disabled, Run returns after the first
// drop.
func (s *Subscriber) Run(ctx context.Context) {
	for {
		sub, err := s.open(ctx)
		if err != nil {
			return
		}
		s.log.Info().Msg("subscribed to contract events")

		select {
		case <-ctx.Done():
			sub.Unsubscribe()
			return
		case err := <-sub.Err():
			sub.Unsubscribe()
			if err == nil {
				err = errSubscriptionClosed
			}
			s.dropped(err)
		}

		if !s.config.Resubscribe {
			s.log.Warn().Msg("resubscription disabled, no longer receiving events")
			return
		}
	}
}

// open opens the subscription, retrying with backoff if resubscription is enabled.
// It only returns an error if the subscription could not be opened and no further
// attempts will be made.
func (s *Subscriber) open(ctx context.Context) (event.Subscription, error) {
	if !s.config.Resubscribe {
		sub, err := s.subscribe(ctx)
		if err != nil {
			s.dropped(err)
			return nil, err
		}
		return sub, nil
	}

	backoff, err := retry.NewExponential(s.config.Backoff)
	if err != nil {
		s.log.Error().Err(err).Msg("invalid resubscription backoff")
		return nil, err
	}
	backoff = retry.WithCappedDuration(s.config.BackoffMax, backoff)
	backoff = retry.WithJitterPercent(s.config.JitterPercent, backoff)

	var sub event.Subscription
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		sub, err = s.subscribe(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			s.dropped(err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Subscriber) dropped(err error) {
	s.metrics.SubscriptionDropped(s.event)
	s.log.Error().
		Err(oracles.SubscriptionDroppedError{Event: s.event, Err: err}).
		Bool("resubscribe", s.config.Resubscribe).
		Msg("contract event subscription dropped")
}
