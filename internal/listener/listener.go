package listener

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/tapppp/storeorders/internal/notify"
)

// Channel returns the push channel name scoped to one store
func Channel(storeID string) string {
	return "store:" + storeID + ":orders"
}

// RefreshFunc triggers an out-of-band snapshot refresh
type RefreshFunc func(ctx context.Context)

// Listener consumes new-order events from the store's push channel.
// The underlying pub/sub connection reconnects and re-subscribes on its
// own, the listener only owns the consume loop and teardown.
type Listener struct {
	rdb      *redis.Client
	notifier notify.Notifier
	refresh  RefreshFunc
	logger   *zap.Logger

	sub    *redis.PubSub
	closed *atomic.Bool
	done   chan struct{}
}

// New creates new Listener instance
func New(rdb *redis.Client, notifier notify.Notifier, refresh RefreshFunc, logger *zap.Logger) *Listener {
	return &Listener{
		rdb:      rdb,
		notifier: notifier,
		refresh:  refresh,
		logger:   logger,
		closed:   atomic.NewBool(false),
		done:     make(chan struct{}),
	}
}

// Connect subscribes to the store's channel and starts consuming events.
// A failed connect is returned to the caller and not retried here.
func (l *Listener) Connect(ctx context.Context, storeID string) error {
	sub := l.rdb.Subscribe(ctx, Channel(storeID))

	// confirm the subscription before consuming
	if _, err := sub.Receive(ctx); err != nil {
		l.logger.Error("push channel connect", zap.Error(err))
		_ = sub.Close()
		return err
	}

	l.sub = sub
	l.logger.Info("joined store push channel", zap.String("store_id", storeID))

	go l.consume(ctx, sub.Channel())

	return nil
}

func (l *Listener) consume(ctx context.Context, events <-chan *redis.Message) {
	defer close(l.done)

	for msg := range events {
		if l.closed.Load() {
			return
		}
		l.HandleEvent(ctx, msg.Payload)
	}
}

// HandleEvent notifies the merchant and forces an immediate snapshot
// refresh instead of waiting for the next poll tick.
func (l *Listener) HandleEvent(ctx context.Context, message string) {
	l.logger.Debug("new order event", zap.String("message", message))
	l.notifier.Notify("New Order Received", message)
	l.refresh(ctx)
}

// Close tears down the subscription. It is safe to call when the
// connection never came up and safe to call twice. No event reaches
// the handler after Close returns.
func (l *Listener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	if l.sub == nil {
		return nil
	}
	err := l.sub.Close()
	<-l.done
	return err
}
