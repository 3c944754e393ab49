package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/tapppp/storeorders/internal/models"
	"github.com/tapppp/storeorders/internal/reconcile"
)

// DefaultInterval is time between snapshot polls
const DefaultInterval = 5 * time.Second

// FetchFunc fetches one raw order snapshot
type FetchFunc func(ctx context.Context) ([]models.RawOrder, error)

// PublishFunc receives each reconciled snapshot
type PublishFunc func(snap reconcile.Snapshot)

// Poller is worker that keeps the order snapshot fresh on a fixed interval
type Poller struct {
	fetch    FetchFunc
	publish  PublishFunc
	interval time.Duration
	logger   *zap.Logger

	mu          sync.Mutex
	previousIDs map[string]struct{}

	stopped *atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates new Poller. A non-positive interval falls back to DefaultInterval.
func New(fetch FetchFunc, publish PublishFunc, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetch:       fetch,
		publish:     publish,
		interval:    interval,
		logger:      logger,
		previousIDs: make(map[string]struct{}),
		stopped:     atomic.NewBool(false),
		done:        make(chan struct{}),
	}
}

// Start polls once immediately and then on every tick until Stop or
// context cancellation.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("order poller is done")
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh performs one fetch-reconcile-publish cycle. A failed fetch is
// logged and leaves the previous id set untouched, the next tick retries
// unconditionally. A refresh resolving after Stop publishes nothing.
func (p *Poller) Refresh(ctx context.Context) {
	raw, err := p.fetch(ctx)
	if err != nil {
		p.logger.Error("fetch orders", zap.Error(err))
		return
	}

	if p.stopped.Load() {
		// in-flight result after cancellation is discarded
		return
	}

	p.mu.Lock()
	snap := reconcile.Reconcile(raw, p.previousIDs)
	p.previousIDs = reconcile.IDSet(snap.Orders)
	p.mu.Unlock()

	p.logger.Debug("orders refreshed",
		zap.Int("count", len(snap.Orders)),
		zap.Int("new", len(snap.NewIDs)))

	p.publish(snap)
}

// Stop cancels the timer and marks any in-flight refresh as stale.
// It waits for the poll loop to exit, no tick fires after return.
func (p *Poller) Stop() {
	p.stopped.Store(true)
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
}
