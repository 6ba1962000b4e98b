// Package sweep deletes pending orders that have no items and exceed a
// configured age. These rows are the residue of the non-atomic two-step
// order creation: a crash between the order insert and either the item
// insert or the compensating delete strands an empty pending order.
package sweep

import (
	"context"
	"io"
	"log"
	"time"
)

type orderSweeper interface {
	DeleteStalePending(ctx context.Context, maxAge time.Duration) (int64, error)
}

type Sweeper struct {
	orders   orderSweeper
	interval time.Duration
	maxAge   time.Duration
	logger   *log.Logger
}

func New(orders orderSweeper, interval, maxAge time.Duration, logger *log.Logger) *Sweeper {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Sweeper{orders: orders, interval: interval, maxAge: maxAge, logger: logger}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.orders.DeleteStalePending(ctx, s.maxAge)
	if err != nil {
		s.logger.Printf("order sweep: error=%v", err)
		return
	}
	if deleted > 0 {
		s.logger.Printf("order sweep: deleted %d stale pending orders", deleted)
	}
}
