package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agenciapet/petpal-manager/internal/api/metrics"
)

const (
	defaultWorkers = 4
	queueBuffer    = 64
)

// HashPool bounds concurrent bcrypt work on a fixed set of workers so that a
// burst of registrations cannot stall token verification on other requests.
// Callers block until their own job completes or their context is cancelled.
type HashPool struct {
	jobs    chan func()
	workers int
	cost    int
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers. Non-positive values
// fall back to defaults; cost is clamped to bcrypt's valid range.
func NewHashPool(numWorkers, cost int, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &HashPool{
		jobs:    make(chan func(), queueBuffer),
		workers: numWorkers,
		cost:    cost,
		log:     log.With().Int("hash_workers", numWorkers).Logger(),
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx)
	}
	p.log.Debug().Msg("hash pool started")
}

// Hash derives a bcrypt hash of password on the pool.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	type result struct {
		hash string
		err  error
	}
	out := make(chan result, 1)

	err := p.submit(ctx, func() {
		start := time.Now()
		h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
		metrics.HashDuration.Observe(time.Since(start).Seconds())
		out <- result{hash: string(h), err: err}
	})
	if err != nil {
		return "", err
	}

	select {
	case r := <-out:
		return r.hash, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Compare checks password against hash on the pool; a non-nil error means
// mismatch (or an unparseable hash).
func (p *HashPool) Compare(ctx context.Context, hash, password string) error {
	out := make(chan error, 1)

	if err := p.submit(ctx, func() {
		start := time.Now()
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		metrics.HashDuration.Observe(time.Since(start).Seconds())
		out <- err
	}); err != nil {
		return err
	}

	select {
	case err := <-out:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *HashPool) submit(ctx context.Context, job func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.jobs <- job:
		metrics.HashQueueDepth.Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			metrics.HashQueueDepth.Dec()
			job()
		}
	}
}
