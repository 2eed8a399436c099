// Package queue bounds how many bcrypt operations run at once. Request
// goroutines hand work to a fixed set of workers instead of hashing inline.
package queue

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/api/metrics"
	"github.com/99minutos/catalog-api/internal/pkg/security"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrPoolStopped is returned when work is submitted after the pool's context ended.
var ErrPoolStopped = errors.New("hash pool stopped")

type jobKind int

const (
	jobHash jobKind = iota
	jobVerify
)

type job struct {
	kind     jobKind
	password string
	hash     string
	result   chan result
}

type result struct {
	hash string
	ok   bool
	err  error
}

// HashPool runs password hashing and verification on a fixed number of workers.
type HashPool struct {
	jobs    chan job
	workers int
	cost    int
	done    chan struct{}
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers hashing at the given bcrypt cost.
// If numWorkers <= 0, defaultWorkers is used.
func NewHashPool(numWorkers, cost int, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &HashPool{
		jobs:    make(chan job, channelBuffer),
		workers: numWorkers,
		cost:    cost,
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start launches the workers. They stop when ctx is cancelled.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.done)
	}()
}

// Hash returns a bcrypt hash of password.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	r, err := p.submit(ctx, job{kind: jobHash, password: password})
	if err != nil {
		return "", err
	}
	return r.hash, r.err
}

// Verify reports whether password matches hash. Any failure to run the check counts as a mismatch.
func (p *HashPool) Verify(ctx context.Context, password, hash string) bool {
	r, err := p.submit(ctx, job{kind: jobVerify, password: password, hash: hash})
	if err != nil {
		p.log.Warn().Err(err).Msg("password verification not run")
		return false
	}
	return r.ok
}

// Pending reports how many jobs wait for a worker. It fails once the pool stopped.
func (p *HashPool) Pending(context.Context) (int64, error) {
	select {
	case <-p.done:
		return 0, ErrPoolStopped
	default:
		return int64(len(p.jobs)), nil
	}
}

func (p *HashPool) submit(ctx context.Context, j job) (result, error) {
	j.result = make(chan result, 1)

	select {
	case p.jobs <- j:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-p.done:
		return result{}, ErrPoolStopped
	}

	select {
	case r := <-j.result:
		return r, nil
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-p.done:
		return result{}, ErrPoolStopped
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			start := time.Now()
			j.result <- p.run(j)
			metrics.PasswordHashDuration.WithLabelValues(j.kind.String()).Observe(time.Since(start).Seconds())
			p.log.Trace().Str("worker_id", label).Str("op", j.kind.String()).Msg("hash job done")
		}
	}
}

func (p *HashPool) run(j job) result {
	switch j.kind {
	case jobVerify:
		return result{ok: security.VerifyPassword(j.password, j.hash)}
	default:
		h, err := security.HashPassword(j.password, p.cost)
		return result{hash: h, err: err}
	}
}

func (k jobKind) String() string {
	if k == jobVerify {
		return "verify"
	}
	return "hash"
}
