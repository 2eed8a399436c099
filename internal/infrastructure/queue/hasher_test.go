package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/catalog-api/internal/pkg/security"
)

func startPool(t *testing.T, workers int) (*HashPool, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	p := NewHashPool(workers, bcrypt.MinCost, zerolog.Nop())
	p.Start(ctx)
	t.Cleanup(cancel)
	return p, cancel
}

func TestHashPool_HashAndVerify(t *testing.T) {
	p, _ := startPool(t, 2)
	ctx := context.Background()

	hash, err := p.Hash(ctx, "Passw0rd1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !security.VerifyPassword("Passw0rd1", hash) {
		t.Fatalf("hash does not verify directly")
	}
	if !p.Verify(ctx, "Passw0rd1", hash) {
		t.Fatalf("expected pool Verify to accept the password")
	}
	if p.Verify(ctx, "wrong", hash) {
		t.Fatalf("expected pool Verify to reject a wrong password")
	}
}

func TestHashPool_ManyConcurrentCallers(t *testing.T) {
	p, _ := startPool(t, 3)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := p.Hash(ctx, "secret")
			if err != nil {
				errs <- err
				return
			}
			if !p.Verify(ctx, "secret", h) {
				errs <- errors.New("verify failed")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent hashing failed: %v", err)
	}
}

func TestHashPool_StoppedPool(t *testing.T) {
	p, cancel := startPool(t, 1)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		_, err := p.Hash(context.Background(), "x")
		if errors.Is(err, ErrPoolStopped) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected ErrPoolStopped after cancel, got %v", err)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestHashPool_CallerContextCancelled(t *testing.T) {
	p := NewHashPool(1, bcrypt.MinCost, zerolog.Nop()) // never started
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Fill the buffer so the next submit blocks on the caller context.
	for i := 0; i < channelBuffer; i++ {
		p.jobs <- job{result: make(chan result, 1)}
	}
	if _, err := p.Hash(ctx, "x"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if p.Verify(ctx, "x", "y") {
		t.Fatalf("expected Verify to fail closed")
	}
}

func TestHashPool_PendingAfterStop(t *testing.T) {
	p, cancel := startPool(t, 1)
	if n, err := p.Pending(context.Background()); err != nil || n != 0 {
		t.Fatalf("expected idle pool, got %d, %v", n, err)
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for {
		if _, err := p.Pending(context.Background()); errors.Is(err, ErrPoolStopped) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("pool never reported stopped")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
