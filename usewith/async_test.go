package usewith

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestAsyncResultPassThrough(t *testing.T) {
	t.Parallel()
	released := atomic.Int64{}
	f := Async(context.Background(), 10, func(int) { released.Add(1) },
		func(_ context.Context, n int) (int, error) {
			return n + 32, nil
		})
	got, err := f.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if released.Load() != 1 {
		t.Fatalf("expected exactly one release, got %d", released.Load())
	}
}

func TestAsyncReleaseOnlyAfterResolution(t *testing.T) {
	t.Parallel()
	released := atomic.Bool{}
	block := make(chan struct{})
	f := Async(context.Background(), "res", func(string) { released.Store(true) },
		func(_ context.Context, _ string) (int, error) {
			<-block
			time.Sleep(20 * time.Millisecond)
			return 1, nil
		})
	if released.Load() {
		t.Fatal("resource released while operation still pending")
	}
	close(block)
	if _, err := f.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !released.Load() {
		t.Fatal("resource not released after future resolved")
	}
}

func TestAsyncErrorPassesThrough(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("async boom")
	released := atomic.Int64{}
	f := Async(context.Background(), 1, func(int) { released.Add(1) },
		func(_ context.Context, _ int) (int, error) {
			return 0, sentinel
		})
	if _, err := f.Wait(); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if released.Load() != 1 {
		t.Fatalf("expected release on error path, got %d", released.Load())
	}
}

func TestAsyncPanicRethrownOnWait(t *testing.T) {
	t.Parallel()
	released := atomic.Int64{}
	f := Async(context.Background(), 1, func(int) { released.Add(1) },
		func(_ context.Context, _ int) (int, error) {
			panic("Intentional panic")
		})

	waitPanics := func() (r any) {
		defer func() { r = recover() }()
		_, _ = f.Wait()
		return nil
	}
	if r := waitPanics(); r != "Intentional panic" {
		t.Fatalf("expected original panic value, got %v", r)
	}
	// Wait is idempotent: the same outcome is re-raised every time.
	if r := waitPanics(); r != "Intentional panic" {
		t.Fatalf("expected panic on second Wait, got %v", r)
	}
	if released.Load() != 1 {
		t.Fatalf("expected exactly one release despite panic, got %d", released.Load())
	}
}

func TestAsyncCancellationStillReleases(t *testing.T) {
	t.Parallel()
	released := atomic.Int64{}
	ctx, cancel := context.WithCancel(context.Background())
	f := Async(ctx, 1, func(int) { released.Add(1) },
		func(ctx context.Context, _ int) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
	cancel()
	if _, err := f.Wait(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if released.Load() != 1 {
		t.Fatalf("expected release after cancellation, got %d", released.Load())
	}
}

func TestAsyncDoneChannel(t *testing.T) {
	t.Parallel()
	released := atomic.Bool{}
	f := Async(context.Background(), 1, func(int) { released.Store(true) },
		func(_ context.Context, n int) (int, error) {
			time.Sleep(10 * time.Millisecond)
			return n, nil
		})
	select {
	case <-f.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("future did not resolve in time")
	}
	if !released.Load() {
		t.Fatal("Done closed before resource release")
	}
}

func TestAsyncWaitContext(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	f := Async(context.Background(), 1, func(int) {},
		func(_ context.Context, n int) (int, error) {
			<-block
			return n, nil
		})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.WaitContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	// The operation keeps running; let it finish so no goroutine leaks.
	close(block)
	if got, err := f.Wait(); err != nil || got != 1 {
		t.Fatalf("expected (1, nil) from final Wait, got (%d, %v)", got, err)
	}
}

func TestAsyncNilContext(t *testing.T) {
	t.Parallel()
	f := Async[int, int](nil, 7, func(int) {},
		func(ctx context.Context, n int) (int, error) {
			if ctx == nil {
				return 0, errors.New("nil ctx reached op")
			}
			return n, nil
		})
	got, err := f.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}
