package gensource

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestStatic(t *testing.T) {
	ctx := context.Background()
	s := Static(7)
	if g, err := s.Current(ctx); err != nil || g != 7 {
		t.Fatalf("Current = %d, %v", g, err)
	}
	if _, err := s.Bump(ctx); !errors.Is(err, ErrStatic) {
		t.Fatalf("Bump should return ErrStatic, got %v", err)
	}
}

func TestLocalStartFloor(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(0)
	if g, _ := l.Current(ctx); g != 1 {
		t.Fatalf("start below 1 should be raised to 1, got %d", g)
	}
}

func TestLocalBump(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(1)
	g, err := l.Bump(ctx)
	if err != nil || g != 2 {
		t.Fatalf("Bump = %d, %v", g, err)
	}
	if cur, _ := l.Current(ctx); cur != 2 {
		t.Fatalf("Current after bump = %d", cur)
	}
}

func TestLocalConcurrentBumps(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(1)

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = l.Bump(ctx)
		}()
	}
	wg.Wait()

	if g, _ := l.Current(ctx); g != 1+n {
		t.Fatalf("expected generation %d after %d bumps, got %d", 1+n, n, g)
	}
}
