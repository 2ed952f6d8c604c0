package rescache_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/rescache/rescache"
	"github.com/rescache/rescache/codec"
	redisprov "github.com/rescache/rescache/provider/redis"
)

type upstreamResult struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers,omitempty"`
	Result     string            `json:"result,omitempty"`
	TraceID    string            `json:"trace_id,omitempty"` // outside the narrowing projection
}

func newRedisCache(t *testing.T) (*miniredis.Miniredis, rescache.Cache[upstreamResult]) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	st, err := redisprov.NewStandalone("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("provider: %v", err)
	}

	cc, err := rescache.New[upstreamResult](rescache.Options[upstreamResult]{
		Reader:      st,
		Codec:       codec.HTTPResponse[upstreamResult]{},
		DefaultTTL:  time.Minute,
		ReadTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close(context.Background()) })

	return mr, cc
}

// End to end against an emulated Redis: what comes back is the narrowed
// form of what went in.
func TestSetThenGetNarrowedAgainstRedis(t *testing.T) {
	_, cc := newRedisCache(t)
	ctx := context.Background()

	in := upstreamResult{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Result:     "body",
		TraceID:    "abc-123",
	}
	if err := cc.Set(ctx, "GET /users/42", in, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := cc.Get(ctx, "GET /users/42")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := in
	want.TraceID = ""
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Get = %+v, want narrowed %+v", got, want)
	}
}

func TestEntryExpiresInRedis(t *testing.T) {
	mr, cc := newRedisCache(t)
	ctx := context.Background()

	if err := cc.Set(ctx, "k", upstreamResult{StatusCode: 204}, 30*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := cc.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	mr.FastForward(31 * time.Second)

	if _, err := cc.Get(ctx, "k"); !errors.Is(err, rescache.ErrNotFound) {
		t.Fatalf("Get after expiry = %v, want ErrNotFound", err)
	}
}

func TestForeignPayloadInRedis(t *testing.T) {
	mr, cc := newRedisCache(t)
	ctx := context.Background()

	// Write valid JSON so the storage key is observable, then corrupt it.
	if err := cc.Set(ctx, "k", upstreamResult{StatusCode: 200}, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	keys := mr.Keys()
	if len(keys) != 1 || len(keys[0]) != 128 {
		t.Fatalf("expected one 128-hex storage key, got %v", keys)
	}
	if err := mr.Set(keys[0], "\x00not json"); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	var ce *rescache.CodecError
	if _, err := cc.Get(ctx, "k"); !errors.As(err, &ce) {
		t.Fatalf("Get on corrupt payload = %v, want CodecError", err)
	}
}
