package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	if err := mc.Set(ctx, "k", "value", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got string
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "value" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestMemoryMiss(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	if err := mc.Get(ctx, "absent", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	var got string
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemoryStructRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := mc.Set(ctx, "p", payload{Name: "x", Count: 3}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got payload
	if err := mc.Get(ctx, "p", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "x" || got.Count != 3 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestMemoryMGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	_ = mc.Set(ctx, "a", "1", 0)
	_ = mc.Set(ctx, "b", "2", 0)
	got, err := mc.MGet(ctx, "a", "b", "c")
	if err != nil {
		t.Fatalf("mget: %v", err)
	}
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("unexpected mget %v", got)
	}
}

func TestMemoryDeleteByPattern(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	_ = mc.Set(ctx, GenerateKey("note:fund", "EUR"), "a", 0)
	_ = mc.Set(ctx, GenerateKey("note:fund", "USD"), "b", 0)
	_ = mc.Set(ctx, GenerateKey("note:tech", "EURUSD"), "c", 0)

	if err := mc.DeleteByPattern(ctx, BuildPattern("note:fund")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var got string
	if err := mc.Get(ctx, GenerateKey("note:fund", "EUR"), &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("fund note survived: %v", err)
	}
	if err := mc.Get(ctx, GenerateKey("note:tech", "EURUSD"), &got); err != nil || got != "c" {
		t.Fatalf("tech note lost: %q %v", got, err)
	}
}

func TestMemoryLRUEviction(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	_ = mc.Set(ctx, "a", "1", 0)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", "2", 0)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "c", "3", 0)

	var got string
	if err := mc.Get(ctx, "a", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected oldest entry evicted, got %v", err)
	}
	if err := mc.Get(ctx, "c", &got); err != nil {
		t.Fatalf("newest entry missing: %v", err)
	}
}
