package ratelimit

import (
	"testing"
	"time"
)

func TestBurstThenDeny(t *testing.T) {
	l := New()
	if !l.Allow("k", 2, 0.001) {
		t.Fatalf("first call should pass")
	}
	if !l.Allow("k", 2, 0.001) {
		t.Fatalf("second call should pass")
	}
	if l.Allow("k", 2, 0.001) {
		t.Fatalf("third call should be throttled")
	}
}

func TestKeysIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.001) {
		t.Fatalf("a should pass")
	}
	if l.Allow("a", 1, 0.001) {
		t.Fatalf("a should be throttled")
	}
	if !l.Allow("b", 1, 0.001) {
		t.Fatalf("b has its own bucket")
	}
}

func TestRefill(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 200) {
		t.Fatalf("first call should pass")
	}
	if l.Allow("k", 1, 200) {
		t.Fatalf("bucket should be empty")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("k", 1, 200) {
		t.Fatalf("expected refill after wait")
	}
}
