package service

import (
	"testing"
	"time"
)

func TestContextCacheSameBucket(t *testing.T) {
	cache := newContextCache()
	now := time.Now()

	calls := 0
	fetch := func() string {
		calls++
		return "value"
	}

	if got := cache.getOrFetch("k", now, fetch); got != "value" {
		t.Fatalf("got %q", got)
	}
	if got := cache.getOrFetch("k", now.Add(time.Second), fetch); got != "value" {
		t.Fatalf("got %q", got)
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times within one bucket, want 1", calls)
	}
}

func TestContextCacheBucketRollover(t *testing.T) {
	cache := newContextCache()
	now := time.Unix(1000000, 0)

	calls := 0
	fetch := func() string {
		calls++
		return "value"
	}

	cache.getOrFetch("k", now, fetch)
	cache.getOrFetch("k", now.Add(contextCacheTTL+time.Second), fetch)
	if calls != 2 {
		t.Fatalf("fetch called %d times across buckets, want 2", calls)
	}
}

func TestContextCacheKeysAreIndependent(t *testing.T) {
	cache := newContextCache()
	now := time.Now()

	cache.getOrFetch("a", now, func() string { return "1" })
	if got := cache.getOrFetch("b", now, func() string { return "2" }); got != "2" {
		t.Fatalf("keys must not collide, got %q", got)
	}
}
