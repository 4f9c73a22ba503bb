package cache_test

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/dinehub/pkg/cache"
)

func TestNilClientNoOps(t *testing.T) {
	cache.RDB = nil

	if err := cache.Set("k", "v", time.Minute); err != nil {
		t.Errorf("Set without redis must no-op, got: %v", err)
	}
	if err := cache.Del("k"); err != nil {
		t.Errorf("Del without redis must no-op, got: %v", err)
	}
	var dest string
	if cache.Get("k", &dest) {
		t.Error("Get without redis must miss")
	}
}

func TestUnreachableRedisSurfacesErrors(t *testing.T) {
	cache.RDB = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer func() { cache.RDB = nil }()

	if err := cache.Set("k", "v", time.Minute); err == nil {
		t.Error("Set against unreachable redis must return an error")
	}
	if err := cache.Del("k"); err == nil {
		t.Error("Del against unreachable redis must return an error")
	}
	var dest string
	if cache.Get("k", &dest) {
		t.Error("Get against unreachable redis must miss")
	}
}
