package deduplication

import (
	"testing"
	"time"
)

func TestNewBloomConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("BLOOM_KEY", "")
	t.Setenv("BLOOM_TTL_SECONDS", "")

	cfg := NewBloomConfigFromEnv()
	if cfg.Addr != "localhost:6379" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.Key != "requests:bloom" {
		t.Fatalf("expected default key, got %q", cfg.Key)
	}
	if cfg.TTL != 7*24*time.Hour {
		t.Fatalf("expected default TTL, got %v", cfg.TTL)
	}
	if cfg.Capacity != 100000 || cfg.ErrorRate != 0.001 {
		t.Fatalf("unexpected reserve defaults: %+v", cfg)
	}
}

func TestNewBloomConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BLOOM_KEY", "custom:bloom")
	t.Setenv("BLOOM_TTL_SECONDS", "60")
	t.Setenv("BLOOM_CAPACITY", "5000")
	t.Setenv("BLOOM_ERROR_RATE", "0.01")
	t.Setenv("BLOOM_NONSCALING", "true")

	cfg := NewBloomConfigFromEnv()
	if cfg.Addr != "redis:6380" || cfg.DB != 2 || cfg.Key != "custom:bloom" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.TTL != 60*time.Second {
		t.Fatalf("expected 60s TTL, got %v", cfg.TTL)
	}
	if cfg.Capacity != 5000 || cfg.ErrorRate != 0.01 || !cfg.NonScaling {
		t.Fatalf("reserve overrides not applied: %+v", cfg)
	}
}
