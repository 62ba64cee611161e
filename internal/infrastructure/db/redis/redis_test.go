package redis

import "testing"

func TestConfigOptions(t *testing.T) {
	cfg := Config{
		Addr:     "redis.internal:6380",
		Password: "s3cret",
		DB:       2,
		PoolSize: 4,
	}

	opts := cfg.options()
	if opts.Addr != "redis.internal:6380" || opts.Password != "s3cret" || opts.DB != 2 {
		t.Fatalf("connection settings not mapped: %+v", opts)
	}
	if opts.PoolSize != 4 {
		t.Fatalf("expected pool size 4, got %d", opts.PoolSize)
	}
}

func TestConfigOptions_DefaultPool(t *testing.T) {
	opts := Config{Addr: "localhost:6379"}.options()
	if opts.PoolSize != defaultPoolSize {
		t.Fatalf("expected default pool size %d, got %d", defaultPoolSize, opts.PoolSize)
	}
}
