package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, cacheBackendFile)
	}
	if cfg.Store.Backend != storeBackendMemory {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, storeBackendMemory)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
backend = "redis"
redis_addr = "localhost:6379"
redis_db = 2

[store]
backend = "mongo"
mongo_uri = "mongodb://db:27017"

[server]
addr = ":9090"
list_limit = 25
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Cache.Backend != cacheBackendRedis {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, cacheBackendRedis)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache.RedisAddr = %q, want %q", cfg.Cache.RedisAddr, "localhost:6379")
	}
	if cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache.RedisDB = %d, want 2", cfg.Cache.RedisDB)
	}
	if cfg.Store.Backend != storeBackendMongo {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, storeBackendMongo)
	}
	if cfg.Store.MongoURI != "mongodb://db:27017" {
		t.Errorf("Store.MongoURI = %q, want %q", cfg.Store.MongoURI, "mongodb://db:27017")
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.ListLimit != 25 {
		t.Errorf("Server.ListLimit = %d, want 25", cfg.Server.ListLimit)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":3000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":3000")
	}
	// Unset sections keep defaults
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, cacheBackendFile)
	}
	if cfg.Store.MongoDatabase != appName {
		t.Errorf("Store.MongoDatabase = %q, want %q", cfg.Store.MongoDatabase, appName)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() should fail on invalid TOML")
	}
}

func TestNewCacheBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		c, err := newCacheBackend(ctx, CacheConfig{Backend: cacheBackendFile, Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("newCacheBackend() error: %v", err)
		}
		defer c.Close()
	})

	t.Run("none", func(t *testing.T) {
		c, err := newCacheBackend(ctx, CacheConfig{Backend: cacheBackendNone})
		if err != nil {
			t.Fatalf("newCacheBackend() error: %v", err)
		}
		defer c.Close()
	})

	t.Run("redis without addr", func(t *testing.T) {
		if _, err := newCacheBackend(ctx, CacheConfig{Backend: cacheBackendRedis}); err == nil {
			t.Error("redis backend without addr should fail")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := newCacheBackend(ctx, CacheConfig{Backend: "bogus"}); err == nil {
			t.Error("unknown backend should fail")
		}
	})
}

func TestNewStoreBackend(t *testing.T) {
	ctx := context.Background()

	st, err := newStoreBackend(ctx, StoreConfig{Backend: storeBackendMemory})
	if err != nil {
		t.Fatalf("newStoreBackend() error: %v", err)
	}
	defer st.Close(ctx)

	if _, err := newStoreBackend(ctx, StoreConfig{Backend: "bogus"}); err == nil {
		t.Error("unknown backend should fail")
	}
}
