package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/patchworklabs/patchwork/pkg/cache"
	"github.com/patchworklabs/patchwork/pkg/store"
)

// =============================================================================
// Config File
// =============================================================================

// Backend names accepted in the config file and on serve flags.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"

	storeBackendMemory = "memory"
	storeBackendMongo  = "mongo"
)

// Config is the on-disk configuration, loaded from
// ~/.config/patchwork/config.toml when present. Zero values fall back to
// the defaults in defaultConfig.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file (default), redis, none
	Dir           string `toml:"dir"`     // file backend; defaults to XDG cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig selects and configures the quilt store backend.
type StoreConfig struct {
	Backend       string `toml:"backend"` // memory (default), mongo
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	ListLimit int    `toml:"list_limit"`
}

// defaultConfig returns the configuration used when no config file exists.
func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: cacheBackendFile},
		Store:  StoreConfig{Backend: storeBackendMemory, MongoURI: "mongodb://localhost:27017", MongoDatabase: appName},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error; defaults are returned.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return cfg, nil
}

// applyConfigDefaults fills fields the file left empty.
func applyConfigDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = def.Cache.Backend
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = def.Store.Backend
	}
	if cfg.Store.MongoURI == "" {
		cfg.Store.MongoURI = def.Store.MongoURI
	}
	if cfg.Store.MongoDatabase == "" {
		cfg.Store.MongoDatabase = def.Store.MongoDatabase
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}

// =============================================================================
// Backend Factories
// =============================================================================

// newCacheBackend creates the cache named by cfg.Backend.
func newCacheBackend(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", cacheBackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case cacheBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("cache backend %q requires redis_addr", cfg.Backend)
		}
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'none')", cfg.Backend)
	}
}

// newStoreBackend creates the store named by cfg.Backend.
func newStoreBackend(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", storeBackendMemory:
		return store.NewMemoryStore(), nil
	case storeBackendMongo:
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory' or 'mongo')", cfg.Backend)
	}
}
