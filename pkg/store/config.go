package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendHTTP   = "http"
)

// Config selects and parameterizes a storage backend.
type Config struct {
	Backend       string // file | memory | redis | mongo | http
	FileDir       string // file: storage directory
	RedisAddr     string // redis: host:port
	MongoURI      string // mongo: connection URI
	MongoDatabase string // mongo: database name
	URL           string // http: server base URL
}

// ConfigFromEnv reads the backend selection from the environment:
//
//	CODEPACK_STORE       backend name (default "file")
//	CODEPACK_STORE_DIR   file backend directory (default ~/.config/codepack/store)
//	CODEPACK_REDIS_ADDR  redis address (default "localhost:6379")
//	CODEPACK_MONGO_URI   mongo URI (default "mongodb://localhost:27017")
//	CODEPACK_MONGO_DB    mongo database (default "codepack")
//	CODEPACK_STORE_URL   http server base URL
func ConfigFromEnv() Config {
	cfg := Config{
		Backend:       envOr("CODEPACK_STORE", BackendFile),
		FileDir:       os.Getenv("CODEPACK_STORE_DIR"),
		RedisAddr:     envOr("CODEPACK_REDIS_ADDR", "localhost:6379"),
		MongoURI:      envOr("CODEPACK_MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: envOr("CODEPACK_MONGO_DB", "codepack"),
		URL:           os.Getenv("CODEPACK_STORE_URL"),
	}
	return cfg
}

// Open creates the store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		dir := cfg.FileDir
		if dir == "" {
			configDir, err := os.UserConfigDir()
			if err != nil {
				return nil, fmt.Errorf("resolve store directory: %w", err)
			}
			dir = filepath.Join(configDir, "codepack", "store")
		}
		return NewFileStore(dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case BackendHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("http store requires CODEPACK_STORE_URL")
		}
		return NewHTTPStore(cfg.URL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// envOr returns the environment variable's value, or fallback when unset.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
