package config

import (
	"errors"
	"log"
	"os"
)

// defaultMongoURI is the local fallback used outside production.
const defaultMongoURI = "mongodb://localhost:27017"

type Config struct {
	// MongoURI is resolved with the precedence MONGODB_URI_PROD >
	// MONGODB_URI_DEV > local default. In production the default does not
	// apply: an explicit URI is required.
	MongoURI string
	Database string
	Addr     string

	// BuildPhase marks a static build/compile-time evaluation with no runtime
	// environment. While set, the session manager refuses all store access
	// instead of attempting network I/O. Explicit flag, never inferred.
	BuildPhase bool
}

// Load resolves configuration from the environment once, at startup.
// A missing connection string outside the build phase is a configuration
// error here, not a deferred failure at first store use.
func Load() (*Config, error) {
	cfg := &Config{
		Database:   getenv("MONGODB_DB", "hiring_pipeline"),
		Addr:       ":" + getenv("PORT", "8080"),
		BuildPhase: os.Getenv("APP_BUILD_PHASE") == "true",
	}

	cfg.MongoURI = os.Getenv("MONGODB_URI_PROD")
	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGODB_URI_DEV")
	}
	if cfg.MongoURI == "" && os.Getenv("APP_ENV") != "production" {
		cfg.MongoURI = defaultMongoURI
	}

	if cfg.MongoURI == "" && !cfg.BuildPhase {
		return nil, errors.New("config: MongoDB connection string not found in environment variables")
	}
	if cfg.BuildPhase {
		log.Println("Build phase: skipping DB connection checks")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
