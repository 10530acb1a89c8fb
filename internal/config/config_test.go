package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MONGODB_URI_PROD", "MONGODB_URI_DEV", "MONGODB_DB", "APP_ENV", "APP_BUILD_PHASE", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_URIPrecedence(t *testing.T) {
	cases := []struct {
		name string
		prod string
		dev  string
		want string
	}{
		{"prod wins over dev", "mongodb+srv://prod", "mongodb://dev", "mongodb+srv://prod"},
		{"dev when no prod", "", "mongodb://dev", "mongodb://dev"},
		{"local default when neither set", "", "", defaultMongoURI},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("MONGODB_URI_PROD", tc.prod)
			t.Setenv("MONGODB_URI_DEV", tc.dev)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.MongoURI != tc.want {
				t.Fatalf("expected URI %q, got %q", tc.want, cfg.MongoURI)
			}
		})
	}
}

func TestLoad_ProductionRequiresExplicitURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected a startup error when production has no connection string")
	}
}

func TestLoad_BuildPhaseAllowsMissingURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_BUILD_PHASE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("build phase must not require a connection string: %v", err)
	}
	if !cfg.BuildPhase {
		t.Fatal("expected BuildPhase set")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database != "hiring_pipeline" {
		t.Fatalf("unexpected default database: %q", cfg.Database)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default address: %q", cfg.Addr)
	}
	if cfg.BuildPhase {
		t.Fatal("BuildPhase must never be inferred")
	}
}

func TestLoad_PortOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.Addr)
	}
}
