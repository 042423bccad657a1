// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Port)
	}
	if cfg.StoreType != "file" {
		t.Errorf("expected file backend, got %q", cfg.StoreType)
	}
	if cfg.DataFile != "data.json" {
		t.Errorf("expected data.json, got %q", cfg.DataFile)
	}
	if cfg.RabbitMQQueue != "votes" {
		t.Errorf("expected votes queue, got %q", cfg.RabbitMQQueue)
	}
	if cfg.SerializeWrites {
		t.Error("expected serialize off by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("STORE_BACKEND", "sqlite")
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("SEED_OPTIONS", " Vue , React,,Svelte ")
	os.Setenv("SERIALIZE_WRITES", "true")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.StoreType != "sqlite" || cfg.DatabaseURL != "file:test.db" {
		t.Errorf("unexpected store config: %q %q", cfg.StoreType, cfg.DatabaseURL)
	}
	if len(cfg.SeedOptions) != 3 || cfg.SeedOptions[0] != "Vue" || cfg.SeedOptions[2] != "Svelte" {
		t.Errorf("unexpected seed options: %q", cfg.SeedOptions)
	}
	if !cfg.SerializeWrites {
		t.Error("expected serialize on")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATA_FILE", "env.json")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-f", "cli.json"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DataFile != "cli.json" {
		t.Errorf("CLI should override env: expected cli.json, got %q", cfg.DataFile)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad port env", map[string]string{"PORT": "abc"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"unknown backend", nil, []string{"-store", "mongo"}},
		{"sql without url", nil, []string{"-store", "postgres"}},
		{"firestore without project", nil, []string{"-store", "firestore"}},
		{"bad serialize", nil, []string{"-serialize", "maybe"}},
		{"bad log format", nil, []string{"-log-format", "xml"}},
		{"bad log level flag", nil, []string{"-log-level", "verbose"}},
		{"bad log level env", map[string]string{"LOG_LEVEL": "trace"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DATA_FILE=from-dotenv.json\nPORT=4000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("PORT", "5000")

	if err := LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataFile != "from-dotenv.json" {
		t.Errorf("expected DATA_FILE from .env, got %q", cfg.DataFile)
	}
	// already-set variables win
	if cfg.Port != 5000 {
		t.Errorf("expected existing PORT to win, got %d", cfg.Port)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing file should not fail: %v", err)
	}
}
