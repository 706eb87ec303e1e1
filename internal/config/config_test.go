package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}

	if cfg.Backend != BackendMemory {
		t.Errorf("Expected backend %s, got %s", BackendMemory, cfg.Backend)
	}
	if cfg.EnrichParallel != 4 {
		t.Errorf("Expected enrich parallel 4, got %d", cfg.EnrichParallel)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("Expected timeout 15s, got %v", cfg.RequestTimeout)
	}
	if cfg.IsProduction() {
		t.Error("Default env should not be production")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CLASSROOM_ENV", "PROD")
	t.Setenv("CLASSROOM_BACKEND", "firebase")
	t.Setenv("CLASSROOM_FIREBASE_APIKEY", "key")
	t.Setenv("CLASSROOM_FIREBASE_PROJECTID", "classroom-dev")
	t.Setenv("CLASSROOM_YOUTUBE_APIKEY", "yt-key")
	t.Setenv("CLASSROOM_ENRICH_PARALLEL", "8")
	t.Setenv("CLASSROOM_REQUEST_TIMEOUT", "3s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}

	if !cfg.IsProduction() || cfg.Backend != BackendFirebase {
		t.Errorf("Unexpected env/backend: %s/%s", cfg.Env, cfg.Backend)
	}
	if cfg.FirebaseAPIKey != "key" || cfg.FirebaseProject != "classroom-dev" || cfg.YouTubeAPIKey != "yt-key" {
		t.Errorf("Unexpected keys: %+v", cfg)
	}
	if cfg.EnrichParallel != 8 || cfg.RequestTimeout != 3*time.Second {
		t.Errorf("Unexpected limits: %d, %v", cfg.EnrichParallel, cfg.RequestTimeout)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"CLASSROOM_BACKEND": "sqlite"}},
		{"firebase without keys", map[string]string{"CLASSROOM_BACKEND": "firebase"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "CLASSROOM_ENRICH_PARALLEL=2\nCLASSROOM_LOG_MODE=prod\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv does not override variables that are already set
	t.Setenv("CLASSROOM_ENRICH_PARALLEL", "6")
	t.Setenv("CLASSROOM_LOG_MODE", "")
	os.Unsetenv("CLASSROOM_LOG_MODE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.EnrichParallel != 6 {
		t.Errorf("Expected environment to win, got %d", cfg.EnrichParallel)
	}
	if cfg.LogMode != "prod" {
		t.Errorf("Expected log mode from .env, got %s", cfg.LogMode)
	}
	os.Unsetenv("CLASSROOM_LOG_MODE")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Missing .env should be ignored, got %v", err)
	}
}
