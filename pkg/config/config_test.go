package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GIGACHAT_API_KEY", "")
	t.Setenv("GIGACHAT_TIMEOUT_SECONDS", "")
	t.Setenv("DB_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GigaChat.Configured() {
		t.Error("gateway should be unconfigured without an API key")
	}
	if cfg.GigaChat.Timeout != 20*time.Second {
		t.Errorf("got timeout %v, want 20s", cfg.GigaChat.Timeout)
	}
	if cfg.Database.Enabled {
		t.Error("database should be disabled by default")
	}
	if cfg.Extraction.DescriptionPromptLimit != 500 {
		t.Errorf("got description limit %d, want 500", cfg.Extraction.DescriptionPromptLimit)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("GIGACHAT_TIMEOUT_SECONDS", "soon")
	t.Setenv("EXTRACTION_BATCH_CONCURRENCY", "many")
	t.Setenv("DB_ENABLED", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GigaChat.Timeout != 20*time.Second {
		t.Errorf("got timeout %v, want default 20s", cfg.GigaChat.Timeout)
	}
	if cfg.Extraction.BatchConcurrency != 4 {
		t.Errorf("got concurrency %d, want default 4", cfg.Extraction.BatchConcurrency)
	}
	if cfg.Database.Enabled {
		t.Error("malformed DB_ENABLED should fall back to false")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GIGACHAT_API_KEY", "c2VjcmV0")
	t.Setenv("GIGACHAT_TIMEOUT_SECONDS", "5")
	t.Setenv("SERVER_BODY_LIMIT_MB", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.GigaChat.Configured() {
		t.Error("gateway should be configured")
	}
	if cfg.GigaChat.Timeout != 5*time.Second {
		t.Errorf("got timeout %v, want 5s", cfg.GigaChat.Timeout)
	}
	if cfg.Server.BodyLimit != 1024*1024 {
		t.Errorf("got body limit %d, want 1MiB", cfg.Server.BodyLimit)
	}
}
