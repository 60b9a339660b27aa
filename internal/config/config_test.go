package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:       HTTPConfig{Port: 8080},
		Embedding:  EmbeddingConfig{APIKey: "test-key"},
		Completion: CompletionConfig{APIKey: "test-key"},
		Session:    SessionConfig{Backend: "memory"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAPIKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}

	cfg = validConfig()
	cfg.Completion.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing completion api key")
	}
}

func TestValidate_InvalidSessionBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Backend = "sqlite"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid session backend")
	}

	expected := `session.backend must be "memory" or "redis", got "sqlite"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisBackendRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Backend = "redis"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis backend without database addrs")
	}

	cfg.Database.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with addrs present: %v", err)
	}
}

func TestValidate_CollectionMetrics(t *testing.T) {
	cfg := validConfig()
	cfg.VectorStore.Metrics = map[string]string{
		"properties":    "l2",
		"neighborhoods": "cosine",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for valid metrics: %v", err)
	}

	cfg.VectorStore.Metrics["crime"] = "euclidean"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown metric name")
	}

	expected := `vector_store.metrics.crime must be "cosine" or "l2", got "euclidean"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.VectorStore.BaseURL != "http://localhost:8000" {
		t.Errorf("expected chroma base url default, got %q", cfg.VectorStore.BaseURL)
	}
	if cfg.VectorStore.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.VectorStore.TopK)
	}
	if cfg.VectorStore.MaxResults != 20 {
		t.Errorf("expected MaxResults=20, got %d", cfg.VectorStore.MaxResults)
	}
	if cfg.Database.KeyPrefix != "propbot:" {
		t.Errorf("expected KeyPrefix='propbot:', got %q", cfg.Database.KeyPrefix)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Completion.Model != "gpt-4o-mini" {
		t.Errorf("expected default completion model, got %q", cfg.Completion.Model)
	}
	if cfg.Session.Backend != "memory" {
		t.Errorf("expected session backend 'memory', got %q", cfg.Session.Backend)
	}
	if cfg.Session.TTLSec != 1800 {
		t.Errorf("expected session TTL 1800, got %d", cfg.Session.TTLSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:        HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		VectorStore: VectorStoreConfig{BaseURL: "http://chroma:9000", TopK: 10},
		Session:     SessionConfig{Backend: "redis", TTLSec: 60, MaxSessions: 100},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.VectorStore.BaseURL != "http://chroma:9000" {
		t.Errorf("expected BaseURL preserved, got %q", cfg.VectorStore.BaseURL)
	}
	if cfg.VectorStore.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.VectorStore.TopK)
	}
	if cfg.Session.TTLSec != 60 {
		t.Errorf("expected TTLSec=60, got %d", cfg.Session.TTLSec)
	}
}
