package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/iwvelando/advisor-forecast/internal/store"
	"github.com/iwvelando/advisor-forecast/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address == "" {
		t.Fatalf("expected default address, got empty")
	}
	if cfg.UploadSizeBytes() <= 0 {
		t.Fatalf("expected positive default max upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxUploadSize: 2M
currentYear: 2030
clients:
  - clients/jane.yaml
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max upload override, got %d", cfg.UploadSizeBytes())
	}
	if cfg.CurrentYear != 2030 {
		t.Fatalf("expected currentYear 2030, got %d", cfg.CurrentYear)
	}
	if len(cfg.Clients) != 1 || cfg.Clients[0] != "clients/jane.yaml" {
		t.Fatalf("expected one client file, got %v", cfg.Clients)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging format console, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("maxUploadSize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML but got nil")
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxUploadSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("parseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("parseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1TB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
}

func TestLoadConfigNegativeYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "year.yaml")
	if err := os.WriteFile(path, []byte("currentYear: -1"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for negative year but got nil")
	}
}

func TestLoadConfigYearOutOfRange(t *testing.T) {
	for _, year := range []string{"1000000000", "1066"} {
		path := filepath.Join(t.TempDir(), "year.yaml")
		if err := os.WriteFile(path, []byte("currentYear: "+year), 0600); err != nil {
			t.Fatalf("failed to write temp config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("expected error for year %s but got nil", year)
		}
	}
}

func TestSeedClients(t *testing.T) {
	cfg := &Config{Clients: []string{testClientPath}}
	repo := store.NewMemory(zap.NewNop())

	ids, err := cfg.SeedClients(context.Background(), nil, repo)
	if err != nil {
		t.Fatalf("SeedClients() error = %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected one seeded client, got %d", len(ids))
	}

	client, err := repo.Client(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("Client() error = %v", err)
	}
	if client.Name != "Jane Doe" {
		t.Fatalf("expected Jane Doe, got %s", client.Name)
	}
}

func TestSeedClientsMissingFile(t *testing.T) {
	cfg := &Config{Clients: []string{filepath.Join(t.TempDir(), "missing.yaml")}}

	if _, err := cfg.SeedClients(context.Background(), zap.NewNop(), store.NewMemory(nil)); err == nil {
		t.Fatal("expected error for missing client file but got nil")
	}
}

func TestSetUploadSizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	cfg.SetUploadSizeBytes(0)
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Fatalf("expected non-positive override to be ignored, got %d", cfg.UploadSizeBytes())
	}

	cfg.SetUploadSizeBytes(4096)
	if cfg.UploadSizeBytes() != 4096 || cfg.MaxUploadSize != "4096" {
		t.Fatalf("expected override to 4096, got %d (%s)", cfg.UploadSizeBytes(), cfg.MaxUploadSize)
	}
}
