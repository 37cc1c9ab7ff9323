package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/docuflow-roi/pkg/constants"
)

func writeServerConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write server config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name            string
		contents        string
		missing         bool
		address         string
		uploadSize      int64
		shutdownTimeout time.Duration
		logLevel        string
	}{
		{
			name:            "Missing file",
			missing:         true,
			address:         constants.DefaultServerAddress,
			uploadSize:      constants.DefaultMaxUploadSizeBytes,
			shutdownTimeout: DefaultShutdownTimeout,
		},
		{
			name:            "Empty file",
			contents:        "",
			address:         constants.DefaultServerAddress,
			uploadSize:      constants.DefaultMaxUploadSizeBytes,
			shutdownTimeout: DefaultShutdownTimeout,
		},
		{
			name: "Overrides",
			contents: `address: 127.0.0.1:9000
maxUploadSize: 2M
shutdownTimeout: 3s
logging:
  level: debug
  format: console
`,
			address:         "127.0.0.1:9000",
			uploadSize:      2 << 20,
			shutdownTimeout: 3 * time.Second,
			logLevel:        "debug",
		},
		{
			name:            "Non-positive values fall back",
			contents:        "maxUploadSize: \"0\"\nshutdownTimeout: -1s\n",
			address:         constants.DefaultServerAddress,
			uploadSize:      constants.DefaultMaxUploadSizeBytes,
			shutdownTimeout: DefaultShutdownTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if !tt.missing {
				path = writeServerConfig(t, tt.contents)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.Address != tt.address {
				t.Errorf("Address = %q, expected %q", cfg.Address, tt.address)
			}
			if cfg.UploadSizeBytes() != tt.uploadSize {
				t.Errorf("UploadSizeBytes() = %d, expected %d", cfg.UploadSizeBytes(), tt.uploadSize)
			}
			if cfg.ShutdownTimeout != tt.shutdownTimeout {
				t.Errorf("ShutdownTimeout = %s, expected %s", cfg.ShutdownTimeout, tt.shutdownTimeout)
			}
			if cfg.Logging.Level != tt.logLevel {
				t.Errorf("Logging.Level = %q, expected %q", cfg.Logging.Level, tt.logLevel)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		contains string
	}{
		{"Bad size", "maxUploadSize: invalid", "invalid size"},
		{"Bad YAML", "address: [", "failed to parse server config"},
		{"Bad duration", "shutdownTimeout: soon", "failed to parse server config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeServerConfig(t, tt.contents))
			if err == nil {
				t.Fatal("LoadConfig() expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("LoadConfig() error = %v, expected it to contain %q", err, tt.contains)
			}
		})
	}
}

func TestSetUploadSizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	cfg.SetUploadSizeBytes(4096)
	if cfg.UploadSizeBytes() != 4096 || cfg.MaxUploadSize != "4096" {
		t.Errorf("after SetUploadSizeBytes(4096): %d / %q", cfg.UploadSizeBytes(), cfg.MaxUploadSize)
	}

	cfg.SetUploadSizeBytes(0)
	if cfg.UploadSizeBytes() != 4096 {
		t.Errorf("SetUploadSizeBytes(0) changed the limit to %d", cfg.UploadSizeBytes())
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"", constants.DefaultMaxUploadSizeBytes, false},
		{"1024", 1024, false},
		{"512b", 512, false},
		{"256K", 256 << 10, false},
		{"1m", 1 << 20, false},
		{"3 MB", 3 << 20, false},
		{"2G", 2 << 30, false},
		{"  4096   ", 4096, false},
		{"8589934591G", 8589934591 << 30, false},
		{"8589934592G", 0, true},
		{"9000000000000G", 0, true},
		{"1TB", 0, true},
		{"abc", 0, true},
		{"1.5M", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSize(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.expected {
			t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
