package config

import (
	"strings"
	"testing"
)

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"dev", "dev", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsProduction(); got != tt.expected {
				t.Errorf("IsProduction() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"empty", "", true},
		{"production", "production", false},
		{"prod", "prod", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsDevelopment(); got != tt.expected {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_Validate_ProductionSecrets(t *testing.T) {
	strong := strings.Repeat("s", 32)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "production without secrets",
			cfg:     Config{Environment: "production", BackendAPIURL: "http://api"},
			wantErr: true,
		},
		{
			name:    "production with short secret",
			cfg:     Config{Environment: "production", BackendAPIURL: "http://api", CookieSecrets: []string{"short"}},
			wantErr: true,
		},
		{
			name:    "production with rotated secrets, one short",
			cfg:     Config{Environment: "production", BackendAPIURL: "http://api", CookieSecrets: []string{strong, "short"}},
			wantErr: true,
		},
		{
			name:    "production with strong secrets",
			cfg:     Config{Environment: "production", BackendAPIURL: "http://api", CookieSecrets: []string{strong, strong}},
			wantErr: false,
		},
		{
			name:    "missing backend url",
			cfg:     Config{Environment: "development", BackendAPIURL: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_DevelopmentDefaultSecret(t *testing.T) {
	cfg := Config{Environment: "development", BackendAPIURL: "http://api"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(cfg.CookieSecrets) != 1 {
		t.Fatalf("expected a default cookie secret, got %d", len(cfg.CookieSecrets))
	}
}

func TestSplitSecrets(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"empty", "", 0},
		{"single", "secret-a", 1},
		{"rotated pair", "secret-a,secret-b", 2},
		{"whitespace and empties", " secret-a , ,secret-b, ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitSecrets(tt.raw); len(got) != tt.expected {
				t.Errorf("splitSecrets(%q) = %v, want %d entries", tt.raw, got, tt.expected)
			}
		})
	}
}
