package config

import (
	"strings"
	"testing"
)

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		port int
		want string
	}{
		{5000, ":5000"},
		{8080, ":8080"},
	}
	for _, tt := range tests {
		cfg := Config{Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with port %d: got %q, want %q", tt.port, got, tt.want)
		}
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "development is never validated",
			cfg:  Config{Environment: EnvDevelopment, LogLevel: "debug", CORSAllowedOrigins: "*"},
		},
		{
			name: "valid production",
			cfg:  Config{Environment: EnvProduction, LogLevel: "info", CORSAllowedOrigins: "https://shop.example.com", Port: 5000},
		},
		{
			name:    "debug logging rejected",
			cfg:     Config{Environment: EnvProduction, LogLevel: "debug", CORSAllowedOrigins: "https://shop.example.com", Port: 5000},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "wildcard CORS rejected",
			cfg:     Config{Environment: EnvProduction, LogLevel: "info", CORSAllowedOrigins: "*", Port: 5000},
			wantErr: "CORS_ALLOWED_ORIGINS",
		},
		{
			name:    "port out of range",
			cfg:     Config{Environment: EnvProduction, LogLevel: "info", CORSAllowedOrigins: "https://shop.example.com", Port: 70000},
			wantErr: "PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForProduction(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
