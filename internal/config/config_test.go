package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Set required JWT_SECRET
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	// Clear any other env vars that might interfere
	envVars := []string{"SERVER_ADDR", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "SESSION_TOKEN_TTL", "REGISTRATION_TOKEN_TTL", "RESET_TOKEN_TTL"}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Check defaults
	if cfg.ServerAddr != "0.0.0.0" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, "0.0.0.0")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "localhost")
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, want %d", cfg.DBPort, 5432)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want %q", cfg.DBSSLMode, "disable")
	}
	if cfg.SessionTokenTTL != time.Hour {
		t.Errorf("SessionTokenTTL = %v, want %v", cfg.SessionTokenTTL, time.Hour)
	}
	if cfg.RegistrationTokenTTL != 24*time.Hour {
		t.Errorf("RegistrationTokenTTL = %v, want %v", cfg.RegistrationTokenTTL, 24*time.Hour)
	}
	if cfg.ResetTokenTTL != time.Hour {
		t.Errorf("ResetTokenTTL = %v, want %v", cfg.ResetTokenTTL, time.Hour)
	}
}

func TestLoad_RequiredJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Error("Load should fail when JWT_SECRET is not set")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("JWT_SECRET", "custom-secret")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_HOST", "db.example.com")
	os.Setenv("SESSION_TOKEN_TTL", "30m")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("SESSION_TOKEN_TTL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 9090)
	}
	if cfg.DBHost != "db.example.com" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "db.example.com")
	}
	if cfg.SessionTokenTTL != 30*time.Minute {
		t.Errorf("SessionTokenTTL = %v, want %v", cfg.SessionTokenTTL, 30*time.Minute)
	}
}

func TestHasSMTP(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		from     string
		expected bool
	}{
		{
			name:     "both set",
			host:     "smtp.example.com",
			from:     "noreply@example.com",
			expected: true,
		},
		{
			name:     "only host",
			host:     "smtp.example.com",
			from:     "",
			expected: false,
		},
		{
			name:     "only from",
			host:     "",
			from:     "noreply@example.com",
			expected: false,
		},
		{
			name:     "neither set",
			host:     "",
			from:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				SMTPHost: tt.host,
				SMTPFrom: tt.from,
			}
			if cfg.HasSMTP() != tt.expected {
				t.Errorf("HasSMTP() = %v, want %v", cfg.HasSMTP(), tt.expected)
			}
		})
	}
}

func TestGetEnvInt_InvalidValue(t *testing.T) {
	os.Setenv("TEST_INT", "not-a-number")
	defer os.Unsetenv("TEST_INT")

	result := getEnvInt("TEST_INT", 42)
	if result != 42 {
		t.Errorf("getEnvInt should return default for invalid value, got %d", result)
	}
}

func TestGetEnvDuration_InvalidValue(t *testing.T) {
	os.Setenv("TEST_DURATION", "invalid")
	defer os.Unsetenv("TEST_DURATION")

	result := getEnvDuration("TEST_DURATION", 5*time.Minute)
	if result != 5*time.Minute {
		t.Errorf("getEnvDuration should return default for invalid value, got %v", result)
	}
}
