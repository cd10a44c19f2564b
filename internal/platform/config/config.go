package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAuditSecret = "super_secret_tamper_proof_salt_2025"

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName      string
	HTTPPort         string
	PostgresDSN      string
	AuditPostgresDSN string

	AuditSecret        string
	EnableAuditTrail   bool
	AuditQueueSize     int
	AuditSweepInterval time.Duration
}

func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "skypolls"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	pollsDSN := os.Getenv("POSTGRES_DSN")
	auditDSN := os.Getenv("AUDIT_POSTGRES_DSN")
	if auditDSN == "" {
		auditDSN = pollsDSN
	}

	secret := os.Getenv("AUDIT_HASH_SECRET")
	if secret == "" {
		secret = defaultAuditSecret
	}

	return Config{
		ServiceName:      service,
		HTTPPort:         port,
		PostgresDSN:      pollsDSN,
		AuditPostgresDSN: auditDSN,

		AuditSecret:        secret,
		EnableAuditTrail:   envBool("ENABLE_AUDIT_TRAIL", true),
		AuditQueueSize:     envInt("AUDIT_QUEUE_SIZE", 256),
		AuditSweepInterval: envDuration("AUDIT_SWEEP_INTERVAL", 5*time.Minute),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
