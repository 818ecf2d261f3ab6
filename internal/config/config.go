package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	StoreHost string
	StorePort int
	PoolSize  int
	JWTSecret string

	AdminEmail string
	AdminPass  string

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	FromAddress   string
	OperatorEmail string

	DispatchCompanies []string
	GelfAddr          string
}

func Load() *Config {
	// A missing .env is fine; the environment wins either way.
	godotenv.Load()

	return &Config{
		HTTPAddr:  getEnv("INTAKE_ADDR", ":8080"),
		StoreHost: getEnv("OXIDB_HOST", "127.0.0.1"),
		StorePort: getEnvInt("OXIDB_PORT", 4444),
		PoolSize:  getEnvInt("INTAKE_POOL_SIZE", 3),
		JWTSecret: getEnv("INTAKE_JWT_SECRET", "intake-dev-secret-change-me"),

		AdminEmail: getEnv("INTAKE_ADMIN_EMAIL", "admin@intake.local"),
		AdminPass:  getEnv("INTAKE_ADMIN_PASS", "admin123"),

		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPass:      getEnv("SMTP_PASS", ""),
		FromAddress:   getEnv("INTAKE_FROM", "noreply@echologistics.example"),
		OperatorEmail: getEnv("INTAKE_OPERATOR_EMAIL", "operations@echologistics.example"),

		DispatchCompanies: getEnvList("INTAKE_DISPATCH_COMPANIES", []string{
			"Echo Logistics Inc",
			"Dedicated Global Carrier LLC",
		}),
		GelfAddr: getEnv("INTAKE_GELF_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
