package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from a .env file when
// present and then the environment.
type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	TokenKey        string
	TLSCertFile     string
	TLSKeyFile      string
	RateRPS         float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

// Load reads configuration, applying defaults where unset. TOKEN_KEY
// has no default, the JWT secret must come from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	rps, err := parseRateRPS()
	if err != nil {
		return nil, err
	}
	burst, err := parseRateBurst()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DatabaseURL:     envOrDefault("DATABASE_URL", "user=postgres dbname=postgres password=password sslmode=disable"),
		TokenKey:        os.Getenv("TOKEN_KEY"),
		TLSCertFile:     os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:      os.Getenv("TLS_KEY_FILE"),
		RateRPS:         rps,
		RateBurst:       burst,
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.TokenKey == "" {
		return nil, errors.New("TOKEN_KEY is required")
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "5s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func parseRateRPS() (float64, error) {
	s := envOrDefault("RATE_RPS", "1")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid RATE_RPS")
	}
	return v, nil
}

func parseRateBurst() (int, error) {
	s := envOrDefault("RATE_BURST", "3")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New("invalid RATE_BURST")
	}
	return n, nil
}
