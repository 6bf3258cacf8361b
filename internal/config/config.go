package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string

	// Wizard behavior
	SessionTTL     time.Duration // how long an abandoned session survives
	ResendCooldown time.Duration // caller-side throttle between OTP resends
	SubmitDelay    time.Duration // simulated latency of the final submission

	// Upstreams
	UpstreamTimeout time.Duration // per-call timeout for provider HTTP calls
	EnrichBaseURL   string
	EnrichToken     string // THE_COMPANIES_API_TOKEN; absence is a per-request 500

	// Session store. Empty RedisAddr means in-memory sessions only.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// Load reads configuration from the environment. A .env file is loaded when
// present but is optional.
//
// Unlike a service with hard infrastructure needs, nothing here fails
// startup: missing OTP or enrichment credentials are surfaced per-request as
// configuration errors by the affected endpoints, and a missing Redis address
// just selects the in-memory session store.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		EnrichBaseURL: getEnv("ENRICH_BASE_URL", "https://api.thecompaniesapi.com"),
		EnrichToken:   os.Getenv("THE_COMPANIES_API_TOKEN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	db, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = db

	ttl, err := getDuration("SESSION_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	cd, err := getDuration("RESEND_COOLDOWN", 45*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ResendCooldown = cd

	sd, err := getDuration("SUBMIT_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.SubmitDelay = sd

	ut, err := getDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.UpstreamTimeout = ut

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
