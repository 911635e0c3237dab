package toolkit

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// HarnessConfig is everything the runner needs to drive one run against a
// deployed backend. Values come from the environment (optionally a .env
// file); CLI flags may override individual fields afterwards.
type HarnessConfig struct {
	BaseURL    string
	Timeout    time.Duration
	Workers    int
	ReportPath string

	SuperAdmin    Credentials
	CurrentAdmin  Credentials
	Seller        Credentials
	SellerStoreID string
}

const (
	defaultTimeout = 15 * time.Second
	defaultWorkers = 4
	defaultReport  = "./report.json"
)

// LoadConfig reads the harness configuration from the environment. A .env
// file in the working directory is loaded first when present, matching how
// the backend team distributes run credentials.
func LoadConfig() (HarnessConfig, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("toolkit.config: loaded .env")
	}

	cfg := HarnessConfig{
		BaseURL:    strings.TrimSpace(os.Getenv("E2E_BASE_URL")),
		Timeout:    defaultTimeout,
		Workers:    defaultWorkers,
		ReportPath: defaultReport,
		SuperAdmin: Credentials{
			Email:    os.Getenv("E2E_SUPER_ADMIN_EMAIL"),
			Password: os.Getenv("E2E_SUPER_ADMIN_PASSWORD"),
		},
		CurrentAdmin: Credentials{
			Email:    os.Getenv("E2E_CURRENT_ADMIN_EMAIL"),
			Password: os.Getenv("E2E_CURRENT_ADMIN_PASSWORD"),
		},
		Seller: Credentials{
			Email:    os.Getenv("E2E_SELLER_EMAIL"),
			Password: os.Getenv("E2E_SELLER_PASSWORD"),
		},
		SellerStoreID: os.Getenv("E2E_SELLER_STORE_ID"),
	}

	if raw := os.Getenv("E2E_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return HarnessConfig{}, fmt.Errorf("E2E_TIMEOUT_SECONDS must be a positive integer, got=%q", raw)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if raw := os.Getenv("E2E_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return HarnessConfig{}, fmt.Errorf("E2E_WORKERS must be a positive integer, got=%q", raw)
		}
		cfg.Workers = n
	}

	log.Printf("toolkit.config: loaded base=%s timeout=%s workers=%d", cfg.BaseURL, cfg.Timeout, cfg.Workers)
	return cfg, nil
}

// Validate checks the fields every run needs. Called after flag overrides.
func (c HarnessConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base URL is empty (set E2E_BASE_URL or --base-url)")
	}
	if !isAbsoluteURL(c.BaseURL) {
		return fmt.Errorf("base URL must be absolute, got=%q", c.BaseURL)
	}
	if c.SuperAdmin.Email == "" || c.SuperAdmin.Password == "" {
		return fmt.Errorf("super admin credentials missing (E2E_SUPER_ADMIN_EMAIL / E2E_SUPER_ADMIN_PASSWORD)")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got=%d", c.Workers)
	}
	return nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
