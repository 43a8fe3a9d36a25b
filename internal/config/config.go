package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"arenacustoms/internal/notion"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	StaticDir   string
	TemplateDir string
	// CatalogAPIURL and SnapshotURL are what the storefront page loads from.
	CatalogAPIURL string
	SnapshotURL   string
	Store         notion.Config
}

// Load reads the environment once, after an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	port := env("PORT", "8081")
	cfg := Config{
		Port:          port,
		DBDSN:         env("DB_DSN", "arenacustoms.db"),
		LogFile:       os.Getenv("LOG_FILE"),
		StaticDir:     env("STATIC_DIR", "./web/static"),
		TemplateDir:   env("TEMPLATE_DIR", "./web/templates"),
		CatalogAPIURL: env("CATALOG_API_URL", "http://127.0.0.1:"+port+"/api/products"),
		SnapshotURL:   env("SNAPSHOT_URL", "http://127.0.0.1:"+port+"/products.json"),
		Store:         StoreFromEnv(),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s STATIC_DIR=%s NOTION_TOKEN set=%t NOTION_DB set=%t",
		cfg.Port, cfg.DBDSN, cfg.StaticDir, cfg.Store.Token != "", cfg.Store.DatabaseID != "")
	return cfg
}

// StoreFromEnv builds the store settings; NOTION_PRODUCTS_DB wins over the
// older NOTION_DB name.
func StoreFromEnv() notion.Config {
	db := os.Getenv("NOTION_PRODUCTS_DB")
	if db == "" {
		db = os.Getenv("NOTION_DB")
	}
	return notion.Config{
		Token:             strings.TrimSpace(os.Getenv("NOTION_TOKEN")),
		DatabaseID:        strings.TrimSpace(db),
		Version:           env("NOTION_VERSION", notion.DefaultVersion),
		BaseURL:           env("NOTION_BASE_URL", notion.DefaultBaseURL),
		PageTimeout:       duration("NOTION_PAGE_TIMEOUT", 10*time.Second),
		RequestsPerSecond: float("NOTION_RPS", 3),
		StatusFilter:      boolean("NOTION_STATUS_FILTER", false),
	}
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] ignoring %s=%q: %v", key, v, err)
		return def
	}
	return d
}

func float(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] ignoring %s=%q: %v", key, v, err)
		return def
	}
	return f
}

func boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] ignoring %s=%q: %v", key, v, err)
		return def
	}
	return b
}
