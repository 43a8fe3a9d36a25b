package config_test

import (
	"testing"
	"time"

	"arenacustoms/internal/config"
	"arenacustoms/internal/notion"
)

func TestStoreFromEnv_Defaults(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("NOTION_PRODUCTS_DB", "")
	t.Setenv("NOTION_DB", "")
	t.Setenv("NOTION_PAGE_TIMEOUT", "")
	t.Setenv("NOTION_RPS", "")
	t.Setenv("NOTION_STATUS_FILTER", "")

	s := config.StoreFromEnv()
	if len(s.Missing()) != 2 {
		t.Fatalf("want both settings missing, got %v", s.Missing())
	}
	if s.Version != notion.DefaultVersion || s.BaseURL != notion.DefaultBaseURL {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.PageTimeout != 10*time.Second || s.RequestsPerSecond != 3 || s.StatusFilter {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestStoreFromEnv_DatabaseAliases(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "tok")
	t.Setenv("NOTION_PRODUCTS_DB", "")
	t.Setenv("NOTION_DB", "legacy")
	if got := config.StoreFromEnv().DatabaseID; got != "legacy" {
		t.Fatalf("want legacy db name honored, got %q", got)
	}

	t.Setenv("NOTION_PRODUCTS_DB", "products")
	if got := config.StoreFromEnv().DatabaseID; got != "products" {
		t.Fatalf("want NOTION_PRODUCTS_DB preferred, got %q", got)
	}
}

func TestStoreFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("NOTION_PAGE_TIMEOUT", "soon")
	t.Setenv("NOTION_RPS", "fast")
	t.Setenv("NOTION_STATUS_FILTER", "maybe")
	s := config.StoreFromEnv()
	if s.PageTimeout != 10*time.Second || s.RequestsPerSecond != 3 || s.StatusFilter {
		t.Fatalf("bad values should fall back to defaults: %+v", s)
	}

	t.Setenv("NOTION_STATUS_FILTER", "true")
	t.Setenv("NOTION_PAGE_TIMEOUT", "3s")
	s = config.StoreFromEnv()
	if !s.StatusFilter || s.PageTimeout != 3*time.Second {
		t.Fatalf("want parsed values, got %+v", s)
	}
}
