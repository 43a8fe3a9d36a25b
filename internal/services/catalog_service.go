package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"arenacustoms/internal/domain"
	applog "arenacustoms/internal/log"
	"arenacustoms/internal/notion"
	"arenacustoms/internal/repos"
)

// ConfigurationError means the store credentials or database id are not
// set. Callers are expected to fall back to the bundled snapshot.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "store not configured: missing " + strings.Join(e.Missing, ", ")
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// RecordStore is the paginated record source; *notion.Client implements it.
type RecordStore interface {
	QueryAll(ctx context.Context, filter *notion.Filter) ([]notion.Page, error)
}

type CatalogService struct {
	Cfg   notion.Config
	Store RecordStore
	Log   *repos.FetchLogRepo // optional
}

func NewCatalogService(cfg notion.Config, store RecordStore, fetchLog *repos.FetchLogRepo) *CatalogService {
	return &CatalogService{Cfg: cfg, Store: store, Log: fetchLog}
}

// FetchCatalog retrieves every row, normalizes it, and keeps only
// publishable products, in store order. Errors are either
// *ConfigurationError or *notion.UpstreamError.
func (s *CatalogService) FetchCatalog(ctx context.Context) (domain.CatalogSnapshot, error) {
	start := time.Now()
	snap, err := s.fetch(ctx)
	s.record(start, snap, err)
	return snap, err
}

func (s *CatalogService) fetch(ctx context.Context) (domain.CatalogSnapshot, error) {
	if missing := s.Cfg.Missing(); len(missing) > 0 {
		return domain.CatalogSnapshot{}, &ConfigurationError{Missing: missing}
	}

	var filter *notion.Filter
	if s.Cfg.StatusFilter {
		filter = &notion.Filter{Property: "Status", Select: &notion.SelectFilter{Equals: PublishableStatus}}
	}
	pages, err := s.Store.QueryAll(ctx, filter)
	if filter != nil && rejectedFilter(err) {
		// e.g. a status-typed property, or Status renamed in the database
		applog.Warn(nil, "catalog.pushdown.rejected", map[string]any{"reason": err.Error()})
		pages, err = s.Store.QueryAll(ctx, nil)
	}
	if err != nil {
		var ue *notion.UpstreamError
		if errors.As(err, &ue) {
			return domain.CatalogSnapshot{}, ue
		}
		return domain.CatalogSnapshot{}, &notion.UpstreamError{Message: err.Error(), Err: err}
	}

	products := make([]domain.Product, 0, len(pages))
	seen := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		p := Normalize(page)
		if p.ID == "" {
			applog.Warn(nil, "catalog.record.noid", map[string]any{"name": p.Name})
			continue
		}
		// The store-side filter is best effort; this check is authoritative.
		// Only publishable rows claim an id.
		if !Publishable(p) {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			applog.Warn(nil, "catalog.record.duplicate", map[string]any{"id": p.ID})
			continue
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
	}
	return domain.CatalogSnapshot{Products: products, Source: domain.SourceLive}, nil
}

// rejectedFilter reports whether the store refused the query itself rather
// than failing to serve it.
func rejectedFilter(err error) bool {
	var ue *notion.UpstreamError
	return errors.As(err, &ue) && ue.Status == http.StatusBadRequest
}

func (s *CatalogService) record(start time.Time, snap domain.CatalogSnapshot, err error) {
	rec := domain.FetchRecord{
		At:        start.UTC(),
		Source:    domain.SourceLive,
		Count:     len(snap.Products),
		OK:        err == nil,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	fields := map[string]any{"count": rec.Count, "latency_ms": rec.LatencyMs}
	switch {
	case err == nil:
		applog.Timed(nil, "catalog.fetch.ok", start, map[string]any{"count": rec.Count})
	case IsConfiguration(err):
		rec.Err = err.Error()
		applog.Warn(nil, "catalog.config.missing", map[string]any{"reason": err.Error()})
	default:
		rec.Err = err.Error()
		applog.Error(nil, "catalog.upstream.fail", err, fields)
	}
	if s.Log == nil {
		return
	}
	if lerr := s.Log.Record(rec); lerr != nil {
		applog.Error(nil, "catalog.fetchlog.fail", fmt.Errorf("record fetch: %w", lerr), nil)
	}
}
