package handlers

import (
	"arenacustoms/internal/config"
	"arenacustoms/internal/notion"
	"arenacustoms/internal/repos"
	"arenacustoms/internal/services"
	"arenacustoms/internal/storefront"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler    *CatalogHandler
	DiagHandler       *DiagHandler
	StorefrontHandler *StorefrontHandler
}

// NewDeps wires handlers. db may be nil, which disables the fetch log.
func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	var fetchLog *repos.FetchLogRepo
	if db != nil {
		fetchLog = repos.NewFetchLogRepo(db)
	}
	catalogSvc := services.NewCatalogService(cfg.Store, notion.NewClient(cfg.Store, nil), fetchLog)
	loader := storefront.NewLoader(cfg.CatalogAPIURL, cfg.SnapshotURL, 0)

	return &Deps{
		CatalogHandler:    &CatalogHandler{Catalog: catalogSvc},
		DiagHandler:       &DiagHandler{Store: cfg.Store, Log: fetchLog},
		StorefrontHandler: &StorefrontHandler{Loader: loader},
	}
}
