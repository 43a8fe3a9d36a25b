package main

import (
	"io"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"arenacustoms/internal/config"
	"arenacustoms/internal/http/handlers"
	applog "arenacustoms/internal/log"
	"arenacustoms/internal/repos"
)

func main() {
	applog.SetService("web")
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	// The fetch log is diagnostics only; the catalog keeps working without it.
	var db *sqlx.DB
	if cfg.DBDSN != "" {
		d, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			log.Printf("[warn] fetch log disabled: %v", err)
		} else {
			db = d
			defer db.Close()
		}
	}

	deps := handlers.NewDeps(db, cfg)
	app := handlers.NewApp(cfg, deps)

	log.Printf("[static] /products.json, /images -> %s", cfg.StaticDir)
	log.Fatal(app.Listen(":" + cfg.Port))
}
