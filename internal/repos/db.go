package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the operational database. It holds fetch diagnostics only;
// catalog data is never stored.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS fetch_log(
  id TEXT PRIMARY KEY,
  at DATETIME NOT NULL,
  source TEXT NOT NULL CHECK (source IN ('live','fallback')),
  count INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0),
  ok BOOLEAN NOT NULL,
  err TEXT NOT NULL DEFAULT '',
  latency_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_fetch_log_at ON fetch_log(at);
`
	_, err := db.Exec(schema)
	return err
}
