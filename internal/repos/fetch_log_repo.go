package repos

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"arenacustoms/internal/domain"
)

type FetchLogRepo struct{ db *sqlx.DB }

func NewFetchLogRepo(db *sqlx.DB) *FetchLogRepo { return &FetchLogRepo{db: db} }

func (r *FetchLogRepo) Record(rec domain.FetchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.NamedExec(`
		INSERT INTO fetch_log(id, at, source, count, ok, err, latency_ms)
		VALUES (:id, :at, :source, :count, :ok, :err, :latency_ms)
	`, rec)
	return err
}

// Latest returns the most recent record, or nil when nothing was recorded yet.
func (r *FetchLogRepo) Latest() (*domain.FetchRecord, error) {
	var rec domain.FetchRecord
	err := r.db.Get(&rec, `
		SELECT id, at, source, count, ok, err, latency_ms
		FROM fetch_log
		ORDER BY at DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Recent returns up to n records, newest first.
func (r *FetchLogRepo) Recent(n int) ([]domain.FetchRecord, error) {
	if n <= 0 {
		n = 20
	}
	var out []domain.FetchRecord
	err := r.db.Select(&out, `
		SELECT id, at, source, count, ok, err, latency_ms
		FROM fetch_log
		ORDER BY at DESC
		LIMIT ?
	`, n)
	return out, err
}
