package domain

import "time"

// FetchRecord is one catalog retrieval outcome kept for diagnostics.
type FetchRecord struct {
	ID        string    `db:"id" json:"-"`
	At        time.Time `db:"at" json:"at"`
	Source    Source    `db:"source" json:"source"`
	Count     int       `db:"count" json:"count"`
	OK        bool      `db:"ok" json:"ok"`
	Err       string    `db:"err" json:"err,omitempty"`
	LatencyMs int64     `db:"latency_ms" json:"latencyMs"`
}
