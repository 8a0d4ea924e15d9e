package scales

import (
	"context"
	"time"
)

// Query describes the rows requested from a backend. Rows are aggregated
// (mean) over windows of length Every and pivoted to one column per device.
type Query struct {
	UserID string

	Start time.Time
	Stop  time.Time
	Every time.Duration

	// Accumulate asks the backend to return cumulative sums of the positive
	// differences instead of raw readings. Only set when ServerAccumulation is true.
	Accumulate bool
}

// LatestQuery asks for the last reading of each device within [Stop-Window, Stop].
// An empty UserID matches all users.
type LatestQuery struct {
	UserID string
	Window time.Duration
	Stop   time.Time
}

// Backend executes queries against a time series database
type Backend interface {
	Readings(ctx context.Context, q Query) (RowSource, error)
	Latest(ctx context.Context, q LatestQuery) ([]Latest, error)

	// ServerAccumulation reports whether Query.Accumulate is supported
	ServerAccumulation() bool

	Close()
}
