package scales

import (
	"strings"
	"time"
)

// DeviceKeyPrefix marks the columns of a row that hold device readings
const DeviceKeyPrefix = "id_"

// DeviceKey returns the output key of a device identifier
func DeviceKey(id string) string {
	if strings.HasPrefix(id, DeviceKeyPrefix) {
		return id
	}
	return DeviceKeyPrefix + id
}

// IsDeviceKey reports whether a column name refers to a device
func IsDeviceKey(column string) bool {
	return len(column) > len(DeviceKeyPrefix) && strings.HasPrefix(column, DeviceKeyPrefix)
}

// Reading is the value of one device in one bucket.
// The zero Reading is absent, which is not the same as a reading of 0.
type Reading struct {
	Value   float64
	Present bool
}

// Value returns a present reading
func Value(v float64) Reading {
	return Reading{Value: v, Present: true}
}

// Row is one time bucket returned by a backend
type Row struct {
	Time time.Time

	// bounds of the whole query window, identical for every row of a query
	Start time.Time
	Stop  time.Time

	Columns map[string]Reading
}

// RowSource yields rows in time order. Usage follows bufio.Scanner:
// call Next until it returns false, then check Err.
type RowSource interface {
	Next() bool
	Row() Row
	Err() error
	Close() error
}

// SliceSource is a RowSource over rows that are already in memory
type SliceSource struct {
	rows []Row
	next int
}

// NewSliceSource returns a source yielding rows in the given order
func NewSliceSource(rows ...Row) *SliceSource {
	return &SliceSource{rows: rows}
}

func (s *SliceSource) Next() bool {
	if s.next >= len(s.rows) {
		return false
	}
	s.next++
	return true
}

func (s *SliceSource) Row() Row {
	return s.rows[s.next-1]
}

func (s *SliceSource) Err() error   { return nil }
func (s *SliceSource) Close() error { return nil }

// unixSeconds converts t to epoch seconds, the zero time maps to 0
func unixSeconds(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
