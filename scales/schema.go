package scales

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSchemaMismatch is returned when a row carries a device that is not part
// of the query's schema
var ErrSchemaMismatch = errors.New("row does not match schema")

// Schema is the fixed, ordered set of device keys of one query
type Schema struct {
	keys  []string
	index map[string]int
}

// NewSchema creates a schema from device keys or identifiers, duplicates are dropped
func NewSchema(keys ...string) Schema {
	s := Schema{index: make(map[string]int, len(keys))}
	for _, k := range keys {
		k = DeviceKey(k)
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = len(s.keys)
		s.keys = append(s.keys, k)
	}
	return s
}

// SchemaFromRow derives the schema from the device columns of a row, sorted by key
func SchemaFromRow(r Row) Schema {
	keys := make([]string, 0, len(r.Columns))
	for col := range r.Columns {
		if IsDeviceKey(col) {
			keys = append(keys, col)
		}
	}
	sort.Strings(keys)
	return NewSchema(keys...)
}

func (s Schema) Keys() []string { return s.keys }
func (s Schema) Len() int       { return len(s.keys) }

// Align writes the readings of r into dst in schema order.
// Devices missing from the row are absent.
func (s Schema) Align(r Row, dst []Reading) error {
	if len(dst) != len(s.keys) {
		return fmt.Errorf("%w: buffer has %d slots, schema %d", ErrSchemaMismatch, len(dst), len(s.keys))
	}
	for i := range dst {
		dst[i] = Reading{}
	}
	for col, reading := range r.Columns {
		if !IsDeviceKey(col) {
			continue
		}
		i, ok := s.index[col]
		if !ok {
			return fmt.Errorf("%w: unexpected device %q", ErrSchemaMismatch, col)
		}
		dst[i] = reading
	}
	return nil
}
