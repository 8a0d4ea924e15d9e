package scales

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Point is one output bucket: the value of every device plus the bucket time.
// Keys is shared between all points of a series.
type Point struct {
	Timestamp int64
	Keys      []string
	Values    []float64
}

// Get returns the value of a device key
func (p Point) Get(key string) (float64, bool) {
	for i, k := range p.Keys {
		if k == key {
			return p.Values[i], true
		}
	}
	return 0, false
}

// MarshalJSON encodes the point as a flat object, {"id_a": 1, "timestamp": 1600000000}
func (p Point) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.Keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		buf.WriteByte(',')
	}
	buf.WriteString(`"timestamp":`)
	buf.Write(strconv.AppendInt(nil, p.Timestamp, 10))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type TimePeriod struct {
	Start int64 `json:"start"`
	Stop  int64 `json:"stop"`
}

// Series is the response of the history, accumulated and daily endpoints
type Series struct {
	TimePeriod TimePeriod `json:"timePeriod"`
	Readings   []Point    `json:"readings"`
}

// Total is the last point of an accumulated series, nil if there were no rows
type Total struct {
	TimePeriod TimePeriod `json:"timePeriod"`
	Total      *Point     `json:"total"`
}

// Latest is the most recent reading of one device
type Latest struct {
	Time     int64   `json:"time"`
	Weight   float64 `json:"weight"`
	DeviceID string  `json:"device_id"`
}
