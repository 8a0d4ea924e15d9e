package apiclient

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Column struct {
	Tags     map[string]string
	Factor   *float64 `yaml:",omitempty"`
	Function string   `yaml:",omitempty"`
}

type Query struct {
	Series    map[string]string
	Columns   []Column
	TimeStart time.Time
	TimeEnd   time.Time
	TimeStep  time.Duration
}

type queryYaml struct {
	Series    map[string]string
	Columns   []Column
	TimeStart int64
	TimeEnd   int64
	TimeStep  string
}

// Build encodes the query the way the server's query handler expects it
func (q Query) Build() ([]byte, error) {
	if q.TimeStep < time.Second {
		return nil, fmt.Errorf("time step %v smaller than 1s", q.TimeStep)
	}
	y := queryYaml{
		Series:    q.Series,
		Columns:   q.Columns,
		TimeStart: q.TimeStart.Unix(),
		TimeEnd:   q.TimeEnd.Unix(),
		TimeStep:  fmt.Sprintf("%ds", q.TimeStep/time.Second),
	}
	return yaml.Marshal(&y)
}
