// Package influx reads scale data from InfluxDB 2.x with flux queries
package influx

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/martin2250/scaleapi/scales"
)

type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string

	Measurement string
	Field       string

	Timeout time.Duration
}

var DefaultConfig = Config{
	URL:         "https://europe-west1-1.gcp.cloud2.influxdata.com",
	Measurement: "weight_measurement",
	Field:       "weight",
	Timeout:     30 * time.Second,
}

// Backend owns one influx client, it is shared by all requests
type Backend struct {
	client influxdb2.Client
	query  api.QueryAPI
	conf   Config
}

func New(conf Config) *Backend {
	opts := influxdb2.DefaultOptions()
	if conf.Timeout > 0 {
		opts.SetHTTPRequestTimeout(uint(conf.Timeout / time.Second))
	}
	client := influxdb2.NewClientWithOptions(conf.URL, conf.Token, opts)
	return &Backend{
		client: client,
		query:  client.QueryAPI(conf.Org),
		conf:   conf,
	}
}

func (b *Backend) ServerAccumulation() bool { return true }

func (b *Backend) Close() {
	b.client.Close()
}

// Ping checks that the server is reachable
func (b *Backend) Ping(ctx context.Context) error {
	ok, err := b.client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("influx ping: %w", err)
	}
	if !ok {
		return fmt.Errorf("influx ping: server not ready")
	}
	return nil
}

func (b *Backend) Readings(ctx context.Context, q scales.Query) (scales.RowSource, error) {
	res, err := b.query.Query(ctx, b.readingsQuery(q))
	if err != nil {
		return nil, fmt.Errorf("influx query: %w", err)
	}
	return &rowSource{res: res}, nil
}

func (b *Backend) Latest(ctx context.Context, q scales.LatestQuery) ([]scales.Latest, error) {
	res, err := b.query.Query(ctx, b.latestQuery(q))
	if err != nil {
		return nil, fmt.Errorf("influx query: %w", err)
	}
	defer res.Close()

	latest := []scales.Latest{}
	for res.Next() {
		rec := res.Record()
		weight := toReading(rec.Value())
		device, _ := rec.ValueByKey("device_id").(string)
		latest = append(latest, scales.Latest{
			Time:     rec.Time().Unix(),
			Weight:   weight.Value,
			DeviceID: device,
		})
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("influx query: %w", err)
	}
	return latest, nil
}

// rowSource turns pivoted flux records into rows
type rowSource struct {
	res *api.QueryTableResult
	row scales.Row
}

func (s *rowSource) Next() bool {
	if !s.res.Next() {
		return false
	}
	rec := s.res.Record()

	values := rec.Values()
	s.row = scales.Row{
		Time:    rec.Time(),
		Start:   rec.Start(),
		Stop:    rec.Stop(),
		Columns: make(map[string]scales.Reading, len(values)),
	}
	for k, v := range values {
		if scales.IsDeviceKey(k) {
			s.row.Columns[k] = toReading(v)
		}
	}
	return true
}

func (s *rowSource) Row() scales.Row { return s.row }

func (s *rowSource) Err() error {
	if err := s.res.Err(); err != nil {
		return fmt.Errorf("influx query: %w", err)
	}
	return nil
}

func (s *rowSource) Close() error { return s.res.Close() }

func toReading(v interface{}) scales.Reading {
	switch v := v.(type) {
	case float64:
		return scales.Value(v)
	case int64:
		return scales.Value(float64(v))
	case uint64:
		return scales.Value(float64(v))
	}
	return scales.Reading{}
}
