// Package minitsdb reads scale data from a minitsdb server.
//
// Each user is a series tagged with the measurement name and user_id, each
// scale is a column of that series tagged with field=weight and its device_id.
package minitsdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/martin2250/scaleapi/pkg/apiclient"
	"github.com/martin2250/scaleapi/scales"
)

type Config struct {
	Address     string
	Measurement string
	Field       string
	Timeout     time.Duration
}

var DefaultConfig = Config{
	Address:     "http://localhost:8080/api/query",
	Measurement: "weight_measurement",
	Field:       "weight",
	Timeout:     30 * time.Second,
}

type Backend struct {
	client apiclient.Client
	conf   Config
}

func New(conf Config) *Backend {
	return &Backend{
		client: apiclient.Client{
			Address:    conf.Address,
			HttpClient: &http.Client{Timeout: conf.Timeout},
		},
		conf: conf,
	}
}

// ServerAccumulation is false, minitsdb can not drop negative differences
func (b *Backend) ServerAccumulation() bool { return false }

func (b *Backend) Close() {
	b.client.HttpClient.CloseIdleConnections()
}

func (b *Backend) query(ctx context.Context, userID, function string, start, stop time.Time, step time.Duration) (*apiclient.QueryResult, error) {
	series := map[string]string{"measurement": b.conf.Measurement}
	if userID != "" {
		series["user_id"] = userID
	}
	return b.client.Query(ctx, apiclient.Query{
		Series: series,
		Columns: []apiclient.Column{{
			Tags:     map[string]string{"field": b.conf.Field},
			Function: function,
		}},
		TimeStart: start,
		TimeEnd:   stop,
		TimeStep:  step,
	})
}

// Readings queries the bucket means and pivots them into rows. Buckets in
// which a scale has no point leave that scale absent.
func (b *Backend) Readings(ctx context.Context, q scales.Query) (scales.RowSource, error) {
	if q.Accumulate {
		return nil, fmt.Errorf("minitsdb: server side accumulation not supported")
	}

	res, err := b.query(ctx, q.UserID, "mean", q.Start, q.Stop, q.Every)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	buckets := make(map[int64]map[string]scales.Reading)

	for {
		chunk, err := res.ReadChunk()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("minitsdb read: %w", err)
		}

		keys := deviceKeys(res.Series[chunk.Index])
		for i, t := range chunk.Times {
			bucket, ok := buckets[t]
			if !ok {
				bucket = make(map[string]scales.Reading, len(keys))
				buckets[t] = bucket
			}
			for j, key := range keys {
				if key != "" {
					bucket[key] = scales.Value(chunk.Values[j][i])
				}
			}
		}
	}

	times := make([]int64, 0, len(buckets))
	for t := range buckets {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	rows := make([]scales.Row, len(times))
	for i, t := range times {
		rows[i] = scales.Row{
			Time:    time.Unix(t, 0),
			Start:   q.Start,
			Stop:    q.Stop,
			Columns: buckets[t],
		}
	}

	return scales.NewSliceSource(rows...), nil
}

// Latest queries a single bucket spanning the whole window with function last
func (b *Backend) Latest(ctx context.Context, q scales.LatestQuery) ([]scales.Latest, error) {
	res, err := b.query(ctx, q.UserID, "last", q.Stop.Add(-q.Window), q.Stop, q.Window)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	latest := make(map[string]scales.Latest)

	for {
		chunk, err := res.ReadChunk()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("minitsdb read: %w", err)
		}

		columns := res.Series[chunk.Index].Columns
		for j, col := range columns {
			id, ok := col["device_id"]
			if !ok {
				continue
			}
			for i, t := range chunk.Times {
				if prev, ok := latest[id]; ok && prev.Time > t {
					continue
				}
				latest[id] = scales.Latest{Time: t, Weight: chunk.Values[j][i], DeviceID: id}
			}
		}
	}

	list := make([]scales.Latest, 0, len(latest))
	for _, l := range latest {
		list = append(list, l)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DeviceID < list[j].DeviceID })

	return list, nil
}

// deviceKeys maps the columns of a series to device keys, "" for columns without device_id
func deviceKeys(s apiclient.Series) []string {
	keys := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		if id, ok := col["device_id"]; ok && id != "" {
			keys[i] = scales.DeviceKey(id)
		}
	}
	return keys
}
