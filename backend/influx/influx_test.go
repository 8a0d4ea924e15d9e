package influx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/martin2250/scaleapi/scales"
)

const pivotedCSV = `#datatype,string,long,dateTime:RFC3339,dateTime:RFC3339,dateTime:RFC3339,string,double,double
#group,false,false,true,true,false,true,false,false
#default,mean,,,,,,,
,result,table,_start,_stop,_time,user_id,id_1,id_2
,,0,2023-01-01T00:00:00Z,2023-01-01T04:00:00Z,2023-01-01T00:01:00Z,alice,10,
,,0,2023-01-01T00:00:00Z,2023-01-01T04:00:00Z,2023-01-01T00:02:00Z,alice,4,3
,,0,2023-01-01T00:00:00Z,2023-01-01T04:00:00Z,2023-01-01T00:03:00Z,alice,7,3.5

`

// accumulatedCSV is pivotedCSV after the accumulating pipeline, the first
// window counts from 0
const accumulatedCSV = `#datatype,string,long,dateTime:RFC3339,dateTime:RFC3339,dateTime:RFC3339,string,double,double
#group,false,false,true,true,false,true,false,false
#default,mean,,,,,,,
,result,table,_start,_stop,_time,user_id,id_1,id_2
,,0,2023-01-01T00:00:00Z,2023-01-01T04:00:00Z,2023-01-01T00:01:00Z,alice,10,0
,,0,2023-01-01T00:00:00Z,2023-01-01T04:00:00Z,2023-01-01T00:02:00Z,alice,10,3
,,0,2023-01-01T00:00:00Z,2023-01-01T04:00:00Z,2023-01-01T00:03:00Z,alice,13,3.5

`

const latestCSV = `#datatype,string,long,dateTime:RFC3339,dateTime:RFC3339,dateTime:RFC3339,double,string,string,string
#group,false,false,true,true,false,false,true,true,true
#default,latest,,,,,,,,
,result,table,_start,_stop,_time,_value,_field,_measurement,device_id
,,0,2022-12-30T00:00:00Z,2023-01-01T00:00:00Z,2022-12-31T23:59:00Z,412.5,weight,weight_measurement,id_1
,,1,2022-12-30T00:00:00Z,2023-01-01T00:00:00Z,2022-12-31T22:00:00Z,80,weight,weight_measurement,id_2

`

type fluxRequest struct {
	Query string `json:"query"`
}

func testBackend(t *testing.T, body string, status int, queries *[]string) *Backend {
	t.Helper()
	return testBackendFunc(t, status, queries, func(string) string { return body })
}

// testBackendFunc answers every flux query with the result of body
func testBackendFunc(t *testing.T, status int, queries *[]string, body func(query string) string) *Backend {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/query" {
			t.Errorf("path = %q, want /api/v2/query", r.URL.Path)
		}
		if org := r.URL.Query().Get("org"); org != "my-org" {
			t.Errorf("org = %q", org)
		}
		buf, _ := io.ReadAll(r.Body)
		var req fluxRequest
		json.Unmarshal(buf, &req)
		if queries != nil {
			*queries = append(*queries, req.Query)
		}

		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(body(req.Query)))
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Write([]byte(body(req.Query)))
	}))
	t.Cleanup(srv.Close)

	conf := DefaultConfig
	conf.URL = srv.URL
	conf.Org = "my-org"
	conf.Bucket = "scales"
	conf.Token = "token"
	b := New(conf)
	t.Cleanup(b.Close)
	return b
}

func TestReadings(t *testing.T) {
	var queries []string
	b := testBackend(t, pivotedCSV, http.StatusOK, &queries)

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	src, err := b.Readings(context.Background(), scales.Query{
		UserID: "alice",
		Start:  start,
		Stop:   start.Add(4 * time.Hour),
		Every:  time.Minute,
	})
	if err != nil {
		t.Fatal(err)
	}

	series, err := scales.Collect(src, scales.NewAccumulator(scales.AbsentZero))
	if err != nil {
		t.Fatal(err)
	}

	if len(queries) != 1 || !strings.Contains(queries[0], `r["user_id"] == "alice"`) {
		t.Errorf("queries = %q", queries)
	}

	wantPeriod := scales.TimePeriod{Start: start.Unix(), Stop: start.Add(4 * time.Hour).Unix()}
	if series.TimePeriod != wantPeriod {
		t.Errorf("TimePeriod = %+v, want %+v", series.TimePeriod, wantPeriod)
	}

	var got [][]float64
	for _, p := range series.Readings {
		got = append(got, p.Values)
	}
	want := [][]float64{{10, 0}, {10, 3}, {13, 3.5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
	if ts := series.Readings[0].Timestamp; ts != start.Add(time.Minute).Unix() {
		t.Errorf("timestamp = %d", ts)
	}
}

func TestReadingsError(t *testing.T) {
	b := testBackend(t, `{"code":"unauthorized","message":"unauthorized access"}`, http.StatusUnauthorized, nil)
	_, err := b.Readings(context.Background(), scales.Query{Every: time.Minute})
	if err == nil || !strings.Contains(err.Error(), "unauthorized access") {
		t.Errorf("err = %v", err)
	}
}

func TestLatest(t *testing.T) {
	b := testBackend(t, latestCSV, http.StatusOK, nil)
	stop := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	latest, err := b.Latest(context.Background(), scales.LatestQuery{Window: 48 * time.Hour, Stop: stop})
	if err != nil {
		t.Fatal(err)
	}
	want := []scales.Latest{
		{Time: stop.Add(-time.Minute).Unix(), Weight: 412.5, DeviceID: "id_1"},
		{Time: stop.Add(-2 * time.Hour).Unix(), Weight: 80, DeviceID: "id_2"},
	}
	if !reflect.DeepEqual(latest, want) {
		t.Errorf("latest = %+v, want %+v", latest, want)
	}
}

func TestServerAccumulationMatchesClient(t *testing.T) {
	var queries []string
	b := testBackendFunc(t, http.StatusOK, &queries, func(query string) string {
		if strings.Contains(query, "cumulativeSum()") {
			return accumulatedCSV
		}
		return pivotedCSV
	})

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	q := scales.Query{
		UserID: "alice",
		Start:  start,
		Stop:   start.Add(4 * time.Hour),
		Every:  time.Minute,
	}

	src, err := b.Readings(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	client, err := scales.Collect(src, scales.NewAccumulator(scales.AbsentZero))
	if err != nil {
		t.Fatal(err)
	}

	q.Accumulate = true
	src, err = b.Readings(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	server, err := scales.Collect(src, scales.NewReshaper(scales.AbsentZero))
	if err != nil {
		t.Fatal(err)
	}

	if len(queries) != 2 || strings.Contains(queries[0], "keepFirst") || !strings.Contains(queries[1], "keepFirst: true") {
		t.Fatalf("queries = %q", queries)
	}
	if len(server.Readings) != len(client.Readings) {
		t.Fatalf("server returned %d points, client %d", len(server.Readings), len(client.Readings))
	}
	if !reflect.DeepEqual(server, client) {
		t.Errorf("server = %+v, client = %+v", server, client)
	}
}
