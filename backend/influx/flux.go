package influx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/martin2250/scaleapi/scales"
)

// fluxDuration formats d as a flux duration literal in whole seconds
func fluxDuration(d time.Duration) string {
	s := int64(d / time.Second)
	if s < 1 {
		s = 1
	}
	return strconv.FormatInt(s, 10) + "s"
}

func fluxTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// source writes from, range and the measurement filters
func (b *Backend) source(w *strings.Builder, start, stop time.Time, userID string) {
	fmt.Fprintf(w, "from(bucket: %q)\n", b.conf.Bucket)
	fmt.Fprintf(w, "  |> range(start: %s, stop: %s)\n", fluxTime(start), fluxTime(stop))
	fmt.Fprintf(w, "  |> filter(fn: (r) => r[\"_measurement\"] == %q)\n", b.conf.Measurement)
	fmt.Fprintf(w, "  |> filter(fn: (r) => r[\"_field\"] == %q)\n", b.conf.Field)
	if userID != "" {
		fmt.Fprintf(w, "  |> filter(fn: (r) => r[\"user_id\"] == %q)\n", userID)
	}
}

// readingsQuery averages every window, carries the last value into empty
// windows and pivots devices into columns. With Accumulate the positive
// differences are summed up before the pivot, starting from 0 like
// scales.Accumulator so both modes return the same points.
func (b *Backend) readingsQuery(q scales.Query) string {
	var w strings.Builder
	b.source(&w, q.Start, q.Stop, q.UserID)
	fmt.Fprintf(&w, "  |> aggregateWindow(every: %s, fn: mean)\n", fluxDuration(q.Every))
	w.WriteString("  |> fill(column: \"_value\", usePrevious: true)\n")
	if q.Accumulate {
		// the first window keeps its raw value as difference from 0
		w.WriteString("  |> duplicate(column: \"_value\", as: \"raw\")\n")
		w.WriteString("  |> difference(nonNegative: false, keepFirst: true)\n")
		w.WriteString("  |> map(fn: (r) => ({r with _value: if exists r._value then r._value else if exists r.raw then r.raw else 0.0}))\n")
		w.WriteString("  |> map(fn: (r) => ({r with _value: if r._value > 0.0 then r._value else 0.0}))\n")
		w.WriteString("  |> cumulativeSum()\n")
		w.WriteString("  |> drop(columns: [\"raw\"])\n")
	}
	w.WriteString("  |> pivot(rowKey: [\"_time\"], columnKey: [\"device_id\"], valueColumn: \"_value\")\n")
	w.WriteString("  |> yield(name: \"mean\")\n")
	return w.String()
}

func (b *Backend) latestQuery(q scales.LatestQuery) string {
	var w strings.Builder
	b.source(&w, q.Stop.Add(-q.Window), q.Stop, q.UserID)
	w.WriteString("  |> group(columns: [\"device_id\"])\n")
	w.WriteString("  |> last()\n")
	w.WriteString("  |> yield(name: \"latest\")\n")
	return w.String()
}
