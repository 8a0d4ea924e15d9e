package scales

import (
	"reflect"
	"testing"
)

// series1 folds the readings of a single device and returns the outputs
func series1(f Folder, readings ...Reading) []float64 {
	f.Bind(1)
	out := make([]float64, 0, len(readings))
	for _, r := range readings {
		v := make([]float64, 1)
		f.Fold([]Reading{r}, v)
		out = append(out, v[0])
	}
	return out
}

func values(vs ...float64) []Reading {
	r := make([]Reading, len(vs))
	for i, v := range vs {
		r[i] = Value(v)
	}
	return r
}

func TestAccumulator(t *testing.T) {
	tests := []struct {
		name     string
		absent   AbsentPolicy
		readings []Reading
		want     []float64
	}{
		{
			name:     "reset then accumulate",
			readings: values(10, 10, 4, 7, 7),
			want:     []float64{10, 10, 10, 13, 13},
		},
		{
			name:     "monotonic",
			readings: values(2, 3, 5, 9),
			want:     []float64{2, 3, 5, 9},
		},
		{
			name:     "starts at zero",
			readings: values(0, 0, 1.5),
			want:     []float64{0, 0, 1.5},
		},
		{
			name:     "absent counts as zero",
			readings: []Reading{Value(5), {}, Value(8)},
			want:     []float64{5, 5, 13},
		},
		{
			name:     "absent holds previous",
			absent:   AbsentHold,
			readings: []Reading{Value(5), {}, Value(8)},
			want:     []float64{5, 5, 8},
		},
		{
			name:     "present zero is not held",
			absent:   AbsentHold,
			readings: []Reading{Value(5), Value(0), Value(8)},
			want:     []float64{5, 5, 13},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := series1(NewAccumulator(tt.absent), tt.readings...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fold() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccumulatorNonDecreasing(t *testing.T) {
	readings := values(3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9)
	got := series1(NewAccumulator(AbsentZero), readings...)
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("total decreased at %d: %v", i, got)
		}
	}
}

func TestAccumulatorMonotonicEqualsLastValue(t *testing.T) {
	readings := values(4, 4.5, 6, 6, 11)
	got := series1(NewAccumulator(AbsentZero), readings...)
	if last := got[len(got)-1]; last != 11 {
		t.Errorf("final total = %v, want 11", last)
	}
}

func TestAccumulatorTwoDevices(t *testing.T) {
	a := NewAccumulator(AbsentZero)
	a.Bind(2)

	out := make([]float64, 2)
	a.Fold([]Reading{Value(5), {}}, out)
	if !reflect.DeepEqual(out, []float64{5, 0}) {
		t.Errorf("row 1 = %v, want [5 0]", out)
	}

	a.Fold([]Reading{Value(8), Value(3)}, out)
	if !reflect.DeepEqual(out, []float64{8, 3}) {
		t.Errorf("row 2 = %v, want [8 3]", out)
	}
}

func TestReshaper(t *testing.T) {
	got := series1(NewReshaper(AbsentZero), Value(10), Reading{}, Value(4))
	if want := []float64{10, 0, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("zero policy got = %v, want %v", got, want)
	}

	got = series1(NewReshaper(AbsentHold), Value(10), Reading{}, Value(4))
	if want := []float64{10, 10, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("hold policy got = %v, want %v", got, want)
	}
}

func TestParseAbsentPolicy(t *testing.T) {
	for s, want := range map[string]AbsentPolicy{"": AbsentZero, "zero": AbsentZero, "hold": AbsentHold} {
		got, err := ParseAbsentPolicy(s)
		if err != nil || got != want {
			t.Errorf("ParseAbsentPolicy(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseAbsentPolicy("previous"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
