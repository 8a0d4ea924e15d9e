package scales

// Folder turns the aligned readings of one row into the values of one output
// point. A Folder carries state from row to row and is used for one query only.
type Folder interface {
	// Bind prepares the folder for n devices, it is called once before the first row
	Bind(n int)

	// Fold consumes the readings of the next row and writes one value per device to out
	Fold(readings []Reading, out []float64)
}

// Accumulator sums the positive differences between consecutive readings of
// each device. Decreases are discarded (container removed or scale reset), but
// the next difference is taken relative to the lower value.
type Accumulator struct {
	Absent AbsentPolicy

	previous []float64
	totals   []float64
}

// NewAccumulator returns an accumulator with all totals at 0
func NewAccumulator(absent AbsentPolicy) *Accumulator {
	return &Accumulator{Absent: absent}
}

// Bind resets previous values and totals for n devices
func (a *Accumulator) Bind(n int) {
	a.previous = make([]float64, n)
	a.totals = make([]float64, n)
}

// Fold adds the positive difference of each device to its total
func (a *Accumulator) Fold(readings []Reading, out []float64) {
	for i, r := range readings {
		current := a.Absent.resolve(r, a.previous[i])
		if diff := current - a.previous[i]; diff > 0 {
			a.totals[i] += diff
		}
		a.previous[i] = current
	}
	copy(out, a.totals)
}

// Reshaper passes readings through, resolving absent values. It serves raw
// history as well as rows that the backend has already accumulated.
type Reshaper struct {
	Absent AbsentPolicy

	last []float64
}

// NewReshaper returns a pass-through folder
func NewReshaper(absent AbsentPolicy) *Reshaper {
	return &Reshaper{Absent: absent}
}

// Bind resets the held values for n devices
func (r *Reshaper) Bind(n int) {
	r.last = make([]float64, n)
}

// Fold copies the resolved readings to out
func (r *Reshaper) Fold(readings []Reading, out []float64) {
	for i, reading := range readings {
		r.last[i] = r.Absent.resolve(reading, r.last[i])
	}
	copy(out, r.last)
}
