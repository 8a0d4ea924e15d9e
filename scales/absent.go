package scales

import "fmt"

// AbsentPolicy decides what an absent reading stands for
type AbsentPolicy int

const (
	// AbsentZero treats an absent reading like a reading of 0
	AbsentZero AbsentPolicy = iota
	// AbsentHold treats an absent reading as unchanged since the previous bucket
	AbsentHold
)

var absentPolicyNames = map[string]AbsentPolicy{
	"zero": AbsentZero,
	"hold": AbsentHold,
}

// ParseAbsentPolicy parses "zero" or "hold", the empty string is zero
func ParseAbsentPolicy(s string) (AbsentPolicy, error) {
	if s == "" {
		return AbsentZero, nil
	}
	p, ok := absentPolicyNames[s]
	if !ok {
		return AbsentZero, fmt.Errorf("unknown absent policy %q", s)
	}
	return p, nil
}

func (p AbsentPolicy) String() string {
	switch p {
	case AbsentZero:
		return "zero"
	case AbsentHold:
		return "hold"
	}
	return fmt.Sprintf("AbsentPolicy(%d)", int(p))
}

func (p AbsentPolicy) resolve(r Reading, previous float64) float64 {
	if r.Present {
		return r.Value
	}
	if p == AbsentHold {
		return previous
	}
	return 0
}
