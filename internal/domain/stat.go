package domain

import "strconv"

// Stat is a numeric statistic that may be "not applicable" when the underlying
// category had zero samples. The zero value is N/A, so a forgotten assignment
// never reads as 0.0.
type Stat struct {
	value float64
	valid bool
}

// StatOf wraps a computed value.
func StatOf(v float64) Stat { return Stat{value: v, valid: true} }

// StatNA is the explicit not-applicable sentinel.
func StatNA() Stat { return Stat{} }

// Valid reports whether the statistic holds a value.
func (s Stat) Valid() bool { return s.valid }

// Value returns the numeric value; it is meaningless when Valid is false.
func (s Stat) Value() float64 { return s.value }

// String renders the value, or "N/A" for the sentinel, matching the run
// output format.
func (s Stat) String() string {
	if !s.valid {
		return "N/A"
	}
	return strconv.FormatFloat(s.value, 'g', -1, 64)
}

// StatMean averages a sample list, returning N/A for an empty list.
func StatMean(samples []float64) Stat {
	if len(samples) == 0 {
		return StatNA()
	}
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return StatOf(sum / float64(len(samples)))
}
