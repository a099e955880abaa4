package core

import "math"

// Scenario describes one revenue projection: donor totals that fall within
// the optional bounds are scaled by Factor, totals outside the bounds pass
// through unscaled. Bounds are inclusive and apply to a donor's total
// historical giving. A nil bound means unbounded; a zero-valued bound is a
// real bound, which is why the fields are pointers rather than sentinel
// zeroes.
type Scenario struct {
	Factor float64
	Min    *Money
	Max    *Money
}

func (s Scenario) inBounds(total Money) bool {
	if s.Min != nil && total.Cents < s.Min.Cents {
		return false
	}
	if s.Max != nil && total.Cents > s.Max.Cents {
		return false
	}
	return true
}

// Projection computes the projected aggregate contribution value under the
// scenario. It is a pure function of the snapshot; a non-positive or
// non-finite factor is a contract violation reported as ErrInvalidFactor.
//
// With no bounds and Factor 1 the result equals the sum of all donor
// totals. The result is monotonic in Factor for fixed bounds.
func (l *Ledger) Projection(s Scenario) (Money, error) {
	if s.Factor <= 0 || math.IsInf(s.Factor, 0) || math.IsNaN(s.Factor) {
		return Money{}, ErrInvalidFactor
	}

	var scaled, passthrough int64
	for _, name := range l.names {
		total := l.donors[name].Total()
		if s.inBounds(total) {
			scaled += total.Cents
		} else {
			passthrough += total.Cents
		}
	}

	// Half-up to a whole cent after scaling.
	cents := int64(math.Round(s.Factor*float64(scaled))) + passthrough
	return Money{Cents: cents}, nil
}
