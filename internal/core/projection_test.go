package core

import "testing"

// aliceBob is the two-donor scenario used throughout: Alice gave $100 once,
// Bob gave $50 twice. Both totals are $100.
func aliceBob() *Ledger {
	l := NewLedger()
	l.AddDonor("Alice")
	l.AddDonation("Alice", Money{Cents: 10000})
	l.AddDonor("Bob")
	l.AddDonation("Bob", Money{Cents: 5000})
	l.AddDonation("Bob", Money{Cents: 5000})
	return l
}

func cents(v int64) *Money { return &Money{Cents: v} }

func TestProjectionNoBounds(t *testing.T) {
	got, err := aliceBob().Projection(Scenario{Factor: 2.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cents != 40000 {
		t.Fatalf("expected 40000, got %d", got.Cents)
	}
}

func TestProjectionIdentityFactor(t *testing.T) {
	// Factor 1 and no bounds is the plain sum of donor totals.
	got, err := aliceBob().Projection(Scenario{Factor: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cents != 20000 {
		t.Fatalf("expected 20000, got %d", got.Cents)
	}
}

func TestProjectionBoundsInclusive(t *testing.T) {
	// min == max == $100 keeps both donors in the scaled set.
	got, err := aliceBob().Projection(Scenario{
		Factor: 2.0,
		Min:    cents(10000),
		Max:    cents(10000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cents != 40000 {
		t.Fatalf("expected 40000, got %d", got.Cents)
	}
}

func TestProjectionExcludedTotalsPassThrough(t *testing.T) {
	// max $99 excludes both $100 totals from scaling; they pass through.
	got, err := aliceBob().Projection(Scenario{
		Factor: 2.0,
		Max:    cents(9900),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cents != 20000 {
		t.Fatalf("expected 20000, got %d", got.Cents)
	}
}

func TestProjectionMixedBounds(t *testing.T) {
	l := aliceBob()
	l.AddDonor("Carol")
	l.AddDonation("Carol", Money{Cents: 2500})

	// Carol's $25 is below the $100 floor, so only Alice and Bob scale.
	got, err := l.Projection(Scenario{Factor: 3.0, Min: cents(10000)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cents != 62500 {
		t.Fatalf("expected 62500, got %d", got.Cents)
	}
}

func TestProjectionZeroBoundIsRealBound(t *testing.T) {
	// An explicit zero maximum excludes every positive total.
	got, err := aliceBob().Projection(Scenario{Factor: 5.0, Max: cents(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cents != 20000 {
		t.Fatalf("expected 20000, got %d", got.Cents)
	}
}

func TestProjectionMonotonicInFactor(t *testing.T) {
	l := aliceBob()
	s := Scenario{Min: cents(5000)}
	var prev int64 = -1
	for _, f := range []float64{0.5, 1.0, 1.5, 2.0, 10.0} {
		s.Factor = f
		got, err := l.Projection(s)
		if err != nil {
			t.Fatalf("factor %v: unexpected error: %v", f, err)
		}
		if got.Cents < prev {
			t.Fatalf("factor %v: result %d decreased below %d", f, got.Cents, prev)
		}
		prev = got.Cents
	}
}

func TestProjectionEmptyLedger(t *testing.T) {
	got, err := NewLedger().Projection(Scenario{Factor: 2.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cents != 0 {
		t.Fatalf("expected 0, got %d", got.Cents)
	}
}

func TestProjectionInvalidFactor(t *testing.T) {
	for _, f := range []float64{0, -1} {
		if _, err := aliceBob().Projection(Scenario{Factor: f}); err != ErrInvalidFactor {
			t.Fatalf("factor %v: expected ErrInvalidFactor, got %v", f, err)
		}
	}
}
