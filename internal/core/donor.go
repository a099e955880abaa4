package core

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Money struct {
		Cents int64
	}

	// Donor is a uniquely named giver with an ordered donation history.
	// Name is the normalized display name and doubles as the ledger key.
	Donor struct {
		Name      string
		Donations []Money
	}

	// DonorRecord is one row of a persistent-store snapshot.
	DonorRecord struct {
		Name      string
		Donations []Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidFactor = errors.New("invalid factor")
	ErrEmptyName     = errors.New("empty donor name")
	ErrUnknownDonor  = errors.New("unknown donor")
	ErrNoDonations   = errors.New("no donations")
)

// NormalizeName collapses internal whitespace runs, trims the ends and
// capitalizes each word. The result is the donor's display name and
// unique ledger key, so "jane   doe" and "Jane Doe" address the same donor.
func NormalizeName(s string) string {
	joined := strings.Join(strings.Fields(s), " ")
	if joined == "" {
		return ""
	}
	// Casers are stateful, so build one per call rather than sharing.
	return cases.Title(language.AmericanEnglish).String(joined)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Total returns the sum of the donor's donation history.
func (d Donor) Total() Money {
	var cents int64
	for _, m := range d.Donations {
		cents += m.Cents
	}
	return Money{Cents: cents}
}

// Count returns the number of recorded donations.
func (d Donor) Count() int {
	return len(d.Donations)
}

// Average returns the mean donation. It reports ErrNoDonations for an
// empty history instead of dividing by zero.
func (d Donor) Average() (Money, error) {
	if len(d.Donations) == 0 {
		return Money{}, ErrNoDonations
	}
	mean := float64(d.Total().Cents) / float64(len(d.Donations))
	return Money{Cents: int64(math.Round(mean))}, nil
}

// LastGift returns the most recent donation.
func (d Donor) LastGift() (Money, error) {
	if len(d.Donations) == 0 {
		return Money{}, ErrNoDonations
	}
	return d.Donations[len(d.Donations)-1], nil
}
