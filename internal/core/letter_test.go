package core

import (
	"strings"
	"testing"
)

func TestLetterBody(t *testing.T) {
	body, err := LetterBody("jane doe", Money{Cents: 123400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(body, "Dear Jane Doe,") {
		t.Fatalf("unexpected salutation:\n%s", body)
	}
	if !strings.Contains(body, "$1,234.00") {
		t.Fatalf("amount missing from body:\n%s", body)
	}
}

func TestLetterBodyRejectsBadInput(t *testing.T) {
	if _, err := LetterBody("  ", Money{Cents: 100}); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := LetterBody("Jane", Money{Cents: 0}); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestLedgerLetterUsesMostRecentGift(t *testing.T) {
	l := NewLedger()
	l.AddDonor("Bob")
	l.AddDonation("Bob", Money{Cents: 100000})
	l.AddDonation("Bob", Money{Cents: 2500})

	body, err := l.Letter("bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "$25.00") {
		t.Fatalf("expected last gift amount:\n%s", body)
	}
	if strings.Contains(body, "$1,000.00") {
		t.Fatalf("letter must not use an earlier gift:\n%s", body)
	}
}

func TestLedgerLetterNoDonations(t *testing.T) {
	l := NewLedger()
	l.AddDonor("Eve")
	if _, err := l.Letter("Eve"); err != ErrNoDonations {
		t.Fatalf("expected ErrNoDonations, got %v", err)
	}
}
