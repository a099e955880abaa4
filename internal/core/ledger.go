package core

// Ledger is a point-in-time snapshot of all donors and their donation
// histories. It is built fresh from the persistent store at the start of
// each derived-output computation and discarded at the end; it is never
// shared between operations and never written back to the store.
type Ledger struct {
	donors map[string]*Donor
	names  []string // first-appearance order of normalized keys
}

func NewLedger() *Ledger {
	return &Ledger{donors: make(map[string]*Donor)}
}

// FromSnapshot builds a ledger from a persistent-store snapshot.
// Records whose names normalize to the same key are merged in order.
func FromSnapshot(records []DonorRecord) *Ledger {
	l := NewLedger()
	for _, rec := range records {
		key := l.AddDonor(rec.Name)
		if key == "" {
			continue
		}
		d := l.donors[key]
		d.Donations = append(d.Donations, rec.Donations...)
	}
	return l
}

// AddDonor registers a donor under the normalized form of name and returns
// the key. Adding a name that normalizes to an existing key reuses that
// donor. A name with no content yields "" and no entry.
func (l *Ledger) AddDonor(name string) string {
	key := NormalizeName(name)
	if key == "" {
		return ""
	}
	if _, ok := l.donors[key]; !ok {
		l.donors[key] = &Donor{Name: key}
		l.names = append(l.names, key)
	}
	return key
}

// AddDonation appends amount to the named donor's history. The donor must
// already exist and the amount must be positive.
func (l *Ledger) AddDonation(name string, amount Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	d, ok := l.donors[NormalizeName(name)]
	if !ok {
		return ErrUnknownDonor
	}
	d.Donations = append(d.Donations, amount)
	return nil
}

// DonorNames returns all donor keys in first-appearance order. Callers that
// need a particular ordering (the report does) impose their own.
func (l *Ledger) DonorNames() []string {
	names := make([]string, len(l.names))
	copy(names, l.names)
	return names
}

// Len returns the number of donors in the snapshot.
func (l *Ledger) Len() int {
	return len(l.donors)
}

func (l *Ledger) donor(name string) (*Donor, error) {
	d, ok := l.donors[NormalizeName(name)]
	if !ok {
		return nil, ErrUnknownDonor
	}
	return d, nil
}

func (l *Ledger) Total(name string) (Money, error) {
	d, err := l.donor(name)
	if err != nil {
		return Money{}, err
	}
	return d.Total(), nil
}

func (l *Ledger) Count(name string) (int, error) {
	d, err := l.donor(name)
	if err != nil {
		return 0, err
	}
	return d.Count(), nil
}

func (l *Ledger) Average(name string) (Money, error) {
	d, err := l.donor(name)
	if err != nil {
		return Money{}, err
	}
	return d.Average()
}

// LastGift returns the named donor's most recent donation.
func (l *Ledger) LastGift(name string) (Money, error) {
	d, err := l.donor(name)
	if err != nil {
		return Money{}, err
	}
	return d.LastGift()
}
