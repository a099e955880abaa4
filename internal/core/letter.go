package core

import (
	"strings"
	"text/template"
)

// The letter thanks the donor for their most recent gift, not their
// historical total. The same body is printed interactively after recording
// a donation and written to disk by the batch letter run.
var letterTmpl = template.Must(template.New("letter").Parse(
	`Dear {{.Name}},

Thank you for your generous donation of {{.Amount}}.
Your support makes our work possible.

Sincerely,
The Mailroom Team
`))

// LetterBody composes a thank-you letter for a single gift.
func LetterBody(name string, amount Money) (string, error) {
	key := NormalizeName(name)
	if key == "" {
		return "", ErrEmptyName
	}
	if err := amount.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	data := struct{ Name, Amount string }{Name: key, Amount: amount.USD()}
	if err := letterTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Letter composes the thank-you letter for the named donor's most recent
// donation.
func (l *Ledger) Letter(name string) (string, error) {
	last, err := l.LastGift(name)
	if err != nil {
		return "", err
	}
	return LetterBody(name, last)
}
