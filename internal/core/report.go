package core

import (
	"fmt"
	"sort"
	"strings"
)

// Report renders the contribution summary: one row per donor with total,
// gift count and average gift. Rows are sorted by total descending; ties
// break by donor name ascending so output is deterministic. An empty
// ledger renders the header only.
func (l *Ledger) Report() string {
	rows := make([]*Donor, 0, len(l.donors))
	for _, name := range l.names {
		rows = append(rows, l.donors[name])
	}
	sort.Slice(rows, func(i, j int) bool {
		ti, tj := rows[i].Total().Cents, rows[j].Total().Cents
		if ti != tj {
			return ti > tj
		}
		return rows[i].Name < rows[j].Name
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%-25s | %13s | %9s | %13s\n",
		"Donor Name", "Total Given", "Num Gifts", "Average Gift")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 71))
	for _, d := range rows {
		avg := "-"
		if m, err := d.Average(); err == nil {
			avg = m.USD()
		}
		fmt.Fprintf(&b, "%-25s | %13s | %9d | %13s\n",
			d.Name, d.Total().USD(), d.Count(), avg)
	}
	return b.String()
}
