// Package storage implements the persistent donor record store on SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mailroom/internal/core"

	_ "modernc.org/sqlite"
)

// ErrDonationNotFound is returned by update/delete when no donation of the
// given amount exists for the donor.
var ErrDonationNotFound = errors.New("donation not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Cascading donor deletes rely on foreign keys being enforced.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddDonor creates a donor under the normalized form of name. Creating a
// name that normalizes to an existing donor is a no-op.
func (r *SQLiteRepository) AddDonor(ctx context.Context, name string) error {
	key := core.NormalizeName(name)
	if key == "" {
		return core.ErrEmptyName
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO donors (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, key)
	if err != nil {
		return fmt.Errorf("create donor: %w", err)
	}
	return nil
}

// AddDonation appends amount to the named donor's history. The donor must
// already exist.
func (r *SQLiteRepository) AddDonation(ctx context.Context, name string, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	id, err := r.donorID(ctx, name)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO donations (donor_id, amount_cents) VALUES (?, ?)`, id, amount.Cents)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}

	slog.InfoContext(ctx, "Donation saved",
		"donor", core.NormalizeName(name),
		"amount_cents", amount.Cents)
	return nil
}

// UpdateDonation changes one of the donor's donations from oldAmount to
// newAmount. When several donations match, the oldest one is updated.
func (r *SQLiteRepository) UpdateDonation(ctx context.Context, name string, oldAmount, newAmount core.Money) error {
	if err := newAmount.Validate(); err != nil {
		return err
	}

	id, err := r.donorID(ctx, name)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE donations SET amount_cents = ?
		 WHERE id = (SELECT id FROM donations
		             WHERE donor_id = ? AND amount_cents = ?
		             ORDER BY id LIMIT 1)`,
		newAmount.Cents, id, oldAmount.Cents)
	if err != nil {
		return fmt.Errorf("update donation: %w", err)
	}
	return r.requireRow(ctx, res, name)
}

// DeleteDonation removes one donation of the given amount from the donor's
// history, oldest first.
func (r *SQLiteRepository) DeleteDonation(ctx context.Context, name string, amount core.Money) error {
	id, err := r.donorID(ctx, name)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM donations
		 WHERE id = (SELECT id FROM donations
		             WHERE donor_id = ? AND amount_cents = ?
		             ORDER BY id LIMIT 1)`,
		id, amount.Cents)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	return r.requireRow(ctx, res, name)
}

// DeleteDonor removes a donor and, via cascade, their donation history.
func (r *SQLiteRepository) DeleteDonor(ctx context.Context, name string) error {
	key := core.NormalizeName(name)
	res, err := r.db.ExecContext(ctx, `DELETE FROM donors WHERE name = ?`, key)
	if err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete donor rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrUnknownDonor
	}

	slog.InfoContext(ctx, "Donor deleted", "donor", key)
	return nil
}

// DonorNames returns all donor names in creation order.
func (r *SQLiteRepository) DonorNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM donors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan donor name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donors: %w", err)
	}
	return names, nil
}

// Snapshot loads every donor with their ordered donation history. Donors
// without donations are included with an empty history.
func (r *SQLiteRepository) Snapshot(ctx context.Context) ([]core.DonorRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.name, dn.amount_cents
		 FROM donors d
		 LEFT JOIN donations dn ON dn.donor_id = d.id
		 ORDER BY d.id, dn.id`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	var records []core.DonorRecord
	for rows.Next() {
		var (
			name  string
			cents sql.NullInt64
		)
		if err := rows.Scan(&name, &cents); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		if len(records) == 0 || records[len(records)-1].Name != name {
			records = append(records, core.DonorRecord{Name: name})
		}
		if cents.Valid {
			rec := &records[len(records)-1]
			rec.Donations = append(rec.Donations, core.Money{Cents: cents.Int64})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return records, nil
}

func (r *SQLiteRepository) donorID(ctx context.Context, name string) (int64, error) {
	key := core.NormalizeName(name)
	if key == "" {
		return 0, core.ErrEmptyName
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM donors WHERE name = ?`, key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, core.ErrUnknownDonor
	}
	if err != nil {
		return 0, fmt.Errorf("look up donor: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) requireRow(ctx context.Context, res sql.Result, donor string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		slog.WarnContext(ctx, "No matching donation", "donor", core.NormalizeName(donor))
		return ErrDonationNotFound
	}
	return nil
}
