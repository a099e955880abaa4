package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mailroom/internal/core"
)

type stubSource struct {
	records []core.DonorRecord
}

func (s stubSource) Snapshot(ctx context.Context) ([]core.DonorRecord, error) {
	return s.records, nil
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	svc := NewLetterService(stubSource{records: []core.DonorRecord{
		{Name: "Jane Doe", Donations: []core.Money{{Cents: 10000}, {Cents: 2500}}},
		{Name: "Bob", Donations: []core.Money{{Cents: 5000}}},
	}}, dir)

	n, err := svc.WriteAll(context.Background())
	if err != nil {
		t.Fatalf("write all: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 letters, got %d", n)
	}

	body, err := os.ReadFile(filepath.Join(dir, "Jane_Doe.txt"))
	if err != nil {
		t.Fatalf("read letter: %v", err)
	}
	if !strings.Contains(string(body), "Dear Jane Doe,") {
		t.Fatalf("unexpected letter body:\n%s", body)
	}
	// Most recent gift, not total
	if !strings.Contains(string(body), "$25.00") {
		t.Fatalf("expected last gift amount:\n%s", body)
	}
}

func TestWriteAllOverwrites(t *testing.T) {
	dir := t.TempDir()
	records := []core.DonorRecord{
		{Name: "Bob", Donations: []core.Money{{Cents: 5000}}},
	}
	svc := NewLetterService(stubSource{records: records}, dir)

	if _, err := svc.WriteAll(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	records[0].Donations = append(records[0].Donations, core.Money{Cents: 9900})
	if _, err := svc.WriteAll(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file after rerun, got %d", len(entries))
	}
	body, _ := os.ReadFile(filepath.Join(dir, "Bob.txt"))
	if !strings.Contains(string(body), "$99.00") {
		t.Fatalf("expected overwritten letter:\n%s", body)
	}
}

func TestWriteAllEmptyStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "letters")
	svc := NewLetterService(stubSource{}, dir)

	n, err := svc.WriteAll(context.Background())
	if err != nil {
		t.Fatalf("write all: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no letters, got %d", n)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("no-op run must not create the directory")
	}
}

func TestWriteAllSkipsDonorWithoutGifts(t *testing.T) {
	dir := t.TempDir()
	svc := NewLetterService(stubSource{records: []core.DonorRecord{
		{Name: "Eve"},
		{Name: "Bob", Donations: []core.Money{{Cents: 100}}},
	}}, dir)

	n, err := svc.WriteAll(context.Background())
	if err != nil {
		t.Fatalf("write all: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 letter, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "Eve.txt")); !os.IsNotExist(err) {
		t.Fatalf("donor without gifts must not produce a letter")
	}
}
