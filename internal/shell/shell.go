// Package shell drives the interactive mailroom menu. It owns all input
// validation and re-prompting; the ledger operations behind it are pure.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"mailroom/internal/core"
)

// Command enumerates the menu operations. A closed enum dispatched through
// a switch keeps dispatch exhaustive at compile time instead of relying on
// a runtime option map.
type Command int

const (
	CommandUnknown Command = iota
	CommandThankYou
	CommandReport
	CommandLetters
	CommandProjection
	CommandQuit
)

// ParseCommand maps a menu selection to its command.
func ParseCommand(s string) Command {
	switch strings.TrimSpace(s) {
	case "1":
		return CommandThankYou
	case "2":
		return CommandReport
	case "3":
		return CommandLetters
	case "4":
		return CommandProjection
	case "5":
		return CommandQuit
	default:
		return CommandUnknown
	}
}

// DonorStore is the persistent-store surface the shell needs.
type DonorStore interface {
	AddDonor(ctx context.Context, name string) error
	AddDonation(ctx context.Context, name string, amount core.Money) error
	DonorNames(ctx context.Context) ([]string, error)
	Snapshot(ctx context.Context) ([]core.DonorRecord, error)
}

// LetterWriter runs the batch thank-you letter generation.
type LetterWriter interface {
	WriteAll(ctx context.Context) (int, error)
}

type Shell struct {
	store   DonorStore
	letters LetterWriter
	in      *bufio.Scanner
	out     io.Writer
}

func New(store DonorStore, letters LetterWriter, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		store:   store,
		letters: letters,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

const menu = `
Please select from the following options:
	1. Send a Thank You
	2. Create a Report
	3. Send letters to all donors
	4. Create contribution projection
	5. Quit
 --> `

// Run loops over the menu until the user quits or input ends. Each
// operation runs to completion before the next prompt.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, menu)
		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}

		var err error
		switch ParseCommand(line) {
		case CommandThankYou:
			err = s.sendThankYou(ctx)
		case CommandReport:
			err = s.createReport(ctx)
		case CommandLetters:
			err = s.sendLetters(ctx)
		case CommandProjection:
			err = s.createProjection(ctx)
		case CommandQuit:
			fmt.Fprintln(s.out, "Quitting mailroom...")
			return nil
		case CommandUnknown:
			fmt.Fprintln(s.out, "\nPlease select a number between 1 and 5")
		}
		if err != nil {
			slog.ErrorContext(ctx, "Operation failed", "error", err)
			fmt.Fprintf(s.out, "\nSomething went wrong: %v\n", err)
		}
	}
}

// sendThankYou records a donation and prints the thank-you body. Choosing
// a new name creates the donor first.
func (s *Shell) sendThankYou(ctx context.Context) error {
	name, ok := s.promptDonor(ctx)
	if !ok {
		return nil
	}

	amount, ok := s.promptAmount("\nPlease enter the donation amount:\n(Enter \"quit\" to return to main menu)\n --> ")
	if !ok {
		return nil
	}

	if err := s.store.AddDonor(ctx, name); err != nil {
		return fmt.Errorf("add donor: %w", err)
	}
	if err := s.store.AddDonation(ctx, name, amount); err != nil {
		return fmt.Errorf("add donation: %w", err)
	}

	body, err := core.LetterBody(name, amount)
	if err != nil {
		return fmt.Errorf("compose thank you: %w", err)
	}
	fmt.Fprintf(s.out, "\n%s", body)
	return nil
}

func (s *Shell) createReport(ctx context.Context) error {
	records, err := s.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	fmt.Fprintf(s.out, "\n%s", core.FromSnapshot(records).Report())
	return nil
}

func (s *Shell) sendLetters(ctx context.Context) error {
	n, err := s.letters.WriteAll(ctx)
	if err != nil {
		return fmt.Errorf("write letters: %w", err)
	}
	fmt.Fprintf(s.out, "\n%d letters written\n", n)
	return nil
}

func (s *Shell) createProjection(ctx context.Context) error {
	factor, ok := s.promptFactor()
	if !ok {
		return nil
	}
	min, ok := s.promptBound("\nPlease enter the minimum donation limit:\n(Optional, press \"0\" to continue)\n --> ")
	if !ok {
		return nil
	}
	max, ok := s.promptBound("\nPlease enter the maximum donation limit:\n(Optional, press \"0\" to continue)\n --> ")
	if !ok {
		return nil
	}

	records, err := s.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	projected, err := core.FromSnapshot(records).Projection(core.Scenario{
		Factor: factor,
		Min:    min,
		Max:    max,
	})
	if err != nil {
		return fmt.Errorf("compute projection: %w", err)
	}

	fmt.Fprintf(s.out, "\nProjected contribution value: %s\n", projected.USD())
	return nil
}

// promptDonor asks for a recipient name. "list" prints the known donors
// and re-prompts; "quit" aborts.
func (s *Shell) promptDonor(ctx context.Context) (string, bool) {
	const prompt = "\nPlease enter name of \"Thank You\" recipient:\n(Enter \"list\" to see all donors)\n(Enter \"quit\" to return to main menu)\n --> "
	for {
		fmt.Fprint(s.out, prompt)
		line, ok := s.readLine()
		if !ok || isQuit(line) {
			return "", false
		}
		if strings.EqualFold(strings.TrimSpace(line), "list") {
			names, err := s.store.DonorNames(ctx)
			if err != nil {
				fmt.Fprintf(s.out, "\nCould not list donors: %v\n", err)
				continue
			}
			fmt.Fprintln(s.out)
			for _, name := range names {
				fmt.Fprintln(s.out, name)
			}
			continue
		}
		if name := core.NormalizeName(line); name != "" {
			return name, true
		}
	}
}

// promptAmount asks for a positive dollar amount, re-prompting on
// malformed input.
func (s *Shell) promptAmount(prompt string) (core.Money, bool) {
	for {
		fmt.Fprint(s.out, prompt)
		line, ok := s.readLine()
		if !ok || isQuit(line) {
			return core.Money{}, false
		}
		cents, err := core.ParseDecimalToCents(line)
		if err != nil {
			fmt.Fprintln(s.out, "\nDonation amount must be a positive number")
			continue
		}
		return core.Money{Cents: cents}, true
	}
}

func (s *Shell) promptFactor() (float64, bool) {
	const prompt = "\nPlease enter the contribution multiplicative factor:\n(Enter \"quit\" to return to main menu)\n --> "
	for {
		fmt.Fprint(s.out, prompt)
		line, ok := s.readLine()
		if !ok || isQuit(line) {
			return 0, false
		}
		factor, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil || factor <= 0 {
			fmt.Fprintln(s.out, "\nFactor must be a positive number")
			continue
		}
		return factor, true
	}
}

// promptBound asks for an optional donation-total bound. An empty line or
// "0" means no bound; the distinction between "no value" and a value is
// carried by the nil pointer, never by a zero amount.
func (s *Shell) promptBound(prompt string) (*core.Money, bool) {
	for {
		fmt.Fprint(s.out, prompt)
		line, ok := s.readLine()
		if !ok || isQuit(line) {
			return nil, false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "0" {
			return nil, true
		}
		cents, err := core.ParseDecimalToCents(trimmed)
		if err != nil {
			fmt.Fprintln(s.out, "\nLimit must be a positive number or 0")
			continue
		}
		return &core.Money{Cents: cents}, true
	}
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func isQuit(line string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "q")
}
