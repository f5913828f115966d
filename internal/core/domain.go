package core

import (
	"errors"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind tags an entry as money coming in or going out.
	Kind string

	Money struct {
		Cents int64
	}

	// Entry is one immutable ledger event. Entries are never edited in
	// place; undoing income is recorded as a new Expense entry.
	Entry struct {
		Amount      Money
		Kind        Kind
		Description string // may be empty
		Timestamp   time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid entry kind")
	ErrZeroTimestamp = errors.New("entry timestamp not set")
)

func (k Kind) Valid() bool {
	switch k {
	case Income, Expense:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Entry) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}
	if e.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	return nil
}

// Signed returns the entry's contribution to a net total: positive cents
// for income, negative for expenses.
func (e Entry) Signed() int64 {
	if e.Kind == Expense {
		return -e.Amount.Cents
	}
	return e.Amount.Cents
}
