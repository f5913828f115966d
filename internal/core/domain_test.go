package core

import (
	"errors"
	"testing"
	"time"
)

func TestEntryValidate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{
			name:  "valid income",
			entry: Entry{Amount: Money{Cents: 1500}, Kind: Income, Description: "salary", Timestamp: ts},
		},
		{
			name:  "valid expense with empty description",
			entry: Entry{Amount: Money{Cents: 200}, Kind: Expense, Timestamp: ts},
		},
		{
			name:    "zero amount",
			entry:   Entry{Amount: Money{}, Kind: Income, Timestamp: ts},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			entry:   Entry{Amount: Money{Cents: -5}, Kind: Expense, Timestamp: ts},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown kind",
			entry:   Entry{Amount: Money{Cents: 100}, Kind: "transfer", Timestamp: ts},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "missing timestamp",
			entry:   Entry{Amount: Money{Cents: 100}, Kind: Income},
			wantErr: ErrZeroTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEntrySigned(t *testing.T) {
	ts := time.Now()
	in := Entry{Amount: Money{Cents: 250}, Kind: Income, Timestamp: ts}
	out := Entry{Amount: Money{Cents: 250}, Kind: Expense, Timestamp: ts}
	if in.Signed() != 250 {
		t.Fatalf("income Signed() = %d, want 250", in.Signed())
	}
	if out.Signed() != -250 {
		t.Fatalf("expense Signed() = %d, want -250", out.Signed())
	}
}
