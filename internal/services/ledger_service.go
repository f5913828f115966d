package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/report"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
	Close() error
}

// LedgerService orchestrates ledger mutations and event publication. The
// ledger mutates and persists first; the event publish is best effort and
// never fails the operation.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher EventPublisher
	now       func() time.Time
}

func NewLedgerService(l *ledger.Ledger, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		ledger:    l,
		publisher: publisher,
		now:       time.Now,
	}
}

// RecordIncome validates the amount at the boundary and records it. The
// ledger itself trusts its caller on positivity.
func (s *LedgerService) RecordIncome(ctx context.Context, amount core.Money, description string) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	s.ledger.RecordIncome(amount, description)
	st := s.ledger.State()
	s.publishEvent(ctx, string(ledger.OpIncome), amount.Cents, st, description)
	return nil
}

func (s *LedgerService) RecordExpense(ctx context.Context, amount core.Money, description string) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	s.ledger.RecordExpense(amount, description)
	st := s.ledger.State()
	s.publishEvent(ctx, string(ledger.OpExpense), amount.Cents, st, description)
	return nil
}

func (s *LedgerService) Reset(ctx context.Context) {
	s.ledger.Reset()
	s.publishEvent(ctx, string(ledger.OpReset), 0, s.ledger.State(), "")
}

// State returns a snapshot of the ledger.
func (s *LedgerService) State() ledger.State {
	return s.ledger.State()
}

// Subscribe proxies the ledger's change subscription.
func (s *LedgerService) Subscribe() (<-chan ledger.Change, func()) {
	return s.ledger.Subscribe()
}

// WeeklyReport returns the cumulative series for the current week.
func (s *LedgerService) WeeklyReport() report.Series {
	return report.Weekly(s.ledger.State().History, s.now())
}

// MonthlyReport returns the rolling 30-day cumulative series.
func (s *LedgerService) MonthlyReport() report.Series {
	return report.Rolling30(s.ledger.State().History, s.now())
}

// AllTimeReport returns the per-month cumulative series over the whole
// retained history.
func (s *LedgerService) AllTimeReport() report.Series {
	return report.AllTime(s.ledger.State().History)
}

func (s *LedgerService) publishEvent(ctx context.Context, op string, amountCents int64, st ledger.State, description string) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewLedgerEventMessage(op, amountCents, st.TotalIncome.Cents, st.TodayIncome.Cents, description)
	if err := s.publisher.PublishLedgerEvent(ctx, msg); err != nil {
		// The mutation is already recorded and persisted locally.
		slog.ErrorContext(ctx, "Failed to publish ledger event", "op", op, "error", err)
	}
}

// Close shuts down the ledger's saver and the publisher.
func (s *LedgerService) Close() error {
	var errs []error

	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ledger: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
