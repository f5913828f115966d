// Package worker implements the headless ledger consumer: it reacts to
// published mutation events by recomputing the trend reports from durable
// state and logging the refreshed snapshot.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/kv"
	"tally/internal/ledger"
	"tally/internal/report"
)

type Snapshotter struct {
	store kv.Store
	now   func() time.Time
}

func NewSnapshotter(store kv.Store) *Snapshotter {
	return &Snapshotter{store: store, now: time.Now}
}

// HandleEvent refreshes the snapshot in response to one mutation event.
func (s *Snapshotter) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"id", msg.ID,
		"op", msg.Op,
		"amount_cents", msg.AmountCents,
		"total_cents", msg.TotalCents)
	return s.Refresh(ctx)
}

// Refresh reads the durable state and logs the recomputed trend series.
// The reader applies the same fallbacks as the ledger: malformed values
// degrade to empty, they never fail the refresh.
func (s *Snapshotter) Refresh(ctx context.Context) error {
	entries, err := s.loadHistory(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	weekly := report.Weekly(entries, now)
	monthly := report.Rolling30(entries, now)
	allTime := report.AllTime(entries)

	slog.InfoContext(ctx, "Trend snapshot refreshed",
		"history_entries", len(entries),
		"week_net_cents", finalBucket(weekly),
		"month_net_cents", finalBucket(monthly),
		"all_time_months", len(allTime),
		"all_time_net_cents", finalBucket(allTime))
	return nil
}

func (s *Snapshotter) loadHistory(ctx context.Context) ([]core.Entry, error) {
	blob, ok, err := s.store.Get(ctx, "transactionHistory")
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !ok || blob == "" {
		return nil, nil
	}
	entries, derr := ledger.DecodeHistory(blob)
	if derr != nil {
		slog.WarnContext(ctx, "Malformed persisted history, snapshotting empty", "error", derr)
		return nil, nil
	}
	return entries, nil
}

func finalBucket(s report.Series) int64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Cents
}
