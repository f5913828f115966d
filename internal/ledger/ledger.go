// Package ledger owns the running totals and the capped transaction history,
// and keeps them mirrored into a durable key-value store.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tally/internal/core"
	"tally/internal/kv"
)

// Persisted state layout. Every save rewrites all keys wholesale, so a
// half-finished save can never leave mixed generations behind a restart
// that a later save would not repair.
const (
	keyTotalIncome      = "totalIncome"
	keyTodayIncome      = "todayIncome"
	keyLastAdditionTime = "lastAdditionTime"
	keyHistory          = "transactionHistory"
)

// HistoryLimit caps the retained history. Totals are tracked independently,
// so evicting old entries loses detail, not money.
const HistoryLimit = 100

const (
	OpIncome  Op = "income"
	OpExpense Op = "expense"
	OpReset   Op = "reset"
)

type (
	Op string

	// Change is emitted to subscribers after every successful mutation and
	// persistence attempt. It carries enough for a consumer to re-render
	// without reading the ledger back.
	Change struct {
		Op          Op
		AmountCents int64
		TotalCents  int64
		TodayCents  int64
		At          time.Time
	}

	// State is a point-in-time copy of the ledger, safe to hold across
	// further mutations.
	State struct {
		TotalIncome      core.Money
		TodayIncome      core.Money
		LastMutationTime string // "HH:mm", empty until the first mutation
		History          []core.Entry
	}
)

type Ledger struct {
	store kv.Store
	now   func() time.Time

	mu           sync.Mutex
	total        int64 // cents, clamped to [0, inf)
	today        int64 // cents, clamped to [0, inf); never reset at day rollover
	lastMutation string
	history      []core.Entry // newest first
	subs         map[int]chan Change
	nextSub      int

	saves chan saveOp
	done  chan struct{}
	once  sync.Once
}

type saveOp struct {
	erase bool
	snap  snapshot
}

type snapshot struct {
	total, today int64
	lastMutation string
	historyBlob  string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source. Tests use this to pin bucket days.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New restores the ledger from store and starts the background saver.
// A malformed persisted history is logged and dropped, not surfaced:
// starting empty beats not starting at all.
func New(ctx context.Context, store kv.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		now:   time.Now,
		subs:  make(map[int]chan Change),
		saves: make(chan saveOp, 1),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.restore(ctx); err != nil {
		return nil, err
	}
	go l.runSaver()
	return l, nil
}

func (l *Ledger) restore(ctx context.Context) error {
	if v, ok, err := l.store.Get(ctx, keyTotalIncome); err != nil {
		return fmt.Errorf("restore total income: %w", err)
	} else if ok {
		if cents, perr := core.ParseStoredCents(v); perr != nil {
			slog.Warn("Malformed persisted total income, defaulting to zero", "value", v)
		} else {
			l.total = cents
		}
	}

	if v, ok, err := l.store.Get(ctx, keyTodayIncome); err != nil {
		return fmt.Errorf("restore today income: %w", err)
	} else if ok {
		if cents, perr := core.ParseStoredCents(v); perr != nil {
			slog.Warn("Malformed persisted today income, defaulting to zero", "value", v)
		} else {
			l.today = cents
		}
	}

	if v, ok, err := l.store.Get(ctx, keyLastAdditionTime); err != nil {
		return fmt.Errorf("restore last addition time: %w", err)
	} else if ok {
		l.lastMutation = v
	}

	blob, ok, err := l.store.Get(ctx, keyHistory)
	if err != nil {
		return fmt.Errorf("restore history: %w", err)
	}
	if ok && blob != "" {
		entries, derr := DecodeHistory(blob)
		if derr != nil {
			// Deliberate resilience choice: corrupt history must not stop
			// startup, so the ledger begins with an empty log.
			slog.Warn("Discarding malformed persisted history", "error", derr)
		} else {
			l.history = entries
		}
	}

	slog.Info("Ledger restored",
		"total_cents", l.total,
		"today_cents", l.today,
		"history_entries", len(l.history))
	return nil
}

// RecordIncome adds amount to both running totals and prepends an income
// entry. Callers must validate amount > 0 before calling; the ledger
// trusts its caller.
func (l *Ledger) RecordIncome(amount core.Money, description string) {
	l.apply(core.Income, amount, description)
}

// RecordExpense subtracts amount from both running totals, each clamped
// independently at zero. The part of an expense exceeding a total is
// absorbed, not carried as negative remainder.
func (l *Ledger) RecordExpense(amount core.Money, description string) {
	l.apply(core.Expense, amount, description)
}

func (l *Ledger) apply(kind core.Kind, amount core.Money, description string) {
	now := l.now()
	entry := core.Entry{
		Amount:      amount,
		Kind:        kind,
		Description: description,
		Timestamp:   now,
	}

	l.mu.Lock()
	if kind == core.Income {
		l.total += amount.Cents
		l.today += amount.Cents
	} else {
		l.total = max(0, l.total-amount.Cents)
		l.today = max(0, l.today-amount.Cents)
	}
	l.history = append([]core.Entry{entry}, l.history...)
	if len(l.history) > HistoryLimit {
		l.history = l.history[:HistoryLimit]
	}
	l.lastMutation = now.Format("15:04")

	blob, err := EncodeHistory(l.history)
	snap := snapshot{
		total:        l.total,
		today:        l.today,
		lastMutation: l.lastMutation,
		historyBlob:  blob,
	}
	change := Change{
		Op:          Op(kind),
		AmountCents: amount.Cents,
		TotalCents:  l.total,
		TodayCents:  l.today,
		At:          now,
	}
	l.mu.Unlock()

	if err != nil {
		slog.Error("Encode history failed, persisting totals only", "error", err)
	}
	l.enqueue(saveOp{snap: snap})
	l.notify(change)
}

// Reset zeroes the totals, empties the history and erases durable storage.
func (l *Ledger) Reset() {
	now := l.now()

	l.mu.Lock()
	l.total = 0
	l.today = 0
	l.lastMutation = ""
	l.history = nil
	change := Change{Op: OpReset, At: now}
	l.mu.Unlock()

	l.enqueue(saveOp{erase: true})
	l.notify(change)
}

// State returns a copy of the current ledger state.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State{
		TotalIncome:      core.Money{Cents: l.total},
		TodayIncome:      core.Money{Cents: l.today},
		LastMutationTime: l.lastMutation,
		History:          append([]core.Entry(nil), l.history...),
	}
}

// Subscribe registers a change listener. The returned cancel func must be
// called when the listener goes away. Slow consumers lose events rather
// than blocking mutations.
func (l *Ledger) Subscribe() (<-chan Change, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	ch := make(chan Change, 8)
	l.subs[id] = ch
	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if c, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (l *Ledger) notify(c Change) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// enqueue hands a save to the background saver without blocking the
// mutation path. A still-pending older save is dropped: every save writes
// the full state, so only the newest one matters.
func (l *Ledger) enqueue(op saveOp) {
	for {
		select {
		case l.saves <- op:
			return
		default:
		}
		select {
		case <-l.saves:
		default:
		}
	}
}

func (l *Ledger) runSaver() {
	for op := range l.saves {
		l.persist(op)
	}
	close(l.done)
}

// persist writes one full-state save. Failures are logged, never surfaced:
// durable state stays stale until the next save succeeds.
func (l *Ledger) persist(op saveOp) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if op.erase {
		if err := l.store.Delete(ctx, keyTotalIncome, keyTodayIncome, keyLastAdditionTime, keyHistory); err != nil {
			slog.Error("Erase ledger state failed", "error", err)
		}
		return
	}

	pairs := [...][2]string{
		{keyTotalIncome, core.FormatCents(op.snap.total)},
		{keyTodayIncome, core.FormatCents(op.snap.today)},
		{keyLastAdditionTime, op.snap.lastMutation},
		{keyHistory, op.snap.historyBlob},
	}
	for _, p := range pairs {
		if err := l.store.Set(ctx, p[0], p[1]); err != nil {
			slog.Warn("Persist ledger state failed", "key", p[0], "error", err)
		}
	}
}

// Close waits for the pending save, if any, to finish.
func (l *Ledger) Close() error {
	l.once.Do(func() {
		close(l.saves)
	})
	<-l.done
	return nil
}
