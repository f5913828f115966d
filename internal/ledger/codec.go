package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"tally/internal/core"
)

// wireEntry is the persisted JSON shape of one history entry. Amounts cross
// the boundary in currency units, not cents.
type wireEntry struct {
	Amount      float64 `json:"amount"`
	IsIncome    bool    `json:"isIncome"`
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp"`
}

// EncodeHistory serializes entries (newest first) to the transactionHistory
// blob.
func EncodeHistory(entries []core.Entry) (string, error) {
	wire := make([]wireEntry, len(entries))
	for i, e := range entries {
		wire[i] = wireEntry{
			Amount:      e.Amount.Units(),
			IsIncome:    e.Kind == core.Income,
			Description: e.Description,
			Timestamp:   e.Timestamp.Format(time.RFC3339),
		}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(data), nil
}

// DecodeHistory parses a persisted transactionHistory blob. It returns an
// error for malformed data; choosing the empty-history fallback on failure
// is the caller's decision, not this function's.
func DecodeHistory(data string) ([]core.Entry, error) {
	var wire []wireEntry
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	entries := make([]core.Entry, len(wire))
	for i, w := range wire {
		ts, err := time.Parse(time.RFC3339, w.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("decode history entry %d timestamp: %w", i, err)
		}
		kind := core.Expense
		if w.IsIncome {
			kind = core.Income
		}
		entries[i] = core.Entry{
			Amount:      core.Money{Cents: int64(math.Round(w.Amount * 100))},
			Kind:        kind,
			Description: w.Description,
			Timestamp:   ts,
		}
	}
	return entries, nil
}
