package karma

import (
	"context"
	"fmt"

	"github.com/Orange-County-AI/clem/database"
	"github.com/Orange-County-AI/clem/logging"
	"github.com/Orange-County-AI/clem/metrics"
)

// Ledger maintains the running karma total per user.
type Ledger struct {
	store  database.KarmaStore
	logger *logging.Logger
}

// NewLedger creates a ledger backed by the given store.
func NewLedger(store database.KarmaStore, logger *logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.Default()
	}
	return &Ledger{
		store:  store,
		logger: logger,
	}
}

// Apply adds a delta to a user's total and returns the new total. A user
// with no stored total starts from zero. The total is computed here and
// written whole, so a retried write stays safe.
func (l *Ledger) Apply(ctx context.Context, userID string, delta int) (int, error) {
	current, err := l.store.GetKarma(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error reading karma for user %s: %w", userID, err)
	}

	total := current + delta
	if err := l.store.SetKarma(ctx, userID, total); err != nil {
		return 0, fmt.Errorf("error writing karma for user %s: %w", userID, err)
	}

	direction := "positive"
	if delta < 0 {
		direction = "negative"
	}
	metrics.KarmaApplied.WithLabelValues(direction).Add(1)

	l.logger.Debug("karma applied", "userID", userID, "delta", delta, "total", total)
	return total, nil
}
