package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KarmaStore reads and writes per-user karma totals.
type KarmaStore interface {
	GetKarma(ctx context.Context, userID string) (int, error)
	SetKarma(ctx context.Context, userID string, total int) error
}

// GetKarma returns the running total for a user, 0 when the user has no row.
func (p *Postgres) GetKarma(ctx context.Context, userID string) (int, error) {
	var total int
	query := "SELECT karma FROM karma WHERE user_id = $1"
	err := p.connections.GetContext(ctx, &total, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error getting karma: %w", err)
	}
	return total, nil
}

// SetKarma writes the new running total for a user. Totals are written whole
// rather than incremented in place so a retried write cannot double-apply.
func (p *Postgres) SetKarma(ctx context.Context, userID string, total int) error {
	query := `INSERT INTO karma (user_id, karma) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET karma = EXCLUDED.karma`
	p.logger.Debug("writing karma total", "userID", userID, "total", total)
	_, err := p.connections.ExecContext(ctx, query, userID, total)
	if err != nil {
		p.logger.Error("error writing karma total", "error", err.Error(), "userID", userID)
		return fmt.Errorf("error writing karma total: %w", err)
	}
	return nil
}
