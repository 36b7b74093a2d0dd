package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Orange-County-AI/clem/types"
)

// ChannelStore reads and writes per-channel settings.
type ChannelStore interface {
	GetChannelSettings(ctx context.Context, channelID string) (types.ChannelSettings, error)
	UpsertChannelSettings(ctx context.Context, settings types.ChannelSettings) error
}

// GetChannelSettings returns the stored settings for a channel. A channel
// with no row gets the defaults: enabled, mention-gated.
func (p *Postgres) GetChannelSettings(ctx context.Context, channelID string) (types.ChannelSettings, error) {
	var settings types.ChannelSettings
	query := "SELECT channel_id, disabled, verbosity_level FROM channels WHERE channel_id = $1"
	err := p.connections.GetContext(ctx, &settings, query, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return types.DefaultSettings(channelID), nil
	}
	if err != nil {
		return types.DefaultSettings(channelID), fmt.Errorf("error getting channel settings: %w", err)
	}
	return settings, nil
}

// UpsertChannelSettings creates or replaces the settings row for a channel.
func (p *Postgres) UpsertChannelSettings(ctx context.Context, settings types.ChannelSettings) error {
	query := `INSERT INTO channels (channel_id, disabled, verbosity_level)
		VALUES (:channel_id, :disabled, :verbosity_level)
		ON CONFLICT (channel_id) DO UPDATE SET disabled = EXCLUDED.disabled, verbosity_level = EXCLUDED.verbosity_level`
	p.logger.Debug("upserting channel settings", "channelID", settings.ChannelID, "disabled", settings.Disabled, "verbosity", int(settings.Verbosity))
	_, err := p.connections.NamedExecContext(ctx, query, settings)
	if err != nil {
		p.logger.Error("error upserting channel settings", "error", err.Error(), "channelID", settings.ChannelID)
		return fmt.Errorf("error upserting channel settings: %w", err)
	}
	return nil
}
