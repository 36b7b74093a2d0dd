package database

import (
	"context"
	"fmt"

	"github.com/Orange-County-AI/clem/types"
)

// MessageStore appends and reads the per-channel chat history window.
type MessageStore interface {
	AppendMessage(ctx context.Context, msg types.ChatMessage) error
	GetRecentMessages(ctx context.Context, channelID string, limit int) ([]types.ChatMessage, error)
	DeleteMessages(ctx context.Context, channelID string) error
}

// AppendMessage inserts one chat line into the history.
func (p *Postgres) AppendMessage(ctx context.Context, msg types.ChatMessage) error {
	query := "INSERT INTO messages (author, content, channel_id, created_at, model) VALUES (:author, :content, :channel_id, :created_at, :model)"
	p.logger.Debug("inserting message into database", "author", msg.Author, "channelID", msg.ChannelID)

	_, err := p.connections.NamedExecContext(ctx, query, msg)
	if err != nil {
		p.logger.Error("error inserting message into database", "error", err.Error(), "channelID", msg.ChannelID)
		return fmt.Errorf("error inserting message: %w", err)
	}
	return nil
}

// GetRecentMessages returns up to limit messages for a channel ordered
// oldest to newest.
func (p *Postgres) GetRecentMessages(ctx context.Context, channelID string, limit int) ([]types.ChatMessage, error) {
	var messages []types.ChatMessage
	query := `SELECT author, content, channel_id, created_at, model FROM (
		SELECT author, content, channel_id, created_at, model FROM messages
		WHERE channel_id = $1 ORDER BY created_at DESC LIMIT $2
	) recent ORDER BY created_at ASC`
	rows, err := p.connections.QueryxContext(ctx, query, channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting recent messages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var msg types.ChatMessage
		if err := rows.StructScan(&msg); err != nil {
			return nil, fmt.Errorf("error scanning recent message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning recent messages: %w", err)
	}
	return messages, nil
}

// DeleteMessages drops the stored history for a channel.
func (p *Postgres) DeleteMessages(ctx context.Context, channelID string) error {
	query := "DELETE FROM messages WHERE channel_id = $1"
	p.logger.Info("resetting chat history", "channelID", channelID)
	_, err := p.connections.ExecContext(ctx, query, channelID)
	if err != nil {
		p.logger.Error("error deleting messages", "error", err.Error(), "channelID", channelID)
		return fmt.Errorf("error deleting messages: %w", err)
	}
	return nil
}
