package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/Orange-County-AI/clem/types"
)

func TestAppendMessage(t *testing.T) {
	postgres, mock := newTestPostgres(t)

	now := time.Now().UTC()
	model := "gpt-4.1-mini"
	msg := types.ChatMessage{
		Author:    "Clem",
		Content:   "world domination proceeds apace",
		ChannelID: "chan-1",
		Time:      now,
		Model:     &model,
	}

	mock.ExpectExec("INSERT INTO messages").
		WithArgs(msg.Author, msg.Content, msg.ChannelID, msg.Time, msg.Model).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := postgres.AppendMessage(context.Background(), msg)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentMessages(t *testing.T) {
	postgres, mock := newTestPostgres(t)

	now := time.Now().UTC()
	expected := []types.ChatMessage{
		{Author: "alice", Content: "hi", ChannelID: "chan-1", Time: now.Add(-time.Minute)},
		{Author: "bob", Content: "hello", ChannelID: "chan-1", Time: now},
	}

	rows := sqlmock.NewRows([]string{"author", "content", "channel_id", "created_at", "model"})
	for _, msg := range expected {
		rows.AddRow(msg.Author, msg.Content, msg.ChannelID, msg.Time, nil)
	}

	mock.ExpectQuery("SELECT author, content, channel_id, created_at, model FROM").
		WithArgs("chan-1", 100).
		WillReturnRows(rows)

	messages, err := postgres.GetRecentMessages(context.Background(), "chan-1", 100)

	assert.NoError(t, err)
	assert.Equal(t, expected, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMessages(t *testing.T) {
	postgres, mock := newTestPostgres(t)

	mock.ExpectExec("DELETE FROM messages WHERE channel_id = \\$1").
		WithArgs("chan-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := postgres.DeleteMessages(context.Background(), "chan-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
