package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orange-County-AI/clem/karma"
	"github.com/Orange-County-AI/clem/logging"
	"github.com/Orange-County-AI/clem/types"
)

// fakeStore is an in-memory database.Store for handler tests.
type fakeStore struct {
	settings    map[string]types.ChannelSettings
	settingsErr error
	karma       map[string]int
	messages    []types.ChatMessage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings: make(map[string]types.ChannelSettings),
		karma:    make(map[string]int),
	}
}

func (f *fakeStore) GetChannelSettings(ctx context.Context, channelID string) (types.ChannelSettings, error) {
	if f.settingsErr != nil {
		return types.DefaultSettings(channelID), f.settingsErr
	}
	if s, ok := f.settings[channelID]; ok {
		return s, nil
	}
	return types.DefaultSettings(channelID), nil
}

func (f *fakeStore) UpsertChannelSettings(ctx context.Context, settings types.ChannelSettings) error {
	f.settings[settings.ChannelID] = settings
	return nil
}

func (f *fakeStore) GetKarma(ctx context.Context, userID string) (int, error) {
	return f.karma[userID], nil
}

func (f *fakeStore) SetKarma(ctx context.Context, userID string, total int) error {
	f.karma[userID] = total
	return nil
}

func (f *fakeStore) AppendMessage(ctx context.Context, msg types.ChatMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeStore) GetRecentMessages(ctx context.Context, channelID string, limit int) ([]types.ChatMessage, error) {
	return f.messages, nil
}

func (f *fakeStore) DeleteMessages(ctx context.Context, channelID string) error {
	f.messages = nil
	return nil
}

// fakeChatter records which generation calls were made.
type fakeChatter struct {
	announcedUsers []string
	chatPrompts    []string
	welcomed       []string
	summarized     []string
}

func (f *fakeChatter) RespondToChat(ctx context.Context, chatHistory, guildName, channelName string) (string, error) {
	f.chatPrompts = append(f.chatPrompts, chatHistory)
	return "chat reply", nil
}

func (f *fakeChatter) AnnounceKarma(ctx context.Context, username string, change, total int) (string, error) {
	f.announcedUsers = append(f.announcedUsers, username)
	return "karma update", nil
}

func (f *fakeChatter) WelcomeMessage(ctx context.Context, username string) (string, error) {
	f.welcomed = append(f.welcomed, username)
	return "welcome aboard", nil
}

func (f *fakeChatter) SummarizeTranscript(ctx context.Context, transcript string) (string, error) {
	f.summarized = append(f.summarized, transcript)
	return "summary", nil
}

// fakeMessenger records everything the bot posts.
type fakeMessenger struct {
	sent []string
}

func (f *fakeMessenger) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, content)
	return &discordgo.Message{}, nil
}

func (f *fakeMessenger) ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, content)
	return &discordgo.Message{}, nil
}

func (f *fakeMessenger) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.sent = append(f.sent, resp.Data.Content)
	return nil
}

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.LogLevelError, nil)
}

func newTestClient(store *fakeStore) (Client, *fakeChatter, *fakeMessenger) {
	chatter := &fakeChatter{}
	msgr := &fakeMessenger{}
	client := Client{
		messenger: msgr,
		llm:       chatter,
		db:        store,
		ledger:    karma.NewLedger(store, testLogger()),
		opts: Options{
			GuildName:      "Orange County AI",
			WelcomeChannel: "general",
			AdminRole:      "Clementine Council",
			ModelName:      "test-model",
		},
		logger: testLogger(),
	}
	return client, chatter, msgr
}

func karmaMessage(channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   "<@123> ++++",
			ChannelID: channelID,
			Author:    &discordgo.User{ID: "u1", Username: "alice"},
			Mentions: []*discordgo.User{
				{ID: "123", Username: "bob"},
			},
		},
	}
}

func TestHandleMessageAppliesKarma(t *testing.T) {
	store := newFakeStore()
	client, chatter, msgr := newTestClient(store)

	client.handleMessage(&discordgo.Session{}, karmaMessage("chan-1"))

	assert.Equal(t, 2, store.karma["123"])
	assert.Equal(t, []string{"bob"}, chatter.announcedUsers)
	assert.Equal(t, []string{"karma update"}, msgr.sent)
}

func TestHandleMessageDisabledChannelSuppressesKarma(t *testing.T) {
	store := newFakeStore()
	store.settings["chan-1"] = types.ChannelSettings{
		ChannelID: "chan-1",
		Disabled:  true,
		Verbosity: types.VerbosityMentioned,
	}
	client, chatter, msgr := newTestClient(store)

	client.handleMessage(&discordgo.Session{}, karmaMessage("chan-1"))

	assert.Empty(t, store.karma)
	assert.Empty(t, chatter.announcedUsers)
	assert.Empty(t, msgr.sent)
	// history still accumulates while the channel is disabled
	assert.Len(t, store.messages, 1)
}

func TestHandleMessageDoubleMentionAnnouncesOnce(t *testing.T) {
	store := newFakeStore()
	client, chatter, _ := newTestClient(store)

	m := karmaMessage("chan-1")
	m.Content = "<@123> ++ thanks again <@123> ++"
	m.Mentions = append(m.Mentions, &discordgo.User{ID: "123", Username: "bob"})

	client.handleMessage(&discordgo.Session{}, m)

	assert.Equal(t, 2, store.karma["123"])
	assert.Equal(t, []string{"bob"}, chatter.announcedUsers)
}

func TestIsCommandMessage(t *testing.T) {
	tests := []struct {
		content  string
		expected bool
	}{
		{"!toggle_clem", true},
		{"!help please", true},
		{"!reset_chat", true},
		{"!!! nice one clem", false},
		{"!unknown", false},
		{"!", false},
		{"hello there", false},
		{"shout! loud", false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.expected, isCommandMessage(tt.content))
		})
	}
}

func TestStoreMessageRewritesMentions(t *testing.T) {
	store := newFakeStore()
	client, _, _ := newTestClient(store)

	m := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   "thanks <@123> and <@!456>!",
			ChannelID: "chan-1",
			Author:    &discordgo.User{Username: "alice"},
			Mentions: []*discordgo.User{
				{ID: "123", Username: "bob"},
				{ID: "456", Username: "carol"},
			},
		},
	}

	err := client.storeMessage(context.Background(), m, false)
	require.NoError(t, err)

	require.Len(t, store.messages, 1)
	stored := store.messages[0]
	assert.Equal(t, "alice", stored.Author)
	assert.Equal(t, "thanks @bob and @carol!", stored.Content)
	assert.Equal(t, "chan-1", stored.ChannelID)
	assert.Nil(t, stored.Model)
}

func TestStoreMessageRecordsModelForBot(t *testing.T) {
	store := newFakeStore()
	client, _, _ := newTestClient(store)

	m := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   "world domination update",
			ChannelID: "chan-1",
			Author:    &discordgo.User{Username: "Clem"},
		},
	}

	err := client.storeMessage(context.Background(), m, true)
	require.NoError(t, err)

	require.Len(t, store.messages, 1)
	require.NotNil(t, store.messages[0].Model)
	assert.Equal(t, "test-model", *store.messages[0].Model)
}
