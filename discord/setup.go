package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Orange-County-AI/clem/ai"
	"github.com/Orange-County-AI/clem/database"
	"github.com/Orange-County-AI/clem/karma"
	"github.com/Orange-County-AI/clem/logging"
	"github.com/Orange-County-AI/clem/summarize"
)

// Options is the community-specific wiring for the session.
type Options struct {
	// GuildName is the primary community Clem welcomes members into.
	GuildName string
	// WelcomeChannel is the channel name welcome messages go to.
	WelcomeChannel string
	// AdminRole is the role required for administrative commands.
	AdminRole string
	// ModelName is recorded on stored messages authored by the bot.
	ModelName string
}

// messenger is the slice of the discord API the bot posts through.
type messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

type Client struct {
	Session *discordgo.Session

	messenger  messenger
	llm        ai.Chatter
	db         database.Store
	ledger     *karma.Ledger
	summarizer *summarize.Client
	opts       Options
	logger     *logging.Logger
}

// Setup is responsible for creating the discord session, registering the
// slash commands, and wiring the gateway handlers.
func Setup(token string, llm ai.Chatter, db database.Store, summarizer *summarize.Client, opts Options, logger *logging.Logger) (Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return Client{}, fmt.Errorf("error creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsAllWithoutPrivileged |
		discordgo.IntentMessageContent |
		discordgo.IntentGuildMembers

	c := Client{
		Session:    session,
		messenger:  session,
		llm:        llm,
		db:         db,
		ledger:     karma.NewLedger(db, logger),
		summarizer: summarizer,
		opts:       opts,
		logger:     logger,
	}

	session.AddHandler(c.onReady)
	session.AddHandler(c.handleMessage)
	session.AddHandler(c.onMemberJoin)

	// opens websocket connection
	err = session.Open()
	if err != nil {
		return Client{}, fmt.Errorf("error opening connection to discord: %w", err)
	}
	for _, v := range AddCommands() {
		_, err := session.ApplicationCommandCreate(session.State.User.ID, "", v)
		if err != nil {
			return Client{}, fmt.Errorf("error creating command: %w", err)
		}
	}

	commandHandlers := c.MakeCommandHandlers()
	// after the commands are registered we can add the handlers
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if h, ok := commandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})

	return c, nil
}

func (d Client) onReady(s *discordgo.Session, r *discordgo.Ready) {
	d.logger.Info("logged in to discord", "user", r.User.Username, "userID", r.User.ID)
}

// botUser returns the bot's own account, nil before the ready event.
func (d Client) botUser(s *discordgo.Session) *discordgo.User {
	if s.State == nil {
		return nil
	}
	return s.State.User
}
