package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Orange-County-AI/clem/chat"
	"github.com/Orange-County-AI/clem/karma"
	"github.com/Orange-County-AI/clem/metrics"
	"github.com/Orange-County-AI/clem/summarize"
	"github.com/Orange-County-AI/clem/types"
)

// historyWindow is how many stored messages feed the LLM as conversation
// context.
const historyWindow = 100

var commandNames = func() map[string]bool {
	names := make(map[string]bool)
	for _, cmd := range AddCommands() {
		names[cmd.Name] = true
	}
	return names
}()

// isCommandMessage reports whether the text invokes one of Clem's commands
// with the "!" prefix. A bare "!" or an unknown name is ordinary chat.
func isCommandMessage(content string) bool {
	rest, ok := strings.CutPrefix(content, "!")
	if !ok {
		return false
	}
	fields := strings.Fields(rest)
	return len(fields) > 0 && commandNames[fields[0]]
}

// handleMessage is the pipeline for every gateway message: karma, history,
// summaries, then the autonomous chat reply. Each stage failure is logged
// and the pipeline moves on to the next independent stage.
func (d Client) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	metrics.DiscordMessageReceived.Add(1)
	d.logger.Info("message received", "author", m.Author.Username, "authorID", m.Author.ID, "channelID", m.ChannelID)

	ctx := context.Background()

	bot := d.botUser(s)
	isBotMessage := bot != nil && m.Author.ID == bot.ID
	isCommand := isCommandMessage(m.Content)

	settings, err := d.db.GetChannelSettings(ctx, m.ChannelID)
	if err != nil {
		// settings already carry the channel defaults on a read failure
		d.logger.Error("failed to read channel settings", "error", err.Error(), "channelID", m.ChannelID)
	}

	d.processKarma(ctx, m, settings)

	if err := d.storeMessage(ctx, m, isBotMessage); err != nil {
		d.logger.Error("error storing message", "error", err.Error(), "channelID", m.ChannelID)
	}

	newMemberNotice := m.Type == discordgo.MessageTypeGuildMemberJoin &&
		d.channelName(s, m.ChannelID) == d.opts.WelcomeChannel &&
		d.guildName(s, m.GuildID) == d.opts.GuildName

	if isBotMessage || settings.Disabled || settings.Verbosity == types.VerbosityKarmaOnly || isCommand || newMemberNotice {
		return
	}

	if d.summarizer != nil {
		videoID := summarize.ExtractVideoID(m.Content)
		url := summarize.ExtractURL(m.Content)
		if videoID != "" {
			d.sendVideoSummary(ctx, m, videoID)
			return
		}
		// only summarize non-YouTube URLs
		if url != "" {
			d.sendWebSummary(ctx, m, url)
			return
		}
	}

	d.respondToChat(ctx, s, m, settings)
}

// processKarma extracts and applies karma changes, announcing each one. A
// disabled channel suppresses both the ledger write and the announcement.
func (d Client) processKarma(ctx context.Context, m *discordgo.MessageCreate, settings types.ChannelSettings) {
	if settings.Disabled || len(m.Mentions) == 0 {
		return
	}

	mentionIDs := make([]string, 0, len(m.Mentions))
	for _, mention := range m.Mentions {
		mentionIDs = append(mentionIDs, mention.ID)
	}

	deltas := karma.Extract(m.Content, mentionIDs)
	if len(deltas) == 0 {
		return
	}
	metrics.KarmaEventCount.Add(1)

	seen := make(map[string]bool)
	for _, mention := range m.Mentions {
		change, ok := deltas[mention.ID]
		if !ok || seen[mention.ID] {
			continue
		}
		seen[mention.ID] = true

		total, err := d.ledger.Apply(ctx, mention.ID, change)
		if err != nil {
			d.logger.Error("failed to apply karma", "error", err.Error(), "userID", mention.ID)
			continue
		}

		announcement, err := d.llm.AnnounceKarma(ctx, mention.Username, change, total)
		if err != nil {
			d.logger.Error("failed to generate karma announcement", "error", err.Error(), "userID", mention.ID)
			continue
		}
		d.send(m.ChannelID, announcement)
	}
}

// storeMessage appends the message to the channel history with mention
// tokens rewritten to readable usernames. Bot rows record the model.
func (d Client) storeMessage(ctx context.Context, m *discordgo.MessageCreate, isBotMessage bool) error {
	content := m.Content
	for _, mention := range m.Mentions {
		content = strings.ReplaceAll(content, fmt.Sprintf("<@%s>", mention.ID), "@"+mention.Username)
		content = strings.ReplaceAll(content, fmt.Sprintf("<@!%s>", mention.ID), "@"+mention.Username)
	}

	row := types.ChatMessage{
		Author:    m.Author.Username,
		Content:   content,
		ChannelID: m.ChannelID,
		Time:      time.Now().UTC(),
	}
	if isBotMessage {
		model := d.opts.ModelName
		row.Model = &model
	}

	if err := d.db.AppendMessage(ctx, row); err != nil {
		return err
	}
	metrics.MessageStored.Add(1)
	return nil
}

func (d Client) sendVideoSummary(ctx context.Context, m *discordgo.MessageCreate, videoID string) {
	transcript, err := d.summarizer.Transcript(ctx, videoID)
	if err != nil {
		d.logger.Error("failed to get video transcript", "error", err.Error(), "videoID", videoID)
		metrics.SummaryFailCount.Add(1)
		return
	}

	summary, err := d.llm.SummarizeTranscript(ctx, transcript.Transcript)
	if err != nil {
		d.logger.Error("failed to summarize video", "error", err.Error(), "videoID", videoID)
		metrics.SummaryFailCount.Add(1)
		return
	}

	d.reply(m, summary)
	metrics.SummarySuccessCount.Add(1)
	d.logger.Info("sent video summary", "videoID", videoID, "channelID", m.ChannelID)
}

func (d Client) sendWebSummary(ctx context.Context, m *discordgo.MessageCreate, url string) {
	summary, err := d.summarizer.WebSummary(ctx, url)
	if err != nil {
		d.logger.Error("failed to get web page summary", "error", err.Error(), "url", url)
		metrics.SummaryFailCount.Add(1)
		return
	}

	d.reply(m, summary)
	metrics.SummarySuccessCount.Add(1)
	d.logger.Info("sent web page summary", "channelID", m.ChannelID)
}

// respondToChat runs the verbosity policy, generates a reply from the stored
// channel history, and sends it unless it repeats recent chat.
func (d Client) respondToChat(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, settings types.ChannelSettings) {
	bot := d.botUser(s)

	mentioned := false
	if bot != nil {
		for _, mention := range m.Mentions {
			if mention.ID == bot.ID {
				mentioned = true
				break
			}
		}
	}

	msgCtx := chat.MessageContext{
		Content:      m.Content,
		BotMentioned: mentioned,
	}
	if !chat.ShouldAutoRespond(settings, msgCtx) {
		return
	}

	history, err := d.db.GetRecentMessages(ctx, m.ChannelID, historyWindow)
	if err != nil {
		d.logger.Error("failed to load chat history", "error", err.Error(), "channelID", m.ChannelID)
		return
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Author, msg.Content))
	}

	response, err := d.llm.RespondToChat(ctx, strings.Join(lines, "\n"), d.guildName(s, m.GuildID), d.channelName(s, m.ChannelID))
	if err != nil {
		d.logger.Error("failed to generate chat response", "error", err.Error(), "channelID", m.ChannelID)
		return
	}

	botName := ""
	if bot != nil {
		botName = bot.Username
	}
	if !chat.ShouldSend(response, botName, history) {
		metrics.DuplicateSuppressed.Add(1)
		d.logger.Info("duplicate or repetitive message prevented", "channelID", m.ChannelID)
		return
	}

	d.send(m.ChannelID, response)
}

func (d Client) send(channelID, content string) {
	_, err := d.messenger.ChannelMessageSend(channelID, content)
	if err != nil {
		d.logger.Error("error sending message", "error", err.Error(), "channelID", channelID)
		return
	}
	metrics.DiscordMessageSent.Add(1)
}

func (d Client) reply(m *discordgo.MessageCreate, content string) {
	_, err := d.messenger.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		d.logger.Error("error sending reply", "error", err.Error(), "channelID", m.ChannelID)
		return
	}
	metrics.DiscordMessageSent.Add(1)
}

func (d Client) channelName(s *discordgo.Session, channelID string) string {
	channel, err := s.State.Channel(channelID)
	if err != nil {
		channel, err = s.Channel(channelID)
		if err != nil {
			d.logger.Debug("could not resolve channel name", "channelID", channelID)
			return ""
		}
	}
	return channel.Name
}

func (d Client) guildName(s *discordgo.Session, guildID string) string {
	if guildID == "" {
		return ""
	}
	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			d.logger.Debug("could not resolve guild name", "guildID", guildID)
			return ""
		}
	}
	return guild.Name
}
