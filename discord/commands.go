package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Orange-County-AI/clem/metrics"
	"github.com/Orange-County-AI/clem/types"
)

// AddCommands lists the slash commands Clem registers on startup.
func AddCommands() []*discordgo.ApplicationCommand {
	var minVerbosity float64 = 1
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "help",
			Description: "List Clem's commands",
		},
		{
			Name:        "toggle_clem",
			Description: "Toggle Clem's automatic responses in the current channel.",
		},
		{
			Name:        "set_verbosity",
			Description: "Set Clem's verbosity level in the current channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "level",
					Description: "1 = karma changes only, 2 = mentions only, 3 = unrestricted",
					Required:    true,
					MinValue:    &minVerbosity,
				},
			},
		},
		{
			Name:        "reset_chat",
			Description: "Reset the chat history for the current channel.",
		},
	}
	return commands
}

// MakeCommandHandlers returns a map of command names to their respective functions
func (d Client) MakeCommandHandlers() map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"help":          d.help,
		"toggle_clem":   d.adminOnly("toggle_clem", d.toggleClem),
		"set_verbosity": d.adminOnly("set_verbosity", d.setVerbosity),
		"reset_chat":    d.adminOnly("reset_chat", d.resetChat),
	}
}

// respond sends the single confirmation or error message every command
// produces.
func (d Client) respond(i *discordgo.InteractionCreate, content string) {
	err := d.messenger.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		d.logger.Error("error responding to command", "error", err.Error())
		return
	}
	metrics.DiscordMessageSent.Add(1)
}

// adminOnly wraps a handler with the admin role gate and command metrics.
// A denied invocation gets a denial message, not an error log.
func (d Client) adminOnly(name string, handler func(s *discordgo.Session, i *discordgo.InteractionCreate)) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		start := time.Now()
		metrics.CommandTotal.WithLabelValues(name).Inc()
		defer func() {
			metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}()

		if !d.isAdmin(s, i) {
			d.respond(i, "You don't have permission to use this command. Only members of the "+d.opts.AdminRole+" can use it.")
			return
		}
		handler(s, i)
	}
}

// isAdmin reports whether the invoking member holds the admin role.
func (d Client) isAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Interaction.Member == nil {
		return false
	}

	roles, err := s.GuildRoles(i.GuildID)
	if err != nil {
		d.logger.Error("failed to fetch guild roles", "error", err.Error(), "guildID", i.GuildID)
		return false
	}

	var adminRoleID string
	for _, role := range roles {
		if role.Name == d.opts.AdminRole {
			adminRoleID = role.ID
			break
		}
	}
	if adminRoleID == "" {
		return false
	}

	for _, roleID := range i.Interaction.Member.Roles {
		if roleID == adminRoleID {
			return true
		}
	}
	return false
}

func (d Client) help(s *discordgo.Session, i *discordgo.InteractionCreate) {
	metrics.CommandTotal.WithLabelValues("help").Inc()
	d.respond(i, "Use /toggle_clem to enable or disable Clem in a channel, /set_verbosity to control how chatty Clem is (1-3), and /reset_chat to clear the channel's stored history. Mention someone with ++ or -- to change their karma.")
}

func (d Client) toggleClem(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	channelID := i.ChannelID

	settings, err := d.db.GetChannelSettings(ctx, channelID)
	if err != nil {
		d.logger.Error("failed to read channel settings", "error", err.Error(), "channelID", channelID)
		metrics.CommandErrors.WithLabelValues("toggle_clem").Inc()
		d.respond(i, "An error occurred while toggling Clem.")
		return
	}

	settings.Disabled = !settings.Disabled
	if err := d.db.UpsertChannelSettings(ctx, settings); err != nil {
		d.logger.Error("failed to update channel settings", "error", err.Error(), "channelID", channelID)
		metrics.CommandErrors.WithLabelValues("toggle_clem").Inc()
		d.respond(i, "An error occurred while toggling Clem.")
		return
	}

	status := "enabled"
	if settings.Disabled {
		status = "disabled"
	}
	d.respond(i, "Clem has been "+status+" in this channel.")
}

func (d Client) setVerbosity(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		d.respond(i, "Invalid verbosity level. Please choose 1, 2, or 3.")
		return
	}

	level := types.VerbosityLevel(data.Options[0].IntValue())
	if !level.Valid() {
		d.respond(i, "Invalid verbosity level. Please choose 1, 2, or 3.")
		return
	}

	ctx := context.Background()
	channelID := i.ChannelID

	settings, err := d.db.GetChannelSettings(ctx, channelID)
	if err != nil {
		d.logger.Error("failed to read channel settings", "error", err.Error(), "channelID", channelID)
		metrics.CommandErrors.WithLabelValues("set_verbosity").Inc()
		d.respond(i, "An error occurred while setting the verbosity level.")
		return
	}
	settings.Verbosity = level

	if err := d.db.UpsertChannelSettings(ctx, settings); err != nil {
		d.logger.Error("failed to update channel settings", "error", err.Error(), "channelID", channelID)
		metrics.CommandErrors.WithLabelValues("set_verbosity").Inc()
		d.respond(i, "An error occurred while setting the verbosity level.")
		return
	}

	d.respond(i, fmt.Sprintf("Clem's verbosity level has been set to %d (%s) in this channel.", int(level), level.Description()))
}

func (d Client) resetChat(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	channelID := i.ChannelID

	if err := d.db.DeleteMessages(ctx, channelID); err != nil {
		d.logger.Error("error resetting chat history", "error", err.Error(), "channelID", channelID)
		metrics.CommandErrors.WithLabelValues("reset_chat").Inc()
		d.respond(i, "An error occurred while resetting the chat history.")
		return
	}

	d.logger.Info("chat history reset", "channelID", channelID)
	d.respond(i, "Chat history for this channel has been reset.")
}
