package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/Orange-County-AI/clem/metrics"
)

// onMemberJoin greets new members of the primary guild in the welcome
// channel. A failed greeting is logged and dropped.
func (d Client) onMemberJoin(s *discordgo.Session, g *discordgo.GuildMemberAdd) {
	if d.guildName(s, g.GuildID) != d.opts.GuildName {
		return
	}

	channelID := d.findChannel(s, g.GuildID, d.opts.WelcomeChannel)
	if channelID == "" {
		d.logger.Warn("welcome channel not found", "guildID", g.GuildID, "channel", d.opts.WelcomeChannel)
		return
	}

	ctx := context.Background()
	welcome, err := d.llm.WelcomeMessage(ctx, g.User.Username)
	if err != nil {
		d.logger.Error("failed to generate welcome message", "error", err.Error(), "userID", g.User.ID)
		return
	}

	d.send(channelID, g.User.Mention()+" "+welcome)
	metrics.WelcomeSentCount.Add(1)
	d.logger.Info("welcomed new member", "user", g.User.Username, "guildID", g.GuildID)
}

// findChannel resolves a text channel id by name within a guild.
func (d Client) findChannel(s *discordgo.Session, guildID, name string) string {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		d.logger.Error("failed to list guild channels", "error", err.Error(), "guildID", guildID)
		return ""
	}
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildText && channel.Name == name {
			return channel.ID
		}
	}
	return ""
}
