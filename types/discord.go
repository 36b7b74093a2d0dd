package types

import "time"

// VerbosityLevel controls how freely Clem starts conversations in a channel.
type VerbosityLevel int

const (
	// VerbosityKarmaOnly only announces karma changes, never chats.
	VerbosityKarmaOnly VerbosityLevel = 1
	// VerbosityMentioned chats when Clem is mentioned by name or tag.
	VerbosityMentioned VerbosityLevel = 2
	// VerbosityUnrestricted chats on any message.
	VerbosityUnrestricted VerbosityLevel = 3
)

// Valid reports whether the level is one of the three known settings.
func (v VerbosityLevel) Valid() bool {
	return v >= VerbosityKarmaOnly && v <= VerbosityUnrestricted
}

// Description is the human readable form used in command confirmations.
func (v VerbosityLevel) Description() string {
	switch v {
	case VerbosityKarmaOnly:
		return "Karma changes only"
	case VerbosityMentioned:
		return "Mentions only"
	case VerbosityUnrestricted:
		return "Unrestricted"
	default:
		return "Unknown"
	}
}

// ChannelSettings is the per-channel record controlling Clem's behavior.
// A missing row behaves like the zero settings for the channel: enabled,
// mention-gated.
type ChannelSettings struct {
	ChannelID string         `db:"channel_id"`
	Disabled  bool           `db:"disabled"`
	Verbosity VerbosityLevel `db:"verbosity_level"`
}

// DefaultSettings returns the settings used when a channel has no stored row.
func DefaultSettings(channelID string) ChannelSettings {
	return ChannelSettings{
		ChannelID: channelID,
		Verbosity: VerbosityMentioned,
	}
}

// ChatMessage is one stored line of channel history. Model is only set on
// rows authored by Clem, recording which LLM produced the text.
type ChatMessage struct {
	Author    string    `db:"author"`
	Content   string    `db:"content"`
	ChannelID string    `db:"channel_id"`
	Time      time.Time `db:"created_at"`
	Model     *string   `db:"model"`
}
