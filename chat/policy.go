// Package chat holds the decision logic for when Clem speaks: the
// per-channel response policy and the repeat-response suppressor.
package chat

import (
	"strings"

	"github.com/Orange-County-AI/clem/types"
)

// MessageContext is the slice of an incoming message the policy needs.
type MessageContext struct {
	Content      string
	IsCommand    bool
	BotMentioned bool
}

// ShouldAutoRespond decides whether Clem generates an autonomous chat reply
// for a message. A disabled channel never responds, commands never get a
// chat reply, and otherwise the channel's verbosity level gates the answer:
// karma-only channels stay quiet, mention-gated channels need a direct
// mention or the name "clem" in the text, unrestricted channels always
// respond.
func ShouldAutoRespond(settings types.ChannelSettings, msg MessageContext) bool {
	if settings.Disabled {
		return false
	}
	if msg.IsCommand {
		return false
	}

	switch settings.Verbosity {
	case types.VerbosityKarmaOnly:
		return false
	case types.VerbosityUnrestricted:
		return true
	default:
		return msg.BotMentioned || strings.Contains(strings.ToLower(msg.Content), "clem")
	}
}
