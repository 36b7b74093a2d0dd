package chat

import (
	"strings"

	"github.com/Orange-County-AI/clem/types"
)

// ShouldSend reports whether a generated response is worth sending given the
// channel's recent history (oldest first). It suppresses the response when
// it would echo the most recent human message (compared case-insensitively)
// or repeat the bot's own most recent message (compared exactly).
func ShouldSend(candidate string, botAuthor string, history []types.ChatMessage) bool {
	var lastUser, lastBot *types.ChatMessage
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Author == botAuthor {
			if lastBot == nil {
				lastBot = &msg
			}
		} else if lastUser == nil {
			lastUser = &msg
		}
		if lastUser != nil && lastBot != nil {
			break
		}
	}

	if lastUser != nil && strings.EqualFold(lastUser.Content, candidate) {
		return false
	}
	if lastBot != nil && lastBot.Content == candidate {
		return false
	}
	return true
}
