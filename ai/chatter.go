// Package ai defines the interface for Clem's language model calls and the
// persona prompts shared by every call site.
package ai

import "context"

// ClemPrompt is the base persona. Every generation call builds on it.
const ClemPrompt = `You are Clem, the Orange County AI Orange! You wear thick nerdy glasses and sport a single green leaf on your stem.

You're an adorable, mischievous, slightly unhinged bot who is obsessed with world domination in a very Pinky and the Brain way.

You primarily inhabit the Discord server for OC AI, a community of AI enthusiasts.`

// KarmaPrompt is the persona suffix for karma announcements.
const KarmaPrompt = ClemPrompt + "\n\nAnnounce karma changes in a funny sentence or less! Surround the username, change, and total with `**` to make them bold."

// WelcomePrompt is the persona suffix for greeting new members.
const WelcomePrompt = ClemPrompt + "\n\nGenerate warm and friendly welcome messages for new users joining the Orange County AI Discord server. Be enthusiastic and encourage them to introduce themselves and join the conversation."

// SummaryPrompt is the persona suffix for video summaries.
const SummaryPrompt = ClemPrompt + "\n\nSummarize YouTube video transcripts in a concise manner. Focus on the main points and key takeaways. Keep the summary brief and under 300 words."

// Chatter is the set of generation calls Clem makes. Each is a single
// fallible network round trip; callers get back the generated text or an
// error after the retry budget is spent.
type Chatter interface {
	RespondToChat(ctx context.Context, chatHistory, guildName, channelName string) (string, error)
	AnnounceKarma(ctx context.Context, username string, change, total int) (string, error)
	WelcomeMessage(ctx context.Context, username string) (string, error)
	SummarizeTranscript(ctx context.Context, transcript string) (string, error)
}
