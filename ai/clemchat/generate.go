package clemchat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/Orange-County-AI/clem/ai"
	"github.com/Orange-County-AI/clem/metrics"
	"github.com/Orange-County-AI/clem/retry"
)

// generate runs one retried LLM call with the given persona and prompt.
func (b *Bot) generate(ctx context.Context, purpose, system, prompt string, maxTokens int) (string, error) {
	callID := uuid.New()
	b.logger.Debug("calling LLM", "purpose", purpose, "callID", callID)

	start := time.Now()
	resp, err := retry.DoValue(ctx, b.policy, purpose, func(ctx context.Context) (*llms.ContentResponse, error) {
		messageHistory := []llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, system),
			llms.TextParts(schema.ChatMessageTypeHuman, prompt),
		}
		return b.llm.GenerateContent(ctx, messageHistory,
			llms.WithCandidateCount(1),
			llms.WithMaxTokens(maxTokens),
			llms.WithTemperature(0.7),
		)
	})
	metrics.LLMCallDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())

	if err != nil {
		b.logger.Error("failed to get LLM response", "purpose", purpose, "callID", callID, "error", err.Error())
		metrics.FailedLLMGen.Add(1)
		return "", fmt.Errorf("failed to get llm response: %w", err)
	}

	if len(resp.Choices) == 0 {
		b.logger.Warn("empty response from LLM", "purpose", purpose, "callID", callID)
		metrics.EmptyLLMResponse.Add(1)
		return "", fmt.Errorf("empty llm response")
	}

	text := ai.CleanResponse(resp.Choices[0].Content)
	if text == "" {
		b.logger.Warn("empty response from LLM", "purpose", purpose, "callID", callID)
		metrics.EmptyLLMResponse.Add(1)
		return "", fmt.Errorf("empty llm response")
	}

	b.logger.Debug("received LLM response", "purpose", purpose, "callID", callID, "responseLength", len(text))
	metrics.SuccessfulLLMGen.Add(1)
	return text, nil
}

// RespondToChat generates Clem's reply to the channel conversation.
func (b *Bot) RespondToChat(ctx context.Context, chatHistory, guildName, channelName string) (string, error) {
	prompt := fmt.Sprintf(`guild_name = %s
channel_name = %s

You are currently in the %q server, in the "#%s" channel.

### Chat History
%s`, guildName, channelName, guildName, channelName, chatHistory)

	return b.generate(ctx, "chat", ai.ClemPrompt, prompt, 300)
}

// AnnounceKarma generates a one-liner announcing a karma change.
func (b *Bot) AnnounceKarma(ctx context.Context, username string, change, total int) (string, error) {
	prompt := fmt.Sprintf(`Announce the change in karma to the chat in a funny sentence or less! Surround the username, change, and total with `+"`**`"+` to make them bold.

username: %s
change: %d
total: %d`, username, change, total)

	return b.generate(ctx, "karma", ai.KarmaPrompt, prompt, 100)
}

// WelcomeMessage generates a greeting for a newly joined member.
func (b *Bot) WelcomeMessage(ctx context.Context, username string) (string, error) {
	prompt := fmt.Sprintf(`Generate a warm and friendly welcome message for a new user joining the Orange County AI Discord server.
Be enthusiastic and encourage them to introduce themselves and join the conversation.

username: %s`, username)

	return b.generate(ctx, "welcome", ai.WelcomePrompt, prompt, 150)
}

// SummarizeTranscript condenses a video transcript into a short summary.
func (b *Bot) SummarizeTranscript(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(`Summarize the following YouTube video transcript in a concise manner. Focus on the main points and key takeaways.

Transcript:

%s`, transcript)

	return b.generate(ctx, "summary", ai.SummaryPrompt, prompt, 300)
}
