// Package summarize calls the hosted transcript and web-summarizer services
// Clem uses to reply to links posted in chat.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/pkg/errors"

	"github.com/Orange-County-AI/clem/logging"
	"github.com/Orange-County-AI/clem/retry"
)

const (
	transcriptURL = "https://windmill.knowsuchagency.com/api/w/default/jobs/run_wait_result/p/u/stephan/get_youtube_transcript"
	webSummaryURL = "https://windmill.knowsuchagency.com/api/w/default/jobs/run_wait_result/p/u/stephan/web_summarizer"
)

var (
	videoIDPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com|youtu\.be)/(?:watch\?v=)?(.+)`)
	urlPattern     = regexp.MustCompile(`https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+(?:[^\s()<>]+|\(([^\s()<>]+\))*\))+`)
)

// ExtractVideoID pulls a YouTube video id out of message text, or returns ""
// when the text has no YouTube link.
func ExtractVideoID(content string) string {
	match := videoIDPattern.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	return match[1]
}

// ExtractURL returns the first URL in the text, or "".
func ExtractURL(content string) string {
	return urlPattern.FindString(content)
}

// Client calls the transcript and web-summary APIs.
type Client struct {
	TranscriptURL string
	WebSummaryURL string
	HTTPClient    *http.Client

	transcriptToken string
	webSummaryToken string
	policy          retry.Policy
	logger          *logging.Logger
}

// NewClient builds a summarize client with the default endpoints.
func NewClient(transcriptToken, webSummaryToken string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		TranscriptURL: transcriptURL,
		WebSummaryURL: webSummaryURL,
		HTTPClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		transcriptToken: transcriptToken,
		webSummaryToken: webSummaryToken,
		policy:          retry.NewPolicy(logger),
		logger:          logger,
	}
}

// TranscriptResult is the transcript service's response payload.
type TranscriptResult struct {
	Transcript string `json:"transcript"`
	Title      string `json:"title"`
}

// Transcript fetches the transcript for a YouTube video.
func (c *Client) Transcript(ctx context.Context, videoID string) (TranscriptResult, error) {
	if videoID == "" {
		return TranscriptResult{}, errors.New("video id cannot be empty")
	}

	body := map[string]string{
		"video_id_or_url": "https://www.youtube.com/watch?v=" + videoID,
	}

	return retry.DoValue(ctx, c.policy, "transcript", func(ctx context.Context) (TranscriptResult, error) {
		var result TranscriptResult
		if err := c.post(ctx, c.TranscriptURL, c.transcriptToken, body, &result); err != nil {
			return TranscriptResult{}, err
		}
		if result.Transcript == "" {
			return TranscriptResult{}, errors.New("no transcript found in response")
		}
		if result.Title == "" {
			result.Title = "YouTube Video"
		}
		return result, nil
	})
}

// WebSummary fetches a summary of an arbitrary web page. The service returns
// either a JSON string with the summary or an object carrying an error field.
func (c *Client) WebSummary(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", errors.New("url cannot be empty")
	}

	body := map[string]string{"url": pageURL}

	return retry.DoValue(ctx, c.policy, "web_summary", func(ctx context.Context) (string, error) {
		var raw json.RawMessage
		if err := c.post(ctx, c.WebSummaryURL, c.webSummaryToken, body, &raw); err != nil {
			return "", err
		}

		var failure struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &failure); err == nil && failure.Error != "" {
			return "", errors.New(failure.Error)
		}

		var summary string
		if err := json.Unmarshal(raw, &summary); err != nil {
			return "", errors.Wrap(err, "unexpected web summary payload")
		}
		return summary, nil
	})
}

func (c *Client) post(ctx context.Context, endpoint, token string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to make request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
