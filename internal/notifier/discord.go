// Package notifier posts a harvest run summary to a Discord webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	colorSuccess = 3066993  // #2ECC71
	colorPartial = 16753920 // #FFA500
	colorFailure = 16711680 // #FF0000
)

// SubredditResult is one subreddit's line in the run summary.
type SubredditResult struct {
	Subreddit       string
	Posts           int
	Comments        int
	Images          int
	PostsWithImages int
	Failed          bool
}

type Client struct {
	webhookURL string
	client     *http.Client
}

func New(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SendRunSummary posts one embed summarizing the whole run. A client with
// an empty webhook URL is a no-op so callers never need to branch.
func (c *Client) SendRunSummary(ctx context.Context, results []SubredditResult) error {
	if c.webhookURL == "" {
		return nil
	}
	embed := formatRunSummary(results)
	return c.send(ctx, embed)
}

// Internal structures
type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

func formatRunSummary(results []SubredditResult) discordEmbed {
	var lines []string
	failures := 0
	totalPosts, totalComments, totalImages := 0, 0, 0

	for _, r := range results {
		if r.Failed {
			failures++
			lines = append(lines, fmt.Sprintf("r/%s: failed", r.Subreddit))
			continue
		}
		totalPosts += r.Posts
		totalComments += r.Comments
		totalImages += r.Images
		lines = append(lines, fmt.Sprintf("r/%s: %d posts, %d comments, %d images (%d posts with images)",
			r.Subreddit, r.Posts, r.Comments, r.Images, r.PostsWithImages))
	}

	color := colorSuccess
	if failures > 0 {
		color = colorPartial
	}
	if failures == len(results) && len(results) > 0 {
		color = colorFailure
	}

	return discordEmbed{
		Title:       "Reddit harvest complete",
		Description: strings.Join(lines, "\n"),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Color:       color,
		Fields: []discordEmbedField{
			{Name: "Posts", Value: fmt.Sprintf("%d", totalPosts), Inline: true},
			{Name: "Comments", Value: fmt.Sprintf("%d", totalComments), Inline: true},
			{Name: "Images", Value: fmt.Sprintf("%d", totalImages), Inline: true},
		},
	}
}

func (c *Client) send(ctx context.Context, embed discordEmbed) error {
	payload := discordWebhookPayload{Embeds: []discordEmbed{embed}}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("discord status: %s, body: %s", resp.Status, string(bodyBytes))
}
