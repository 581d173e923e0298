package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFormatRunSummary(t *testing.T) {
	results := []SubredditResult{
		{Subreddit: "golang", Posts: 10, Comments: 50, Images: 7, PostsWithImages: 4},
		{Subreddit: "programming", Posts: 5, Comments: 20, Images: 1, PostsWithImages: 1},
	}

	embed := formatRunSummary(results)

	if embed.Color != colorSuccess {
		t.Errorf("Expected success color for all-green run, got %d", embed.Color)
	}
	if !strings.Contains(embed.Description, "r/golang: 10 posts, 50 comments, 7 images (4 posts with images)") {
		t.Errorf("Description missing golang line: %q", embed.Description)
	}
	if len(embed.Fields) != 3 {
		t.Fatalf("Expected 3 total fields, got %d", len(embed.Fields))
	}
	if embed.Fields[0].Value != "15" || embed.Fields[1].Value != "70" || embed.Fields[2].Value != "8" {
		t.Errorf("Totals incorrect: %+v", embed.Fields)
	}
}

func TestFormatRunSummary_PartialFailure(t *testing.T) {
	results := []SubredditResult{
		{Subreddit: "golang", Posts: 10, Comments: 50},
		{Subreddit: "privatesub", Failed: true},
	}

	embed := formatRunSummary(results)

	if embed.Color != colorPartial {
		t.Errorf("Expected partial color, got %d", embed.Color)
	}
	if !strings.Contains(embed.Description, "r/privatesub: failed") {
		t.Errorf("Description missing failure line: %q", embed.Description)
	}
	// Failed subreddits must not contribute to totals.
	if embed.Fields[0].Value != "10" {
		t.Errorf("Posts total = %s, want 10", embed.Fields[0].Value)
	}
}

func TestFormatRunSummary_AllFailed(t *testing.T) {
	results := []SubredditResult{
		{Subreddit: "a", Failed: true},
		{Subreddit: "b", Failed: true},
	}

	if embed := formatRunSummary(results); embed.Color != colorFailure {
		t.Errorf("Expected failure color, got %d", embed.Color)
	}
}

func TestClient_SendRunSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %s", ct)
		}

		var payload discordWebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if len(payload.Embeds) != 1 {
			t.Errorf("Expected 1 embed, got %d", len(payload.Embeds))
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL)
	results := []SubredditResult{{Subreddit: "golang", Posts: 1}}

	if err := client.SendRunSummary(context.Background(), results); err != nil {
		t.Fatalf("SendRunSummary() returned error: %v", err)
	}
}

func TestClient_SendRunSummary_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "bad request"}`))
	}))
	defer server.Close()

	client := New(server.URL)

	err := client.SendRunSummary(context.Background(), []SubredditResult{{Subreddit: "x"}})
	if err == nil {
		t.Fatal("SendRunSummary() should have returned error for 400 response")
	}
	if !strings.Contains(err.Error(), "bad request") {
		t.Errorf("Error should carry the response body, got: %v", err)
	}
}

func TestClient_SendRunSummary_EmptyWebhookURL(t *testing.T) {
	c := New("")
	if err := c.SendRunSummary(context.Background(), []SubredditResult{{Subreddit: "x"}}); err != nil {
		t.Fatalf("SendRunSummary() with empty webhook should be a no-op, got %v", err)
	}
}
