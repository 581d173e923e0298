package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pauljones0/reddit-harvester/internal/config"
)

func newTestClient(baseURL string, cfg *config.Config) *Client {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 1000 // keep tests fast
	}
	c := New(cfg)
	c.baseURLOverride = baseURL
	return c
}

func listingPage(ids []string, after string) string {
	children := ""
	for i, id := range ids {
		if i > 0 {
			children += ","
		}
		children += fmt.Sprintf(`{"kind": "t3", "data": {"id": %q, "title": "post %s", "permalink": "/r/testsub/comments/%s/"}}`, id, id, id)
	}
	afterJSON := "null"
	if after != "" {
		afterJSON = fmt.Sprintf("%q", after)
	}
	return fmt.Sprintf(`{"kind": "Listing", "data": {"after": %s, "children": [%s]}}`, afterJSON, children)
}

func TestClient_FetchPosts_Pagination(t *testing.T) {
	var requests int32
	var secondAfter string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/testsub/hot.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("raw_json") != "1" {
			t.Error("Expected raw_json=1 query param")
		}

		n := atomic.AddInt32(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		switch n {
		case 1:
			fmt.Fprint(w, listingPage([]string{"p1", "p2"}, "t3_p2"))
		case 2:
			secondAfter = r.URL.Query().Get("after")
			fmt.Fprint(w, listingPage([]string{"p3", "p4"}, ""))
		default:
			t.Errorf("Unexpected extra request %d", n)
		}
	}))
	defer server.Close()

	cfg := &config.Config{PostLimit: 2, Pages: 2}
	c := newTestClient(server.URL, cfg)

	submissions, err := c.FetchPosts(context.Background(), "testsub")
	if err != nil {
		t.Fatalf("FetchPosts() returned error: %v", err)
	}

	if len(submissions) != 4 {
		t.Fatalf("Expected 4 submissions across 2 pages, got %d", len(submissions))
	}
	if submissions[0].ID != "p1" || submissions[3].ID != "p4" {
		t.Errorf("Submission order wrong: first=%s last=%s", submissions[0].ID, submissions[3].ID)
	}
	if secondAfter != "t3_p2" {
		t.Errorf("Second request after cursor = %q, want t3_p2", secondAfter)
	}
}

func TestClient_FetchPosts_StopsOnShortPage(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		// Small subreddit: one page, no cursor.
		fmt.Fprint(w, listingPage([]string{"p1"}, ""))
	}))
	defer server.Close()

	cfg := &config.Config{PostLimit: 100, Pages: 5}
	c := newTestClient(server.URL, cfg)

	submissions, err := c.FetchPosts(context.Background(), "testsub")
	if err != nil {
		t.Fatalf("FetchPosts() returned error: %v", err)
	}
	if len(submissions) != 1 {
		t.Errorf("Expected 1 submission, got %d", len(submissions))
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Errorf("Expected exactly 1 request for an exhausted listing, got %d", got)
	}
}

func TestClient_FetchComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/testsub/comments/p1.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"kind": "Listing", "data": {"children": [{"kind": "t3", "data": {"id": "p1"}}]}},
			{"kind": "Listing", "data": {"children": [
				{"kind": "t1", "data": {"id": "c1", "body": "hello", "author": "alice", "parent_id": "t3_p1", "replies": ""}}
			]}}
		]`)
	}))
	defer server.Close()

	c := newTestClient(server.URL, &config.Config{})

	forest, err := c.FetchComments(context.Background(), "testsub", "p1")
	if err != nil {
		t.Fatalf("FetchComments() returned error: %v", err)
	}
	if len(forest) != 1 || forest[0].ID != "c1" {
		t.Fatalf("Unexpected forest: %+v", forest)
	}
	if forest[0].Body == nil || *forest[0].Body != "hello" {
		t.Errorf("Comment body not parsed: %+v", forest[0])
	}
}

func TestClient_FetchPosts_RecoversFromServerError(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, listingPage([]string{"p1"}, ""))
	}))
	defer server.Close()

	cfg := &config.Config{PostLimit: 1, Pages: 1}
	c := newTestClient(server.URL, cfg)

	submissions, err := c.FetchPosts(context.Background(), "testsub")
	if err != nil {
		t.Fatalf("FetchPosts() should succeed after a retry, got: %v", err)
	}
	if len(submissions) != 1 {
		t.Errorf("Expected 1 submission, got %d", len(submissions))
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Errorf("Expected 2 attempts (1 failure + 1 success), got %d", got)
	}
}

func TestClient_FetchPosts_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage([]string{"p1"}, ""))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &config.Config{PostLimit: 1, Pages: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.FetchPosts(ctx, "testsub"); err == nil {
		t.Error("Expected error for a cancelled context")
	}
}

func TestBaseURL_OAuthWhenCredentialsSet(t *testing.T) {
	withCreds := New(&config.Config{ClientID: "id", ClientSecret: "secret"})
	if got := withCreds.baseURL(); got != oauthBaseURL {
		t.Errorf("baseURL() = %s, want %s", got, oauthBaseURL)
	}

	anonymous := New(&config.Config{})
	if got := anonymous.baseURL(); got != publicBaseURL {
		t.Errorf("baseURL() = %s, want %s", got, publicBaseURL)
	}
}
