package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ClientID          string
	ClientSecret      string
	UserAgent         string
	SubredditsFile    string
	OutputDir         string
	DiscordWebhookURL string
	PostLimit         int
	Pages             int
	MaxComments       int
	RequestTimeout    time.Duration
	RequestsPerSecond float64
}

func Load() (*Config, error) {
	userAgent := os.Getenv("USER_AGENT")
	if userAgent == "" {
		return nil, fmt.Errorf("USER_AGENT environment variable is required but not set")
	}

	// Optional OAuth credentials. Without them the public JSON endpoints are
	// used, which reddit rate-limits more aggressively.
	clientID := os.Getenv("CLIENT_ID")
	clientSecret := os.Getenv("CLIENT_SECRET")
	if (clientID == "") != (clientSecret == "") {
		return nil, fmt.Errorf("CLIENT_ID and CLIENT_SECRET must be set together")
	}
	if clientID == "" {
		slog.Warn("CLIENT_ID/CLIENT_SECRET not set, using unauthenticated reddit endpoints")
	}

	discordWebhookURL := os.Getenv("DISCORD_WEBHOOK_URL")
	if discordWebhookURL == "" {
		slog.Info("DISCORD_WEBHOOK_URL not set, run summary notifications will be skipped")
	}

	subredditsFile := os.Getenv("SUBREDDITS_FILE")
	if subredditsFile == "" {
		subredditsFile = "reddit_threads.txt"
	}

	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "./reddit_data/"
	}

	postLimit := 100
	if v := os.Getenv("POST_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid POST_LIMIT %q", v)
		}
		postLimit = parsed
	}

	pages := 5
	if v := os.Getenv("PAGES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid PAGES %q", v)
		}
		pages = parsed
	}

	maxComments := 5
	if v := os.Getenv("MAX_COMMENTS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid MAX_COMMENTS %q", v)
		}
		maxComments = parsed
	}

	requestTimeoutStr := os.Getenv("REQUEST_TIMEOUT")
	if requestTimeoutStr == "" {
		requestTimeoutStr = "30s"
	}
	requestTimeout, err := time.ParseDuration(requestTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", requestTimeoutStr, err)
	}

	requestsPerSecond := 1.0
	if v := os.Getenv("REQUESTS_PER_SECOND"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid REQUESTS_PER_SECOND %q", v)
		}
		requestsPerSecond = parsed
	}

	return &Config{
		ClientID:          clientID,
		ClientSecret:      clientSecret,
		UserAgent:         userAgent,
		SubredditsFile:    subredditsFile,
		OutputDir:         outputDir,
		DiscordWebhookURL: discordWebhookURL,
		PostLimit:         postLimit,
		Pages:             pages,
		MaxComments:       maxComments,
		RequestTimeout:    requestTimeout,
		RequestsPerSecond: requestsPerSecond,
	}, nil
}

// LoadSubreddits reads the newline-delimited subreddit list. Blank lines and
// lines starting with '#' are ignored; an optional "r/" prefix is stripped.
func LoadSubreddits(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subreddits file %s: %w", path, err)
	}

	var subreddits []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		subreddits = append(subreddits, strings.TrimPrefix(line, "r/"))
	}

	if len(subreddits) == 0 {
		return nil, fmt.Errorf("subreddits file %s contains no subreddit names", path)
	}
	return subreddits, nil
}
