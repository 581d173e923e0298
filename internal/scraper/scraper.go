package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/pauljones0/reddit-harvester/internal/config"
	"github.com/pauljones0/reddit-harvester/internal/models"
	"github.com/pauljones0/reddit-harvester/internal/util"
)

const (
	publicBaseURL = "https://www.reddit.com"
	oauthBaseURL  = "https://oauth.reddit.com"
	tokenURL      = "https://www.reddit.com/api/v1/access_token"

	// Reddit caps listing pages at 100 items.
	maxPageSize = 100

	maxRetries     = 3
	retryBaseDelay = time.Second
)

// Scraper fetches subreddit posts and their comment forests. Implementations
// return fully materialized structures; callers never touch the network.
type Scraper interface {
	FetchPosts(ctx context.Context, subreddit string) ([]models.Submission, error)
	FetchComments(ctx context.Context, subreddit, postID string) ([]models.CommentNode, error)
}

type Client struct {
	httpClient *resty.Client
	limiter    *rate.Limiter
	config     *config.Config

	// baseURLOverride points the client at a local server in tests.
	baseURLOverride string

	token       string
	tokenExpiry time.Time
}

func New(cfg *config.Config) *Client {
	httpClient := resty.New()
	httpClient.SetTimeout(cfg.RequestTimeout)
	httpClient.SetHeader("User-Agent", cfg.UserAgent)

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		config:     cfg,
	}
}

// FetchPosts retrieves up to PostLimit*Pages hot posts for a subreddit,
// following the listing's "after" cursor across pages.
func (c *Client) FetchPosts(ctx context.Context, subreddit string) ([]models.Submission, error) {
	target := c.config.PostLimit * c.config.Pages

	var submissions []models.Submission
	after := ""
	for len(submissions) < target {
		pageSize := target - len(submissions)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d&raw_json=1", c.baseURL(), subreddit, pageSize)
		if after != "" {
			url += "&after=" + after
		}

		body, err := c.getJSON(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posts for r/%s: %w", subreddit, err)
		}

		page, nextAfter, err := parsePostListing(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse post listing for r/%s: %w", subreddit, err)
		}
		submissions = append(submissions, page...)

		if nextAfter == "" || len(page) == 0 {
			break
		}
		after = nextAfter
	}

	if len(submissions) > target {
		submissions = submissions[:target]
	}
	slog.Info("Fetched posts", "subreddit", subreddit, "count", len(submissions))
	return submissions, nil
}

// FetchComments retrieves the comment forest of one post. "Load more"
// placeholders are kept as body-less nodes and never resolved, mirroring the
// listing's first page of comments.
func (c *Client) FetchComments(ctx context.Context, subreddit, postID string) ([]models.CommentNode, error) {
	url := fmt.Sprintf("%s/r/%s/comments/%s.json?limit=500&raw_json=1", c.baseURL(), subreddit, postID)

	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for post %s: %w", postID, err)
	}

	forest, err := parseCommentThread(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comment thread for post %s: %w", postID, err)
	}
	return forest, nil
}

func (c *Client) baseURL() string {
	if c.baseURLOverride != "" {
		return c.baseURLOverride
	}
	if c.config.ClientID != "" {
		return oauthBaseURL
	}
	return publicBaseURL
}

func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := util.RetryWithBackoff(ctx, maxRetries, retryBaseDelay, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := c.ensureToken(ctx); err != nil {
			return err
		}

		req := c.httpClient.R().SetContext(ctx)
		if c.token != "" {
			req.SetAuthToken(c.token)
		}

		resp, err := req.Get(url)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP %d from %s", resp.StatusCode(), url)
		}
		body = resp.Body()
		return nil
	})
	return body, err
}

// ensureToken obtains an application-only OAuth token when credentials are
// configured and the current token is missing or about to expire.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.config.ClientID == "" {
		return nil
	}
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBasicAuth(c.config.ClientID, c.config.ClientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&tokenResp).
		Post(tokenURL)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("token request returned HTTP %d", resp.StatusCode())
	}
	if tokenResp.AccessToken == "" {
		return fmt.Errorf("token response contained no access token")
	}

	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - time.Minute)
	return nil
}
