package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pauljones0/reddit-harvester/internal/config"
	"github.com/pauljones0/reddit-harvester/internal/notifier"
	"github.com/pauljones0/reddit-harvester/internal/processor"
	"github.com/pauljones0/reddit-harvester/internal/scraper"
	"github.com/pauljones0/reddit-harvester/internal/storage"
)

func main() {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	slog.Info("Starting reddit harvester...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	subreddits, err := config.LoadSubreddits(cfg.SubredditsFile)
	if err != nil {
		slog.Error("Critical error loading subreddit list", "error", err, "file", cfg.SubredditsFile)
		os.Exit(1)
	}

	writer, err := storage.NewWriter(cfg.OutputDir)
	if err != nil {
		slog.Error("Critical error preparing output directory", "error", err)
		os.Exit(1)
	}

	s := scraper.New(cfg)
	p := processor.New(s, writer, cfg)
	n := notifier.New(cfg.DiscordWebhookURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := make([]notifier.SubredditResult, 0, len(subreddits))
	for _, subreddit := range subreddits {
		if err := ctx.Err(); err != nil {
			slog.Warn("Run interrupted, stopping", "remaining", len(subreddits)-len(results))
			break
		}

		slog.Info("Processing subreddit", "subreddit", subreddit)
		summary, err := p.ProcessSubreddit(ctx, subreddit)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Warn("Run interrupted, stopping", "subreddit", subreddit)
				break
			}
			slog.Error("Failed to process subreddit", "subreddit", subreddit, "error", err)
			results = append(results, notifier.SubredditResult{Subreddit: subreddit, Failed: true})
			continue
		}
		results = append(results, notifier.SubredditResult{
			Subreddit:       subreddit,
			Posts:           summary.Posts,
			Comments:        summary.Comments,
			Images:          summary.Images,
			PostsWithImages: summary.PostsWithImages,
		})
	}

	totalPosts, totalComments, totalImages, failed := 0, 0, 0, 0
	for _, r := range results {
		if r.Failed {
			failed++
			continue
		}
		totalPosts += r.Posts
		totalComments += r.Comments
		totalImages += r.Images
	}
	slog.Info("Harvest complete",
		"subreddits", len(results),
		"failed", failed,
		"posts", totalPosts,
		"comments", totalComments,
		"images", totalImages,
		"output_dir", cfg.OutputDir)

	if len(results) > 0 {
		// Summary notification is best effort.
		if err := n.SendRunSummary(context.Background(), results); err != nil {
			slog.Warn("Failed to send run summary", "error", err)
		}
	}

	if failed == len(results) && len(results) > 0 {
		os.Exit(1)
	}
}
