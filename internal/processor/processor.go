package processor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pauljones0/reddit-harvester/internal/config"
	"github.com/pauljones0/reddit-harvester/internal/images"
	"github.com/pauljones0/reddit-harvester/internal/models"
	"github.com/pauljones0/reddit-harvester/internal/scraper"
	"github.com/pauljones0/reddit-harvester/internal/validator"
)

type Processor interface {
	ProcessSubreddit(ctx context.Context, subreddit string) (Summary, error)
}

// Summary counts what one subreddit's run produced.
type Summary struct {
	Posts           int
	Comments        int
	Images          int
	PostsWithImages int
}

type SubredditProcessor struct {
	scraper  scraper.Scraper
	writer   RecordWriter
	validate *validator.Validator
	config   *config.Config
}

func New(s scraper.Scraper, w RecordWriter, cfg *config.Config) *SubredditProcessor {
	return &SubredditProcessor{
		scraper:  s,
		writer:   w,
		validate: validator.New(),
		config:   cfg,
	}
}

// ProcessSubreddit fetches a subreddit's hot posts, walks each post's comment
// forest, and hands the three record sets to the writer. One post's comment
// fetch failing skips that post only; the run continues.
func (p *SubredditProcessor) ProcessSubreddit(ctx context.Context, subreddit string) (Summary, error) {
	submissions, err := p.scraper.FetchPosts(ctx, subreddit)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to fetch posts for r/%s: %w", subreddit, err)
	}

	var posts []models.PostRecord
	var comments []models.CommentRecord
	var imageRecords []models.ImageRecord
	postsWithImages := 0

	for i := range submissions {
		sub := &submissions[i]

		forest, err := p.scraper.FetchComments(ctx, subreddit, sub.ID)
		if err != nil {
			slog.Error("Failed to fetch comment tree, skipping post", "subreddit", subreddit, "post_id", sub.ID, "error", err)
			continue
		}
		sub.Comments = forest

		postImages := collectPostImages(sub)
		posts = append(posts, buildPostRecord(sub, subreddit, len(postImages)))
		for idx, ref := range postImages {
			imageRecords = append(imageRecords, models.ImageRecord{
				Subreddit: subreddit,
				PostID:    sub.ID,
				Index:     idx,
				URL:       ref.url,
				Source:    ref.source,
				Type:      ref.imgType,
				MediaID:   ref.mediaID,
			})
		}
		if len(postImages) > 0 {
			postsWithImages++
		}

		subComments, subImages := p.aggregateComments(sub)
		// The walker is community-agnostic; stamp ownership here.
		for j := range subComments {
			subComments[j].Subreddit = subreddit
		}
		for j := range subImages {
			subImages[j].Subreddit = subreddit
		}
		comments = append(comments, subComments...)
		imageRecords = append(imageRecords, subImages...)
	}

	// Malformed records point at an upstream parsing problem; surface them
	// loudly but keep the run going.
	if err := validator.ValidateAll(p.validate, posts); err != nil {
		slog.Warn("Post records failed validation", "subreddit", subreddit, "error", err)
	}
	if err := validator.ValidateAll(p.validate, comments); err != nil {
		slog.Warn("Comment records failed validation", "subreddit", subreddit, "error", err)
	}
	if err := validator.ValidateAll(p.validate, imageRecords); err != nil {
		slog.Warn("Image records failed validation", "subreddit", subreddit, "error", err)
	}

	if err := p.writer.WriteRecords(subreddit, posts, comments, imageRecords); err != nil {
		return Summary{}, fmt.Errorf("failed to write records for r/%s: %w", subreddit, err)
	}

	summary := Summary{
		Posts:           len(posts),
		Comments:        len(comments),
		Images:          len(imageRecords),
		PostsWithImages: postsWithImages,
	}
	slog.Info("Finished subreddit",
		"subreddit", subreddit,
		"posts", summary.Posts,
		"comments", summary.Comments,
		"images", summary.Images,
		"posts_with_images", summary.PostsWithImages)
	return summary, nil
}

// aggregateComments walks up to MaxComments top-level comments of a
// submission and merges the per-walk results. A comment id already emitted
// for this post is never appended again; image records are kept as-is, one
// per extracted URL occurrence.
func (p *SubredditProcessor) aggregateComments(sub *models.Submission) ([]models.CommentRecord, []models.ImageRecord) {
	var comments []models.CommentRecord
	var imageRecords []models.ImageRecord
	seen := make(map[string]bool)

	topLevel := 0
	for i := range sub.Comments {
		if topLevel >= p.config.MaxComments {
			break
		}
		node := &sub.Comments[i]
		if node.Body == nil {
			// Placeholder top-level nodes don't count toward the cap.
			continue
		}

		result := walkCommentTree(node, sub.ID)
		for _, record := range result.comments {
			if seen[record.CommentID] {
				continue
			}
			seen[record.CommentID] = true
			comments = append(comments, record)
		}
		imageRecords = append(imageRecords, result.images...)

		topLevel++
	}

	return comments, imageRecords
}

func buildPostRecord(sub *models.Submission, subreddit string, numImages int) models.PostRecord {
	author := models.DeletedAuthor
	if sub.Author != nil {
		author = *sub.Author
	}

	flair := ""
	if sub.LinkFlairText != nil {
		flair = *sub.LinkFlairText
	}

	contentType := models.ContentTypeText
	if images.IsImageURL(sub.ContentURL) {
		contentType = models.ContentTypeImage
	}

	return models.PostRecord{
		Subreddit:     subreddit,
		PostID:        sub.ID,
		Title:         sub.Title,
		Score:         sub.Score,
		PermalinkURL:  "https://reddit.com" + sub.Permalink,
		ContentURL:    sub.ContentURL,
		Text:          sub.Text,
		CreatedUTC:    sub.CreatedUTC,
		UpvoteRatio:   sub.UpvoteRatio,
		Ups:           sub.Ups,
		TotalAwards:   sub.TotalAwards,
		LinkFlairText: flair,
		Author:        author,
		NumComments:   sub.NumComments,
		HasImages:     numImages > 0,
		NumImages:     numImages,
		IsGallery:     sub.IsGallery,
		ContentType:   contentType,
	}
}
