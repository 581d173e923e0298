// Package storage persists harvested records as per-subreddit CSV files.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pauljones0/reddit-harvester/internal/models"
)

var postHeader = []string{
	"subreddit", "post_id", "post_title", "post_score", "post_url",
	"post_content_url", "post_text", "timestamp", "post_upvote_ratio",
	"post_ups", "post_total_awards_received", "post_link_flair_text",
	"post_author", "post_num_comments", "has_images", "num_images",
	"is_gallery", "content_type",
}

var commentHeader = []string{
	"post_id", "comment_id", "comment_text", "comment_score",
	"comment_author", "comment_created_utc", "parent_id", "reply_to_id",
	"comment_sentiment", "has_images", "num_images", "image_urls",
	"subreddit",
}

var imageHeader = []string{
	"subreddit", "post_id", "comment_id", "image_index", "image_url",
	"image_source", "image_type", "media_id",
}

// Writer writes one trio of CSV files per subreddit under a base directory.
type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return &Writer{outputDir: outputDir}, nil
}

// WriteRecords writes <subreddit>_posts.csv and <subreddit>_comments.csv,
// plus <subreddit>_images.csv when any image records exist. Existing files
// are overwritten.
func (w *Writer) WriteRecords(subreddit string, posts []models.PostRecord, comments []models.CommentRecord, images []models.ImageRecord) error {
	if err := w.writeFile(subreddit+"_posts.csv", postHeader, postRows(posts)); err != nil {
		return err
	}
	if err := w.writeFile(subreddit+"_comments.csv", commentHeader, commentRows(comments)); err != nil {
		return err
	}
	if len(images) > 0 {
		if err := w.writeFile(subreddit+"_images.csv", imageHeader, imageRows(images)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFile(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func postRows(posts []models.PostRecord) [][]string {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.Subreddit,
			p.PostID,
			p.Title,
			strconv.Itoa(p.Score),
			p.PermalinkURL,
			p.ContentURL,
			p.Text,
			formatFloat(p.CreatedUTC),
			formatFloat(p.UpvoteRatio),
			strconv.Itoa(p.Ups),
			strconv.Itoa(p.TotalAwards),
			p.LinkFlairText,
			p.Author,
			strconv.Itoa(p.NumComments),
			strconv.FormatBool(p.HasImages),
			strconv.Itoa(p.NumImages),
			strconv.FormatBool(p.IsGallery),
			p.ContentType,
		})
	}
	return rows
}

func commentRows(comments []models.CommentRecord) [][]string {
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{
			c.PostID,
			c.CommentID,
			c.Text,
			strconv.Itoa(c.Score),
			c.Author,
			formatFloat(c.CreatedUTC),
			c.ParentID,
			c.ReplyToID,
			c.Sentiment,
			strconv.FormatBool(c.HasImages),
			strconv.Itoa(c.NumImages),
			c.ImageURLs,
			c.Subreddit,
		})
	}
	return rows
}

func imageRows(images []models.ImageRecord) [][]string {
	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{
			img.Subreddit,
			img.PostID,
			img.CommentID,
			strconv.Itoa(img.Index),
			img.URL,
			img.Source,
			img.Type,
			img.MediaID,
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
