package scraper

import (
	"encoding/json"
	"fmt"

	"github.com/pauljones0/reddit-harvester/internal/models"
)

// Reddit listing wire format. Children carry a kind tag ("t3" posts, "t1"
// comments, "more" placeholders) and a kind-specific data payload.
type listingEnvelope struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

type listingData struct {
	After    string         `json:"after"`
	Children []listingChild `json:"children"`
}

type listingChild struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type postData struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	Score         int                      `json:"score"`
	Permalink     string                   `json:"permalink"`
	URL           string                   `json:"url"`
	Selftext      string                   `json:"selftext"`
	CreatedUTC    float64                  `json:"created_utc"`
	UpvoteRatio   float64                  `json:"upvote_ratio"`
	Ups           int                      `json:"ups"`
	TotalAwards   int                      `json:"total_awards_received"`
	LinkFlairText *string                  `json:"link_flair_text"`
	Author        string                   `json:"author"`
	NumComments   int                      `json:"num_comments"`
	IsGallery     bool                     `json:"is_gallery"`
	MediaMetadata map[string]mediaMetadata `json:"media_metadata"`
}

type mediaMetadata struct {
	S *mediaPreview `json:"s"`
}

type mediaPreview struct {
	U string `json:"u"`
}

type commentData struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
	ParentID   string  `json:"parent_id"`
	// Replies is a nested listing for threaded replies, or the empty string
	// when there are none. Decoded lazily because of that shape change.
	Replies json.RawMessage `json:"replies"`
}

type moreData struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id"`
}

// parsePostListing decodes one page of a subreddit listing into submissions
// (without comments) plus the pagination cursor.
func parsePostListing(data []byte) ([]models.Submission, string, error) {
	var envelope listingEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, "", fmt.Errorf("malformed listing: %w", err)
	}

	var submissions []models.Submission
	for _, child := range envelope.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post postData
		if err := json.Unmarshal(child.Data, &post); err != nil {
			return nil, "", fmt.Errorf("malformed post entry: %w", err)
		}
		submissions = append(submissions, convertPost(post))
	}
	return submissions, envelope.Data.After, nil
}

// parseCommentThread decodes the two-listing response of a comments endpoint
// and returns the top-level comment forest (the second listing).
func parseCommentThread(data []byte) ([]models.CommentNode, error) {
	var listings []json.RawMessage
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("malformed comment thread: %w", err)
	}
	if len(listings) < 2 {
		return nil, fmt.Errorf("comment thread has %d listings, expected 2", len(listings))
	}

	var envelope listingEnvelope
	if err := json.Unmarshal(listings[1], &envelope); err != nil {
		return nil, fmt.Errorf("malformed comment listing: %w", err)
	}
	return convertCommentChildren(envelope.Data.Children)
}

func convertPost(post postData) models.Submission {
	sub := models.Submission{
		ID:            post.ID,
		Title:         post.Title,
		Score:         post.Score,
		Permalink:     post.Permalink,
		ContentURL:    post.URL,
		Text:          post.Selftext,
		CreatedUTC:    post.CreatedUTC,
		UpvoteRatio:   post.UpvoteRatio,
		Ups:           post.Ups,
		TotalAwards:   post.TotalAwards,
		LinkFlairText: post.LinkFlairText,
		NumComments:   post.NumComments,
		IsGallery:     post.IsGallery,
	}
	sub.Author = authorOrNil(post.Author)
	if len(post.MediaMetadata) > 0 {
		sub.MediaMetadata = make(map[string]models.MediaMetadata, len(post.MediaMetadata))
		for mediaID, meta := range post.MediaMetadata {
			converted := models.MediaMetadata{}
			if meta.S != nil {
				converted.S = &models.MediaPreview{URL: meta.S.U}
			}
			sub.MediaMetadata[mediaID] = converted
		}
	}
	return sub
}

func convertCommentChildren(children []listingChild) ([]models.CommentNode, error) {
	var nodes []models.CommentNode
	for _, child := range children {
		switch child.Kind {
		case "t1":
			var comment commentData
			if err := json.Unmarshal(child.Data, &comment); err != nil {
				return nil, fmt.Errorf("malformed comment entry: %w", err)
			}
			node, err := convertComment(comment)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case "more":
			// "Load more" stubs are kept as body-less placeholders and never
			// resolved; the walker skips them.
			var more moreData
			if err := json.Unmarshal(child.Data, &more); err != nil {
				return nil, fmt.Errorf("malformed more entry: %w", err)
			}
			nodes = append(nodes, models.CommentNode{ID: more.ID, ParentID: more.ParentID})
		}
	}
	return nodes, nil
}

func convertComment(comment commentData) (models.CommentNode, error) {
	body := comment.Body
	node := models.CommentNode{
		ID:         comment.ID,
		Body:       &body,
		Score:      comment.Score,
		Author:     authorOrNil(comment.Author),
		CreatedUTC: comment.CreatedUTC,
		ParentID:   comment.ParentID,
	}

	// Replies is either a nested listing object or "".
	if isJSONObject(comment.Replies) {
		var envelope listingEnvelope
		if err := json.Unmarshal(comment.Replies, &envelope); err != nil {
			return models.CommentNode{}, fmt.Errorf("malformed replies of comment %s: %w", comment.ID, err)
		}
		replies, err := convertCommentChildren(envelope.Data.Children)
		if err != nil {
			return models.CommentNode{}, err
		}
		node.Replies = replies
	}
	return node, nil
}

func authorOrNil(author string) *string {
	if author == "" || author == models.DeletedAuthor {
		return nil
	}
	return &author
}

func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
