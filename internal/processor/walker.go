package processor

import (
	"strings"

	"github.com/pauljones0/reddit-harvester/internal/images"
	"github.com/pauljones0/reddit-harvester/internal/models"
)

// walkResult carries everything one walk produced. Results flow up the call
// chain and are merged by the caller instead of threading shared accumulators
// through the traversal.
type walkResult struct {
	comments []models.CommentRecord
	images   []models.ImageRecord
}

// walkCommentTree visits root and every descendant reachable through reply
// links exactly once, depth-first, first reply first. An explicit worklist
// bounds the traversal by memory rather than call-stack depth.
//
// Body-less placeholder nodes ("load more" stubs, removed comments) emit no
// record and their subtrees are not descended. Replies under a placeholder
// are therefore dropped even if the data exposes them; tests pin this down.
func walkCommentTree(root *models.CommentNode, postID string) walkResult {
	var result walkResult

	stack := []*models.CommentNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.Body == nil {
			continue
		}

		imageURLs := images.ExtractImageURLs(*node.Body)
		result.comments = append(result.comments, buildCommentRecord(node, postID, imageURLs))
		for i, url := range imageURLs {
			result.images = append(result.images, models.ImageRecord{
				PostID:    postID,
				CommentID: node.ID,
				Index:     i,
				URL:       url,
				Source:    models.ImageSourceCommentText,
				Type:      models.ImageTypeEmbeddedLink,
			})
		}

		// Push replies in reverse so the first reply is processed next.
		for i := len(node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, &node.Replies[i])
		}
	}

	return result
}

func buildCommentRecord(node *models.CommentNode, postID string, imageURLs []string) models.CommentRecord {
	author := models.DeletedAuthor
	if node.Author != nil {
		author = *node.Author
	}

	return models.CommentRecord{
		PostID:     postID,
		CommentID:  node.ID,
		Text:       *node.Body,
		Score:      node.Score,
		Author:     author,
		CreatedUTC: node.CreatedUTC,
		ParentID:   node.ParentID,
		ReplyToID:  stripKindPrefix(node.ParentID),
		Sentiment:  models.SentimentPlaceholder,
		HasImages:  len(imageURLs) > 0,
		NumImages:  len(imageURLs),
		ImageURLs:  strings.Join(imageURLs, models.ImageURLSeparator),
	}
}

// stripKindPrefix turns a fullname like "t1_xxx" or "t3_xxx" into the bare
// id. A fullname without the separator degrades to empty rather than failing.
func stripKindPrefix(fullname string) string {
	_, id, found := strings.Cut(fullname, "_")
	if !found {
		return ""
	}
	return id
}
