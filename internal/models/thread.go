package models

// Submission is one fetched post together with its fully materialized comment
// forest. It is what the scraper hands to the processor; the processor never
// goes back to the network.
type Submission struct {
	ID            string
	Title         string
	Score         int
	Permalink     string
	ContentURL    string
	Text          string
	CreatedUTC    float64
	UpvoteRatio   float64
	Ups           int
	TotalAwards   int
	LinkFlairText *string
	Author        *string
	NumComments   int
	IsGallery     bool
	// MediaMetadata maps a gallery media id to its metadata. Nil when the
	// submission is not a gallery or the listing omitted it.
	MediaMetadata map[string]MediaMetadata
	// Comments holds the top-level comments in the listing's default order.
	Comments []CommentNode
}

// MediaMetadata is one gallery entry. Only the preview-size image is carried;
// that is all the collector needs.
type MediaMetadata struct {
	S *MediaPreview
}

// MediaPreview is the preview-size sub-object of a gallery entry.
type MediaPreview struct {
	URL string
}

// CommentNode is one node of a comment forest. A nil Body marks a placeholder
// ("load more" stubs and similar non-comments); a nil Author maps to the
// DeletedAuthor sentinel when the record is built.
type CommentNode struct {
	ID         string
	Body       *string
	Score      int
	Author     *string
	CreatedUTC float64
	ParentID   string
	Replies    []CommentNode
}
