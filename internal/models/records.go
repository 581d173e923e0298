package models

// Image provenance tags. They record which part of a submission an image
// reference was found in.
const (
	ImageSourcePostURL     = "post_url"
	ImageSourceGallery     = "gallery"
	ImageSourcePostText    = "post_text"
	ImageSourceCommentText = "comment_text"
)

// Image type tags.
const (
	ImageTypeDirectLink    = "direct_link"
	ImageTypeRedditGallery = "reddit_gallery"
	ImageTypeEmbeddedLink  = "embedded_link"
)

// Content type of a post, derived from its content URL.
const (
	ContentTypeImage = "image"
	ContentTypeText  = "text"
)

// DeletedAuthor is the sentinel written when a post or comment author is absent.
const DeletedAuthor = "[deleted]"

// SentimentPlaceholder is written to every comment record; sentiment analysis
// is not performed.
const SentimentPlaceholder = "N/A"

// ImageURLSeparator joins the image URLs found in a comment body into a single
// field. "|" cannot appear inside a URL, so the packing is unambiguous.
const ImageURLSeparator = "|"

// PostRecord is one flattened row of post output.
type PostRecord struct {
	Subreddit       string  `validate:"required"`
	PostID          string  `validate:"required"`
	Title           string
	Score           int
	PermalinkURL    string
	ContentURL      string
	Text            string
	CreatedUTC      float64
	UpvoteRatio     float64 `validate:"gte=0,lte=1"`
	Ups             int
	TotalAwards     int `validate:"gte=0"`
	LinkFlairText   string
	Author          string
	NumComments     int `validate:"gte=0"`
	HasImages       bool
	NumImages       int `validate:"gte=0"`
	IsGallery       bool
	ContentType     string `validate:"oneof=image text"`
}

// CommentRecord is one flattened row of comment output. A comment belongs to a
// post via PostID and to its parent via ParentID (raw fullname, e.g. t1_xxx or
// t3_xxx); ReplyToID is the parent fullname with the type prefix stripped, or
// empty when the fullname is malformed.
type CommentRecord struct {
	PostID     string `validate:"required"`
	CommentID  string `validate:"required"`
	Text       string
	Score      int
	Author     string
	CreatedUTC float64
	ParentID   string
	ReplyToID  string
	Sentiment  string
	HasImages  bool
	NumImages  int `validate:"gte=0"`
	ImageURLs  string
	Subreddit  string
}

// ImageRecord is one image reference found in a submission or comment.
// CommentID is empty for post-sourced images. Index is local to the source
// the image came from.
type ImageRecord struct {
	Subreddit string
	PostID    string `validate:"required"`
	CommentID string
	Index     int    `validate:"gte=0"`
	URL       string `validate:"required"`
	Source    string `validate:"oneof=post_url gallery post_text comment_text"`
	Type      string `validate:"oneof=direct_link reddit_gallery embedded_link"`
	MediaID   string
}
