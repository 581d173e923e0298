package processor

import (
	"github.com/pauljones0/reddit-harvester/internal/models"
)

// RecordWriter abstracts the serialization layer for harvested records.
type RecordWriter interface {
	WriteRecords(subreddit string, posts []models.PostRecord, comments []models.CommentRecord, images []models.ImageRecord) error
}
