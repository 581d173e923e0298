package processor

import (
	"sort"
	"strings"

	"github.com/pauljones0/reddit-harvester/internal/images"
	"github.com/pauljones0/reddit-harvester/internal/models"
)

// imageRef is one image reference found in a post, before it is assigned a
// record index and stamped with its subreddit.
type imageRef struct {
	url     string
	source  string
	imgType string
	mediaID string
}

// collectPostImages gathers image references for one post from its three
// sources: the primary content URL, gallery media metadata, and the body
// text. Emission order is fixed (URL, gallery, text) so downstream record
// indices are stable.
func collectPostImages(sub *models.Submission) []imageRef {
	var refs []imageRef

	if images.IsImageURL(sub.ContentURL) {
		refs = append(refs, imageRef{
			url:     sub.ContentURL,
			source:  models.ImageSourcePostURL,
			imgType: models.ImageTypeDirectLink,
		})
	}

	if sub.IsGallery && len(sub.MediaMetadata) > 0 {
		// Map iteration order is random; sort the media ids so gallery
		// entries always land in the same order.
		mediaIDs := make([]string, 0, len(sub.MediaMetadata))
		for mediaID := range sub.MediaMetadata {
			mediaIDs = append(mediaIDs, mediaID)
		}
		sort.Strings(mediaIDs)

		for _, mediaID := range mediaIDs {
			meta := sub.MediaMetadata[mediaID]
			if meta.S == nil || meta.S.URL == "" {
				continue
			}
			// The metadata carries the preview host; swap in the direct host
			// to get the full-resolution image.
			fullRes := strings.Replace(meta.S.URL, "preview.redd.it", "i.redd.it", 1)
			refs = append(refs, imageRef{
				url:     fullRes,
				source:  models.ImageSourceGallery,
				imgType: models.ImageTypeRedditGallery,
				mediaID: mediaID,
			})
		}
	}

	for _, url := range images.ExtractImageURLs(sub.Text) {
		refs = append(refs, imageRef{
			url:     url,
			source:  models.ImageSourcePostText,
			imgType: models.ImageTypeEmbeddedLink,
		})
	}

	return refs
}
