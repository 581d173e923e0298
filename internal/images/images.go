package images

import (
	"regexp"
	"strings"
)

// imageExtensions are matched case-insensitively against the end of a URL.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

// redditImagePatterns match reddit's first-party image hosts. Substring match
// on purpose: the hosts show up in direct links, preview links and
// external-preview links alike.
var redditImagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`i\.redd\.it`),
	regexp.MustCompile(`preview\.redd\.it`),
	regexp.MustCompile(`external-preview\.redd\.it`),
}

// imgurImagePatterns match imgur direct-image links and imgur paths that end
// in an image extension.
var imgurImagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`i\.imgur\.com`),
	regexp.MustCompile(`imgur\.com/\w+\.(jpg|jpeg|png|gif)`),
}

// urlPattern matches a generic HTTP(S) URL embedded in prose or markup. The
// excluded characters commonly terminate a URL in running text.
var urlPattern = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

// IsImageURL reports whether a URL string references an image resource,
// judged by URL shape alone. No network access.
func IsImageURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	for _, pattern := range redditImagePatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}

	for _, pattern := range imgurImagePatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}

	return false
}

// ExtractImageURLs returns the image URLs found in free text, in order of
// first appearance. Duplicates are preserved; deduplication is the caller's
// concern.
func ExtractImageURLs(text string) []string {
	if text == "" {
		return nil
	}

	var imageURLs []string
	for _, candidate := range urlPattern.FindAllString(text, -1) {
		if IsImageURL(candidate) {
			imageURLs = append(imageURLs, candidate)
		}
	}
	return imageURLs
}
