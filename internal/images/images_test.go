package images

import (
	"reflect"
	"strings"
	"testing"
)

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "Empty URL",
			url:  "",
			want: false,
		},
		{
			name: "Direct jpg",
			url:  "https://example.com/photo.jpg",
			want: true,
		},
		{
			name: "Uppercase extension",
			url:  "https://example.com/photo.PNG",
			want: true,
		},
		{
			name: "Webp extension",
			url:  "https://cdn.example.com/a/b/c.webp",
			want: true,
		},
		{
			name: "i.redd.it without extension",
			url:  "https://i.redd.it/abc123",
			want: true,
		},
		{
			name: "preview.redd.it with query",
			url:  "https://preview.redd.it/xyz.png?width=640&auto=webp",
			want: true,
		},
		{
			name: "external-preview.redd.it",
			url:  "https://external-preview.redd.it/some-id?format=pjpg",
			want: true,
		},
		{
			name: "i.imgur.com without extension",
			url:  "https://i.imgur.com/abc123",
			want: true,
		},
		{
			name: "imgur page with image path",
			url:  "https://imgur.com/abc123.png",
			want: true,
		},
		{
			name: "imgur gallery page",
			url:  "https://imgur.com/gallery/abc123",
			want: false,
		},
		{
			name: "Plain web page",
			url:  "https://example.com/page",
			want: false,
		},
		{
			name: "Reddit post permalink",
			url:  "https://reddit.com/r/pics/comments/abc/title/",
			want: false,
		},
		{
			name: "Extension in the middle of the path only",
			url:  "https://example.com/photo.jpg/viewer",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImageURL(tt.url); got != tt.want {
				t.Errorf("IsImageURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractImageURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "Empty text",
			text: "",
			want: nil,
		},
		{
			name: "No URLs",
			text: "just some words, nothing linked",
			want: nil,
		},
		{
			name: "Image and non-image mixed",
			text: "see https://imgur.com/abc123.png and https://example.com/page",
			want: []string{"https://imgur.com/abc123.png"},
		},
		{
			name: "URL terminates at quote",
			text: `see "https://i.redd.it/abc.jpg" now`,
			want: []string{"https://i.redd.it/abc.jpg"},
		},
		{
			name: "Duplicates preserved in order",
			text: "https://i.redd.it/a.png then https://i.imgur.com/b.gif then https://i.redd.it/a.png",
			want: []string{"https://i.redd.it/a.png", "https://i.imgur.com/b.gif", "https://i.redd.it/a.png"},
		},
		{
			name: "Query string kept",
			text: "look https://preview.redd.it/xyz.png?width=1080&format=png here",
			want: []string{"https://preview.redd.it/xyz.png?width=1080&format=png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractImageURLs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractImageURLs() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Every extracted URL must appear verbatim in the input and classify as an image.
func TestExtractImageURLs_Properties(t *testing.T) {
	inputs := []string{
		"intro https://i.redd.it/abc.jpg outro",
		"a https://example.com/x b https://imgur.com/y.png c https://i.imgur.com/z d",
		"https://preview.redd.it/q.png?a=1 https://reddit.com/r/pics",
	}

	for _, text := range inputs {
		for _, u := range ExtractImageURLs(text) {
			if !strings.Contains(text, u) {
				t.Errorf("extracted URL %q not a substring of input %q", u, text)
			}
			if !IsImageURL(u) {
				t.Errorf("extracted URL %q does not classify as an image", u)
			}
		}
	}
}
