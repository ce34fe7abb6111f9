package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveObjectPath(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		bucket   string
		wantPath string
		wantOk   bool
	}{
		{
			name:     "simple object",
			url:      "https://proj.example.co/storage/v1/object/public/videos/lessons/intro.mp4",
			bucket:   "videos",
			wantPath: "lessons/intro.mp4",
			wantOk:   true,
		},
		{
			name:     "percent-encoded path",
			url:      "https://proj.example.co/storage/v1/object/public/videos/lessons/my%20video.mp4",
			bucket:   "videos",
			wantPath: "lessons/my video.mp4",
			wantOk:   true,
		},
		{
			name:     "thumbnail bucket",
			url:      "https://proj.example.co/storage/v1/object/public/course-thumbnails/abc.png",
			bucket:   "course-thumbnails",
			wantPath: "abc.png",
			wantOk:   true,
		},
		{name: "empty url", url: "", bucket: "videos"},
		{name: "empty bucket", url: "https://proj.example.co/storage/v1/object/public/videos/a.mp4", bucket: ""},
		{name: "malformed url", url: "://not-a-url", bucket: "videos"},
		{name: "external host without marker", url: "https://www.youtube.com/watch?v=abc123", bucket: "videos"},
		{name: "wrong bucket", url: "https://proj.example.co/storage/v1/object/public/other-bucket/a.mp4", bucket: "videos"},
		{name: "bucket with no object path", url: "https://proj.example.co/storage/v1/object/public/videos", bucket: "videos"},
		{name: "marker without bucket", url: "https://proj.example.co/storage/v1/object/public/", bucket: "videos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := ResolveObjectPath(tt.url, tt.bucket)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestResolveObjectPathRoundTrip(t *testing.T) {
	client := NewClient("https://proj.example.co", "service-key")

	paths := []string{
		"intro.mp4",
		"lessons/week-1/intro.mp4",
		"deeply/nested/dir/file.webm",
	}
	for _, p := range paths {
		url := client.PublicURL("videos", p)
		got, ok := ResolveObjectPath(url, "videos")
		assert.True(t, ok, "url %s should resolve", url)
		assert.Equal(t, p, got)

		// A different bucket never resolves the same URL
		_, ok = ResolveObjectPath(url, "course-thumbnails")
		assert.False(t, ok)
	}
}
