package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveURLRewritesR2Endpoint(t *testing.T) {
	raw := "https://acct.r2.cloudflarestorage.com/my-bucket/blog/cover.png"
	got := ResolveURL(raw, "https://cdn.example.com")
	assert.Equal(t, "https://cdn.example.com/blog/cover.png", got)
}

func TestResolveURLPassThrough(t *testing.T) {
	// Relative paths, foreign hosts and unset domains are untouched.
	assert.Equal(t, "/uploads/x.png", ResolveURL("/uploads/x.png", "https://cdn.example.com"))
	assert.Equal(t, "https://other.example.com/x.png", ResolveURL("https://other.example.com/x.png", "https://cdn.example.com"))
	raw := "https://acct.r2.cloudflarestorage.com/my-bucket/x.png"
	assert.Equal(t, raw, ResolveURL(raw, ""))
	assert.Equal(t, "", ResolveURL("", "https://cdn.example.com"))
}
