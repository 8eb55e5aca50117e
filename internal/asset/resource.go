package asset

import (
	"context"
	"net/url"
)

// Resource parses one kind of remote content and renders it with its remote
// references embedded inline.
type Resource interface {
	// Parse consumes the raw content. It must be called at most once per
	// instance; implementations panic on a second call rather than
	// silently re-parsing. Content violating the resource's format
	// returns an error wrapping ErrParse.
	Parse(data []byte) error

	// HasData reports whether Parse has succeeded.
	HasData() bool

	// NeededAssets returns the child Assets that must be resolved before
	// Render, in discovery order. Valid only after HasData. Callers
	// mutate the returned Assets in place; identity is stable across
	// calls.
	NeededAssets() []*Asset

	// Render produces the parsed content with every loaded child
	// embedded as a data URI. Returns ErrResourceUnloaded when called
	// before a successful Parse.
	Render() ([]byte, error)
}

// FetchResult is a completed fetch: the HTTP status code and the fully read
// response body.
type FetchResult struct {
	Status int
	Body   []byte
}

// Fetcher retrieves remote content. One Fetcher is shared across all
// concurrent downloads, so implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, u *url.URL) (*FetchResult, error)
}
