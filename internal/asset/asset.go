package asset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"
)

// Asset pairs a remote locator with the Resource that parses and renders its
// content. Assets start as bare URLs; a Resource is attached exactly once
// (selected by mime hint or injected directly) and never replaced.
//
// Each Resource exclusively owns the child Assets it discovers, so the
// overall structure is a strict tree. Content-level cycles (a document
// referencing an ancestor's URL) are not detected.
type Asset struct {
	// URL is the locator the content is fetched from and the base for
	// resolving relative references found inside that content.
	URL *url.URL

	// MimeHint helps choose a Resource implementation. It may be empty
	// when the type is unknown; it never overrides types sniffed from
	// content.
	MimeHint string

	// Resource is nil until selected or injected.
	Resource Resource
}

// New creates an unresolved Asset for the given locator.
func New(u *url.URL, mimeHint string) *Asset {
	return &Asset{URL: u, MimeHint: mimeHint}
}

// SelectResource attaches a Resource chosen from reg by the asset's mime
// hint. Idempotent: an already-attached Resource is kept untouched.
func (a *Asset) SelectResource(reg *Registry) Resource {
	if a.Resource == nil {
		a.Resource = reg.New(a.MimeHint, a.URL)
	}
	return a.Resource
}

// Download fetches the asset's content, feeds it to the attached Resource,
// and returns the newly discovered child Assets in discovery order.
//
// An attached Resource is a precondition; without one the call fails with
// ErrMissingResource. A Resource that already has data skips the fetch and
// just returns its current children. Transport failures and non-200
// statuses wrap ErrHTTP; parse failures wrap ErrParse.
func (a *Asset) Download(ctx context.Context, f Fetcher) ([]*Asset, error) {
	if a.Resource == nil {
		return nil, ErrMissingResource
	}

	if !a.Resource.HasData() {
		res, err := f.Fetch(ctx, a.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: fetching %s: %w", ErrHTTP, a.URL, err)
		}
		if res.Status != http.StatusOK {
			return nil, fmt.Errorf("%w: %s returned status %d", ErrHTTP, a.URL, res.Status)
		}
		if err := a.Resource.Parse(res.Body); err != nil {
			return nil, err
		}
	}

	return a.Resource.NeededAssets(), nil
}

// RenderText renders the asset and decodes the result as UTF-8 text. Fails
// with ErrMissingResource when no Resource is attached and with ErrParse
// when the rendered bytes are not valid UTF-8.
func (a *Asset) RenderText() (string, error) {
	if a.Resource == nil {
		return "", ErrMissingResource
	}

	data, err := a.Resource.Render()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: rendered content is not valid UTF-8", ErrParse)
	}
	return string(data), nil
}
