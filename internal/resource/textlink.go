package resource

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jcdickinson/monofetch/internal/asset"
	"github.com/jcdickinson/monofetch/internal/mime"
)

func init() {
	asset.DefaultRegistry.Register("text/plain", func(u *url.URL) asset.Resource {
		return NewTextLink(u)
	})
}

// tokenPattern matches quote-delimited reference tokens. The inner group is
// the token itself: no quotes, newlines, or whitespace.
var tokenPattern = regexp.MustCompile(`(?:'|")(?P<inner>[^"'\n\s]+?)(?:"|')`)

// span is a child asset together with the byte range of its token in the
// parsed text.
type span struct {
	start, end int
	child      *asset.Asset
}

// TextLink scans plain text for quoted reference tokens and renders the text
// with each loaded reference replaced by a data URI. Tokens keep their
// surrounding quotes; only the inner span is replaced.
type TextLink struct {
	url    *url.URL
	data   string
	loaded bool
	spans  []span
}

// NewTextLink creates an empty TextLink resource whose relative references
// resolve against base.
func NewTextLink(base *url.URL) *TextLink {
	return &TextLink{url: base}
}

func (r *TextLink) Parse(data []byte) error {
	if r.loaded {
		panic("Parse called twice on TextLink")
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: content is not valid UTF-8", asset.ErrParse)
	}
	r.data = string(data)
	r.loaded = true

	for _, m := range tokenPattern.FindAllStringSubmatchIndex(r.data, -1) {
		start, end := m[2], m[3]
		token := r.data[start:end]

		// Tokens that don't resolve against the base URL are not
		// references.
		child, err := r.url.Parse(token)
		if err != nil {
			continue
		}

		hint := ""
		if strings.HasSuffix(token, ".txt") {
			hint = "text/plain"
		}
		r.spans = append(r.spans, span{start, end, asset.New(child, hint)})
	}

	return nil
}

func (r *TextLink) HasData() bool { return r.loaded }

func (r *TextLink) NeededAssets() []*asset.Asset {
	children := make([]*asset.Asset, len(r.spans))
	for i, s := range r.spans {
		children[i] = s.child
	}
	return children
}

// Render splices child data URIs into the parsed text, working from the
// highest start offset to the lowest so completed splices never shift the
// offsets still pending. Children whose subtree never loaded are skipped,
// leaving their original token in place.
func (r *TextLink) Render() ([]byte, error) {
	if !r.loaded {
		return nil, asset.ErrResourceUnloaded
	}

	content := r.data
	for i := len(r.spans) - 1; i >= 0; i-- {
		s := r.spans[i]
		if s.child.Resource == nil || !s.child.Resource.HasData() {
			continue
		}
		rendered, err := s.child.Resource.Render()
		if err != nil {
			return nil, err
		}
		content = content[:s.start] + mime.DataURL(s.child.MimeHint, rendered) + content[s.end:]
	}
	return []byte(content), nil
}
