package resource

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"

	"github.com/jcdickinson/monofetch/internal/asset"
	"github.com/jcdickinson/monofetch/internal/mime"
)

func init() {
	asset.DefaultRegistry.Register("text/markdown", func(u *url.URL) asset.Resource {
		return NewMarkdown(u)
	})
}

// imageRef is a child asset for one image occurrence, keyed by the literal
// destination text it replaces.
type imageRef struct {
	dest  string
	child *asset.Asset
}

// Markdown parses markdown content and inlines every image destination as a
// data URI. Plain links are left alone; only images are fetched.
type Markdown struct {
	url    *url.URL
	data   string
	loaded bool
	images []imageRef
}

// NewMarkdown creates an empty Markdown resource whose relative image
// destinations resolve against base.
func NewMarkdown(base *url.URL) *Markdown {
	return &Markdown{url: base}
}

func (r *Markdown) Parse(data []byte) error {
	if r.loaded {
		panic("Parse called twice on Markdown")
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: content is not valid UTF-8", asset.ErrParse)
	}
	r.data = string(data)
	r.loaded = true

	doc := gm.Parse(data, gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		img, ok := node.(*ast.Image)
		if !ok {
			return ast.GoToNext
		}
		dest := string(img.Destination)
		if dest == "" {
			return ast.GoToNext
		}
		child, err := r.url.Parse(dest)
		if err != nil {
			return ast.GoToNext
		}
		r.images = append(r.images, imageRef{dest, asset.New(child, hintForPath(child.Path))})
		return ast.GoToNext
	})

	return nil
}

func (r *Markdown) HasData() bool { return r.loaded }

func (r *Markdown) NeededAssets() []*asset.Asset {
	children := make([]*asset.Asset, len(r.images))
	for i, ref := range r.images {
		children[i] = ref.child
	}
	return children
}

// Render rewrites each image destination to its child's data URI with
// targeted replacements in discovery order. Destinations whose child never
// loaded are left alone.
func (r *Markdown) Render() ([]byte, error) {
	if !r.loaded {
		return nil, asset.ErrResourceUnloaded
	}

	content := r.data
	for _, ref := range r.images {
		if ref.child.Resource == nil || !ref.child.Resource.HasData() {
			continue
		}
		rendered, err := ref.child.Resource.Render()
		if err != nil {
			return nil, err
		}
		content = strings.Replace(content,
			"]("+ref.dest+")",
			"]("+mime.DataURL(ref.child.MimeHint, rendered)+")",
			1)
	}
	return []byte(content), nil
}

// hintForPath guesses a mime hint from a resolved path's extension.
func hintForPath(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".txt":
		return "text/plain"
	case ".md", ".markdown":
		return "text/markdown"
	default:
		return ""
	}
}
