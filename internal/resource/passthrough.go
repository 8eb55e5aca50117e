package resource

import (
	"net/url"

	"github.com/jcdickinson/monofetch/internal/asset"
)

func init() {
	asset.DefaultRegistry.RegisterFallback(func(u *url.URL) asset.Resource {
		return &Passthrough{}
	})
}

// Passthrough holds opaque content verbatim. It is the resource for any mime
// type without a dedicated parser: no children, and Render returns exactly
// the bytes Parse stored.
type Passthrough struct {
	data   []byte
	loaded bool
}

func (p *Passthrough) Parse(data []byte) error {
	if p.loaded {
		panic("Parse called twice on Passthrough")
	}
	p.data = data
	p.loaded = true
	return nil
}

func (p *Passthrough) HasData() bool { return p.loaded }

func (p *Passthrough) NeededAssets() []*asset.Asset { return nil }

func (p *Passthrough) Render() ([]byte, error) {
	if !p.loaded {
		return nil, asset.ErrResourceUnloaded
	}
	return p.data, nil
}
