package inline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/semaphore"

	"github.com/jcdickinson/monofetch/internal/asset"
)

// completion is the result of one finished download.
type completion struct {
	node     *asset.Asset
	children []*asset.Asset
	err      error
}

// Inliner drives the recursive resolution of an asset tree: every node is
// fetched and parsed concurrently, newly discovered children start
// downloading immediately, and failed nodes are reported and abandoned
// without affecting the rest of the tree.
type Inliner struct {
	// Fetcher retrieves remote content. Required.
	Fetcher asset.Fetcher

	// Registry selects resource implementations; nil means
	// asset.DefaultRegistry.
	Registry *asset.Registry

	// Logger receives reports of dropped subtrees; nil means
	// slog.Default().
	Logger *slog.Logger

	// MaxParallel bounds concurrent downloads. Zero or negative means
	// unbounded.
	MaxParallel int
}

// New creates an Inliner using the default registry and logger.
func New(f asset.Fetcher) *Inliner {
	return &Inliner{Fetcher: f}
}

// Resolve downloads root and, transitively, every asset its content
// references. Unreachable or unparseable nodes are logged and their
// subtrees abandoned; the rest of the tree still resolves. Nodes are never
// revisited, and nothing bounds the number of discovered nodes, so a
// content-level cycle keeps resolving until the context is canceled.
//
// ErrMissingResource or ErrResourceUnloaded surfacing here means resource
// selection was skipped. That cannot happen short of a Registry unable to
// produce a resource, so it faults instead of returning.
func (i *Inliner) Resolve(ctx context.Context, root *asset.Asset) error {
	reg := i.Registry
	if reg == nil {
		reg = asset.DefaultRegistry
	}
	logger := i.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sem *semaphore.Weighted
	if i.MaxParallel > 0 {
		sem = semaphore.NewWeighted(int64(i.MaxParallel))
	}

	// Every started download sends exactly one completion. The tree needs
	// no locking: each node is mutated by exactly one download goroutine,
	// and children get their resources attached here between completions.
	done := make(chan completion)
	inFlight := 0

	start := func(a *asset.Asset) {
		inFlight++
		go func() {
			if sem != nil {
				if err := sem.Acquire(ctx, 1); err != nil {
					done <- completion{node: a, err: err}
					return
				}
				defer sem.Release(1)
			}
			children, err := a.Download(ctx, i.Fetcher)
			done <- completion{node: a, children: children, err: err}
		}()
	}

	root.SelectResource(reg)
	start(root)

	for inFlight > 0 {
		c := <-done
		inFlight--

		if c.err != nil {
			if errors.Is(c.err, asset.ErrMissingResource) || errors.Is(c.err, asset.ErrResourceUnloaded) {
				panic(fmt.Sprintf("inline: broken invariant resolving %s: %v", c.node.URL, c.err))
			}
			logger.Warn("dropping failed asset", "url", c.node.URL, "error", c.err)
			continue
		}

		for _, child := range c.children {
			child.SelectResource(reg)
			start(child)
		}
	}

	return ctx.Err()
}

// ResolveAndRender fetches rawURL, recursively resolves everything its
// content references, and returns the rendered text with every loaded
// reference embedded as a data URI.
func (i *Inliner) ResolveAndRender(ctx context.Context, rawURL, mimeHint string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("parsing url %q: not an absolute URL", rawURL)
	}

	root := asset.New(u, mimeHint)
	if err := i.Resolve(ctx, root); err != nil {
		return "", err
	}
	return root.RenderText()
}
