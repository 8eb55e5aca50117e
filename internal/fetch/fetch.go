package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/jcdickinson/monofetch/internal/asset"
)

const defaultUserAgent = "monofetch/0.1.0"

// Options configure a Client. Zero values select the defaults.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Client fetches remote content over HTTP. It requests compressed transfer
// encodings and decodes them transparently, enforces a response size cap,
// and reports the status code rather than failing on non-200 responses.
// Safe for concurrent use.
type Client struct {
	http         *http.Client
	userAgent    string
	maxBodyBytes int64
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 32 << 20
	}
	return &Client{
		http:         &http.Client{Timeout: opts.Timeout},
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// Fetch GETs u and returns the status code with the fully read, decoded
// body. Only transport-level failures return an error; callers decide what
// non-200 statuses mean.
func (c *Client) Fetch(ctx context.Context, u *url.URL) (*asset.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}

	return &asset.FetchResult{Status: resp.StatusCode, Body: body}, nil
}

// readBody decodes the response body per its Content-Encoding and enforces
// the size cap on the decoded bytes.
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch resp.Header.Get("Content-Encoding") {
	case "zstd":
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		reader = dec
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(io.LimitReader(reader, c.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxBodyBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", c.maxBodyBytes)
	}
	return data, nil
}
