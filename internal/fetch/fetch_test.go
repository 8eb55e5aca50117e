package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}

func TestFetch_PlainBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	res, err := New(Options{}).Fetch(context.Background(), mustURL(t, srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != http.StatusOK {
		t.Errorf("status = %d, want 200", res.Status)
	}
	if string(res.Body) != "hello" {
		t.Errorf("body = %q, want %q", res.Body, "hello")
	}
}

func TestFetch_SetsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New(Options{UserAgent: "tester/1.0"})
	if _, err := c.Fetch(context.Background(), mustURL(t, srv.URL)); err != nil {
		t.Fatal(err)
	}
	if gotUA != "tester/1.0" {
		t.Errorf("user agent = %q, want %q", gotUA, "tester/1.0")
	}
}

func TestFetch_NonOKStatusReported(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("gone"))
	}))
	defer srv.Close()

	res, err := New(Options{}).Fetch(context.Background(), mustURL(t, srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", res.Status)
	}
	if string(res.Body) != "gone" {
		t.Errorf("body = %q, want %q", res.Body, "gone")
	}
}

func TestFetch_GzipBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			t.Error("gzip not offered in Accept-Encoding")
		}
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		gz.Write([]byte("compressed content"))
		gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	res, err := New(Options{}).Fetch(context.Background(), mustURL(t, srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Body) != "compressed content" {
		t.Errorf("body = %q, want %q", res.Body, "compressed content")
	}
}

func TestFetch_ZstdBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Error(err)
			return
		}
		zw.Write([]byte("zstd content"))
		zw.Close()

		w.Header().Set("Content-Encoding", "zstd")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	res, err := New(Options{}).Fetch(context.Background(), mustURL(t, srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Body) != "zstd content" {
		t.Errorf("body = %q, want %q", res.Body, "zstd content")
	}
}

func TestFetch_SizeCap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 64))
	}))
	defer srv.Close()

	c := New(Options{MaxBodyBytes: 16})
	if _, err := c.Fetch(context.Background(), mustURL(t, srv.URL)); err == nil {
		t.Fatal("expected error for oversized response")
	}
}

func TestFetch_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	u := mustURL(t, srv.URL)
	srv.Close()

	if _, err := New(Options{}).Fetch(context.Background(), u); err == nil {
		t.Fatal("expected error for closed server")
	}
}
