package resource

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jcdickinson/monofetch/internal/asset"
)

func TestPassthrough_RoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF}
	p := &Passthrough{}
	if err := p.Parse(data); err != nil {
		t.Fatal(err)
	}
	if !p.HasData() {
		t.Error("HasData = false after successful Parse")
	}

	got, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %v, want %v", got, data)
	}
}

func TestPassthrough_EmptyInput(t *testing.T) {
	t.Parallel()

	p := &Passthrough{}
	if err := p.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if !p.HasData() {
		t.Error("HasData = false after parsing empty input")
	}

	got, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestPassthrough_RenderBeforeParse(t *testing.T) {
	t.Parallel()

	p := &Passthrough{}
	if _, err := p.Render(); !errors.Is(err, asset.ErrResourceUnloaded) {
		t.Fatalf("got %v, want ErrResourceUnloaded", err)
	}
}

func TestPassthrough_NoChildren(t *testing.T) {
	t.Parallel()

	p := &Passthrough{}
	if err := p.Parse([]byte("anything")); err != nil {
		t.Fatal(err)
	}
	if children := p.NeededAssets(); len(children) != 0 {
		t.Errorf("got %d children, want 0", len(children))
	}
}

func TestPassthrough_DoubleParsePanics(t *testing.T) {
	t.Parallel()

	p := &Passthrough{}
	if err := p.Parse([]byte("once")); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected second Parse to panic")
		}
	}()
	p.Parse([]byte("twice"))
}
