package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/aulas/internal/domain"
)

func TestVideoOverlayLifecycle(t *testing.T) {
	o := NewVideoOverlay("en")
	if o.Visible() {
		t.Fatalf("expected overlay closed")
	}

	if cmd := o.Open("s1", domain.Part{PartID: "u1", Title: "Zohar"}); cmd == nil {
		t.Fatalf("expected spinner tick")
	}
	if o.State() != OverlayLoading || !strings.Contains(o.View(), "Loading video") {
		t.Fatalf("expected loading state, got %s", o.State())
	}

	if !o.SetPlaying("s1", "mpv") || o.State() != OverlayPlaying {
		t.Fatalf("expected playing state, got %s", o.State())
	}
	if !strings.Contains(o.View(), "Playing: mpv") {
		t.Fatalf("expected player name in view")
	}

	o.Close()
	if o.Visible() || o.SessionID() != "" || o.View() != "" {
		t.Fatalf("expected overlay closed and session forgotten")
	}
}

func TestVideoOverlayRejectsStaleSessions(t *testing.T) {
	o := NewVideoOverlay("pt")
	o.Open("old", domain.Part{PartID: "u1"})
	o.Close()
	o.Open("new", domain.Part{PartID: "u2"})

	if o.SetPlaying("old", "mpv") {
		t.Fatalf("stale session must not reach playing")
	}
	if o.Fail("old") {
		t.Fatalf("stale session must not fail the overlay")
	}
	if o.State() != OverlayLoading || o.Part().PartID != "u2" {
		t.Fatalf("expected the new session untouched, got %s %q", o.State(), o.Part().PartID)
	}

	if !o.Fail("new") || o.State() != OverlayErrored {
		t.Fatalf("expected errored state, got %s", o.State())
	}
	if o.SetPlaying("new", "mpv") {
		t.Fatalf("errored overlay must not start playing")
	}

	o.Close()
	if o.Accepts("new") {
		t.Fatalf("closed overlay must not accept results")
	}
}
