package wordgrid

import (
	"testing"

	"github.com/vovakirdan/wordgrid/internal/config"
	"github.com/vovakirdan/wordgrid/internal/core"
)

func TestShareText(t *testing.T) {
	g, _ := newTestGame(t)

	board := "A-C-E-F\nM-N-R-D\nC-X-U-F\nI-E-N-F"
	if got, want := g.ShareText(), board+"\n\nwords.xyz/classic"; got != want {
		t.Errorf("in progress share =\n%s\nexpected\n%s", got, want)
	}

	// Lose with ACN
	g.Step(frame(
		core.ActionToggle, core.ActionRight, core.ActionToggle,
		core.ActionDown, core.ActionToggle, core.ActionConfirm,
	))
	if got, want := g.ShareText(), "0 of 3\n\n"+board+"\n\nwords.xyz/classic"; got != want {
		t.Errorf("finished share =\n%s\nexpected\n%s", got, want)
	}
}

func TestShareTextWithoutDomain(t *testing.T) {
	g, _ := newTestGame(t)
	got := ShareText(g.Session().Snapshot(), "", "classic")
	want := "A-C-E-F\nM-N-R-D\nC-X-U-F\nI-E-N-F\n\nclassic"
	if got != want {
		t.Errorf("ShareText() = %q, expected %q", got, want)
	}
}

func TestShareResult(t *testing.T) {
	got := ShareResult(config.DefaultPuzzle(), 2, 3)
	want := "2 of 3\n\nA-C-E-F\nM-N-R-D\nC-X-U-F\nI-E-N-F\n\nwords.xyz/classic"
	if got != want {
		t.Errorf("ShareResult() = %q, expected %q", got, want)
	}
}
