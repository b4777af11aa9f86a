package cli

import (
	"testing"

	"github.com/bastiangx/gridfill/pkg/board"
	"github.com/bastiangx/gridfill/pkg/chain"
	"github.com/bastiangx/gridfill/pkg/lexicon"
	"github.com/bastiangx/gridfill/pkg/suggest"
)

type stubSuggester struct{}

func (stubSuggester) Candidates(slot *board.Slot, b *board.Board) []suggest.Candidate {
	return nil
}

func (stubSuggester) Stats() map[string]int { return nil }

func TestNewInputHandlerOwnsLogger(t *testing.T) {
	finder := chain.NewFinder(lexicon.NewCatalog())
	h := NewInputHandler(stubSuggester{}, finder, 2, 60, 20)

	if h.log == nil {
		t.Fatal("handler should carry its own logger")
	}
	if h.log.GetPrefix() != "cli" {
		t.Errorf("expected prefix 'cli', got %q", h.log.GetPrefix())
	}
}

func TestPatternSlot(t *testing.T) {
	slot := patternSlot("ab?")
	if slot.Dir != board.Across || slot.Length != 3 || slot.Pattern != "ab?" {
		t.Errorf("unexpected slot: %+v", slot)
	}
	for i, c := range slot.Cells {
		if c.Row != 0 || c.Col != i {
			t.Errorf("cell %d: expected (0,%d), got %+v", i, i, c)
		}
	}
	if len(slot.Crossings) != 0 {
		t.Errorf("free-standing slot should have no crossings, got %v", slot.Crossings)
	}
}
