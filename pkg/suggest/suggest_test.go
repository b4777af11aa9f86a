package suggest

import (
	"testing"

	"github.com/bastiangx/gridfill/pkg/board"
	"github.com/bastiangx/gridfill/pkg/index"
	"github.com/bastiangx/gridfill/pkg/lexicon"
	"github.com/bastiangx/gridfill/pkg/segment"
)

// fullCatalog returns a catalog where every 2-letter pair tiles, so any
// even-length word segments.
func fullCatalog() *lexicon.Catalog {
	cat := lexicon.NewCatalog()
	letters := "abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < 26; i++ {
		for j := 0; j < 26; j++ {
			cat.Add(lexicon.Segment{Text: string([]byte{letters[i], letters[j]}), GameWeight: 0.3})
		}
	}
	return cat
}

func newSuggester(cat *lexicon.Catalog, words ...string) (*Suggester, *lexicon.Lexicon) {
	lex := lexicon.NewLexicon()
	for _, w := range words {
		lex.Add(w)
	}
	idx := index.New(lex)
	seg := segment.NewSegmenter(cat, 256)
	return NewSuggester(lex, idx, seg), lex
}

func slotAt(pattern string, row int, crossings ...board.Crossing) *board.Slot {
	cells := make([]board.Coord, len(pattern))
	for i := range cells {
		cells[i] = board.Coord{Row: row, Col: i}
	}
	return &board.Slot{
		ID:        "s1",
		Dir:       board.Across,
		Length:    len(pattern),
		Cells:     cells,
		Pattern:   pattern,
		Crossings: crossings,
	}
}

func TestCandidatesForPattern(t *testing.T) {
	s, _ := newSuggester(fullCatalog(), "cave", "code", "core", "cube", "rave")
	b := board.New(4, 4)

	got := s.Candidates(slotAt("c??e", 0), b)
	if len(got) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(got))
	}
	words := make(map[string]bool)
	for _, c := range got {
		words[c.Word] = true
	}
	for _, w := range []string{"cave", "code", "core", "cube"} {
		if !words[w] {
			t.Errorf("missing candidate %q", w)
		}
	}
}

func TestUntileableWordsExcluded(t *testing.T) {
	cat := lexicon.NewCatalog()
	cat.Add(lexicon.Segment{Text: "ca", GameWeight: 0.3})
	cat.Add(lexicon.Segment{Text: "ve", GameWeight: 0.3})
	// "code" has no covering segments.
	s, _ := newSuggester(cat, "cave", "code")

	got := s.Candidates(slotAt("c??e", 0), board.New(1, 4))
	if len(got) != 1 || got[0].Word != "cave" {
		t.Fatalf("expected only 'cave', got %v", got)
	}
}

func TestCrossingConflictAndBonus(t *testing.T) {
	s, _ := newSuggester(fullCatalog(), "cave", "code")

	// The crossing slot fixed 'a' at index 1.
	b := board.New(1, 4)
	b.SetLetter(board.Coord{Row: 0, Col: 1}, 'a', "down1")

	slot := slotAt("c??e", 0, board.Crossing{Index: 1, OtherSlot: "down1"})
	got := s.Candidates(slot, b)

	if len(got) != 1 || got[0].Word != "cave" {
		t.Fatalf("conflicting word should be rejected, got %v", got)
	}
	if got[0].CrossingBonus != 0.25 {
		t.Errorf("expected crossing bonus 1/4, got %v", got[0].CrossingBonus)
	}
}

func TestZipfOrdering(t *testing.T) {
	s, lex := newSuggester(fullCatalog(), "cave", "code")
	lex.SetEntry(lexicon.WordEntry{Word: "cave", Zipf: 6.0})
	lex.SetEntry(lexicon.WordEntry{Word: "code", Zipf: 3.0})

	got := s.Candidates(slotAt("c??e", 0), board.New(1, 4))
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	// Same segmentation score, so the more frequent word ranks first.
	if got[0].Word != "cave" {
		t.Errorf("expected 'cave' first by zipf, got %q", got[0].Word)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("expected strictly higher score for 'cave': %v vs %v", got[0].Score, got[1].Score)
	}
}

func TestConfiguredZipfRange(t *testing.T) {
	s, lex := newSuggester(fullCatalog(), "cave", "code")
	s.ZipfFloor = 1.0
	s.ZipfCeiling = 9.0

	// One positive zipf has no spread, so the configured range applies.
	lex.SetEntry(lexicon.WordEntry{Word: "cave", Zipf: 5.0})

	got := s.Candidates(slotAt("c??e", 0), board.New(1, 4))
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	for _, c := range got {
		bonus := c.Score - c.SegScore
		switch c.Word {
		case "cave":
			// (5.0-1.0)/(9.0-1.0) = 0.5 normalized.
			if want := s.ZipfWeight * 0.5; !near(bonus, want) {
				t.Errorf("cave: expected zipf bonus %v, got %v", want, bonus)
			}
		case "code":
			if want := s.ZipfWeight * s.ZipfNorm; !near(bonus, want) {
				t.Errorf("code: expected default-norm bonus %v, got %v", want, bonus)
			}
		}
	}
}

func near(got, want float64) bool {
	d := got - want
	return d < 1e-9 && d > -1e-9
}

func TestBannedWordsExcluded(t *testing.T) {
	s, lex := newSuggester(fullCatalog(), "cave", "code")
	lex.SetEntry(lexicon.WordEntry{Word: "code", Banned: true})

	got := s.Candidates(slotAt("c??e", 0), board.New(1, 4))
	if len(got) != 1 || got[0].Word != "cave" {
		t.Fatalf("banned word should be excluded, got %v", got)
	}
}

func TestTruncationAfterFullScoring(t *testing.T) {
	words := make([]string, 0, 60)
	letters := "abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < 26; i++ {
		for j := 0; j < 3; j++ {
			words = append(words, string([]byte{letters[i], 'a', letters[j], 'e'}))
		}
	}
	s, lex := newSuggester(fullCatalog(), words...)
	s.MaxCandidates = 10

	// Make one late-ID word clearly the best; it must survive truncation.
	lex.SetEntry(lexicon.WordEntry{Word: "zace", Zipf: 6.7})

	got := s.Candidates(slotAt("????", 0), board.New(1, 4))
	if len(got) != 10 {
		t.Fatalf("expected 10 candidates after truncation, got %d", len(got))
	}
	if got[0].Word != "zace" {
		t.Errorf("highest scored word should rank first regardless of ID order, got %q", got[0].Word)
	}
}

func TestEmptyResultIsNormal(t *testing.T) {
	s, _ := newSuggester(fullCatalog(), "cave")
	if got := s.Candidates(slotAt("z??e", 0), board.New(1, 4)); got != nil {
		t.Errorf("expected nil result, got %v", got)
	}
}
