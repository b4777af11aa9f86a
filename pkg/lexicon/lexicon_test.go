package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLexiconDedup(t *testing.T) {
	lex := NewLexicon()

	id1 := lex.Add("Cave")
	id2 := lex.Add("cave")
	id3 := lex.Add("  CAVE  ")

	if id1 != id2 || id2 != id3 {
		t.Errorf("duplicate adds should return the same ID: got %d, %d, %d", id1, id2, id3)
	}
	if lex.Len() != 1 {
		t.Errorf("expected 1 word, got %d", lex.Len())
	}
	if !lex.Contains("CAVE") {
		t.Error("membership check should be case-insensitive via normalization")
	}
	if lex.Add("") != -1 {
		t.Error("empty word should return -1")
	}
}

func TestZipfRange(t *testing.T) {
	lex := NewLexicon()

	// No positive zipf values -> caller-supplied fallbacks.
	lex.SetEntry(WordEntry{Word: "cave", Zipf: 0})
	minZ, maxZ := lex.ZipfRange(DefaultZipfFloor, DefaultZipfCeiling)
	if minZ != DefaultZipfFloor || maxZ != DefaultZipfCeiling {
		t.Errorf("expected defaults %v/%v, got %v/%v", DefaultZipfFloor, DefaultZipfCeiling, minZ, maxZ)
	}
	minZ, maxZ = lex.ZipfRange(1.0, 9.0)
	if minZ != 1.0 || maxZ != 9.0 {
		t.Errorf("configured fallbacks must pass through, got %v/%v", minZ, maxZ)
	}

	lex.SetEntry(WordEntry{Word: "code", Zipf: 3.1})
	lex.SetEntry(WordEntry{Word: "core", Zipf: 5.4})
	minZ, maxZ = lex.ZipfRange(DefaultZipfFloor, DefaultZipfCeiling)
	if minZ != 3.1 || maxZ != 5.4 {
		t.Errorf("expected 3.1/5.4, got %v/%v", minZ, maxZ)
	}

	// A single positive zipf has no spread, so fallbacks still apply.
	single := NewLexicon()
	single.SetEntry(WordEntry{Word: "tea", Zipf: 5.0})
	minZ, maxZ = single.ZipfRange(1.0, 9.0)
	if minZ != 1.0 || maxZ != 9.0 {
		t.Errorf("spreadless corpus must use fallbacks, got %v/%v", minZ, maxZ)
	}
}

func TestScoreableSet(t *testing.T) {
	lex := NewLexicon()
	if lex.ScoreableSet() != nil {
		t.Error("empty lexicon should have a nil scoreable set")
	}

	lex.SetEntry(WordEntry{Word: "cave", Clueable: true})
	lex.SetEntry(WordEntry{Word: "code"})
	set := lex.ScoreableSet()
	if len(set) != 1 || !set["cave"] {
		t.Errorf("expected only 'cave' to be scoreable, got %v", set)
	}
}

func TestCatalogAddAndLookup(t *testing.T) {
	cat := NewCatalog()
	cat.Add(Segment{Text: "ab", ComboCount: 10})
	cat.Add(Segment{Text: "alo", MorphPrefix: true})
	cat.Add(Segment{Text: "ab", ComboCount: 20}) // replacement

	if cat.Len() != 2 {
		t.Errorf("expected 2 segments, got %d", cat.Len())
	}
	seg, ok := cat.Lookup("ab")
	if !ok || seg.ComboCount != 20 {
		t.Errorf("expected replaced segment with combo count 20, got %+v", seg)
	}
	if got := len(cat.OfLength(3)); got != 1 {
		t.Errorf("expected 1 segment of length 3, got %d", got)
	}
	if cat.OfLength(6) != nil || cat.OfLength(1) != nil {
		t.Error("out-of-range lengths should return nil")
	}
}

func TestCatalogAddPanicsOnBadLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for segment of length 1")
		}
	}()
	NewCatalog().Add(Segment{Text: "a"})
}

func TestLoadWordAttrsCoercion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attrs.csv")
	content := "word,zipf,pos,is_clueable,flags,theme_tags,banned,must_keep\n" +
		"cave,4.2,noun,true,common;easy,geo,false,false\n" +
		"code,not-a-number,noun,1,,,,\n" +
		",3.3,noun,true,,,,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lex := NewLexicon()
	count, err := LoadWordAttrs(path, lex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows loaded, got %d", count)
	}

	cave, ok := lex.Entry("cave")
	if !ok || cave.Zipf != 4.2 || !cave.Clueable || len(cave.Flags) != 2 {
		t.Errorf("unexpected cave entry: %+v", cave)
	}

	// Malformed zipf coerces to 0, never errors.
	code, ok := lex.Entry("code")
	if !ok || code.Zipf != 0 || !code.Clueable {
		t.Errorf("unexpected code entry: %+v", code)
	}
}

func TestLoadSegmentsSkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segments.csv")
	content := "text,combo_count,start_combo_count,is_syntactic,morph_prefix,morph_suffix,pos_start,pos_end,atomic_slice,semantic_weight,game_weight\n" +
		"ab,120,40,false,true,false,true,false,false,0.4,0.6\n" +
		"toolong,1,1,,,,,,,,\n" +
		"x,1,1,,,,,,,,\n" +
		"ne,33,bad,false,false,true,false,true,false,0.2,0.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cat := NewCatalog()
	count, err := LoadSegments(path, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 segments loaded, got %d", count)
	}

	ab, ok := cat.Lookup("ab")
	if !ok || !ab.StartsWord() || ab.EndsWord() {
		t.Errorf("unexpected ab segment: %+v", ab)
	}
	ne, ok := cat.Lookup("ne")
	if !ok || ne.StartComboCount != 0 {
		t.Errorf("bad start_combo_count should coerce to 0: %+v", ne)
	}
}
