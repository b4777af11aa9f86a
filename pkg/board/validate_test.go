package board

import (
	"strings"
	"testing"
)

type fakeDict map[string]bool

func (d fakeDict) Contains(word string) bool { return d[word] }

func TestEmptyBoardValidates(t *testing.T) {
	b := New(5, 5)
	report := ValidateAndScore(b, DefaultOptions(), nil, nil)

	if !report.OK {
		t.Errorf("empty board should validate, issues: %v", report.Issues)
	}
	if report.Density != 0 || report.FilledCells != 0 || report.Score != 0 || report.WordCount != 0 {
		t.Errorf("empty board should have zero density and score, got %+v", report)
	}
}

func TestDisconnectedClusters(t *testing.T) {
	b := FromRows([]string{
		"cat..",
		".....",
		"...do",
	})
	report := ValidateAndScore(b, DefaultOptions(), nil, nil)

	if report.OK {
		t.Error("two disconnected groups should fail validation")
	}
	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "not connected") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a connectivity issue, got %v", report.Issues)
	}

	// Same board with the cluster rule off: only word rules apply, and "do"
	// is below the minimum run length so it is not extracted at all.
	opts := DefaultOptions()
	opts.RequireSingleCluster = false
	report = ValidateAndScore(b, opts, nil, nil)
	if !report.OK {
		t.Errorf("expected ok without cluster rule, issues: %v", report.Issues)
	}
	if report.WordCount != 1 {
		t.Errorf("expected 1 eligible word, got %d", report.WordCount)
	}
}

func TestWordExtractionAndDictionary(t *testing.T) {
	// "cat" across, crossing "cow" down at the shared 'c'.
	b := FromRows([]string{
		"cat",
		"o..",
		"w..",
	})
	dict := fakeDict{"cat": true, "cow": true}
	report := ValidateAndScore(b, DefaultOptions(), dict, nil)

	if !report.OK {
		t.Fatalf("expected valid board, issues: %v", report.Issues)
	}
	if len(report.Words) != 2 {
		t.Fatalf("expected 2 extracted words, got %v", report.Words)
	}
	// 3+0 per word
	if report.Score != 6 || report.WordCount != 2 {
		t.Errorf("expected score 6 over 2 words, got score=%d count=%d", report.Score, report.WordCount)
	}

	// Unknown word becomes a blocking issue.
	report = ValidateAndScore(b, DefaultOptions(), fakeDict{"cat": true}, nil)
	if report.OK {
		t.Error("expected dictionary issue for 'cow'")
	}
}

func TestWildcardWordsAlwaysAccepted(t *testing.T) {
	b := FromRows([]string{"c?t"})
	report := ValidateAndScore(b, DefaultOptions(), fakeDict{}, nil)

	if !report.OK {
		t.Errorf("wildcard-containing word should pass the dictionary check, issues: %v", report.Issues)
	}
	// But it is not score-eligible.
	if report.Score != 0 || report.WordCount != 0 {
		t.Errorf("wildcard word should not score, got %+v", report)
	}
}

func TestLengthBonus(t *testing.T) {
	testCases := []struct {
		length int
		want   int
	}{
		{3, 0}, {5, 0}, {6, 2}, {7, 3}, {8, 5}, {9, 8}, {10, 13}, {11, 21},
	}
	for _, tc := range testCases {
		if got := LengthBonus(tc.length); got != tc.want {
			t.Errorf("LengthBonus(%d) = %d, want %d", tc.length, got, tc.want)
		}
	}
}

func TestFibonacciScoring(t *testing.T) {
	b := FromRows([]string{"airplane"}) // 8 letters
	report := ValidateAndScore(b, DefaultOptions(), nil, nil)
	if report.Score != 13 {
		t.Errorf("8-letter word should score 8+5=13, got %d", report.Score)
	}

	b = FromRows([]string{"planet"}) // 6 letters
	report = ValidateAndScore(b, DefaultOptions(), nil, nil)
	if report.Score != 8 {
		t.Errorf("6-letter word should score 6+2=8, got %d", report.Score)
	}

	b = FromRows([]string{"plane"}) // 5 letters
	report = ValidateAndScore(b, DefaultOptions(), nil, nil)
	if report.Score != 5 {
		t.Errorf("5-letter word should score 5+0=5, got %d", report.Score)
	}
}

func TestScoreableSetFilters(t *testing.T) {
	b := FromRows([]string{
		"cat",
		"o..",
		"w..",
	})
	report := ValidateAndScore(b, DefaultOptions(), nil, map[string]bool{"cat": true})
	if report.WordCount != 1 || report.Score != 3 {
		t.Errorf("only 'cat' should score, got count=%d score=%d", report.WordCount, report.Score)
	}
}

func TestIntersectionLimit(t *testing.T) {
	// "tot" across shares its row with nothing, but the down word "tat"
	// crosses it once; raise the shared cells by fabricating a degenerate
	// overlap through a second crossing of the same pair.
	b := FromRows([]string{
		"tot",
		"a.a",
		"tot",
	})
	// Each down word ("tat", "tat") crosses each across word ("tot", "tot")
	// exactly once, so the default limit of 1 passes.
	opts := DefaultOptions()
	opts.RequireSingleCluster = false
	report := ValidateAndScore(b, opts, nil, nil)
	if report.OK != true {
		t.Fatalf("single intersections should pass, issues: %v", report.Issues)
	}

	// With the limit at 0 every crossing pair is an issue.
	opts.MaxIntersectionsPerPair = 0
	report = ValidateAndScore(b, opts, nil, nil)
	if report.OK {
		t.Error("expected intersection issues with a zero limit")
	}
	if len(report.Issues) != 4 {
		t.Errorf("expected 4 pair issues, got %v", report.Issues)
	}
}

func TestOwnershipSubRunDiscard(t *testing.T) {
	// Two pieces fused into one across word: "sun" + "set" -> "sunset".
	b := New(1, 6)
	word := "sunset"
	for i := 0; i < 3; i++ {
		b.SetLetter(Coord{0, i}, word[i], "p1")
	}
	for i := 3; i < 6; i++ {
		b.SetLetter(Coord{0, i}, word[i], "p2")
	}

	report := ValidateAndScore(b, DefaultOptions(), nil, nil)
	if len(report.Words) != 1 || report.Words[0].Text != "sunset" {
		t.Fatalf("expected only the fused word, got %v", report.Words)
	}
	if report.Score != 8 { // 6 + bonus 2
		t.Errorf("expected score 8, got %d", report.Score)
	}
}

func TestBoardRoundTrip(t *testing.T) {
	rows := []string{
		"cat",
		"o..",
		"w..",
	}
	b := FromRows(rows)
	got := b.RowStrings()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d mismatch: %q vs %q", i, got[i], rows[i])
		}
	}
	if b.FilledCount() != 5 {
		t.Errorf("expected 5 filled cells, got %d", b.FilledCount())
	}
}

func TestSlotCheckPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for pattern length mismatch")
		}
	}()
	s := &Slot{ID: "a1", Length: 4, Pattern: "c?e", Cells: make([]Coord, 4)}
	s.Check()
}

func TestRemoveOwnerClearsCell(t *testing.T) {
	b := New(1, 1)
	b.SetLetter(Coord{0, 0}, 'x', "p1")
	b.SetLetter(Coord{0, 0}, 'x', "p2")

	b.RemoveOwner(Coord{0, 0}, "p1")
	if _, filled := b.At(Coord{0, 0}); !filled {
		t.Error("cell should stay filled while another owner remains")
	}
	b.RemoveOwner(Coord{0, 0}, "p2")
	if _, filled := b.At(Coord{0, 0}); filled {
		t.Error("cell should clear when the last owner is removed")
	}
}
