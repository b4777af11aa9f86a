package board

import (
	"fmt"

	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/charmbracelet/log"
)

// Options configure the board validator.
type Options struct {
	MinWordLen              int
	RequireSingleCluster    bool
	MaxIntersectionsPerPair int
}

// DefaultOptions returns the standard rule set.
func DefaultOptions() Options {
	return Options{
		MinWordLen:              3,
		RequireSingleCluster:    true,
		MaxIntersectionsPerPair: 1,
	}
}

// Dictionary is the membership check applied to extracted words.
// lexicon.Lexicon satisfies it.
type Dictionary interface {
	Contains(word string) bool
}

// FoundWord is one word extracted from the board.
type FoundWord struct {
	Text   string
	Start  Coord
	Dir    Direction
	Length int
}

// Report is the validator's outcome. Validation always completes and gathers
// every violation in one pass; it never aborts early.
type Report struct {
	OK          bool
	Issues      []string
	Density     float64
	FilledCells int
	WordCount   int
	Score       int
	Words       []FoundWord
}

// run is a contiguous range of filled cells in one line, before word filtering.
type run struct {
	dir   Direction
	line  int // row index for across, column index for down
	start int // offset within the line
	text  []byte
}

func (r *run) end() int { return r.start + len(r.text) }

func (r *run) coord() Coord {
	if r.dir == Down {
		return Coord{Row: r.start, Col: r.line}
	}
	return Coord{Row: r.line, Col: r.start}
}

// cellCoord returns the i-th cell of the run.
func (r *run) cellCoord(i int) Coord {
	if r.dir == Down {
		return Coord{Row: r.start + i, Col: r.line}
	}
	return Coord{Row: r.line, Col: r.start + i}
}

// ValidateAndScore checks a finished board against the connectivity, word
// length, intersection and dictionary rules and computes the length-based
// score. dict and scoreable may be nil to skip those checks.
func ValidateAndScore(b *Board, opts Options, dict Dictionary, scoreable map[string]bool) Report {
	report := Report{}

	filled := b.FilledCount()
	report.FilledCells = filled
	if total := b.Rows * b.Cols; total > 0 {
		report.Density = float64(filled) / float64(total)
	}

	if opts.RequireSingleCluster && filled > 0 {
		if reached := b.largestReach(); reached != filled {
			report.Issues = append(report.Issues,
				fmt.Sprintf("filled cells are not connected: reached %d of %d from the first filled cell", reached, filled))
		}
	}

	words := b.extractWords(opts.MinWordLen)
	report.Words = words

	// Intersection rule applies to across/down pairs only: parallel words
	// cannot share cells once maximal runs are extracted.
	for i := range words {
		if words[i].Dir != Across {
			continue
		}
		for j := range words {
			if words[j].Dir != Down {
				continue
			}
			if n := sharedCells(&words[i], &words[j]); n > opts.MaxIntersectionsPerPair {
				report.Issues = append(report.Issues,
					fmt.Sprintf("words %q and %q intersect %d times (max %d)",
						words[i].Text, words[j].Text, n, opts.MaxIntersectionsPerPair))
			}
		}
	}

	if dict != nil {
		for _, w := range words {
			if utils.ContainsWildcard(w.Text) {
				continue
			}
			if !dict.Contains(w.Text) {
				report.Issues = append(report.Issues,
					fmt.Sprintf("%q is not a dictionary word", w.Text))
			}
		}
	}

	for _, w := range words {
		if w.Length < 3 || utils.ContainsWildcard(w.Text) {
			continue
		}
		if scoreable != nil && !scoreable[w.Text] {
			continue
		}
		report.WordCount++
		report.Score += w.Length + LengthBonus(w.Length)
	}

	report.OK = len(report.Issues) == 0
	log.Debugf("Validated board: ok=%v, %d words, score=%d, %d issues",
		report.OK, report.WordCount, report.Score, len(report.Issues))
	return report
}

// LengthBonus rewards long words: 0 below 6 letters, then a Fibonacci-like
// sequence seeded 6->2 and 7->3, each further term the sum of the previous two.
func LengthBonus(n int) int {
	if n < 6 {
		return 0
	}
	prev, cur := 2, 3
	for i := 7; i <= n; i++ {
		prev, cur = cur, prev+cur
	}
	return prev
}

// largestReach runs a 4-directional BFS over filled cells from the first one
// found and returns the number of cells reached.
func (b *Board) largestReach() int {
	var start Coord
	found := false
	for r := 0; r < b.Rows && !found; r++ {
		for c := 0; c < b.Cols && !found; c++ {
			if b.cells[r][c].Filled() {
				start = Coord{Row: r, Col: c}
				found = true
			}
		}
	}
	if !found {
		return 0
	}

	visited := map[Coord]bool{start: true}
	queue := []Coord{start}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		for _, next := range []Coord{
			{at.Row - 1, at.Col}, {at.Row + 1, at.Col},
			{at.Row, at.Col - 1}, {at.Row, at.Col + 1},
		} {
			if visited[next] || !b.InBounds(next) || !b.cells[next.Row][next.Col].Filled() {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return len(visited)
}

// extractWords scans every row and column for maximal contiguous filled runs
// and, when piece-ownership metadata is present, per-owner runs as well.
// Runs shorter than minWordLen are dropped, and a run that is a strict
// contiguous sub-range of another run in the same line and direction is
// discarded so a fused word is not double counted with its sub-strings.
func (b *Board) extractWords(minWordLen int) []FoundWord {
	runs := b.maximalRuns()
	if b.hasOwnership() {
		runs = append(runs, b.ownerRuns()...)
	}

	var words []FoundWord
	for i := range runs {
		if len(runs[i].text) < minWordLen {
			continue
		}
		if coveredByLonger(&runs[i], runs) {
			continue
		}
		if duplicateBefore(runs, i) {
			continue
		}
		words = append(words, FoundWord{
			Text:   string(runs[i].text),
			Start:  runs[i].coord(),
			Dir:    runs[i].dir,
			Length: len(runs[i].text),
		})
	}
	return words
}

// maximalRuns collects every maximal contiguous filled run per row and column.
func (b *Board) maximalRuns() []run {
	var runs []run
	for r := 0; r < b.Rows; r++ {
		runs = appendLineRuns(runs, Across, r, b.Cols, func(i int) *Cell { return &b.cells[r][i] })
	}
	for c := 0; c < b.Cols; c++ {
		runs = appendLineRuns(runs, Down, c, b.Rows, func(i int) *Cell { return &b.cells[i][c] })
	}
	return runs
}

func appendLineRuns(runs []run, dir Direction, line, length int, cell func(int) *Cell) []run {
	i := 0
	for i < length {
		if !cell(i).Filled() {
			i++
			continue
		}
		start := i
		var text []byte
		for i < length && cell(i).Filled() {
			text = append(text, cell(i).Letter)
			i++
		}
		runs = append(runs, run{dir: dir, line: line, start: start, text: text})
	}
	return runs
}

// ownerRuns collects, per line and owner, the contiguous range of cells that
// owner occupies. Placed pieces are straight lines, so one owner yields at
// most one run per line.
func (b *Board) ownerRuns() []run {
	var runs []run
	collect := func(dir Direction, line, length int, cell func(int) *Cell) {
		spans := make(map[string][2]int) // owner -> [start, end)
		for i := 0; i < length; i++ {
			c := cell(i)
			if !c.Filled() {
				continue
			}
			for owner := range c.Owners {
				span, ok := spans[owner]
				if !ok {
					spans[owner] = [2]int{i, i + 1}
					continue
				}
				if i == span[1] {
					span[1] = i + 1
					spans[owner] = span
				}
			}
		}
		for _, span := range spans {
			var text []byte
			for i := span[0]; i < span[1]; i++ {
				text = append(text, cell(i).Letter)
			}
			runs = append(runs, run{dir: dir, line: line, start: span[0], text: text})
		}
	}
	for r := 0; r < b.Rows; r++ {
		collect(Across, r, b.Cols, func(i int) *Cell { return &b.cells[r][i] })
	}
	for c := 0; c < b.Cols; c++ {
		collect(Down, c, b.Rows, func(i int) *Cell { return &b.cells[i][c] })
	}
	return runs
}

// coveredByLonger reports whether r is a strict contiguous sub-range of
// another run in the same line and direction.
func coveredByLonger(r *run, runs []run) bool {
	for i := range runs {
		other := &runs[i]
		if other == r || other.dir != r.dir || other.line != r.line {
			continue
		}
		if other.start <= r.start && r.end() <= other.end() && len(other.text) > len(r.text) {
			return true
		}
	}
	return false
}

// duplicateBefore reports whether an identical run appears earlier in the slice.
func duplicateBefore(runs []run, i int) bool {
	for j := 0; j < i; j++ {
		if runs[j].dir == runs[i].dir && runs[j].line == runs[i].line &&
			runs[j].start == runs[i].start && len(runs[j].text) == len(runs[i].text) {
			return true
		}
	}
	return false
}

// sharedCells counts coordinates two words have in common.
func sharedCells(a, b *FoundWord) int {
	cells := make(map[Coord]bool, a.Length)
	ra := run{dir: a.Dir, text: make([]byte, a.Length)}
	if a.Dir == Down {
		ra.line, ra.start = a.Start.Col, a.Start.Row
	} else {
		ra.line, ra.start = a.Start.Row, a.Start.Col
	}
	for i := 0; i < a.Length; i++ {
		cells[ra.cellCoord(i)] = true
	}

	rb := run{dir: b.Dir, text: make([]byte, b.Length)}
	if b.Dir == Down {
		rb.line, rb.start = b.Start.Col, b.Start.Row
	} else {
		rb.line, rb.start = b.Start.Row, b.Start.Col
	}
	count := 0
	for i := 0; i < b.Length; i++ {
		if cells[rb.cellCoord(i)] {
			count++
		}
	}
	return count
}
