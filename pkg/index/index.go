/*
Package index implements the position index: a per-word-length, per-position,
per-character lookup over the lexicon that answers "which words have character
X at position i" without scanning the full word list.

Build groups words by length only; the position maps for a length are built
lazily on the first query against that length and cached for the process
lifetime. Word sets are sorted slices of integer word IDs, so intersections
are cheap linear merges instead of repeated string hashing.
*/
package index

import (
	"sort"
	"sync"

	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/bastiangx/gridfill/pkg/lexicon"
	"github.com/charmbracelet/log"
)

// posTable is position -> character -> sorted word IDs for one word length.
type posTable []map[byte][]int

// PositionIndex groups lexicon words by length and lazily builds per-length
// position tables. Safe for concurrent readers once constructed; Build-time
// grouping is immutable, and lazy table construction is guarded by the lock.
type PositionIndex struct {
	lex    *lexicon.Lexicon
	byLen  map[int][]int
	tables map[int]posTable
	mu     sync.RWMutex
}

// New builds the length grouping over the current lexicon contents.
// No per-position maps are built here.
func New(lex *lexicon.Lexicon) *PositionIndex {
	byLen := make(map[int][]int)
	for id, word := range lex.Words() {
		byLen[len(word)] = append(byLen[len(word)], id)
	}
	log.Debugf("Position index grouped %d words into %d lengths", lex.Len(), len(byLen))
	return &PositionIndex{
		lex:    lex,
		byLen:  byLen,
		tables: make(map[int]posTable),
	}
}

// WordsOfLen returns the IDs of all words with the given length, in ID order.
// Callers must not mutate the returned slice.
func (x *PositionIndex) WordsOfLen(n int) []int {
	return x.byLen[n]
}

// Query returns the sorted IDs of words of the given length carrying ch at
// the given position. The table for that length is built on first use.
func (x *PositionIndex) Query(length, pos int, ch byte) []int {
	if pos < 0 || pos >= length {
		return nil
	}
	table := x.table(length)
	if table == nil {
		return nil
	}
	return table[pos][ch]
}

// FindCandidates returns the sorted IDs of every word matching the pattern,
// with the wildcard marker standing for any single character. Equivalent to
// filtering the full word list of that length against the pattern.
func (x *PositionIndex) FindCandidates(pattern string) []int {
	length := len(pattern)
	if length == 0 {
		return nil
	}
	if !utils.HasFixedChars(pattern) {
		return x.WordsOfLen(length)
	}

	// A fixed prefix narrows faster through the trie than through the
	// per-position sets.
	if prefix := utils.FixedPrefix(pattern); len(prefix) >= 2 {
		return x.prefixCandidates(prefix, pattern)
	}

	table := x.table(length)
	if table == nil {
		return nil
	}

	// Gather the per-position sets, short-circuiting on any empty one.
	var sets [][]int
	for i := 0; i < length; i++ {
		if pattern[i] == utils.Wildcard {
			continue
		}
		set := table[i][pattern[i]]
		if len(set) == 0 {
			return nil
		}
		sets = append(sets, set)
	}

	// Intersect smallest-first to keep the working set short.
	smallest := 0
	for i, set := range sets {
		if len(set) < len(sets[smallest]) {
			smallest = i
		}
	}
	sets[0], sets[smallest] = sets[smallest], sets[0]

	result := sets[0]
	for _, set := range sets[1:] {
		result = intersectSorted(result, set)
		if len(result) == 0 {
			return nil
		}
	}
	return result
}

// prefixCandidates walks the lexicon trie under the pattern's fixed prefix
// and keeps the IDs of words matching the whole pattern, in ID order.
func (x *PositionIndex) prefixCandidates(prefix, pattern string) []int {
	var ids []int
	_ = x.lex.VisitPrefix(prefix, func(word string, id int) error {
		if len(word) == len(pattern) && utils.MatchesPattern(word, pattern) {
			ids = append(ids, id)
		}
		return nil
	})
	sort.Ints(ids)
	return ids
}

// table returns the lazily-built position table for a length, or nil when no
// word of that length exists.
func (x *PositionIndex) table(length int) posTable {
	x.mu.RLock()
	t, ok := x.tables[length]
	x.mu.RUnlock()
	if ok {
		return t
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if t, ok := x.tables[length]; ok {
		return t
	}

	ids := x.byLen[length]
	if len(ids) == 0 {
		x.tables[length] = nil
		return nil
	}

	t = make(posTable, length)
	for i := range t {
		t[i] = make(map[byte][]int)
	}
	for _, id := range ids {
		word := x.lex.Word(id)
		for i := 0; i < length; i++ {
			t[i][word[i]] = append(t[i][word[i]], id)
		}
	}
	x.tables[length] = t
	log.Debugf("Built position table for length %d (%d words)", length, len(ids))
	return t
}

// intersectSorted merges two ascending ID slices into their intersection.
func intersectSorted(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Stats returns statistics about the index state
func (x *PositionIndex) Stats() map[string]int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return map[string]int{
		"lengths":     len(x.byLen),
		"builtTables": len(x.tables),
	}
}
