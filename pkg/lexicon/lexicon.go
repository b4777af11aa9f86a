/*
Package lexicon holds the read-only word and segment data every other engine
package queries: the deduplicated word list with per-word attributes, and the
catalog of 2-5 letter segments with their morphological flags and
productivity counters.

Both are loaded once per session and never mutated afterwards.
*/
package lexicon

import (
	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Default zipf range used when the corpus carries no positive zipf values.
const (
	DefaultZipfFloor   = 2.6
	DefaultZipfCeiling = 6.7
)

// WordEntry holds per-word attributes from the frequency/attribute table.
// Zipf is 0 when the word has no known frequency.
type WordEntry struct {
	Word      string
	Zipf      float64
	Clueable  bool
	POS       string
	Flags     []string
	ThemeTags []string
	Banned    bool
	MustKeep  bool
}

// Lexicon is the deduplicated, lowercase word list with integer word IDs.
// The patricia trie maps word text to its ID and doubles as the exact
// membership check used by the board validator.
type Lexicon struct {
	words   []string
	entries map[string]WordEntry
	trie    *patricia.Trie
}

// NewLexicon creates an empty lexicon
func NewLexicon() *Lexicon {
	return &Lexicon{
		entries: make(map[string]WordEntry),
		trie:    patricia.NewTrie(),
	}
}

// Add normalizes and inserts a word, returning its ID.
// Duplicates are collapsed onto the first ID, empty words get -1.
func (l *Lexicon) Add(word string) int {
	word = utils.NormalizeWord(word)
	if word == "" {
		return -1
	}
	if item := l.trie.Get(patricia.Prefix(word)); item != nil {
		return item.(int)
	}
	id := len(l.words)
	l.words = append(l.words, word)
	l.trie.Insert(patricia.Prefix(word), id)
	return id
}

// SetEntry attaches attributes to a word, inserting the word if missing.
func (l *Lexicon) SetEntry(entry WordEntry) {
	entry.Word = utils.NormalizeWord(entry.Word)
	if entry.Word == "" {
		return
	}
	l.Add(entry.Word)
	l.entries[entry.Word] = entry
}

// Contains reports exact membership of a normalized word.
func (l *Lexicon) Contains(word string) bool {
	return l.trie.Get(patricia.Prefix(utils.NormalizeWord(word))) != nil
}

// ID returns the word's ID if present.
func (l *Lexicon) ID(word string) (int, bool) {
	item := l.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return item.(int), true
}

// Word returns the text for an ID. IDs come from this lexicon, so an
// out-of-range ID is a caller bug and panics via the slice bounds check.
func (l *Lexicon) Word(id int) string {
	return l.words[id]
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Words returns the backing word slice indexed by ID. Callers must not mutate it.
func (l *Lexicon) Words() []string {
	return l.words
}

// Entry returns the attributes for a word, if any were loaded.
func (l *Lexicon) Entry(word string) (WordEntry, bool) {
	e, ok := l.entries[word]
	return e, ok
}

// VisitPrefix walks every word sharing the given prefix, in trie order.
func (l *Lexicon) VisitPrefix(prefix string, fn func(word string, id int) error) error {
	return l.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		return fn(string(p), item.(int))
	})
}

// ZipfRange returns the corpus-wide min and max zipf over entries with
// zipf > 0. Falls back to the given pair when no entry has a positive zipf
// or the corpus has no spread.
func (l *Lexicon) ZipfRange(fallbackFloor, fallbackCeiling float64) (float64, float64) {
	minZipf, maxZipf := 0.0, 0.0
	seen := false
	for _, e := range l.entries {
		if e.Zipf <= 0 {
			continue
		}
		if !seen {
			minZipf, maxZipf = e.Zipf, e.Zipf
			seen = true
			continue
		}
		if e.Zipf < minZipf {
			minZipf = e.Zipf
		}
		if e.Zipf > maxZipf {
			maxZipf = e.Zipf
		}
	}
	if !seen || minZipf == maxZipf {
		return fallbackFloor, fallbackCeiling
	}
	return minZipf, maxZipf
}

// ScoreableSet returns the set of clueable words, or nil when no loaded entry
// carries the flag. Callers treat nil as "every valid word scores".
func (l *Lexicon) ScoreableSet() map[string]bool {
	var set map[string]bool
	for w, e := range l.entries {
		if e.Clueable {
			if set == nil {
				set = make(map[string]bool)
			}
			set[w] = true
		}
	}
	return set
}

// Stats returns statistics about the loaded lexicon
func (l *Lexicon) Stats() map[string]int {
	return map[string]int{
		"totalWords":   len(l.words),
		"totalEntries": len(l.entries),
	}
}
