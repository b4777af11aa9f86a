package chain

import (
	"math"
	"sync"

	"github.com/bastiangx/gridfill/pkg/lexicon"
)

// Inventory tracks how many times each segment may still be consumed across
// chain commits. Enumeration only reads it; Commit is the single mutator,
// and counts never drop below zero.
type Inventory struct {
	mu        sync.Mutex
	remaining map[string]int
}

// NewInventory seeds remaining-use counts from the catalog's productivity
// counters: clamp(round(log1p(combo_count)/2), 1, 3) per segment.
func NewInventory(catalog *lexicon.Catalog) *Inventory {
	inv := &Inventory{remaining: make(map[string]int)}
	for n := lexicon.MinSegmentLen; n <= lexicon.MaxSegmentLen; n++ {
		for _, seg := range catalog.OfLength(n) {
			inv.remaining[seg.Text] = seedCount(seg.ComboCount)
		}
	}
	return inv
}

func seedCount(comboCount int) int {
	n := int(math.Round(math.Log1p(float64(comboCount)) / 2))
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

// Remaining returns the remaining-use count for a segment text.
func (inv *Inventory) Remaining(text string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.remaining[text]
}

// Snapshot returns the current counts for the given segment texts.
func (inv *Inventory) Snapshot(texts []string) map[string]int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make(map[string]int, len(texts))
	for _, t := range texts {
		out[t] = inv.remaining[t]
	}
	return out
}

// consume decrements one segment's count, floored at zero. Called only while
// committing a chain, under the inventory lock.
func (inv *Inventory) consumeLocked(text string) {
	if inv.remaining[text] > 0 {
		inv.remaining[text]--
	}
}
