/*
Package chain assembles letter sequences for a slot directly from the segment
catalog instead of whole dictionary words.

The finder runs a beam-pruned dynamic program over (position, segments used)
states, constrained to a segment-count corridor: an L-letter pattern needs at
least ceil(L/5) max-length pieces and at most floor(L/2) min-length pieces.
Each state keeps only its best BeamWidth partial chains, so the search is
approximate: two runs with different beam contents may return different,
similarly-scored chain sets. Within one catalog the result is deterministic
because ties break on fewer pieces, then the lexicographically smaller
sequence.
*/
package chain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/bastiangx/gridfill/pkg/board"
	"github.com/bastiangx/gridfill/pkg/lexicon"
	"github.com/charmbracelet/log"
)

const (
	// DefaultBeamWidth bounds how many partial chains a DP state retains.
	DefaultBeamWidth = 100

	// DefaultTopK bounds how many finished chains a query returns.
	DefaultTopK = 50

	// EdgeBonus matches the segmentation engine's edge reward.
	EdgeBonus = 0.08

	// Join rewards and penalty between two adjacent segments.
	JoinBonus   = 0.08
	JoinPenalty = -0.06

	scoreEpsilon = 1e-9
)

// Chain is one assembled letter sequence with its provenance and the
// inventory counts observed when it was computed.
type Chain struct {
	Letters   string
	Segments  []string
	Score     float64
	Usable    bool
	Remaining map[string]int
}

// Finder enumerates chains against one catalog and inventory.
type Finder struct {
	catalog *lexicon.Catalog
	inv     *Inventory

	BeamWidth int
	TopK      int
}

// NewFinder creates a chain finder over the catalog with a fresh inventory.
func NewFinder(catalog *lexicon.Catalog) *Finder {
	return &Finder{
		catalog:   catalog,
		inv:       NewInventory(catalog),
		BeamWidth: DefaultBeamWidth,
		TopK:      DefaultTopK,
	}
}

// Inventory exposes the finder's inventory for usability queries.
func (f *Finder) Inventory() *Inventory {
	return f.inv
}

// partial is a suffix chain from some DP state to the end of the pattern.
type partial struct {
	score float64
	segs  []string
}

// FindTop returns up to k chains whose letters match every fixed character of
// the pattern, ranked by score. k <= 0 uses the finder's TopK. An empty
// result is a normal outcome.
func (f *Finder) FindTop(pattern string, k int) []Chain {
	pattern = strings.ToLower(pattern)
	for i := 0; i < len(pattern); i++ {
		if !utils.IsPatternChar(pattern[i]) {
			panic(fmt.Sprintf("chain: pattern %q has invalid byte %q", pattern, pattern[i]))
		}
	}
	if k <= 0 {
		k = f.TopK
	}

	L := len(pattern)
	minSegs := ceilDiv(L, lexicon.MaxSegmentLen)
	maxSegs := L / lexicon.MinSegmentLen
	if L == 0 || maxSegs < minSegs || maxSegs == 0 {
		return nil
	}

	// table[i][used] holds the beam of suffix chains covering pattern[i:]
	// when `used` segments were consumed before position i.
	table := make([][][]partial, L+1)
	for i := range table {
		table[i] = make([][]partial, maxSegs+1)
	}
	for used := 0; used <= maxSegs; used++ {
		if used >= minSegs {
			table[L][used] = []partial{{}}
		}
	}

	for i := L - 1; i >= 0; i-- {
		for used := maxSegs - 1; used >= 0; used-- {
			table[i][used] = f.expand(pattern, i, used, minSegs, maxSegs, table)
		}
	}

	results := table[0][0]
	chains := make([]Chain, 0, min(k, len(results)))
	for _, p := range results {
		if len(chains) == k {
			break
		}
		remaining := f.inv.Snapshot(p.segs)
		usable := true
		for _, count := range remaining {
			if count <= 0 {
				usable = false
				break
			}
		}
		chains = append(chains, Chain{
			Letters:   strings.Join(p.segs, ""),
			Segments:  p.segs,
			Score:     p.score,
			Usable:    usable,
			Remaining: remaining,
		})
	}
	log.Debugf("Pattern %q: %d chains (beam %d)", pattern, len(chains), f.BeamWidth)
	return chains
}

// expand enumerates every transition out of state (i, used), scores the
// combined suffix chains and keeps the top BeamWidth.
func (f *Finder) expand(pattern string, i, used, minSegs, maxSegs int, table [][][]partial) []partial {
	L := len(pattern)
	var results []partial

	for l := lexicon.MinSegmentLen; l <= lexicon.MaxSegmentLen; l++ {
		j := i + l
		if j > L {
			break
		}
		remaining := L - j
		next := used + 1
		// Corridor pruning: the tail must still be able to land inside
		// [minSegs, maxSegs] total segments.
		if next+ceilDiv(remaining, lexicon.MaxSegmentLen) > maxSegs {
			continue
		}
		if remaining > 0 && next+remaining/lexicon.MinSegmentLen < minSegs {
			continue
		}
		if next > maxSegs {
			continue
		}

		window := pattern[i:j]
		for _, seg := range f.catalog.OfLength(l) {
			if !matchesWindow(seg.Text, window) {
				continue
			}
			base := f.pieceScore(seg, i, j, L)
			for _, cont := range table[j][next] {
				results = append(results, partial{
					score: base + f.joinBonus(seg, cont.segs) + cont.score,
					segs:  prepend(seg.Text, cont.segs),
				})
			}
		}
	}

	sort.Slice(results, func(a, b int) bool {
		return betterPartial(&results[a], &results[b])
	})
	if len(results) > f.BeamWidth {
		results = results[:f.BeamWidth]
	}
	return results
}

// pieceScore scores one segment occupying pattern[i:j] of an L-letter chain.
// Unlike the segmentation engine, productivity saturates linearly at 1000.
func (f *Finder) pieceScore(seg *lexicon.Segment, i, j, L int) float64 {
	score := seg.GameWeight
	if i == 0 && seg.StartsWord() {
		score += EdgeBonus
	}
	if j == L && seg.EndsWord() {
		score += EdgeBonus
	}
	productivity := float64(seg.ComboCount+seg.StartComboCount) / 1000
	if productivity > 1 {
		productivity = 1
	}
	return score + 0.05*productivity
}

// joinBonus rewards a seam where the left segment ends a word or the right
// one starts a word, and penalizes a seam with neither. The last segment of
// a chain has no seam and gets no join term.
func (f *Finder) joinBonus(cur *lexicon.Segment, contSegs []string) float64 {
	if len(contSegs) == 0 {
		return 0
	}
	next, ok := f.catalog.Lookup(contSegs[0])
	if !ok {
		return 0
	}
	bonus := 0.0
	if cur.EndsWord() {
		bonus += JoinBonus
	}
	if next.StartsWord() {
		bonus += JoinBonus
	}
	if bonus == 0 {
		return JoinPenalty
	}
	return bonus
}

// Commit writes the chain's letters into the slot's cells and decrements
// each used segment's remaining count, floored at zero. This is the only
// place inventory state changes.
func (f *Finder) Commit(ch *Chain, slot *board.Slot, b *board.Board) {
	slot.Check()
	if len(ch.Letters) != slot.Length {
		panic(fmt.Sprintf("chain: chain length %d != slot %s length %d",
			len(ch.Letters), slot.ID, slot.Length))
	}

	for i, at := range slot.Cells {
		b.SetLetter(at, ch.Letters[i], slot.ID)
	}

	f.inv.mu.Lock()
	for _, seg := range ch.Segments {
		f.inv.consumeLocked(seg)
	}
	f.inv.mu.Unlock()
	log.Debugf("Committed chain %q into slot %s", ch.Letters, slot.ID)
}

// betterPartial orders by descending score, then fewer segments, then the
// lexicographically smaller sequence.
func betterPartial(a, b *partial) bool {
	if a.score > b.score+scoreEpsilon {
		return true
	}
	if a.score < b.score-scoreEpsilon {
		return false
	}
	if len(a.segs) != len(b.segs) {
		return len(a.segs) < len(b.segs)
	}
	for i := 0; i < len(a.segs); i++ {
		if a.segs[i] != b.segs[i] {
			return a.segs[i] < b.segs[i]
		}
	}
	return false
}

func matchesWindow(text, window string) bool {
	for i := 0; i < len(window); i++ {
		if window[i] != utils.Wildcard && window[i] != text[i] {
			return false
		}
	}
	return true
}

func prepend(head string, tail []string) []string {
	segs := make([]string, 0, len(tail)+1)
	segs = append(segs, head)
	return append(segs, tail...)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Stats returns statistics about the finder state
func (f *Finder) Stats() map[string]int {
	f.inv.mu.Lock()
	usable := 0
	for _, count := range f.inv.remaining {
		if count > 0 {
			usable++
		}
	}
	total := len(f.inv.remaining)
	f.inv.mu.Unlock()
	return map[string]int{
		"beamWidth":      f.BeamWidth,
		"topK":           f.TopK,
		"segments":       total,
		"usableSegments": usable,
	}
}
