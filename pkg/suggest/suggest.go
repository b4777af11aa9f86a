package suggest

import (
	"sort"

	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/bastiangx/gridfill/pkg/board"
	"github.com/bastiangx/gridfill/pkg/index"
	"github.com/bastiangx/gridfill/pkg/lexicon"
	"github.com/bastiangx/gridfill/pkg/segment"
	"github.com/charmbracelet/log"
)

// Weights applied on top of the segmentation score.
const (
	DefaultZipfWeight     = 0.10
	DefaultCrossingWeight = 0.10

	// DefaultZipfNorm is the normalized zipf assumed for words with no
	// known frequency.
	DefaultZipfNorm = 0.2

	// DefaultMaxCandidates caps how many ranked candidates a query returns.
	DefaultMaxCandidates = 50
)

// Suggester ranks dictionary words for a slot. All inputs are read-only, so
// independent queries can run concurrently.
type Suggester struct {
	lex *lexicon.Lexicon
	idx *index.PositionIndex
	seg *segment.Segmenter

	MaxCandidates  int
	ZipfWeight     float64
	CrossingWeight float64
	ZipfNorm       float64

	// Fallback zipf range when the lexicon has no usable spread.
	ZipfFloor   float64
	ZipfCeiling float64
}

// NewSuggester wires the lexicon, position index and segmenter together.
func NewSuggester(lex *lexicon.Lexicon, idx *index.PositionIndex, seg *segment.Segmenter) *Suggester {
	return &Suggester{
		lex:            lex,
		idx:            idx,
		seg:            seg,
		MaxCandidates:  DefaultMaxCandidates,
		ZipfWeight:     DefaultZipfWeight,
		CrossingWeight: DefaultCrossingWeight,
		ZipfNorm:       DefaultZipfNorm,
		ZipfFloor:      lexicon.DefaultZipfFloor,
		ZipfCeiling:    lexicon.DefaultZipfCeiling,
	}
}

// Candidates returns the ranked candidates for a slot on the given board.
// An empty result is a normal outcome, not an error. Truncation to
// MaxCandidates happens after every candidate is fully scored.
func (s *Suggester) Candidates(slot *board.Slot, b *board.Board) []Candidate {
	slot.Check()

	ids := s.idx.FindCandidates(slot.Pattern)
	if len(ids) == 0 {
		log.Debugf("No words of length %d match pattern %q", slot.Length, slot.Pattern)
		return nil
	}

	minZipf, maxZipf := s.lex.ZipfRange(s.ZipfFloor, s.ZipfCeiling)

	var candidates []Candidate
	for _, id := range ids {
		word := s.lex.Word(id)

		// Defensive re-check beyond the index intersection.
		if !utils.MatchesPattern(word, slot.Pattern) {
			continue
		}

		entry, hasEntry := s.lex.Entry(word)
		if hasEntry && entry.Banned {
			continue
		}

		matched, conflict := crossingSupport(word, slot, b)
		if conflict {
			continue
		}

		res, tileable := s.seg.Best(word)
		if !tileable {
			continue
		}

		zipf := 0.0
		if hasEntry {
			zipf = entry.Zipf
		}
		normZipf := s.ZipfNorm
		if zipf > 0 {
			normZipf = clamp((zipf-minZipf)/(maxZipf-minZipf), 0, 1)
		}
		crossingBonus := float64(matched) / float64(slot.Length)

		candidates = append(candidates, Candidate{
			Word:          word,
			Score:         res.Score + s.ZipfWeight*normZipf + s.CrossingWeight*crossingBonus,
			SegScore:      res.Score,
			Zipf:          zipf,
			CrossingBonus: crossingBonus,
			Pieces:        res.Pieces,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if s.MaxCandidates > 0 && len(candidates) > s.MaxCandidates {
		candidates = candidates[:s.MaxCandidates]
	}
	log.Debugf("Slot %s pattern %q: %d candidates", slot.ID, slot.Pattern, len(candidates))
	return candidates
}

// crossingSupport counts the crossing cells whose board letter the word
// already satisfies, and reports a conflict when any fixed crossing letter
// differs from the word's.
func crossingSupport(word string, slot *board.Slot, b *board.Board) (matched int, conflict bool) {
	if b == nil {
		return 0, false
	}
	for _, cross := range slot.Crossings {
		if cross.Index < 0 || cross.Index >= len(slot.Cells) {
			continue
		}
		letter, filled := b.At(slot.Cells[cross.Index])
		if !filled || letter == utils.Wildcard {
			continue
		}
		if letter != word[cross.Index] {
			return 0, true
		}
		matched++
	}
	return matched, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Stats returns statistics about the engine state
func (s *Suggester) Stats() map[string]int {
	stats := s.idx.Stats()
	for k, v := range s.seg.Stats() {
		stats[k] = v
	}
	stats["totalWords"] = s.lex.Len()
	return stats
}
