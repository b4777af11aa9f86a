/*
Package segment decomposes a single word into an optimal sequence of catalog
segments (2-5 letters each) via a bottom-up dynamic program.

Ties between equally-scored decompositions are broken deterministically:
fewer pieces win, then the lexicographically smaller piece sequence. Results
are cached per lowercase word for the process lifetime, so repeated calls
with the same word return identical output.
*/
package segment

import (
	"math"

	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/bastiangx/gridfill/pkg/lexicon"
)

const (
	// EdgeBonus rewards a word-start flagged segment at position 0 and a
	// word-end flagged segment at the final position.
	EdgeBonus = 0.08

	// scoreEpsilon separates genuinely different scores from float noise
	// when applying the tie-break.
	scoreEpsilon = 1e-9
)

// Result is one word decomposition: its total score and the ordered pieces,
// which concatenate back to the word exactly.
type Result struct {
	Score  float64
	Pieces []string
}

// Segmenter runs the decomposition DP against one immutable catalog.
type Segmenter struct {
	catalog *lexicon.Catalog
	cache   *Cache
}

// NewSegmenter creates a segmenter with a result cache of the given size.
func NewSegmenter(catalog *lexicon.Catalog, cacheSize int) *Segmenter {
	return &Segmenter{
		catalog: catalog,
		cache:   NewCache(cacheSize),
	}
}

// dpCell is the best decomposition of the word's tail starting at one position.
type dpCell struct {
	ok     bool
	score  float64
	pieces []string
}

// Best returns the highest-scoring decomposition of a word, or ok=false when
// no sequence of 2-5 letter catalog segments tiles it exactly.
func (s *Segmenter) Best(word string) (Result, bool) {
	word = utils.NormalizeWord(word)
	if word == "" {
		return Result{}, false
	}
	if res, ok := s.cache.Get(word); ok {
		return res, true
	}

	n := len(word)
	// best[i] covers word[i:]; best[n] is the empty tail.
	best := make([]dpCell, n+1)
	best[n] = dpCell{ok: true}

	for i := n - 1; i >= 0; i-- {
		for l := lexicon.MinSegmentLen; l <= lexicon.MaxSegmentLen; l++ {
			j := i + l
			if j > n || !best[j].ok {
				continue
			}
			seg, ok := s.catalog.Lookup(word[i:j])
			if !ok {
				continue
			}
			cand := dpCell{
				ok:     true,
				score:  s.pieceScore(seg, i, j, n) + best[j].score,
				pieces: prepend(seg.Text, best[j].pieces),
			}
			if betterCell(cand, best[i]) {
				best[i] = cand
			}
		}
	}

	if !best[0].ok {
		return Result{}, false
	}
	res := Result{Score: best[0].score, Pieces: best[0].pieces}
	s.cache.Put(word, res)
	return res, true
}

// pieceScore scores one segment occupying word[i:j] of an n-letter word.
func (s *Segmenter) pieceScore(seg *lexicon.Segment, i, j, n int) float64 {
	score := seg.GameWeight
	if i == 0 && seg.StartsWord() {
		score += EdgeBonus
	}
	if j == n && seg.EndsWord() {
		score += EdgeBonus
	}
	score += productivityBonus(seg)
	return score
}

// productivityBonus rewards segments that combine well, on a log scale.
func productivityBonus(seg *lexicon.Segment) float64 {
	return 0.05 * math.Log1p(float64(seg.ComboCount+seg.StartComboCount)) / 10
}

// betterCell decides whether cand beats cur: higher score, then fewer pieces,
// then the lexicographically smaller piece sequence.
func betterCell(cand, cur dpCell) bool {
	if !cur.ok {
		return true
	}
	if cand.score > cur.score+scoreEpsilon {
		return true
	}
	if cand.score < cur.score-scoreEpsilon {
		return false
	}
	if len(cand.pieces) != len(cur.pieces) {
		return len(cand.pieces) < len(cur.pieces)
	}
	return lessPieces(cand.pieces, cur.pieces)
}

// lessPieces compares two piece sequences lexicographically.
func lessPieces(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func prepend(head string, tail []string) []string {
	pieces := make([]string, 0, len(tail)+1)
	pieces = append(pieces, head)
	return append(pieces, tail...)
}

// Stats returns statistics about the segmenter cache
func (s *Segmenter) Stats() map[string]int {
	return s.cache.Stats()
}
