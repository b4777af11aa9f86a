package lexicon

import (
	"fmt"

	"github.com/bastiangx/gridfill/internal/utils"
)

// Segment length bounds. Anything outside is a contract breach, not bad data.
const (
	MinSegmentLen = 2
	MaxSegmentLen = 5
)

// Segment is a 2-5 letter sub-word unit with morphological flags and
// productivity counters, used to decompose or assemble words.
type Segment struct {
	Text            string
	ComboCount      int
	StartComboCount int
	Syntactic       bool
	MorphPrefix     bool
	MorphSuffix     bool
	PosStart        bool
	PosEnd          bool
	AtomicSlice     bool
	SemanticWeight  float64
	GameWeight      float64
}

// StartsWord reports whether the segment carries a word-start flag.
func (s *Segment) StartsWord() bool {
	return s.PosStart || s.MorphPrefix
}

// EndsWord reports whether the segment carries a word-end flag.
func (s *Segment) EndsWord() bool {
	return s.PosEnd || s.MorphSuffix
}

// Catalog is the segment inventory keyed by text, with a per-length view
// for the chain finder's window enumeration. Unique by text.
type Catalog struct {
	byText map[string]*Segment
	byLen  [MaxSegmentLen + 1][]*Segment
}

// NewCatalog creates an empty segment catalog
func NewCatalog() *Catalog {
	return &Catalog{
		byText: make(map[string]*Segment),
	}
}

// Add inserts a segment, replacing any previous one with the same text.
// Panics on a length outside [2,5]: loaders must have filtered those rows,
// so getting one here means a broken caller.
func (c *Catalog) Add(seg Segment) {
	seg.Text = utils.NormalizeWord(seg.Text)
	n := len(seg.Text)
	if n < MinSegmentLen || n > MaxSegmentLen {
		panic(fmt.Sprintf("lexicon: segment %q has length %d, outside [%d,%d]",
			seg.Text, n, MinSegmentLen, MaxSegmentLen))
	}
	if seg.ComboCount < 0 {
		seg.ComboCount = 0
	}
	if seg.StartComboCount < 0 {
		seg.StartComboCount = 0
	}
	if old, ok := c.byText[seg.Text]; ok {
		// Replace in the per-length slice in place to keep iteration order stable.
		for i, s := range c.byLen[n] {
			if s == old {
				stored := seg
				c.byLen[n][i] = &stored
				c.byText[seg.Text] = &stored
				return
			}
		}
	}
	stored := seg
	c.byText[seg.Text] = &stored
	c.byLen[n] = append(c.byLen[n], &stored)
}

// Lookup returns the segment with the given text, if present.
func (c *Catalog) Lookup(text string) (*Segment, bool) {
	seg, ok := c.byText[text]
	return seg, ok
}

// OfLength returns all segments of the given length in insertion order.
// Callers must not mutate the returned slice.
func (c *Catalog) OfLength(n int) []*Segment {
	if n < MinSegmentLen || n > MaxSegmentLen {
		return nil
	}
	return c.byLen[n]
}

// Len returns the number of distinct segments.
func (c *Catalog) Len() int {
	return len(c.byText)
}

// Stats returns statistics about the loaded catalog
func (c *Catalog) Stats() map[string]int {
	stats := map[string]int{
		"totalSegments": len(c.byText),
	}
	for n := MinSegmentLen; n <= MaxSegmentLen; n++ {
		stats[fmt.Sprintf("len%d", n)] = len(c.byLen[n])
	}
	return stats
}
