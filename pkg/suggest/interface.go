// Package suggest is the core word-candidate engine: it narrows the lexicon
// through the position index, re-checks the slot pattern and crossing cells,
// segments each surviving word and ranks the results.
package suggest

import "github.com/bastiangx/gridfill/pkg/board"

// Candidate is one ranked word suggestion for a slot.
type Candidate struct {
	Word          string
	Score         float64
	SegScore      float64
	Zipf          float64
	CrossingBonus float64
	Pieces        []string
}

// ISuggester defines the interface for slot candidate engines
type ISuggester interface {
	// Candidates returns ranked candidates for a slot on the given board
	Candidates(slot *board.Slot, b *board.Board) []Candidate

	// Stats returns statistics about the engine state
	Stats() map[string]int
}
