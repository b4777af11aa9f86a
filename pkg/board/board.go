/*
Package board models the puzzle grid, the slots carved out of it, and the
finished-board validator/scorer.
*/
package board

import (
	"fmt"
	"strings"

	"github.com/bastiangx/gridfill/internal/utils"
)

// Coord addresses one grid cell.
type Coord struct {
	Row int
	Col int
}

// Cell is either empty (Letter == 0) or holds a letter plus the IDs of the
// placed pieces that own it.
type Cell struct {
	Letter byte
	Owners map[string]bool
}

// Filled reports whether the cell holds a letter.
func (c *Cell) Filled() bool {
	return c.Letter != 0
}

// Board is the mutable grid of cells plus the registry of placed pieces.
type Board struct {
	Rows  int
	Cols  int
	cells [][]Cell
}

// New creates an empty board of the given dimensions.
func New(rows, cols int) *Board {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("board: invalid dimensions %dx%d", rows, cols))
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Board{Rows: rows, Cols: cols, cells: cells}
}

// FromRows builds a board from row strings, '.' marking empty cells.
// Short rows are padded with empty cells. Letters are lowercased.
func FromRows(rows []string) *Board {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	b := New(len(rows), cols)
	for r, row := range rows {
		row = strings.ToLower(row)
		for c := 0; c < len(row); c++ {
			if row[c] != '.' && row[c] != ' ' {
				b.cells[r][c].Letter = row[c]
			}
		}
	}
	return b
}

// InBounds reports whether a coordinate lies on the board.
func (b *Board) InBounds(at Coord) bool {
	return at.Row >= 0 && at.Row < b.Rows && at.Col >= 0 && at.Col < b.Cols
}

// At returns the letter at a coordinate and whether the cell is filled.
// Out-of-bounds coordinates read as empty.
func (b *Board) At(at Coord) (byte, bool) {
	if !b.InBounds(at) {
		return 0, false
	}
	cell := &b.cells[at.Row][at.Col]
	return cell.Letter, cell.Filled()
}

// Owners returns the piece IDs owning a cell, or nil for an empty cell.
func (b *Board) Owners(at Coord) map[string]bool {
	if !b.InBounds(at) {
		return nil
	}
	return b.cells[at.Row][at.Col].Owners
}

// SetLetter writes a letter into a cell and records the owning piece.
// Overwriting a different letter is allowed; callers check conflicts first.
func (b *Board) SetLetter(at Coord, letter byte, owner string) {
	if !b.InBounds(at) {
		panic(fmt.Sprintf("board: coordinate %v out of bounds %dx%d", at, b.Rows, b.Cols))
	}
	cell := &b.cells[at.Row][at.Col]
	cell.Letter = letter
	if owner != "" {
		if cell.Owners == nil {
			cell.Owners = make(map[string]bool)
		}
		cell.Owners[owner] = true
	}
}

// RemoveOwner drops a piece from a cell, clearing the letter when it was the
// last owner.
func (b *Board) RemoveOwner(at Coord, owner string) {
	if !b.InBounds(at) {
		return
	}
	cell := &b.cells[at.Row][at.Col]
	delete(cell.Owners, owner)
	if len(cell.Owners) == 0 {
		cell.Letter = 0
		cell.Owners = nil
	}
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	count := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.cells[r][c].Filled() {
				count++
			}
		}
	}
	return count
}

// hasOwnership reports whether any cell carries piece-ownership metadata.
func (b *Board) hasOwnership() bool {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if len(b.cells[r][c].Owners) > 0 {
				return true
			}
		}
	}
	return false
}

// RowStrings renders the board back into row strings, '.' for empty cells.
func (b *Board) RowStrings() []string {
	rows := make([]string, b.Rows)
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		sb.Reset()
		for c := 0; c < b.Cols; c++ {
			if cell := &b.cells[r][c]; cell.Filled() {
				sb.WriteByte(cell.Letter)
			} else {
				sb.WriteByte('.')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// Direction of a slot or extracted word.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "across"
}

// Crossing ties one position of a slot to the slot crossing it there.
type Crossing struct {
	Index     int
	OtherSlot string
}

// Slot is one fillable word position: a maximal run of open cells in one
// direction, with its current pattern and crossing references.
type Slot struct {
	ID        string
	Dir       Direction
	Length    int
	Cells     []Coord
	Pattern   string
	Crossings []Crossing
}

// Check panics when the slot breaks its construction contract. Callers build
// slots programmatically, so a mismatch is a bug rather than bad input.
func (s *Slot) Check() {
	if len(s.Pattern) != s.Length {
		panic(fmt.Sprintf("board: slot %s pattern length %d != slot length %d",
			s.ID, len(s.Pattern), s.Length))
	}
	if len(s.Cells) != s.Length {
		panic(fmt.Sprintf("board: slot %s has %d cells for length %d",
			s.ID, len(s.Cells), s.Length))
	}
	for i := 0; i < len(s.Pattern); i++ {
		if !utils.IsPatternChar(s.Pattern[i]) {
			panic(fmt.Sprintf("board: slot %s pattern has invalid byte %q", s.ID, s.Pattern[i]))
		}
	}
}
