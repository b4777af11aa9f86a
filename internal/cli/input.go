// Package cli handles cmd line input for DBG and testing slot queries in real-time
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/gridfill/internal/logger"
	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/bastiangx/gridfill/pkg/board"
	"github.com/bastiangx/gridfill/pkg/chain"
	"github.com/bastiangx/gridfill/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler processes pattern input from stdin, showing ranked word
// candidates and segment chains for each pattern. It accepts flags to control
// pattern length bounds and result limits.
type InputHandler struct {
	suggester        suggest.ISuggester
	finder           *chain.Finder
	minPatternLength int
	maxPatternLength int
	resultLimit      int
	log              *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(suggester suggest.ISuggester, finder *chain.Finder, minLength, maxLength, limit int) *InputHandler {
	return &InputHandler{
		suggester:        suggester,
		finder:           finder,
		minPatternLength: minLength,
		maxPatternLength: maxLength,
		resultLimit:      limit,
		// interactive loop, so no timestamps
		log: logger.NewWithConfig("cli", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed pattern to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.log.Print("GridFill CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type a pattern ('?' for open cells) and press Enter (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		pattern, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		h.handleInput(strings.ToLower(pattern))
	}
}

// handleInput processes a single pattern. It validates the pattern's length
// and content, then asks the suggester for candidates and the finder for
// chains. Results are formatted and printed to the log.
func (h *InputHandler) handleInput(pattern string) {
	if len(pattern) < h.minPatternLength {
		h.log.Errorf("Pattern too short: %s", pattern)
		return
	}
	if len(pattern) > h.maxPatternLength {
		h.log.Errorf("Pattern too long: %s", pattern)
		return
	}
	for i := 0; i < len(pattern); i++ {
		if !utils.IsPatternChar(pattern[i]) {
			h.log.Errorf("Pattern may only contain a-z and '?': %s", pattern)
			return
		}
	}

	slot := patternSlot(pattern)

	start := time.Now()
	candidates := h.suggester.Candidates(slot, nil)
	elapsed := time.Since(start)
	h.log.Debugf("Took [ %v ] for pattern '%s'", elapsed, pattern)

	if len(candidates) > h.resultLimit {
		candidates = candidates[:h.resultLimit]
	}
	if len(candidates) == 0 {
		h.log.Warnf("No word candidates for pattern: '%s'", pattern)
	} else {
		h.log.Printf("Found %d word candidates for pattern '%s':", len(candidates), pattern)
		for i, c := range candidates {
			clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Word)
			h.log.Printf("%2d. %-24s %.3f  [%s]", i+1, clWord, c.Score, strings.Join(c.Pieces, "+"))
		}
	}

	start = time.Now()
	chains := h.finder.FindTop(pattern, h.resultLimit)
	elapsed = time.Since(start)
	h.log.Debugf("Chain search took [ %v ] for pattern '%s'", elapsed, pattern)

	if len(chains) == 0 {
		h.log.Warnf("No segment chains for pattern: '%s'", pattern)
		return
	}
	h.log.Printf("Found %d segment chains for pattern '%s':", len(chains), pattern)
	for i, ch := range chains {
		clChain := fmt.Sprintf("\033[38;5;114m%s\033[0m", ch.Letters)
		marker := " "
		if !ch.Usable {
			marker = "!"
		}
		h.log.Printf("%2d.%s %-24s %.3f  [%s]", i+1, marker, clChain, ch.Score, strings.Join(ch.Segments, "+"))
	}
}

// patternSlot wraps a raw pattern in a free-standing across slot on row 0.
func patternSlot(pattern string) *board.Slot {
	cells := make([]board.Coord, len(pattern))
	for i := range cells {
		cells[i] = board.Coord{Row: 0, Col: i}
	}
	return &board.Slot{
		ID:      "cli",
		Dir:     board.Across,
		Length:  len(pattern),
		Cells:   cells,
		Pattern: pattern,
	}
}
