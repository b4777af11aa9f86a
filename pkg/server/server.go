package server

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/gridfill/internal/logger"
	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/bastiangx/gridfill/pkg/board"
	"github.com/bastiangx/gridfill/pkg/chain"
	"github.com/bastiangx/gridfill/pkg/config"
	"github.com/bastiangx/gridfill/pkg/lexicon"
	"github.com/bastiangx/gridfill/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for slot candidates, chains and board state
type Server struct {
	suggester  *suggest.Suggester
	finder     *chain.Finder
	lex        *lexicon.Lexicon
	cfg        *config.Config
	configPath string

	board *board.Board

	log     *log.Logger
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// Creates a new fill server using stdin/stdout for IPC
func NewServer(suggester *suggest.Suggester, finder *chain.Finder, lex *lexicon.Lexicon, cfg *config.Config, configPath string) *Server {
	return &Server{
		suggester:  suggester,
		finder:     finder,
		lex:        lex,
		cfg:        cfg,
		configPath: configPath,
		log:        logger.New("ipc"),
		decoder:    msgpack.NewDecoder(os.Stdin),
		encoder:    msgpack.NewEncoder(os.Stdout),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	// Signal that the server is ready
	s.send(map[string]string{"status": "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request Request) {
	switch request.Command {
	case "candidates":
		s.handleCandidates(request)
	case "chains":
		s.handleChains(request)
	case "board":
		s.handleBoard(request)
	case "commit":
		s.handleCommit(request)
	case "validate":
		s.handleValidate(request)
	case "config":
		s.handleConfig(request)
	case "stats":
		s.handleStats(request)
	case "health":
		s.send(map[string]string{"id": request.ID, "status": "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(RequestError{ID: id, Error: message, Code: code})
}

// handleCandidates ranks dictionary words for the requested slot against the
// session board. It validates the slot ref, runs the query and sends the
// ranked candidates with timing data.
func (s *Server) handleCandidates(request Request) {
	slot, err := s.buildSlot(request.Slot)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	candidates := s.suggester.Candidates(slot, s.board)
	elapsed := time.Since(start)

	limit := request.Limit
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	entries := make([]CandidateEntry, len(candidates))
	for i, c := range candidates {
		entries[i] = CandidateEntry{
			Word:     c.Word,
			Score:    c.Score,
			SegScore: c.SegScore,
			Zipf:     c.Zipf,
			Pieces:   c.Pieces,
		}
	}
	s.send(CandidateResponse{
		ID:         request.ID,
		Candidates: entries,
		Count:      len(entries),
		TimeTaken:  elapsed.Microseconds(),
	})
}

// handleChains runs the segment chain search for a raw pattern.
func (s *Server) handleChains(request Request) {
	pattern := strings.ToLower(strings.TrimSpace(request.Pattern))
	if pattern == "" {
		s.sendError(request.ID, "Missing 'p' parameter", 400)
		s.log.Debug("Pattern is empty in request")
		return
	}
	if len(pattern) > 60 {
		s.sendError(request.ID, "Pattern exceeds maximum length of 60 characters", 400)
		return
	}
	for i := 0; i < len(pattern); i++ {
		if !utils.IsPatternChar(pattern[i]) {
			s.sendError(request.ID, "Pattern may only contain a-z and '?'", 400)
			return
		}
	}

	start := time.Now()
	chains := s.finder.FindTop(pattern, request.Limit)
	elapsed := time.Since(start)

	entries := make([]ChainEntry, len(chains))
	for i, ch := range chains {
		entries[i] = ChainEntry{
			Letters:   ch.Letters,
			Segments:  ch.Segments,
			Score:     ch.Score,
			Usable:    ch.Usable,
			Remaining: ch.Remaining,
		}
	}
	s.send(ChainResponse{
		ID:        request.ID,
		Chains:    entries,
		Count:     len(entries),
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleBoard installs the session board from row strings.
func (s *Server) handleBoard(request Request) {
	if len(request.Rows) == 0 {
		s.sendError(request.ID, "Missing 'rows' parameter", 400)
		return
	}
	s.board = board.FromRows(request.Rows)
	s.send(map[string]string{"id": request.ID, "status": "ok"})
}

// handleCommit writes a chain into a slot on the session board and consumes
// the chain's segments from the inventory.
func (s *Server) handleCommit(request Request) {
	if s.board == nil {
		s.sendError(request.ID, "No board installed; send a 'board' command first", 400)
		return
	}
	if request.Chain == nil {
		s.sendError(request.ID, "Missing 'chain' parameter", 400)
		return
	}
	slot, err := s.buildSlot(request.Slot)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}
	if len(request.Chain.Letters) != slot.Length {
		s.sendError(request.ID, "Chain length does not match slot length", 400)
		return
	}

	ch := chain.Chain{Letters: request.Chain.Letters, Segments: request.Chain.Segments}
	s.finder.Commit(&ch, slot, s.board)

	s.send(CommitResponse{
		ID:        request.ID,
		Status:    "ok",
		Rows:      s.board.RowStrings(),
		Remaining: s.finder.Inventory().Snapshot(ch.Segments),
	})
}

// handleValidate validates and scores the session board, or a board sent
// inline via rows.
func (s *Server) handleValidate(request Request) {
	b := s.board
	if len(request.Rows) > 0 {
		b = board.FromRows(request.Rows)
	}
	if b == nil {
		s.sendError(request.ID, "No board installed; send a 'board' command first", 400)
		return
	}

	opts := board.Options{
		MinWordLen:              s.cfg.Board.MinWordLen,
		RequireSingleCluster:    s.cfg.Board.RequireSingleCluster,
		MaxIntersectionsPerPair: s.cfg.Board.MaxIntersections,
	}

	start := time.Now()
	report := board.ValidateAndScore(b, opts, s.lex, s.lex.ScoreableSet())
	elapsed := time.Since(start)

	s.send(ValidateResponse{
		ID:          request.ID,
		OK:          report.OK,
		Issues:      report.Issues,
		Density:     report.Density,
		FilledCells: report.FilledCells,
		WordCount:   report.WordCount,
		Score:       report.Score,
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleConfig gets or sets the runtime search parameters. Set values also
// persist to the config file so they survive restarts.
func (s *Server) handleConfig(request Request) {
	switch request.Action {
	case "get", "":
		s.send(ConfigResponse{
			ID:            request.ID,
			Status:        "ok",
			BeamWidth:     s.finder.BeamWidth,
			TopChains:     s.finder.TopK,
			MaxCandidates: s.suggester.MaxCandidates,
		})
	case "set":
		if request.BeamWidth != nil && *request.BeamWidth > 0 {
			s.finder.BeamWidth = *request.BeamWidth
			s.cfg.Search.BeamWidth = *request.BeamWidth
		}
		if request.TopChains != nil && *request.TopChains > 0 {
			s.finder.TopK = *request.TopChains
			s.cfg.Search.TopChains = *request.TopChains
		}
		if request.MaxCandidates != nil && *request.MaxCandidates > 0 {
			s.suggester.MaxCandidates = *request.MaxCandidates
			s.cfg.Search.MaxCandidates = *request.MaxCandidates
		}
		if s.configPath != "" {
			if err := s.cfg.Update(s.configPath, request.BeamWidth, request.TopChains, request.MaxCandidates); err != nil {
				s.log.Warnf("Persisting config: %v", err)
				s.send(ConfigResponse{ID: request.ID, Status: "ok", Error: "applied but not persisted"})
				return
			}
		}
		s.send(ConfigResponse{
			ID:            request.ID,
			Status:        "ok",
			BeamWidth:     s.finder.BeamWidth,
			TopChains:     s.finder.TopK,
			MaxCandidates: s.suggester.MaxCandidates,
		})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown config action: %s", request.Action), 400)
	}
}

func (s *Server) handleStats(request Request) {
	stats := s.suggester.Stats()
	for k, v := range s.finder.Stats() {
		stats[k] = v
	}
	s.send(StatsResponse{ID: request.ID, Stats: stats})
}

// buildSlot expands a SlotRef into a full slot with derived cell coordinates.
func (s *Server) buildSlot(ref *SlotRef) (*board.Slot, error) {
	if ref == nil {
		return nil, fmt.Errorf("missing 'slot' parameter")
	}
	pattern := strings.ToLower(ref.Pattern)
	if pattern == "" {
		return nil, fmt.Errorf("slot %s has an empty pattern", ref.ID)
	}
	for i := 0; i < len(pattern); i++ {
		if !utils.IsPatternChar(pattern[i]) {
			return nil, fmt.Errorf("slot %s pattern has invalid byte %q", ref.ID, pattern[i])
		}
	}

	var dir board.Direction
	switch ref.Dir {
	case "across":
		dir = board.Across
	case "down":
		dir = board.Down
	default:
		return nil, fmt.Errorf("slot %s has invalid direction %q", ref.ID, ref.Dir)
	}

	cells := make([]board.Coord, len(pattern))
	for i := range cells {
		if dir == board.Across {
			cells[i] = board.Coord{Row: ref.Row, Col: ref.Col + i}
		} else {
			cells[i] = board.Coord{Row: ref.Row + i, Col: ref.Col}
		}
		if s.board != nil && !s.board.InBounds(cells[i]) {
			return nil, fmt.Errorf("slot %s leaves the board at cell %d", ref.ID, i)
		}
	}

	crossings := make([]board.Crossing, len(ref.Crossings))
	for i, x := range ref.Crossings {
		if x.Index < 0 || x.Index >= len(pattern) {
			return nil, fmt.Errorf("slot %s crossing index %d out of range", ref.ID, x.Index)
		}
		crossings[i] = board.Crossing{Index: x.Index, OtherSlot: x.OtherSlot}
	}

	slot := &board.Slot{
		ID:        ref.ID,
		Dir:       dir,
		Length:    len(pattern),
		Cells:     cells,
		Pattern:   pattern,
		Crossings: crossings,
	}
	slot.Check()
	return slot, nil
}
