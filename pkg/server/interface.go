/*
Package server implements msgpack IPC for grid fill services.

The server package provides a minimal interface for slot candidate queries,
segment chain search, chain commits and board validation using msgpack
serialization over stdin/stdout.

The protocol uses binary msgpack encoding. Messages are processed
synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout.
Each message contains an ID field, a command, and other fields based on the
operation type.

Candidate requests use mainly this structure:

	{"id": "req_001", "cmd": "candidates", "slot": {...}, "l": 20}

The server responds with candidates ranked by score:

	{"id": "req_001", "c": [{"w": "cave", "s": 1.02}, ...], "n": 12, "t": 145}

Chain requests take a raw pattern instead of a slot:

	{"id": "req_002", "cmd": "chains", "p": "ab???", "l": 10}

The board is session state: clients install it with the "board" command and
the server applies commits and validation against that copy.

	{"id": "b_001", "cmd": "board", "rows": ["..t..", ".cave", "..t.."]}
	{"id": "c_001", "cmd": "commit", "slot": {...}, "chain": {...}}
	{"id": "v_001", "cmd": "validate"}

Config messages allow adjustment of search parameters without restart:

	{"id": "cfg_001", "cmd": "config", "action": "set", "beam_width": 200}
	{"id": "cfg_002", "cmd": "config", "action": "get"}

Response structures include status information and error details when an op
fails.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing
latency by ~40 to 70% in most cases.
*/
package server

// SlotRef describes one slot inline: its anchor cell, direction and pattern.
// Cells are derived from Row/Col and Dir, so clients never send coordinates
// per cell.
type SlotRef struct {
	ID        string     `msgpack:"id"`
	Dir       string     `msgpack:"dir"` // "across" or "down"
	Row       int        `msgpack:"row"`
	Col       int        `msgpack:"col"`
	Pattern   string     `msgpack:"p"`
	Crossings []CrossRef `msgpack:"x,omitempty"`
}

// CrossRef marks one crossing cell inside a slot.
type CrossRef struct {
	Index     int    `msgpack:"i"`
	OtherSlot string `msgpack:"o"`
}

// ChainRef carries a chain back to the server for committing.
type ChainRef struct {
	Letters  string   `msgpack:"w"`
	Segments []string `msgpack:"segs"`
}

// Request - single request envelope for every command
type Request struct {
	ID      string    `msgpack:"id"`
	Command string    `msgpack:"cmd"`
	Pattern string    `msgpack:"p,omitempty"`
	Limit   int       `msgpack:"l,omitempty"`
	Slot    *SlotRef  `msgpack:"slot,omitempty"`
	Chain   *ChainRef `msgpack:"chain,omitempty"`
	Rows    []string  `msgpack:"rows,omitempty"`

	// config fields
	Action        string `msgpack:"action,omitempty"` // "get", "set"
	BeamWidth     *int   `msgpack:"beam_width,omitempty"`
	TopChains     *int   `msgpack:"top_chains,omitempty"`
	MaxCandidates *int   `msgpack:"max_candidates,omitempty"`
}

// CandidateEntry - minimal candidate response
type CandidateEntry struct {
	Word     string   `msgpack:"w"`
	Score    float64  `msgpack:"s"`
	SegScore float64  `msgpack:"ss"`
	Zipf     float64  `msgpack:"z,omitempty"`
	Pieces   []string `msgpack:"segs"`
}

// CandidateResponse - candidates response
type CandidateResponse struct {
	ID         string           `msgpack:"id"`
	Candidates []CandidateEntry `msgpack:"c"`
	Count      int              `msgpack:"n"`
	TimeTaken  int64            `msgpack:"t"`
}

// ChainEntry - one assembled chain with inventory state
type ChainEntry struct {
	Letters   string         `msgpack:"w"`
	Segments  []string       `msgpack:"segs"`
	Score     float64        `msgpack:"s"`
	Usable    bool           `msgpack:"u"`
	Remaining map[string]int `msgpack:"rem"`
}

// ChainResponse - chains response
type ChainResponse struct {
	ID        string       `msgpack:"id"`
	Chains    []ChainEntry `msgpack:"c"`
	Count     int          `msgpack:"n"`
	TimeTaken int64        `msgpack:"t"`
}

// CommitResponse - chain commit response
type CommitResponse struct {
	ID        string         `msgpack:"id"`
	Status    string         `msgpack:"status"`
	Rows      []string       `msgpack:"rows"`
	Remaining map[string]int `msgpack:"rem"`
}

// ValidateResponse - board validation and scoring response
type ValidateResponse struct {
	ID          string   `msgpack:"id"`
	OK          bool     `msgpack:"ok"`
	Issues      []string `msgpack:"issues,omitempty"`
	Density     float64  `msgpack:"density"`
	FilledCells int      `msgpack:"filled"`
	WordCount   int      `msgpack:"words"`
	Score       int      `msgpack:"score"`
	TimeTaken   int64    `msgpack:"t"`
}

// ConfigResponse - config operation response
type ConfigResponse struct {
	ID            string `msgpack:"id"`
	Status        string `msgpack:"status"`
	Error         string `msgpack:"error,omitempty"`
	BeamWidth     int    `msgpack:"beam_width,omitempty"`
	TopChains     int    `msgpack:"top_chains,omitempty"`
	MaxCandidates int    `msgpack:"max_candidates,omitempty"`
}

// StatsResponse - engine counters
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// RequestError holds basic error information for failed requests
type RequestError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
