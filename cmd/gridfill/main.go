// Copyright 2025 The GridFill Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the grid fill server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

GridFill ranks dictionary words and letter-segment chains for crossword-style
slot patterns. It can operate as a MessagePack IPC server for integration
with puzzle editors, or as a CLI application for testing and debugging.

The engine narrows candidates through a per-length position index, verifies
that each word tiles into catalog segments, and ranks results by segmentation
quality, frequency and crossing support. A separate chain search assembles
letter sequences straight from the segment catalog when no dictionary word
fits.

# Usage

Start the server with default settings:

	gridfill

Use custom data directory and enable debug mode:

	gridfill -data /path/to/data -d

Run in CLI mode for interactive testing:

	gridfill -c -limit 10

The data directory should contain words.txt (one word per line), attrs.csv
(per-word frequency and flags) and segments.csv (the segment catalog with
productivity counters and weights).

# Configuration

Runtime configuration is managed through a TOML file covering search,
scoring, board validation and data file parameters:

	[search]
	beam_width = 100
	top_chains = 50
	max_candidates = 50
	cache_size = 4096

	[board]
	min_word_len = 3
	max_intersections_per_pair = 1

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing information included in
responses.

Send a candidate request for a slot:

	{"id": "req1", "cmd": "candidates", "slot": {"id": "a1", "dir": "across", "row": 0, "col": 0, "p": "c??e"}}

Or search segment chains for a raw pattern:

	{"id": "req2", "cmd": "chains", "p": "ab???", "l": 10}

Board state is installed once and then mutated through commits:

	{"id": "b1", "cmd": "board", "rows": ["....", "...."]}
	{"id": "c1", "cmd": "commit", "slot": {...}, "chain": {...}}
	{"id": "v1", "cmd": "validate"}

# Server Mode

The default mode starts a MessagePack IPC server that processes requests
from stdin and writes responses to stdout. This design enables integration
with editors and other applications through process communication.

	srv := server.NewServer(suggester, finder, lex, config, configPath)
	err := srv.Start()

# CLI Mode

CLI mode provides an interactive interface for testing and debugging. It
reads slot patterns from stdin and displays ranked candidates and chains
with scores and segmentations.

	inputHandler := cli.NewInputHandler(suggester, finder, minLen, maxLen, limit)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode.

# Command Line Flags

The following flags control application behavior:

	-data string
	    Directory containing the word list and segment catalog (default "data/")
	-config string
	    Custom config file path (default: platform config dir)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of results to show per query in CLI mode
	-beam int
	    Beam width for the chain search
	-chains int
	    Number of chains to return per query

The application automatically resolves data and config paths relative to the
executable location, supporting both development and production deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/gridfill/internal/cli"
	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/bastiangx/gridfill/pkg/chain"
	"github.com/bastiangx/gridfill/pkg/config"
	"github.com/bastiangx/gridfill/pkg/index"
	"github.com/bastiangx/gridfill/pkg/lexicon"
	"github.com/bastiangx/gridfill/pkg/segment"
	"github.com/bastiangx/gridfill/pkg/server"
	"github.com/bastiangx/gridfill/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "gridfill"
	gh      = "https://github.com/bastiangx/gridfill"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory containing the word list and segment catalog")
	configFlag := flag.String("config", "", "Custom config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 20, "Number of results to show per query in CLI mode")
	minPattern := flag.Int("pmin", 2, "Minimum pattern length (1 < n <= pmax)")
	maxPattern := flag.Int("pmax", 60, "Maximum pattern length")
	beamWidth := flag.Int("beam", defaultConfig.Search.BeamWidth, "Beam width for the chain search")
	topChains := flag.Int("chains", defaultConfig.Search.TopChains, "Number of chains to return per query")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ GridFill ] Fills crossword grids really Fast!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
		os.Exit(1)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// Pathfinder for data dir
	resolvedDataDir, err := pathResolver.GetDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
		os.Exit(1)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	defaultConfigPath, err := pathResolver.GetConfigPath("gridfill.toml")
	if err != nil {
		log.Warnf("Failed to determine config path: (%v)", err)
		if execDir, dirErr := utils.GetExecutableDir(); dirErr == nil {
			defaultConfigPath = filepath.Join(execDir, "gridfill.toml")
		}
	}
	appConfig, configPath, err := config.LoadConfigWithPriority(*configFlag, defaultConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(configPath))

	// flag overrides
	if *beamWidth > 0 {
		appConfig.Search.BeamWidth = *beamWidth
	}
	if *topChains > 0 {
		appConfig.Search.TopChains = *topChains
	}

	lex := lexicon.NewLexicon()
	wordsPath := filepath.Join(resolvedDataDir, appConfig.Data.WordsFile)
	count, err := lexicon.LoadWordList(wordsPath, lex)
	if err != nil {
		log.Fatalf("Failed to load word list from %s: %v", wordsPath, err)
		os.Exit(1)
	}
	log.Debugf("Loaded %d words", count)

	attrsPath := filepath.Join(resolvedDataDir, appConfig.Data.AttrsFile)
	if utils.FileExists(attrsPath) {
		count, err = lexicon.LoadWordAttrs(attrsPath, lex)
		if err != nil {
			log.Warnf("Failed to load word attributes from %s: %v", attrsPath, err)
		} else {
			log.Debugf("Loaded attributes for %d words", count)
		}
	} else {
		log.Warn("No word attributes file found, ranking on segmentation only...")
	}

	catalog := lexicon.NewCatalog()
	segmentsPath := filepath.Join(resolvedDataDir, appConfig.Data.SegmentsFile)
	count, err = lexicon.LoadSegments(segmentsPath, catalog)
	if err != nil {
		log.Fatalf("Failed to load segment catalog from %s: %v", segmentsPath, err)
		os.Exit(1)
	}
	log.Debugf("Loaded %d segments", count)

	idx := index.New(lex)
	segmenter := segment.NewSegmenter(catalog, appConfig.Search.CacheSize)

	suggester := suggest.NewSuggester(lex, idx, segmenter)
	suggester.MaxCandidates = appConfig.Search.MaxCandidates
	suggester.ZipfWeight = appConfig.Score.ZipfWeight
	suggester.CrossingWeight = appConfig.Score.CrossingWeight
	suggester.ZipfNorm = appConfig.Score.ZipfDefaultNorm
	suggester.ZipfFloor = appConfig.Score.ZipfFloor
	suggester.ZipfCeiling = appConfig.Score.ZipfCeiling

	finder := chain.NewFinder(catalog)
	finder.BeamWidth = appConfig.Search.BeamWidth
	finder.TopK = appConfig.Search.TopChains

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPattern", *minPattern,
			"maxPattern", *maxPattern,
			"limit", *limit)

		inputHandler := cli.NewInputHandler(suggester, finder, *minPattern, *maxPattern, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(suggester, finder, lex, appConfig, configPath)

	showStartupInfo(resolvedDataDir)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" GridFill ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
