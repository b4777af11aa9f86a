/*
Package config manages TOML config for GridFill services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/gridfill/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Score  ScoreConfig  `toml:"score"`
	Board  BoardConfig  `toml:"board"`
	Data   DataConfig   `toml:"data"`
}

// SearchConfig has chain/candidate search related options.
type SearchConfig struct {
	BeamWidth     int `toml:"beam_width"`
	TopChains     int `toml:"top_chains"`
	MaxCandidates int `toml:"max_candidates"`
	CacheSize     int `toml:"cache_size"`
}

// ScoreConfig holds candidate scoring options.
type ScoreConfig struct {
	ZipfFloor       float64 `toml:"zipf_floor"`
	ZipfCeiling     float64 `toml:"zipf_ceiling"`
	ZipfDefaultNorm float64 `toml:"zipf_default_norm"`
	ZipfWeight      float64 `toml:"zipf_weight"`
	CrossingWeight  float64 `toml:"crossing_weight"`
}

// BoardConfig holds board validation options.
type BoardConfig struct {
	MinWordLen           int  `toml:"min_word_len"`
	MaxIntersections     int  `toml:"max_intersections_per_pair"`
	RequireSingleCluster bool `toml:"require_single_cluster"`
}

// DataConfig names the source files inside the data directory.
type DataConfig struct {
	WordsFile    string `toml:"words_file"`
	AttrsFile    string `toml:"attrs_file"`
	SegmentsFile string `toml:"segments_file"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			BeamWidth:     100,
			TopChains:     50,
			MaxCandidates: 50,
			CacheSize:     4096,
		},
		Score: ScoreConfig{
			ZipfFloor:       2.6,
			ZipfCeiling:     6.7,
			ZipfDefaultNorm: 0.2,
			ZipfWeight:      0.10,
			CrossingWeight:  0.10,
		},
		Board: BoardConfig{
			MinWordLen:           3,
			MaxIntersections:     1,
			RequireSingleCluster: true,
		},
		Data: DataConfig{
			WordsFile:    "words.txt",
			AttrsFile:    "attrs.csv",
			SegmentsFile: "segments.csv",
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/gridfill/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath, defaultPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file section by section,
// keeping defaults for everything it cannot read.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if searchSection, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(searchSection, &config.Search)
	}
	if scoreSection, ok := utils.ExtractSection(tempConfig, "score"); ok {
		extractScoreConfig(scoreSection, &config.Score)
	}
	if boardSection, ok := utils.ExtractSection(tempConfig, "board"); ok {
		extractBoardConfig(boardSection, &config.Board)
	}
	if dataSection, ok := utils.ExtractSection(tempConfig, "data"); ok {
		extractDataConfig(dataSection, &config.Data)
	}
	return config, nil
}

// extractSearchConfig extracts search configuration from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "beam_width"); ok {
		search.BeamWidth = val
	}
	if val, ok := utils.ExtractInt64(data, "top_chains"); ok {
		search.TopChains = val
	}
	if val, ok := utils.ExtractInt64(data, "max_candidates"); ok {
		search.MaxCandidates = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		search.CacheSize = val
	}
}

// extractScoreConfig extracts scoring configuration from a map
func extractScoreConfig(data map[string]any, score *ScoreConfig) {
	if val, ok := utils.ExtractFloat64(data, "zipf_floor"); ok {
		score.ZipfFloor = val
	}
	if val, ok := utils.ExtractFloat64(data, "zipf_ceiling"); ok {
		score.ZipfCeiling = val
	}
	if val, ok := utils.ExtractFloat64(data, "zipf_default_norm"); ok {
		score.ZipfDefaultNorm = val
	}
	if val, ok := utils.ExtractFloat64(data, "zipf_weight"); ok {
		score.ZipfWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "crossing_weight"); ok {
		score.CrossingWeight = val
	}
}

// extractBoardConfig extracts board validation config from a map
func extractBoardConfig(data map[string]any, board *BoardConfig) {
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		board.MinWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_intersections_per_pair"); ok {
		board.MaxIntersections = val
	}
	if val, ok := utils.ExtractBool(data, "require_single_cluster"); ok {
		board.RequireSingleCluster = val
	}
}

// extractDataConfig extracts data file names from a map
func extractDataConfig(data map[string]any, dataCfg *DataConfig) {
	if val, ok := utils.ExtractString(data, "words_file"); ok {
		dataCfg.WordsFile = val
	}
	if val, ok := utils.ExtractString(data, "attrs_file"); ok {
		dataCfg.AttrsFile = val
	}
	if val, ok := utils.ExtractString(data, "segments_file"); ok {
		dataCfg.SegmentsFile = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the search config values and saves to file
func (c *Config) Update(configPath string, beamWidth, topChains, maxCandidates *int) error {
	search := &c.Search
	if beamWidth != nil {
		search.BeamWidth = *beamWidth
	}
	if topChains != nil {
		search.TopChains = *topChains
	}
	if maxCandidates != nil {
		search.MaxCandidates = *maxCandidates
	}
	return SaveConfig(c, configPath)
}
