package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirCheckResult reports whether a directory exists and accepts writes.
// Error is set only when the directory had to be created and could not be.
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists reports whether path names an existing file or directory.
// Used to decide between loading attrs.csv and falling back to
// segmentation-only ranking.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// SaveTOMLFile encodes data as TOML at filePath, replacing any existing
// file. The config package uses it both for seeding gridfill.toml with
// defaults and for persisting "config set" updates from the IPC side.
func SaveTOMLFile(data interface{}, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", filePath, err)
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(data)
}

// GetAbsolutePath resolves path for log output. Resolution failures fall
// back to the input unchanged since this only feeds debug messages.
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if filepath.IsAbs(path) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// testWriteAccess creates and removes a throwaway file to verify the
// directory accepts writes. Stat permissions alone lie on some mounts.
func testWriteAccess(dirPath string) bool {
	marker := filepath.Join(dirPath, ".write_test")
	f, err := os.Create(marker)
	if err != nil {
		log.Warnf("Directory %s is not writable: %v", dirPath, err)
		return false
	}
	f.Close()
	os.Remove(marker)
	return true
}

// GetExecutableDir returns the directory holding the running binary. It
// backs the config-path fallback in main when the platform config dir
// cannot be determined.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus makes sure the directory exists, creating it when
// missing, and verifies it is writable. PathResolver uses it to pick
// where gridfill.toml lives.
func CheckDirStatus(dirPath string) DirCheckResult {
	if _, err := os.Stat(dirPath); err != nil {
		if mkErr := os.MkdirAll(dirPath, 0755); mkErr != nil {
			log.Warnf("Cannot create directory %s: %v", dirPath, mkErr)
			return DirCheckResult{Error: mkErr}
		}
	}
	return DirCheckResult{
		Exists:   true,
		Writable: testWriteAccess(dirPath),
	}
}
