package logger

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewInheritsGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	log.SetLevel(log.DebugLevel)
	l := New("ipc")
	if l.GetPrefix() != "ipc" {
		t.Errorf("expected prefix 'ipc', got %q", l.GetPrefix())
	}
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", l.GetLevel())
	}
}

func TestNewWithConfig(t *testing.T) {
	l := NewWithConfig("cli", log.WarnLevel, false, false, log.TextFormatter)
	if l.GetPrefix() != "cli" {
		t.Errorf("expected prefix 'cli', got %q", l.GetPrefix())
	}
	if l.GetLevel() != log.WarnLevel {
		t.Errorf("expected warn level, got %v", l.GetLevel())
	}
}
