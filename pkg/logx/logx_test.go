package logx

import (
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test")
	if logger == nil {
		t.Fatal("Expected non-nil logger")
	}
	if logger.component != "test" {
		t.Errorf("Expected component 'test', got %q", logger.component)
	}
}

func TestSetDebug(t *testing.T) {
	orig := IsDebugEnabled()
	defer SetDebug(orig)

	SetDebug(true)
	if !IsDebugEnabled() {
		t.Error("Expected debug to be enabled")
	}

	SetDebug(false)
	if IsDebugEnabled() {
		t.Error("Expected debug to be disabled")
	}
}

func TestLogLevelsDoNotPanic(t *testing.T) {
	logger := NewLogger("test")
	logger.Info("info %s", "message")
	logger.Warn("warn %d", 1)
	logger.Error("error %v", nil)
	logger.Debug("debug message")
}
