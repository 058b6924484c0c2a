package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		json  bool
		debug bool
	}{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	}

	for _, tt := range tests {
		log, err := New(tt.json, tt.debug)
		if err != nil {
			t.Fatalf("New(%v, %v): %v", tt.json, tt.debug, err)
		}
		if log == nil {
			t.Fatalf("New(%v, %v) returned nil logger", tt.json, tt.debug)
		}

		if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Errorf("New(%v, %v): debug enabled = %v, want %v", tt.json, tt.debug, got, tt.debug)
		}

		// Flushing is the caller's job and must be safe to call any time.
		_ = log.Sync()
	}
}
