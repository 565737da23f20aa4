package internal

import (
	"errors"
	"testing"
)

func TestSetVerbose(t *testing.T) {
	defer SetLogLevel(LogLevelInfo)

	SetVerbose(true)
	if logLevel != LogLevelDebug {
		t.Errorf("logLevel = %v, want LogLevelDebug", logLevel)
	}

	SetVerbose(false)
	if logLevel != LogLevelInfo {
		t.Errorf("logLevel = %v, want LogLevelInfo", logLevel)
	}
}

func TestBestEffort_SwallowsError(t *testing.T) {
	called := false
	bestEffort("test op", func() error {
		called = true
		return errors.New("boom")
	})
	if !called {
		t.Error("bestEffort did not run the function")
	}

	// A nil error is equally fine.
	bestEffort("test op", func() error { return nil })
}
