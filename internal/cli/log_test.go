package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("saved") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("commit") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("commit") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("unreadable board") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Exported 2 files")

	out := buf.String()
	if !strings.Contains(out, "Exported 2 files (") || !strings.Contains(out, "ms)") {
		t.Errorf("progress output = %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnCommit(3, 4)
	h.OnUndo(2)
	h.OnRedo(3)
	h.OnLoad(ctx, "board:whiteboard-data", true)
	h.OnSave(ctx, "board:whiteboard-data", 512, nil)
	h.OnSave(ctx, "board:whiteboard-data", 0, errors.New("disk full"))
	h.OnExport(ctx, "png", 800, 600, 12*time.Millisecond, nil)

	out := buf.String()
	for _, want := range []string{
		"history commit", "undo", "redo", "store load", "store save",
		"store save failed", "disk full", "export", "png",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnCommit(1, 1)
	h.OnSave(context.Background(), "k", 1, nil)
	if buf.Len() != 0 {
		t.Errorf("hooks logged at info level: %q", buf.String())
	}
}
