package logging

import (
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"
)

// captureLog redirects the standard logger for the duration of a test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

// withLevel sets the package level and restores it afterwards.
func withLevel(t *testing.T, l LogLevel) {
	t.Helper()
	prev := GetLevel()
	SetLevel(l)
	t.Cleanup(func() { SetLevel(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"  error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		debug    string
		logLevel string
		want     LogLevel
	}{
		{name: "DEBUG=true wins", debug: "true", logLevel: "error", want: LevelDebug},
		{name: "DEBUG=1", debug: "1", want: LevelDebug},
		{name: "DEBUG=false falls through", debug: "false", logLevel: "warn", want: LevelWarn},
		{name: "LOG_LEVEL only", logLevel: "error", want: LevelError},
		{name: "nothing set", want: LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEBUG", tt.debug)
			t.Setenv("LOG_LEVEL", tt.logLevel)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogLevelConstants(t *testing.T) {
	levels := []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}
	for i := 0; i < len(levels)-1; i++ {
		if levels[i] >= levels[i+1] {
			t.Errorf("Log levels should be in ascending order: %v >= %v", levels[i], levels[i+1])
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLog(t)
	withLevel(t, LevelWarn)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "[WARN] warn message") {
		t.Errorf("missing warn message in output: %q", out)
	}
	if !strings.Contains(out, "[ERROR] error message") {
		t.Errorf("missing error message in output: %q", out)
	}
}

func TestIsDebugEnabled(t *testing.T) {
	withLevel(t, LevelDebug)
	if !IsDebugEnabled() {
		t.Error("IsDebugEnabled() = false at debug level")
	}

	SetLevel(LevelInfo)
	if IsDebugEnabled() {
		t.Error("IsDebugEnabled() = true at info level")
	}
}

func TestSetLevelWhileLogging(t *testing.T) {
	captureLog(t)
	withLevel(t, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Debug("tick %d", j)
				Info("tick %d", j)
			}
		}()
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetLevel(LogLevel((i + j) % 4))
			}
		}(i)
	}
	wg.Wait()

	SetLevel(LevelWarn)
	if got := GetLevel(); got != LevelWarn {
		t.Errorf("GetLevel() = %v, want %v", got, LevelWarn)
	}
}

func TestComponentPrefix(t *testing.T) {
	buf := captureLog(t)
	withLevel(t, LevelDebug)

	sink := For("tracker")
	sink.Debug("started %s", "R1")
	sink.Info("count=%d", 2)
	sink.Warn("slow")
	sink.Error("boom: %v", "disk")

	out := buf.String()
	for _, want := range []string{
		"[DEBUG] tracker: started R1",
		"[INFO] tracker: count=2",
		"[WARN] tracker: slow",
		"[ERROR] tracker: boom: disk",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got %q", want, out)
		}
	}
}

func TestComponentEmptyName(t *testing.T) {
	buf := captureLog(t)
	withLevel(t, LevelInfo)

	Component("").Info("plain")
	if got := strings.TrimSpace(buf.String()); got != "[INFO] plain" {
		t.Errorf("empty component output = %q, want %q", got, "[INFO] plain")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
