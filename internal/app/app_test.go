package app

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/dshills/splitterm/internal/classify"
	"github.com/dshills/splitterm/internal/config"
)

func TestInitErrorUnwrap(t *testing.T) {
	cause := errors.New("no such device")
	err := &InitError{Component: "transport", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "transport") {
		t.Errorf("expected component in message, got %q", err.Error())
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWriter(&buf)
	l.Infof("opened %s", "/dev/ttyUSB1")

	line := buf.String()
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\S*: \[INFO\] opened /dev/ttyUSB1\n$`)
	if !re.MatchString(line) {
		t.Errorf("unexpected log line %q", line)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Debugf("no crash")
	l.Errorf("no crash")
	if err := l.Close(); err != nil {
		t.Errorf("nil logger Close: %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateInitializing, "initializing"},
		{StateRunning, "running"},
		{StateShuttingDown, "shutting down"},
		{StateTerminated, "terminated"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestTransportConfigPrefersRemote(t *testing.T) {
	app := &Application{cfg: config.Config{
		Device: "/dev/ttyUSB1",
		Baud:   115200,
		Remote: config.Remote{Host: "bridge.local", Port: 5001},
	}}

	tc := app.transportConfig()
	if tc.Host != "bridge.local" || tc.Port != 5001 {
		t.Errorf("expected remote endpoint, got %+v", tc)
	}
	if tc.Device != "" {
		t.Errorf("expected device cleared when remote set, got %q", tc.Device)
	}
}

func TestTransportConfigSerialFallback(t *testing.T) {
	app := &Application{cfg: config.Config{Device: "/dev/ttyACM0", Baud: 115200}}

	tc := app.transportConfig()
	if tc.Device != "/dev/ttyACM0" || tc.Baud != 115200 {
		t.Errorf("expected serial endpoint, got %+v", tc)
	}
}

func TestClassifierFromPatterns(t *testing.T) {
	cl, err := classifierFrom(config.ColorPatterns{
		{Name: "error", ColorPattern: config.ColorPattern{Pattern: "error"}},
		{Name: "warning", ColorPattern: config.ColorPattern{Pattern: "warning"}},
	})
	if err != nil {
		t.Fatalf("classifierFrom: %v", err)
	}
	if got := cl.Classify("a WARNING here"); got != classify.StyleID(1) {
		t.Errorf("expected rule 1, got %d", got)
	}
}

func TestClassifierFromBadPattern(t *testing.T) {
	_, err := classifierFrom(config.ColorPatterns{
		{Name: "bad", ColorPattern: config.ColorPattern{Pattern: "("}},
	})
	if err == nil {
		t.Error("expected error for unparsable pattern")
	}
}

func TestHelpTextMentionsBindings(t *testing.T) {
	joined := strings.Join(helpText(), "\n")
	for _, want := range []string{"[ESC]", "[PageUp]", "[Enter]", "[Ctrl-K]"} {
		if !strings.Contains(joined, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}
