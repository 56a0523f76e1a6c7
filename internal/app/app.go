// Package app wires the console together and manages the session
// lifecycle: one goroutine reads the transport into the scrollback,
// the main goroutine runs the line editor, and the ui surface
// serializes their access to the terminal.
package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"

	"github.com/dshills/splitterm/internal/classify"
	"github.com/dshills/splitterm/internal/config"
	"github.com/dshills/splitterm/internal/editor"
	"github.com/dshills/splitterm/internal/history"
	"github.com/dshills/splitterm/internal/input/key"
	"github.com/dshills/splitterm/internal/logfile"
	"github.com/dshills/splitterm/internal/scrollback"
	"github.com/dshills/splitterm/internal/transport"
	"github.com/dshills/splitterm/internal/ui"
)

// State is the session lifecycle phase.
type State int32

const (
	// StateInitializing is the phase before Run has brought up the
	// transport and terminal.
	StateInitializing State = iota
	// StateRunning is the live session.
	StateRunning
	// StateShuttingDown is the teardown phase.
	StateShuttingDown
	// StateTerminated is the final phase; the terminal is restored.
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting down"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures the application.
type Options struct {
	// ConfigPath is the config file location; empty disables file
	// loading and live reload.
	ConfigPath string

	// Base is the configuration resolved from the command line.
	// File values are applied on top of it.
	Base config.Config
}

// Application is the console orchestrator. It owns both execution
// contexts and is the only component that flips the running flag from
// true to false.
type Application struct {
	opts Options
	cfg  config.Config

	logger *Logger

	conn    transport.Transport
	sink    *logfile.Writer
	surface *ui.Surface
	scroll  *scrollback.Buffer
	hist    *history.History
	edit    *editor.Editor
	watcher *config.Watcher

	classifier atomic.Pointer[classify.Classifier]

	running  atomic.Bool
	state    atomic.Int32
	shutdown sync.Once
	readerWG sync.WaitGroup
}

// New resolves the configuration and prepares the application. No I/O
// toward the device or terminal happens here.
func New(opts Options) (*Application, error) {
	cfg, err := config.Resolve(opts.Base, opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logger, err := NewLogger(cfg.DebugLog)
	if err != nil {
		return nil, &InitError{Component: "debug log", Err: err}
	}

	cl, err := classifierFrom(cfg.ColorPatterns)
	if err != nil {
		logger.Close()
		return nil, &InitError{Component: "color patterns", Err: err}
	}

	app := &Application{opts: opts, cfg: cfg, logger: logger}
	app.classifier.Store(cl)
	return app, nil
}

// State returns the current lifecycle phase.
func (app *Application) State() State {
	return State(app.state.Load())
}

// Config returns the resolved configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Run executes the session and blocks until it ends. It returns
// ErrQuit on a normal Escape-triggered exit. Startup failures happen
// strictly before the terminal leaves its original mode.
func (app *Application) Run() error {
	defer app.logger.Close()

	conn, err := transport.Open(app.transportConfig())
	if err != nil {
		app.logger.Errorf("could not open connection: %v", err)
		return &InitError{Component: "transport", Err: err}
	}
	app.conn = conn

	if app.cfg.Logfile != "" {
		hdr := logfile.NewHeader(app.opts.Base, app.cfg)
		sink, err := logfile.Open(app.cfg.Logfile, hdr)
		if err != nil {
			// The session is still useful without its log.
			app.logger.Errorf("could not open log file %q: %v", app.cfg.Logfile, err)
		} else {
			app.sink = sink
		}
	}

	styles, err := ui.StylesFromPatterns(app.cfg.ColorPatterns)
	if err != nil {
		app.conn.Close()
		return &InitError{Component: "color patterns", Err: err}
	}

	// Fail on a short terminal before tcell switches modes.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		if h < ui.MinHeight(app.cfg.InputWindowHeight) {
			app.conn.Close()
			return &InitError{
				Component: "terminal",
				Err:       fmt.Errorf("height %d too small, need %d", h, ui.MinHeight(app.cfg.InputWindowHeight)),
			}
		}
	}

	surface, err := ui.New()
	if err != nil {
		app.conn.Close()
		return &InitError{Component: "terminal", Err: err}
	}
	app.surface = surface
	if err := surface.Init(conn.String(), app.cfg.InputWindowHeight); err != nil {
		app.conn.Close()
		return &InitError{Component: "terminal", Err: err}
	}
	surface.SetStyles(styles)

	app.scroll = scrollback.New(app.cfg.HistoryLength, surface.OutputHeight())
	for _, l := range helpText() {
		app.scroll.Append(l, scrollback.NoStyle)
	}
	app.render()

	app.hist = history.New(app.cfg.CommonCommands)
	app.edit = editor.New(surface, surface, app.hist)

	if app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, app.reloadConfig)
		if err != nil {
			app.logger.Warnf("config watch disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	app.running.Store(true)
	app.state.Store(int32(StateRunning))
	app.logger.Infof("session started: %s", conn.String())

	app.readerWG.Add(1)
	go app.readerLoop()

	app.editorLoop()

	app.Shutdown()
	app.readerWG.Wait()
	app.logger.Infof("session ended")
	return ErrQuit
}

// Shutdown tears the session down: it stops both loops, restores the
// terminal, and closes every resource. Safe to call from any goroutine
// and more than once.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		app.state.Store(int32(StateShuttingDown))
		app.running.Store(false)

		if app.watcher != nil {
			app.watcher.Close()
		}
		if app.conn != nil {
			// Unblocks the reader's pending ReadLine.
			app.conn.Close()
		}
		if app.surface != nil {
			// Restores the terminal and unblocks the editor.
			app.surface.Fini()
		}
		if app.sink != nil {
			app.sink.Close()
		}

		app.state.Store(int32(StateTerminated))
	})
}

// transportConfig selects the medium: a configured remote host wins
// over the serial device.
func (app *Application) transportConfig() transport.Config {
	if app.cfg.Remote.Host != "" {
		return transport.Config{Host: app.cfg.Remote.Host, Port: app.cfg.Remote.Port}
	}
	return transport.Config{Device: app.cfg.Device, Baud: app.cfg.Baud}
}

// editorLoop runs edit sessions until the user cancels or the surface
// closes. It is the editor execution context.
func (app *Application) editorLoop() {
	for app.running.Load() {
		text, res := app.edit.Edit(app.onKey)
		if res == editor.ResultCancelled {
			return
		}
		app.issueCommand(text)
	}
}

// onKey routes navigation keys from the editor callback into the
// scrollback. It runs on the editor context; the surface serializes
// the render against the reader.
func (app *Application) onKey(ev key.Event) {
	switch ev.Key {
	case key.KeyPageUp:
		app.scroll.ScrollPageUp()
	case key.KeyPageDown:
		app.scroll.ScrollPageDown()
	case key.KeyAltArrowUp:
		app.scroll.ScrollLineUp()
	case key.KeyAltArrowDown:
		app.scroll.ScrollLineDown()
	case key.KeyHome:
		app.scroll.ScrollTop()
	case key.KeyEnd:
		app.scroll.ScrollToTail()
	default:
		return
	}
	app.render()
}

// issueCommand writes a submitted command to the device. The editor
// has already recorded it in history and cleared the input line.
func (app *Application) issueCommand(text string) {
	if _, err := app.conn.Write([]byte(text + "\n")); err != nil {
		app.logger.Errorf("write %q: %v", text, err)
	}
}

// readerLoop is the reader execution context: it pulls lines off the
// transport until the session ends or the connection is lost. Errors
// inside an iteration are logged and the loop continues.
func (app *Application) readerLoop() {
	defer app.readerWG.Done()

	lastTS := time.Now()
	for app.running.Load() {
		raw, err := app.conn.ReadLine()
		if err != nil {
			if errors.Is(err, transport.ErrClosed) {
				if app.running.Load() {
					app.logger.Errorf("connection closed")
					app.scroll.Append("*** connection closed ***", scrollback.NoStyle)
					app.render()
				}
				return
			}
			app.logger.Errorf("read: %v", err)
			continue
		}
		app.deliver(raw, &lastTS)
	}
}

// deliver processes one received line: log it, classify it, append it
// to the scrollback, and re-render. A panic in here (a pathological
// pattern, a render bug) is recovered and logged so the reader keeps
// going.
func (app *Application) deliver(raw []byte, lastTS *time.Time) {
	defer func() {
		if r := recover(); r != nil {
			app.logger.Errorf("reader: recovered: %v", r)
		}
	}()

	line := transport.DecodeLine(raw)
	if line == "" {
		return
	}

	if app.sink != nil {
		if err := app.sink.WriteLine(line); err != nil {
			app.logger.Errorf("log write: %v", err)
		}
	}

	display := strings.TrimRight(line, "\r\n")
	style := app.classifier.Load().Classify(display)

	if app.cfg.ShowTimestamp {
		now := time.Now()
		delta := now.Sub(*lastTS).Seconds() + 0.05
		display = fmt.Sprintf("%s, %3.1f | %s", now.Format("2006-01-02T15:04:05"), delta, display)
		*lastTS = now
	}

	app.scroll.Append(display, int(style))
	app.render()
}

func (app *Application) render() {
	app.surface.RenderOutput(app.scroll.Visible())
}

// reloadConfig re-reads the config file and swaps in the reloadable
// subset: classifier rules, styles, and seeded commands. Endpoint and
// geometry changes need a restart and are ignored.
func (app *Application) reloadConfig() {
	cfg, err := config.Resolve(app.opts.Base, app.opts.ConfigPath)
	if err != nil {
		app.logger.Warnf("config reload failed: %v", err)
		return
	}

	cl, err := classifierFrom(cfg.ColorPatterns)
	if err != nil {
		app.logger.Warnf("config reload: %v", err)
		return
	}
	styles, err := ui.StylesFromPatterns(cfg.ColorPatterns)
	if err != nil {
		app.logger.Warnf("config reload: %v", err)
		return
	}

	app.classifier.Store(cl)
	app.surface.SetStyles(styles)
	for _, cmd := range cfg.CommonCommands {
		app.hist.Add(cmd)
	}
	app.logger.Infof("config reloaded: %d color patterns", len(cfg.ColorPatterns))
}

// classifierFrom compiles the configured color patterns.
func classifierFrom(patterns config.ColorPatterns) (*classify.Classifier, error) {
	specs := make([]classify.Spec, 0, len(patterns))
	for _, p := range patterns {
		specs = append(specs, classify.Spec{Name: p.Name, Pattern: p.Pattern})
	}
	return classify.New(specs)
}

// helpText is shown in the output window at session start.
func helpText() []string {
	return []string{
		"",
		"Commands:",
		"",
		"    __ Log Manipulations __",
		"",
		"    [ESC]             : Exit",
		"    [PageUp]          : Scroll back one screen",
		"    [PageDown]        : Scroll forward one screen",
		"    [Alt-Arrow-Up]    : Scroll back one line",
		"    [Alt-Arrow-Down]  : Scroll forward one line",
		"    [Home]            : Scroll to oldest line",
		"    [End]             : Scroll to live view",
		"",
		"    __ Command Manipulations __",
		"",
		"    [Arrow-Up]        : Scroll back command history",
		"    [Arrow-Down]      : Scroll forward command history",
		"    [Enter]           : Issue command",
		"    [Ctrl-A]          : cursor to beginning of line",
		"    [Ctrl-B]          : cursor left",
		"    [Ctrl-D]          : delete character under cursor",
		"    [Ctrl-E]          : cursor to end of line",
		"    [Ctrl-H]          : delete character backward",
		"    [Ctrl-K]          : clear to end of line",
		"    [Ctrl-L]          : refresh edit window",
		"",
	}
}
