// Package logfile appends every delivered line to a session log,
// preceded by a commented header describing the invocation.
package logfile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Header describes the session for the log file preamble. Args and
// Config are serialized as indented JSON, one commented line each.
type Header struct {
	Invocation []string
	SessionID  string
	Args       any
	Config     any
}

// NewHeader builds a header for the current process with a fresh
// session identifier.
func NewHeader(args, config any) Header {
	return Header{
		Invocation: os.Args,
		SessionID:  uuid.NewString(),
		Args:       args,
		Config:     config,
	}
}

// Writer is the append-only session log sink. It is written only by the
// reader path; the mutex guards against a Close racing a final write.
// After a write failure the sink disables itself so one bad disk does
// not spam the debug log per line.
type Writer struct {
	mu       sync.Mutex
	f        *os.File
	disabled bool
}

// Open appends to (or creates) the log at path and writes the header
// block.
func Open(path string, hdr Header) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	w := &Writer{f: f}
	if err := w.writeHeader(hdr); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader(hdr Header) error {
	var b strings.Builder
	prog := "splitterm"
	if len(hdr.Invocation) > 0 {
		prog = hdr.Invocation[0]
	}

	comment := func(lines ...string) {
		for _, l := range lines {
			b.WriteString("# ")
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}

	b.WriteString("#\n")
	comment(
		fmt.Sprintf("%s log file", prog),
		fmt.Sprintf("Session %s", hdr.SessionID),
		fmt.Sprintf("Opened at %s", time.Now().Format(time.RFC3339Nano)),
		"Args:",
	)
	comment(jsonLines(hdr.Args)...)
	b.WriteString("#\n")
	comment("Configdata:")
	comment(jsonLines(hdr.Config)...)
	b.WriteString("#\n#\n")

	_, err := w.f.WriteString(b.String())
	return err
}

// jsonLines serializes v as indented JSON split into lines.
func jsonLines(v any) []string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return []string{fmt.Sprintf("(unserializable: %v)", err)}
	}
	return strings.Split(string(data), "\n")
}

// WriteLine appends one delivered line, trimmed, with a timestamp.
func (w *Writer) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disabled || w.f == nil {
		return nil
	}
	_, err := fmt.Fprintf(w.f, "%s: %s\n",
		time.Now().Format(time.RFC3339Nano), strings.TrimSpace(line))
	if err != nil {
		w.disabled = true
	}
	return err
}

// Close flushes and closes the sink.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
