// Package transport provides line-oriented I/O over the console's two
// media: a local serial device or a TCP-exposed serial bridge. Exactly
// one medium is active per Transport.
package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrClosed is returned by ReadLine once the underlying medium has
// closed, including when Close is called to unblock a pending read.
var ErrClosed = errors.New("transport closed")

// Config selects and parameterizes the medium. Exactly one of
// {Device+Baud, Host+Port} must be set.
type Config struct {
	Device string
	Baud   int
	Host   string
	Port   int
}

// Validate checks that exactly one medium is configured.
func (c Config) Validate() error {
	serial := c.Device != ""
	socket := c.Host != ""
	switch {
	case serial && socket:
		return errors.New("transport: device and host are mutually exclusive")
	case !serial && !socket:
		return errors.New("transport: must provide device/baud or host/port")
	case serial && c.Baud <= 0:
		return fmt.Errorf("transport: invalid baud rate %d", c.Baud)
	case socket && (c.Port <= 0 || c.Port > 65535):
		return fmt.Errorf("transport: invalid port %d", c.Port)
	}
	return nil
}

// Transport is a connected byte-stream medium with line-oriented reads.
// ReadLine blocks until a newline-terminated line arrives or the medium
// closes. Write sends bytes verbatim; the caller appends any trailing
// newline. Close unblocks a pending ReadLine.
type Transport interface {
	io.Writer
	io.Closer

	ReadLine() ([]byte, error)

	// String describes the connection parameters for display.
	String() string
}

// Open connects the configured medium.
func Open(cfg Config) (Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Host != "" {
		return openSocket(cfg.Host, cfg.Port)
	}
	return openSerial(cfg.Device, cfg.Baud)
}

// DecodeLine turns a raw line into displayable text: embedded NUL bytes
// are stripped and invalid UTF-8 sequences are replaced with U+FFFD.
// Garbled input is displayed, never dropped; DecodeLine cannot fail.
func DecodeLine(raw []byte) string {
	clean := raw[:0:len(raw)]
	for _, b := range raw {
		if b != 0 {
			clean = append(clean, b)
		}
	}
	return strings.ToValidUTF8(string(clean), "�")
}

// lineReader wraps a stream with buffered line reads and translates
// end-of-stream conditions into ErrClosed. A mutex keeps each Write
// atomic per call.
type lineReader struct {
	mu     sync.Mutex
	stream io.ReadWriteCloser
	r      *bufio.Reader
	closed bool
}

func newLineReader(stream io.ReadWriteCloser) *lineReader {
	return &lineReader{stream: stream, r: bufio.NewReader(stream)}
}

func (l *lineReader) ReadLine() ([]byte, error) {
	line, err := l.r.ReadBytes('\n')
	if err != nil {
		// A final unterminated fragment is still a line.
		if len(line) > 0 {
			return line, nil
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || l.isClosed() {
			return nil, ErrClosed
		}
		return nil, err
	}
	return line, nil
}

func (l *lineReader) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	return l.stream.Write(p)
}

func (l *lineReader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()
	return l.stream.Close()
}

func (l *lineReader) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
