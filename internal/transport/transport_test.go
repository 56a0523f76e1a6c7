package transport

import (
	"errors"
	"net"
	"strconv"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"serial", Config{Device: "/dev/ttyUSB0", Baud: 115200}, false},
		{"socket", Config{Host: "localhost", Port: 5001}, false},
		{"neither", Config{}, true},
		{"both", Config{Device: "/dev/ttyUSB0", Baud: 9600, Host: "localhost", Port: 5001}, true},
		{"bad baud", Config{Device: "/dev/ttyUSB0"}, true},
		{"bad port", Config{Host: "localhost", Port: 0}, true},
		{"port too large", Config{Host: "localhost", Port: 70000}, true},
	}

	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("expected error for empty config")
	}
}

func TestOpenUnreachableDevice(t *testing.T) {
	_, err := Open(Config{Device: "/dev/ttyUSB-does-not-exist", Baud: 115200})
	if err == nil {
		t.Fatal("expected error for unreachable device")
	}
}

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("hello\n"), "hello\n"},
		{"nul stripped", []byte("he\x00llo"), "hello"},
		{"invalid utf8 replaced", []byte{'o', 'k', 0xff, 0xfe}, "ok�"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		if got := DecodeLine(tt.in); got != tt.want {
			t.Errorf("%s: DecodeLine(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

// startEchoServer accepts a single connection and feeds it the given
// payload, then blocks until closed.
func startEchoServer(t *testing.T, payload []byte) net.Addr {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		if len(payload) > 0 {
			conn.Write(payload)
		}
	}()
	return ln.Addr()
}

func TestSocketReadLine(t *testing.T) {
	addr := startEchoServer(t, []byte("first line\nsecond\x00 line\n"))
	tcp := addr.(*net.TCPAddr)

	tr, err := Open(Config{Host: "127.0.0.1", Port: tcp.Port})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer tr.Close()

	line, err := tr.ReadLine()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := DecodeLine(line); got != "first line\n" {
		t.Errorf("expected %q, got %q", "first line\n", got)
	}

	line, err = tr.ReadLine()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := DecodeLine(line); got != "second line\n" {
		t.Errorf("expected NUL stripped, got %q", got)
	}
}

func TestSocketString(t *testing.T) {
	addr := startEchoServer(t, nil)
	tcp := addr.(*net.TCPAddr)

	tr, err := Open(Config{Host: "127.0.0.1", Port: tcp.Port})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer tr.Close()

	want := "Host: 127.0.0.1 Port: " + strconv.Itoa(tcp.Port)
	if got := tr.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCloseUnblocksPendingRead(t *testing.T) {
	addr := startEchoServer(t, nil)
	tcp := addr.(*net.TCPAddr)

	tr, err := Open(Config{Host: "127.0.0.1", Port: tcp.Port})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := tr.ReadLine()
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	tr.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pending read was not unblocked by Close")
	}
}

func TestWriteAfterClose(t *testing.T) {
	addr := startEchoServer(t, nil)
	tcp := addr.(*net.TCPAddr)

	tr, err := Open(Config{Host: "127.0.0.1", Port: tcp.Port})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tr.Close()

	if _, err := tr.Write([]byte("x\n")); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
