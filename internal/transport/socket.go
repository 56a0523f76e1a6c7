package transport

import (
	"fmt"
	"net"
	"strconv"
)

// socketTransport is a Transport over a TCP connection, typically a
// ser2net-style serial bridge.
type socketTransport struct {
	*lineReader
	host string
	port int
}

func openSocket(host string, port int) (Transport, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("connect %s:%d: %w", host, port, err)
	}
	return &socketTransport{
		lineReader: newLineReader(conn),
		host:       host,
		port:       port,
	}, nil
}

func (s *socketTransport) String() string {
	return fmt.Sprintf("Host: %s Port: %d", s.host, s.port)
}
