// Package localchan implements a single point-to-point exchange over a local
// stream channel addressed by name.
//
// One process listens on the name and accepts exactly one connection; the
// other connects, writes one message and leaves. On Linux the channel is a
// unix stream socket in the abstract namespace, driven through raw file
// descriptors with golang.org/x/sys/unix. On Windows it is a named pipe
// implemented with github.com/Microsoft/go-winio.
package localchan

import (
	"io"
	"log/slog"
	"net"
	"sync/atomic"
)

const (
	// DefaultName is the channel name both roles meet on.
	DefaultName = "com.example.socket"

	// DefaultMessage is the text the Connector sends. It goes on the wire
	// followed by a single NUL byte.
	DefaultMessage = "besm Allah :)\n"

	// Backlog is the number of pending connections the Listener lets the
	// operating system queue.
	Backlog = 5

	// ReadBufferSize bounds the single read the Listener performs.
	ReadBufferSize = 64
)

var openHandles atomic.Int64

// OpenHandles reports how many channel handles (endpoints and accepted
// connections) the process currently holds open.
func OpenHandles() int64 {
	return openHandles.Load()
}

// Endpoint is one side of the channel. It is either bound and listening
// (see Listen) or connected (see Dial). An Endpoint has a single owner who
// must Close it.
type Endpoint struct {
	sock   *sysSocket
	role   Role
	addr   *Addr
	logger *slog.Logger
}

// Listen creates an endpoint, binds it to addr and starts listening with the
// given backlog. On failure nothing is left open.
func Listen(addr *Addr, backlog int, logger *slog.Logger) (*Endpoint, error) {
	e, err := newEndpoint(Listener, addr, logger)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("bind", "addr", addr, "len", addr.Len)
	if err := e.sock.bind(addr); err != nil {
		e.Close()
		return nil, opError(Listener, "bind", err)
	}

	e.logger.Debug("listen", "backlog", backlog)
	if err := e.sock.listen(backlog); err != nil {
		e.Close()
		return nil, opError(Listener, "listen", err)
	}

	return e, nil
}

// Dial creates an endpoint and connects it to addr. On failure nothing is
// left open.
func Dial(addr *Addr, logger *slog.Logger) (*Endpoint, error) {
	e, err := newEndpoint(Connector, addr, logger)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("connect", "addr", addr, "len", addr.Len)
	if err := e.sock.connect(addr); err != nil {
		e.Close()
		return nil, opError(Connector, "connect", err)
	}

	return e, nil
}

func nopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newEndpoint(role Role, addr *Addr, logger *slog.Logger) (*Endpoint, error) {
	if logger == nil {
		logger = nopLogger()
	}
	logger = logger.With("role", role.String())

	logger.Debug("socket")
	sock, err := newSysSocket()
	if err != nil {
		return nil, opError(role, "socket", err)
	}
	openHandles.Add(1)

	return &Endpoint{
		sock:   sock,
		role:   role,
		addr:   addr,
		logger: logger,
	}, nil
}

// Accept waits for the next incoming connection. There is no timeout; the
// call blocks until a Connector arrives or the endpoint fails.
func (e *Endpoint) Accept() (*Conn, error) {
	e.logger.Debug("accept")
	sock, err := e.sock.accept()
	if err != nil {
		return nil, opError(e.role, "accept", err)
	}
	openHandles.Add(1)

	return &Conn{sock: sock, role: e.role, logger: e.logger}, nil
}

// Write writes b to a connected endpoint with a single call. The returned
// count may be short; no attempt is made to send the remainder.
func (e *Endpoint) Write(b []byte) (int, error) {
	e.logger.Debug("write", "len", len(b))
	n, err := e.sock.write(b)
	return n, opError(e.role, "write", err)
}

// LocalAddr returns the address the endpoint was bound or connected to.
func (e *Endpoint) LocalAddr() net.Addr {
	return e.addr
}

// Close releases the endpoint. Calling Close more than once is harmless.
func (e *Endpoint) Close() error {
	return closeSock(e.sock, e.role, e.logger)
}

// Conn is a connection accepted by a listening Endpoint. It belongs to the
// caller of Accept and is independent of the Endpoint: closing one does not
// close the other.
type Conn struct {
	sock   *sysSocket
	role   Role
	logger *slog.Logger
}

// Read performs one read into b. A zero byte read from a peer that closed
// its side is reported as io.EOF.
func (c *Conn) Read(b []byte) (int, error) {
	n, err := c.sock.read(b)
	c.logger.Debug("read", "n", n)
	if err != nil {
		return n, opError(c.role, "read", err)
	}
	if n == 0 && len(b) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Close releases the connection. Calling Close more than once is harmless.
func (c *Conn) Close() error {
	return closeSock(c.sock, c.role, c.logger)
}

func closeSock(s *sysSocket, role Role, logger *slog.Logger) error {
	if s.closed {
		return nil
	}
	s.closed = true
	openHandles.Add(-1)

	logger.Debug("close")
	return opError(role, "close", s.close())
}
