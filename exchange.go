package localchan

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
)

// Options configures Run, RunListener and RunConnector.
type Options struct {
	// Stdout receives the greeting and the received message. Defaults to
	// io.Discard.
	Stdout io.Writer

	// Logger receives a Debug record for every channel operation. Defaults
	// to a logger that discards everything.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	if o.Logger == nil {
		o.Logger = nopLogger()
	}
	return o
}

// Run performs the exchange for role on addr.
func Run(role Role, addr *Addr, opts Options) error {
	switch role {
	case Listener:
		return RunListener(addr, opts)
	case Connector:
		return RunConnector(addr, opts)
	}
	return ErrUsage
}

// RunListener binds addr, waits for exactly one Connector, reads its message
// once and prints it as
//
//	GOT: '<message>'
//
// Only the bytes actually received are printed, up to the first NUL.
func RunListener(addr *Addr, opts Options) error {
	opts = opts.withDefaults()
	fmt.Fprintf(opts.Stdout, "SERVER %s\n", addr.Name)

	e, err := Listen(addr, Backlog, opts.Logger)
	if err != nil {
		return err
	}
	defer e.Close()

	conn, err := e.Accept()
	if err != nil {
		return err
	}

	msg, err := receive(conn)
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.Stdout, "GOT: '%s'\n", msg)
	return nil
}

// receive reads once from conn and closes it before returning.
func receive(conn *Conn) ([]byte, error) {
	defer conn.Close()

	var buf [ReadBufferSize]byte
	n, err := conn.Read(buf[:])
	if err != nil && err != io.EOF {
		return nil, err
	}
	return cstring(buf[:n]), nil
}

// cstring cuts b at its first NUL.
func cstring(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// RunConnector connects to addr and writes DefaultMessage followed by its
// terminating NUL in one call.
func RunConnector(addr *Addr, opts Options) error {
	opts = opts.withDefaults()
	fmt.Fprintf(opts.Stdout, "CLIENT %s\n", addr.Name)

	e, err := Dial(addr, opts.Logger)
	if err != nil {
		return err
	}
	defer e.Close()

	_, err = e.Write(wireMessage())
	return err
}

func wireMessage() []byte {
	return append([]byte(DefaultMessage), 0)
}
