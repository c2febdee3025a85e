package localchan

import (
	"net"

	"github.com/Microsoft/go-winio"
)

// sysSocket is one side of a named pipe. A listening handle holds the pipe
// listener; a connected or accepted handle holds the pipe connection.
type sysSocket struct {
	l      net.Listener
	c      net.Conn
	closed bool
}

func newSysSocket() (*sysSocket, error) {
	return &sysSocket{}, nil
}

// bind creates the first instance of the pipe. go-winio creates it with
// FILE_FLAG_FIRST_PIPE_INSTANCE, so a second Listener on the same name
// fails here the same way a second bind fails on Linux.
func (s *sysSocket) bind(a *Addr) error {
	l, err := winio.ListenPipe(a.pipePath(), &winio.PipeConfig{
		SecurityDescriptor: "",
		MessageMode:        false,
		InputBufferSize:    ReadBufferSize,
		OutputBufferSize:   ReadBufferSize,
	})
	if err != nil {
		return err
	}
	s.l = l
	return nil
}

// listen has nothing left to do: the pipe accepts callers as soon as it is
// created and Windows has no backlog setting.
func (s *sysSocket) listen(backlog int) error {
	if s.l == nil {
		return ErrNotConnected
	}
	return nil
}

func (s *sysSocket) accept() (*sysSocket, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.l == nil {
		return nil, ErrNotConnected
	}

	c, err := s.l.Accept()
	if err != nil {
		return nil, err
	}
	return &sysSocket{c: c}, nil
}

func (s *sysSocket) connect(a *Addr) error {
	c, err := winio.DialPipe(a.pipePath(), nil)
	if err != nil {
		return err
	}
	s.c = c
	return nil
}

func (s *sysSocket) read(b []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.c == nil {
		return 0, ErrNotConnected
	}
	return s.c.Read(b)
}

func (s *sysSocket) write(b []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.c == nil {
		return 0, ErrNotConnected
	}
	return s.c.Write(b)
}

func (s *sysSocket) close() (err error) {
	if s.c != nil {
		err = s.c.Close()
	}
	if s.l != nil {
		if lerr := s.l.Close(); err == nil {
			err = lerr
		}
	}
	return
}
