package localchan

import (
	"golang.org/x/sys/unix"
)

// sysSocket is a blocking unix stream socket owned through its raw file
// descriptor.
type sysSocket struct {
	fd     int
	closed bool
}

func newSysSocket() (*sysSocket, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &sysSocket{fd: fd}, nil
}

func (s *sysSocket) bind(a *Addr) error {
	return unix.Bind(s.fd, a.sockaddr())
}

func (s *sysSocket) listen(backlog int) error {
	return unix.Listen(s.fd, backlog)
}

func (s *sysSocket) accept() (*sysSocket, error) {
	if s.closed {
		return nil, ErrClosed
	}

	var fd int
	err := ignoringEINTR(func() (err error) {
		fd, _, err = unix.Accept4(s.fd, unix.SOCK_CLOEXEC)
		return
	})
	if err != nil {
		return nil, err
	}
	return &sysSocket{fd: fd}, nil
}

func (s *sysSocket) connect(a *Addr) error {
	err := ignoringEINTR(func() error {
		return unix.Connect(s.fd, a.sockaddr())
	})
	// A connect interrupted by a signal keeps going in the kernel; the
	// restarted call then finds it already done.
	if err == unix.EISCONN {
		return nil
	}
	return err
}

func (s *sysSocket) read(b []byte) (n int, err error) {
	if s.closed {
		return 0, ErrClosed
	}

	err = ignoringEINTR(func() (err error) {
		n, err = unix.Read(s.fd, b)
		return
	})
	if err != nil && n < 0 {
		n = 0
	}
	return
}

func (s *sysSocket) write(b []byte) (n int, err error) {
	if s.closed {
		return 0, ErrClosed
	}

	err = ignoringEINTR(func() (err error) {
		n, err = unix.Write(s.fd, b)
		return
	})
	if err != nil && n < 0 {
		n = 0
	}
	return
}

func (s *sysSocket) close() error {
	return unix.Close(s.fd)
}

// ignoringEINTR restarts fn while it fails with EINTR. The Go runtime
// preempts goroutines with signals, so any blocking call may see one.
func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}
