package localchan

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// MaxNameCapacity is the size of the path field of sockaddr_un.
const MaxNameCapacity = len(unix.RawSockaddrUnix{}.Path)

// HeaderSize is the offset of the path field inside sockaddr_un.
const HeaderSize = int(unsafe.Offsetof(unix.RawSockaddrUnix{}.Path))

const addrFamily = unix.AF_UNIX

// Network implements the Network method in the net.Addr interface.
func (a *Addr) Network() string {
	return "unix"
}

// String implements the String method in the net.Addr interface; abstract
// names are written with a leading '@' as in /proc/net/unix.
func (a *Addr) String() string {
	return "@" + a.Name
}

// sockaddr encodes a as an abstract unix address. unix.SockaddrUnix treats a
// leading '@' as the abstract marker: it clears the first path byte and
// reports HeaderSize+1+len(Name) as the address length.
func (a *Addr) sockaddr() *unix.SockaddrUnix {
	return &unix.SockaddrUnix{Name: "@" + a.Name}
}
