package localchan

// pipePrefix is the namespace named pipes live in; like abstract unix
// sockets they never appear in the filesystem.
const pipePrefix = `\\.\pipe\`

// MaxNameCapacity is the longest pipe path Windows accepts.
const MaxNameCapacity = 256

// HeaderSize is the length of the pipe namespace prefix.
const HeaderSize = len(pipePrefix)

// Named pipes have no address family.
const addrFamily = 0

// Network implements the Network method in the net.Addr interface.
func (a *Addr) Network() string {
	return "pipe"
}

// String implements the String method in the net.Addr interface.
func (a *Addr) String() string {
	return a.pipePath()
}

func (a *Addr) pipePath() string {
	return pipePrefix + a.Name
}
