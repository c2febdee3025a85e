package localchan

import "fmt"

// Addr is a name in the local abstract channel namespace. It is never
// visible in the filesystem and lives as long as some endpoint is bound to
// it.
type Addr struct {
	Name string

	// Family is the raw address family tag written into the encoded
	// address.
	Family uint16

	// Len is the number of meaningful bytes of the encoded address: the
	// header, the abstract marker and the name. Bind and connect are given
	// this length, never the size of the whole address record.
	Len int
}

// NewAddr builds the abstract address for name. The name must be shorter
// than MaxNameCapacity-1 bytes: one byte is taken by the abstract marker
// and one is kept so that the name stays NUL terminated inside the field.
func NewAddr(name string) (*Addr, error) {
	if len(name) >= MaxNameCapacity-1 {
		return nil, fmt.Errorf("socket name %s is too long (%d bytes, limit %d): %w",
			name, len(name), MaxNameCapacity-2, ErrNameTooLong)
	}

	return &Addr{
		Name:   name,
		Family: addrFamily,
		Len:    1 + len(name) + HeaderSize,
	}, nil
}
