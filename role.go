package localchan

import "fmt"

// Role selects which side of the exchange a process plays.
type Role byte

// Roles are named after the first character of the command line argument
// that selects them.
const (
	Connector Role = 'c'
	Listener  Role = 's'
)

func (r Role) String() string {
	switch r {
	case Connector:
		return "client"
	case Listener:
		return "server"
	}
	return fmt.Sprintf("Role(%q)", byte(r))
}

// ParseRole selects a role from the positional arguments. Exactly one
// argument is accepted and only its first character is inspected, so "s",
// "server" and "serve-forever" all select Listener.
func ParseRole(args []string) (Role, error) {
	if len(args) != 1 || len(args[0]) == 0 {
		return 0, ErrUsage
	}
	switch r := Role(args[0][0]); r {
	case Connector, Listener:
		return r, nil
	}
	return 0, ErrUsage
}
