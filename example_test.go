package localchan_test

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/navel3/go-localchan"
)

func ExampleNewAddr() {
	addr, err := localchan.NewAddr(localchan.DefaultName)
	if err != nil {
		return
	}
	fmt.Println(addr.Name, addr.Len == len(addr.Name)+1+localchan.HeaderSize)

	_, err = localchan.NewAddr(strings.Repeat("x", localchan.MaxNameCapacity))
	fmt.Println(errors.Is(err, localchan.ErrNameTooLong))
	// Output:
	// com.example.socket true
	// true
}

func ExampleParseRole() {
	for _, args := range [][]string{{"s"}, {"client"}, {"x"}, {}} {
		role, err := localchan.ParseRole(args)
		fmt.Println(role, err == nil)
	}
	// Output:
	// server true
	// client true
	// Role('\x00') false
	// Role('\x00') false
}

func Example_server() {
	addr, err := localchan.NewAddr(localchan.DefaultName)
	if err != nil {
		return
	}

	l, err := localchan.Listen(addr, localchan.Backlog, nil)
	if err != nil {
		return
	}
	defer l.Close()

	conn, err := l.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	var buf [localchan.ReadBufferSize]byte
	n, err := conn.Read(buf[:])
	if err != nil {
		return
	}
	os.Stdout.Write(buf[:n])
}

func Example_client() {
	addr, err := localchan.NewAddr(localchan.DefaultName)
	if err != nil {
		return
	}

	err = localchan.RunConnector(addr, localchan.Options{Stdout: os.Stdout})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
