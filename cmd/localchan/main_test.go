package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/navel3/go-localchan"
)

func testName(t *testing.T) string {
	return fmt.Sprintf("localchan.cmd.%d.%s", os.Getpid(), strings.ReplaceAll(t.Name(), "/", "."))
}

func TestUsage(t *testing.T) {
	tests := []struct {
		desc string
		args []string
	}{
		{"No arguments", nil},
		{"Two roles", []string{"c", "s"}},
		{"Unknown role", []string{"x"}},
		{"Upper case role", []string{"S"}},
		{"Empty role", []string{""}},
		{"Unknown flag", []string{"--port", "1", "s"}},
		{"Help", []string{"-h"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			before := localchan.OpenHandles()
			var stdout, stderr bytes.Buffer

			if got, want := run(tt.args, &stdout, &stderr), 2; got != want {
				t.Errorf("got exit code %d but want %d", got, want)
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected stdout: %q", stdout.String())
			}
			if stderr.Len() == 0 {
				t.Errorf("expected a diagnostic on stderr")
			}
			if got := localchan.OpenHandles(); got != before {
				t.Errorf("open handles: got %d but want %d", got, before)
			}
		})
	}
}

func TestNameTooLong(t *testing.T) {
	before := localchan.OpenHandles()
	name := strings.Repeat("n", localchan.MaxNameCapacity)
	var stdout, stderr bytes.Buffer

	if got, want := run([]string{"--name", name, "s"}, &stdout, &stderr), 1; got != want {
		t.Errorf("got exit code %d but want %d", got, want)
	}
	if !strings.Contains(stderr.String(), name) {
		t.Errorf("diagnostic %q does not name the channel", stderr.String())
	}
	if got := localchan.OpenHandles(); got != before {
		t.Errorf("open handles: got %d but want %d", got, before)
	}
}

func TestExchange(t *testing.T) {
	before := localchan.OpenHandles()
	name := testName(t)

	var serverOut, serverErr bytes.Buffer
	var eg errgroup.Group
	eg.Go(func() error {
		if code := run([]string{"--name", name, "s"}, &serverOut, &serverErr); code != 0 {
			return fmt.Errorf("server exited with %d: %s", code, serverErr.String())
		}
		return nil
	})

	// The server binds asynchronously; retry the client until it gets in.
	var clientOut, clientErr bytes.Buffer
	deadline := time.Now().Add(5 * time.Second)
	for {
		clientOut.Reset()
		clientErr.Reset()
		code := run([]string{"--name", name, "c"}, &clientOut, &clientErr)
		if code == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("client exited with %d: %s", code, clientErr.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}

	if got, want := serverOut.String(), "SERVER "+name+"\nGOT: 'besm Allah :)\n'\n"; got != want {
		t.Errorf("got server output %q but want %q", got, want)
	}
	if got, want := clientOut.String(), "CLIENT "+name+"\n"; got != want {
		t.Errorf("got client output %q but want %q", got, want)
	}
	if serverErr.Len() != 0 || clientErr.Len() != 0 {
		t.Errorf("unexpected diagnostics: server %q, client %q", serverErr.String(), clientErr.String())
	}
	if got := localchan.OpenHandles(); got != before {
		t.Errorf("open handles: got %d but want %d", got, before)
	}
}

func TestConnectorWithoutListener(t *testing.T) {
	before := localchan.OpenHandles()
	var stdout, stderr bytes.Buffer

	if got, want := run([]string{"--name", testName(t), "c"}, &stdout, &stderr), 1; got != want {
		t.Errorf("got exit code %d but want %d", got, want)
	}
	if got := stderr.String(); !strings.HasPrefix(got, "error: client connect: ") || strings.Count(got, "\n") != 1 {
		t.Errorf("got diagnostic %q but want one client connect line", got)
	}
	if got := localchan.OpenHandles(); got != before {
		t.Errorf("open handles: got %d but want %d", got, before)
	}
}

func TestSecondListener(t *testing.T) {
	name := testName(t)
	addr, err := localchan.NewAddr(name)
	if err != nil {
		t.Fatalf("Failed to build address: %v", err)
	}

	first, err := localchan.Listen(addr, localchan.Backlog, nil)
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer first.Close()

	before := localchan.OpenHandles()
	var stdout, stderr bytes.Buffer
	if got, want := run([]string{"--name", name, "s"}, &stdout, &stderr), 1; got != want {
		t.Errorf("got exit code %d but want %d", got, want)
	}
	if got := stderr.String(); !strings.HasPrefix(got, "error: server bind: ") {
		t.Errorf("got diagnostic %q but want a server bind error", got)
	}
	if got := localchan.OpenHandles(); got != before {
		t.Errorf("open handles: got %d but want %d", got, before)
	}
}

func TestVerbose(t *testing.T) {
	var stdout, stderr bytes.Buffer

	run([]string{"-v", "--name", testName(t), "c"}, &stdout, &stderr)
	for _, op := range []string{"msg=socket", "msg=connect", "msg=close", "role=client"} {
		if !strings.Contains(stderr.String(), op) {
			t.Errorf("verbose log %q lacks %q", stderr.String(), op)
		}
	}
}
