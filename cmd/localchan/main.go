// Command localchan performs one exchange over a local abstract channel.
//
// Start the server first, then the client from another terminal:
//
//	localchan s
//	localchan c
//
// The server prints the message the client sent and both exit.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/navel3/go-localchan"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one exchange and returns the process exit code: 2 for
// usage errors, 1 for any failure of the exchange, 0 otherwise.
func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("localchan", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.BoolP("verbose", "v", false, "log every channel operation to stderr")
	name := flags.String("name", localchan.DefaultName, "abstract channel name")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "%v\n\nFlags:\n", localchan.ErrUsage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 2
	}

	role, err := localchan.ParseRole(flags.Args())
	if err != nil {
		flags.Usage()
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	addr, err := localchan.NewAddr(*name)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	err = localchan.Run(role, addr, localchan.Options{
		Stdout: stdout,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
