// Package main provides the mchanctl CLI tool for creating and inspecting
// memchan channel files.
//
// Usage:
//
//	mchanctl --path=<file> <command> [options]
//
// Commands:
//
//	create          Create a new channel file
//	dump            Print every record currently in the channel
//	watch           Follow the channel, printing new records as they arrive
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/memchan-io/memchan"
)

var (
	path         = flag.String("path", "", "Path to the channel file (required)")
	channelID    = flag.Uint64("id", 1, "Channel id (create only)")
	capacity     = flag.Uint("capacity", 1<<20, "Record-region capacity in bytes (create only)")
	maxRecordLen = flag.Uint("max-record-len", 4096, "Maximum record payload size (create only)")
	timeoutMs    = flag.Uint64("timeout-ms", 0, "Writer heartbeat window in milliseconds, 0 disables (create only)")
	help         = flag.Bool("help", false, "Print help")
)

func main() {
	flag.Parse()

	if *help || len(flag.Args()) == 0 {
		printUsage()
		return
	}
	if *path == "" {
		fmt.Fprintln(os.Stderr, "Error: --path flag is required")
		os.Exit(1)
	}

	var err error
	switch flag.Arg(0) {
	case "create":
		err = runCreate()
	case "dump":
		err = runDump()
	case "watch":
		err = runWatch()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", flag.Arg(0))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: mchanctl --path=<file> <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands: create, dump, watch")
	flag.PrintDefaults()
}

func runCreate() error {
	meta := memchan.Metadata{
		ChannelID:    *channelID,
		Capacity:     uint32(*capacity),
		MaxRecordLen: uint32(*maxRecordLen),
		TimeoutNs:    *timeoutMs * uint64(time.Millisecond),
	}
	w, err := memchan.CreateWriter(*path, meta)
	if err != nil {
		return fmt.Errorf("create writer: %w", err)
	}
	return w.Close()
}

func runDump() error {
	r, err := memchan.OpenReader(*path)
	if err != nil {
		return fmt.Errorf("open reader: %w", err)
	}
	defer r.Close()

	for {
		res := r.TryRead()
		switch res.Kind {
		case memchan.ReadRecord:
			fmt.Printf("%d\t%q\n", res.Position, res.Payload)
		case memchan.ReadNothing:
			return nil
		default:
			fmt.Printf("# %s\n", res.Kind)
			return nil
		}
	}
}

func runWatch() error {
	r, err := memchan.OpenReader(*path)
	if err != nil {
		return fmt.Errorf("open reader: %w", err)
	}
	defer r.Close()

	it := memchan.NewRetryIterator(r)
	for {
		res, ok := it.Next()
		if !ok {
			return nil
		}
		if res.Kind == memchan.ReadRecord {
			fmt.Printf("%d\t%q\n", res.Position, res.Payload)
			continue
		}
		fmt.Printf("# %s\n", res.Kind)
		return nil
	}
}
