// Command merkleanchor anchors the content of files to a local ledger and
// checks files against previously anchored batches.
//
//	merkleanchor anchor [flags] FILE...
//	merkleanchor check [flags] FILE PROOF
//
// anchor writes FILE.proof next to every input. check exits 0 if the file is
// anchored, 1 if it is not, and 2 on error.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/spf13/pflag"
)

const (
	exitAnchored    = 0
	exitNotAnchored = 1
	exitError       = 2
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n  %[1]s anchor [flags] FILE...\n  %[1]s check [flags] FILE PROOF\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitError)
	}

	var cfg config
	flags := pflag.NewFlagSet(os.Args[1], pflag.ExitOnError)
	cfg.bind(flags)
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(exitError)
	}

	logger.New(cfg.logLevel)
	log := logger.Sugar.WithServiceName("merkleanchor")

	ctx := context.Background()

	var code int
	var err error
	switch os.Args[1] {
	case "anchor":
		code, err = runAnchor(ctx, log, cfg, flags.Args())
	case "check":
		code, err = runCheck(ctx, log, cfg, flags.Args())
	default:
		usage()
		code = exitError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
	}
	os.Exit(code)
}
