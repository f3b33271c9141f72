package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program name and the command name. It is responsible for
// parsing the arguments with the flag package. Every command operating on
// state opens the store found in the home directory, runs a single
// transaction or tick at the given block time and commits the result.
//
// A full session looks like this:
//
//   $ royaltyd keygen
//   $ royaltyd init -fund-vault hit=100000000
//   $ royaltyd create-track -id hit -title Hit -artist Band -rps 1000000
//   $ royaltyd stream -id hit -streams 100
//   $ royaltyd distribute -id hit -type artist -recipient <address>
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"auto-distribute":  cmdAutoDistribute,
	"batch-distribute": cmdBatchDistribute,
	"create-track":     cmdCreateTrack,
	"distribute":       cmdDistribute,
	"init":             cmdInit,
	"initialize":       cmdInitialize,
	"keyaddr":          cmdKeyaddr,
	"keygen":           cmdKeygen,
	"open-dispute":     cmdOpenDispute,
	"query":            cmdQuery,
	"resolve-dispute":  cmdResolveDispute,
	"send":             cmdSend,
	"set-status":       cmdSetStatus,
	"stream":           cmdStream,
	"tick":             cmdTick,
	"update-fee":       cmdUpdateFee,
	"version":          cmdVersion,
}

func main() {
	loadEnvFiles(os.Stderr, ".env", filepath.Join(defaultHome(), ".env"))

	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s keeps the royalty ledger of music tracks.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash = "dev"
