package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iov-one/royalty"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *royalty.Address {
	var a royalty.Address
	if defaultVal != "" {
		var err error
		a, err = royalty.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(addressValue{addr: &a}, name, usage)
	return &a
}

type addressValue struct {
	addr *royalty.Address
}

func (v addressValue) String() string {
	if v.addr == nil {
		return ""
	}
	return v.addr.String()
}

func (v addressValue) Set(raw string) error {
	a, err := royalty.ParseAddress(raw)
	if err != nil {
		return err
	}
	*v.addr = a
	return nil
}

// vaultFunds collects "<track id>=<amount>" pairs. The flag can be given
// many times.
type vaultFunds map[string]uint64

func (v vaultFunds) String() string {
	pairs := make([]string, 0, len(v))
	for id, amount := range v {
		pairs = append(pairs, fmt.Sprintf("%s=%d", id, amount))
	}
	return strings.Join(pairs, ",")
}

func (v vaultFunds) Set(raw string) error {
	chunks := strings.SplitN(raw, "=", 2)
	if len(chunks) != 2 {
		return fmt.Errorf("want <track id>=<amount>, got %q", raw)
	}
	amount, err := strconv.ParseUint(chunks[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %s", chunks[1], err)
	}
	v[chunks[0]] += amount
	return nil
}

// nodeFlags are the flags shared by all commands operating on the local
// state.
type nodeFlags struct {
	home      *string
	key       *string
	logLevel  *string
	blockTime *int64
}

func registerNodeFlags(fl *flag.FlagSet) *nodeFlags {
	return &nodeFlags{
		home: fl.String("home", defaultHome(),
			"Directory holding the state and the genesis file. You can use ROYALTYD_HOME environment variable to set it."),
		key: fl.String("key", env("ROYALTYD_KEY", ""),
			"Path to the private key file that transaction should be signed with. Defaults to priv.key in the home directory. You can use ROYALTYD_KEY environment variable to set it."),
		logLevel: fl.String("log-level", env("ROYALTYD_LOG_LEVEL", "error"),
			"Log level: debug, info, error or none. You can use ROYALTYD_LOG_LEVEL environment variable to set it."),
		blockTime: fl.Int64("time", 0,
			"Block time as UNIX seconds. Current time is used if not set."),
	}
}

func (nf *nodeFlags) keyPath() string {
	if *nf.key != "" {
		return *nf.key
	}
	return filepath.Join(*nf.home, "priv.key")
}

func (nf *nodeFlags) now() time.Time {
	if *nf.blockTime != 0 {
		return time.Unix(*nf.blockTime, 0).UTC()
	}
	return time.Now().UTC()
}
