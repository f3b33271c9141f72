package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/protocol"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the state in the home directory.

Unless a genesis file is given, a genesis is created from the flags and
written to genesis.json in the home directory. The protocol is configured
with the owner of the private key as the authority, if that key exists.
Otherwise the protocol must be created with the initialize command.
`)
		fl.PrintDefaults()
	}
	var (
		nf          = registerNodeFlags(fl)
		genesisFl   = fl.String("genesis", "", "Path to a genesis file to use instead of building one.")
		chainIDFl   = fl.String("chain-id", "royalty-local", "Chain ID.")
		authorityFl = flAddress(fl, "authority", "", "Protocol authority. Defaults to the key owner.")
		feeFl       = fl.Uint64("fee", 500, "Protocol fee in basis points.")
		noProtoFl   = fl.Bool("no-protocol", false, "Do not configure the protocol at genesis.")
		vaults      = vaultFunds{}
	)
	fl.Var(vaults, "fund-vault", "Initial balance of a track vault as <track id>=<amount>. Can be repeated.")
	fl.Parse(args)

	var gen *app.Genesis
	if *genesisFl != "" {
		g, err := app.LoadGenesis(*genesisFl)
		if err != nil {
			return err
		}
		gen = g
	} else {
		g, err := buildGenesis(nf, *chainIDFl, *authorityFl, *feeFl, *noProtoFl, vaults)
		if err != nil {
			return err
		}
		gen = g
	}

	n, err := openNode(nf)
	if err != nil {
		return err
	}
	defer n.Close()

	if err := n.app.InitChain(gen); err != nil {
		return err
	}
	if err := app.SaveGenesis(filepath.Join(*nf.home, "genesis.json"), gen); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, gen.ChainID)
	return err
}

func buildGenesis(nf *nodeFlags, chainID string, authority royalty.Address, fee uint64, noProtocol bool, vaults vaultFunds) (*app.Genesis, error) {
	state := royalty.Options{}

	if !noProtocol {
		if len(authority) == 0 {
			if _, err := os.Stat(nf.keyPath()); err == nil {
				key, err := readKey(nf.keyPath())
				if err != nil {
					return nil, err
				}
				authority = key.PublicKey().Address()
			}
		}
		if len(authority) != 0 {
			p := protocol.Protocol{
				Authority:             authority,
				FeePercentage:         fee,
				PerformanceMultiplier: protocol.DefaultPerformanceMultiplier,
			}
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf("invalid protocol: %s", err)
			}
			conf, err := json.Marshal(map[string]protocol.Protocol{"protocol": p})
			if err != nil {
				return nil, err
			}
			state["conf"] = conf
		}
	}

	if len(vaults) != 0 {
		accounts := make([]cash.GenesisAccount, 0, len(vaults))
		for trackID, amount := range vaults {
			accounts = append(accounts, cash.GenesisAccount{
				Address: protocol.VaultAddress(trackID),
				Balance: amount,
			})
		}
		raw, err := json.Marshal(accounts)
		if err != nil {
			return nil, err
		}
		state["cash"] = raw
	}

	gen := &app.Genesis{ChainID: chainID, AppState: state}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return gen, nil
}
