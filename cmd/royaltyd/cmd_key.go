package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/royalty/crypto"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists. When a
seed is given, the key is derived from it using the SLIP-0010 path.
`)
		fl.PrintDefaults()
	}
	var (
		nf     = registerNodeFlags(fl)
		seedFl = fl.String("seed", "", "Hex encoded master seed. A random key is generated if not given.")
		pathFl = fl.String("path", "m/44'/234'/0'", "Derivation path used together with the seed.")
	)
	fl.Parse(args)

	keyPath := nf.keyPath()
	if _, err := os.Stat(keyPath); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", keyPath)
	}

	key, err := keygen(*seedFl, *pathFl)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return fmt.Errorf("cannot create key directory: %s", err)
	}
	fd, err := os.OpenFile(keyPath, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Ed25519); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

// keygen returns a random key when seed is empty, otherwise the key derived
// from the hex encoded seed.
func keygen(seed, path string) (*crypto.PrivateKey, error) {
	if seed == "" {
		return crypto.GenPrivKeyEd25519(), nil
	}
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %s", err)
	}
	key, err := crypto.DerivePrivateKey(raw, path)
	if err != nil {
		return nil, fmt.Errorf("cannot derive key: %s", err)
	}
	return key, nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		nf       = registerNodeFlags(fl)
		bech32Fl = fl.Bool("bech32", false, "Print the bech32 representation instead of hex.")
	)
	fl.Parse(args)

	key, err := readKey(nf.keyPath())
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	if *bech32Fl {
		_, err = fmt.Fprintln(output, addr.Bech32())
		return err
	}
	_, err = fmt.Fprintln(output, addr)
	return err
}
