package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/protocol"
)

func cmdInitialize(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create the protocol registry. The authority must sign the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		nf          = registerNodeFlags(fl)
		authorityFl = flAddress(fl, "authority", "", "Protocol authority. Defaults to the key owner.")
		feeFl       = fl.Uint64("fee", 500, "Protocol fee in basis points.")
	)
	fl.Parse(args)

	authority := *authorityFl
	if len(authority) == 0 {
		key, err := readKey(nf.keyPath())
		if err != nil {
			return err
		}
		authority = key.PublicKey().Address()
	}
	return deliverMsg(output, nf, &protocol.InitializeMsg{
		Authority:     authority,
		FeePercentage: *feeFl,
	})
}

func cmdUpdateFee(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Change the protocol fee. Only the protocol authority can do this.
`)
		fl.PrintDefaults()
	}
	var (
		nf    = registerNodeFlags(fl)
		feeFl = fl.Uint64("fee", 0, "New protocol fee in basis points.")
	)
	fl.Parse(args)

	return deliverMsg(output, nf, &protocol.UpdateFeeMsg{FeePercentage: *feeFl})
}

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Move funds held by the key owner to another address. Use the vault address
of a track as the destination to fund its royalties.
`)
		fl.PrintDefaults()
	}
	var (
		nf       = registerNodeFlags(fl)
		toFl     = flAddress(fl, "to", "", "Destination address.")
		vaultFl  = fl.String("vault", "", "Track ID whose vault is the destination. Overrides -to.")
		amountFl = fl.Uint64("amount", 0, "Amount to send.")
		memoFl   = fl.String("memo", "", "Optional memo.")
	)
	fl.Parse(args)

	key, err := readKey(nf.keyPath())
	if err != nil {
		return err
	}
	dest := *toFl
	if *vaultFl != "" {
		dest = protocol.VaultAddress(*vaultFl)
	}
	return deliverMsg(output, nf, &cash.SendMsg{
		Source:      key.PublicKey().Address(),
		Destination: dest,
		Amount:      *amountFl,
		Memo:        *memoFl,
	})
}
