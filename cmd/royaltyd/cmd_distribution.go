package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/x/distribution"
	"github.com/iov-one/royalty/x/track"
)

func cmdDistribute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Pay the pending balance of a single pool to the recipient. The protocol fee
is kept in the track vault. Only the protocol authority can do this.
`)
		fl.PrintDefaults()
	}
	var (
		nf          = registerNodeFlags(fl)
		idFl        = fl.String("id", "", "Track ID.")
		typeFl      = fl.String("type", "", "Pool to pay: artist, producer, label or platform.")
		recipientFl = flAddress(fl, "recipient", "", "Recipient address.")
	)
	fl.Parse(args)

	rt, err := track.ParseRecipientType(*typeFl)
	if err != nil {
		return err
	}
	return deliverMsg(output, nf, &distribution.DistributeMsg{
		TrackID:       *idFl,
		RecipientType: rt,
		Recipient:     *recipientFl,
	})
}

func cmdBatchDistribute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Reserve pending balance for many recipients. Entries not covered by the
pool are skipped. No funds are moved. Only the protocol authority can do
this.
`)
		fl.PrintDefaults()
	}
	var (
		nf         = registerNodeFlags(fl)
		idFl       = fl.String("id", "", "Track ID.")
		recipients recipientsValue
	)
	fl.Var(&recipients, "recipient", "Recipient as <address>:<pool>:<amount>. Can be repeated.")
	fl.Parse(args)

	return deliverMsg(output, nf, &distribution.BatchDistributeMsg{
		TrackID:    *idFl,
		Recipients: recipients,
	})
}

// recipientsValue collects "<address>:<pool>:<amount>" entries.
type recipientsValue []distribution.Recipient

func (r *recipientsValue) String() string {
	if r == nil {
		return ""
	}
	entries := make([]string, 0, len(*r))
	for _, e := range *r {
		entries = append(entries, fmt.Sprintf("%s:%s:%d", e.Address, e.Type, e.Amount))
	}
	return strings.Join(entries, ",")
}

func (r *recipientsValue) Set(raw string) error {
	chunks := strings.Split(raw, ":")
	if len(chunks) != 3 {
		return fmt.Errorf("want <address>:<pool>:<amount>, got %q", raw)
	}
	addr, err := royalty.ParseAddress(chunks[0])
	if err != nil {
		return err
	}
	rt, err := track.ParseRecipientType(chunks[1])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseUint(chunks[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %s", chunks[2], err)
	}
	*r = append(*r, distribution.Recipient{Address: addr, Type: rt, Amount: amount})
	return nil
}

func cmdAutoDistribute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sweep all pending balance of a track to distributed. Allowed once per day
for every track. Any key can sign it.
`)
		fl.PrintDefaults()
	}
	var (
		nf   = registerNodeFlags(fl)
		idFl = fl.String("id", "", "Track ID.")
	)
	fl.Parse(args)

	return deliverMsg(output, nf, &distribution.AutoDistributeMsg{TrackID: *idFl})
}

func cmdTick(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Run the scheduled tasks at the block time. Every track whose cooldown
elapsed and that has pending balance is swept.
`)
		fl.PrintDefaults()
	}
	nf := registerNodeFlags(fl)
	fl.Parse(args)

	n, err := openNode(nf)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := n.app.Tick(nf.now())
	if err != nil {
		return err
	}
	if _, err := n.app.Commit(); err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	return writeEvents(output, res.Events)
}
