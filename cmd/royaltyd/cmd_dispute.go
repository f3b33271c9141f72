package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty/x/dispute"
	"github.com/iov-one/royalty/x/track"
)

func cmdOpenDispute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open a dispute against a track. The key owner is recorded as the disputant.
Types are IncorrectPercentage, MissingPayment, CalculationError and
FraudulentReporting.
`)
		fl.PrintDefaults()
	}
	var (
		nf     = registerNodeFlags(fl)
		idFl   = fl.String("track", "", "Disputed track ID.")
		typeFl = fl.String("type", "", "Dispute type.")
		descFl = fl.String("description", "", "Description of the problem.")
	)
	fl.Parse(args)

	dt, err := dispute.ParseDisputeType(*typeFl)
	if err != nil {
		return err
	}
	return deliverMsg(output, nf, &dispute.CreateDisputeMsg{
		TrackID:     *idFl,
		Type:        dt,
		Description: *descFl,
	})
}

func cmdResolveDispute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Resolve an open dispute. Only the protocol authority can do this.

Resolutions are:
  artist-percentage    set the artist pool percentage (-percentage)
  producer-percentage  set the producer pool percentage (-percentage)
  redistribute         move pending balance between the artist and the
                       producer pool (-from, -to, -amount)
`)
		fl.PrintDefaults()
	}
	var (
		nf           = registerNodeFlags(fl)
		idFl         = fl.String("id", "", "Dispute ID.")
		resolutionFl = fl.String("resolution", "", "Resolution kind.")
		percentageFl = fl.Uint64("percentage", 0, "New percentage in basis points.")
		fromFl       = fl.String("from", "", "Source pool of a redistribution.")
		toFl         = fl.String("to", "", "Destination pool of a redistribution.")
		amountFl     = fl.Uint64("amount", 0, "Redistributed amount.")
	)
	fl.Parse(args)

	var resolution dispute.Resolution
	switch *resolutionFl {
	case "artist-percentage":
		resolution = dispute.AdjustArtistPercentage{NewPercentage: *percentageFl}
	case "producer-percentage":
		resolution = dispute.AdjustProducerPercentage{NewPercentage: *percentageFl}
	case "redistribute":
		from, err := track.ParseRecipientType(*fromFl)
		if err != nil {
			return err
		}
		to, err := track.ParseRecipientType(*toFl)
		if err != nil {
			return err
		}
		resolution = dispute.RedistributeRevenue{FromPool: from, ToPool: to, Amount: *amountFl}
	default:
		return fmt.Errorf("unknown resolution %q", *resolutionFl)
	}
	return deliverMsg(output, nf, &dispute.ResolveDisputeMsg{
		DisputeID:  *idFl,
		Resolution: resolution,
	})
}
