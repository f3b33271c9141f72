package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty/x/track"
)

func cmdCreateTrack(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Register a new track with the default 60/20/15/5 pool split.
`)
		fl.PrintDefaults()
	}
	var (
		nf        = registerNodeFlags(fl)
		idFl      = fl.String("id", "", "Track ID.")
		titleFl   = fl.String("title", "", "Track title.")
		artistFl  = fl.String("artist", "", "Artist name.")
		streamsFl = fl.Uint64("streams", 0, "Streams counted before registration. No revenue is accrued for them.")
		rpsFl     = fl.Uint64("rps", 0, "Revenue per stream.")
	)
	fl.Parse(args)

	return deliverMsg(output, nf, &track.CreateTrackMsg{
		TrackID:          *idFl,
		Title:            *titleFl,
		Artist:           *artistFl,
		TotalStreams:     *streamsFl,
		RevenuePerStream: *rpsFl,
	})
}

func cmdStream(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Report additional streams of a track. Only the protocol authority can do
this. Revenue is boosted by the track performance and split between pools.
`)
		fl.PrintDefaults()
	}
	var (
		nf         = registerNodeFlags(fl)
		idFl       = fl.String("id", "", "Track ID.")
		streamsFl  = fl.Uint64("streams", 0, "Number of additional streams.")
		platformFl = fl.String("platform", "", "Streaming platform.")
		countryFl  = fl.String("country", "", "Country of the streams.")
	)
	fl.Parse(args)

	return deliverMsg(output, nf, &track.UpdateStreamingDataMsg{
		TrackID:           *idFl,
		AdditionalStreams: *streamsFl,
		Platform:          *platformFl,
		Country:           *countryFl,
	})
}

func cmdSetStatus(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Change the status of a track: active, paused or terminated. Only the
protocol authority can do this. A terminated track cannot change anymore.
`)
		fl.PrintDefaults()
	}
	var (
		nf       = registerNodeFlags(fl)
		idFl     = fl.String("id", "", "Track ID.")
		statusFl = fl.String("status", "", "New status.")
	)
	fl.Parse(args)

	status, err := track.ParseTrackStatus(*statusFl)
	if err != nil {
		return err
	}
	return deliverMsg(output, nf, &track.SetStatusMsg{TrackID: *idFl, Status: status})
}
