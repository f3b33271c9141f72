package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print committed state as JSON.

Supported kinds are:
  protocol           the protocol registry
  track -id          a single track
  tracks -artist     all tracks of an artist
  dispute -id        a single dispute
  disputes -id       all disputes of a track
  balance -address   custody balance of an address
  vault -id          vault address and balance of a track
  nonce -address     next signature sequence of an address
  events             journal entries after -after, optionally of -event kind
`)
		fl.PrintDefaults()
	}
	var (
		nf        = registerNodeFlags(fl)
		kindFl    = fl.String("kind", "", "What to query.")
		idFl      = fl.String("id", "", "Track or dispute ID.")
		artistFl  = fl.String("artist", "", "Artist name.")
		addressFl = flAddress(fl, "address", "", "Address.")
		afterFl   = fl.Int64("after", 0, "Only journal entries with a greater sequence.")
		eventFl   = fl.String("event", "", "Only journal entries of this event kind.")
	)
	fl.Parse(args)

	n, err := openNode(nf)
	if err != nil {
		return err
	}
	defer n.Close()

	res, err := query(n.app.ReadStore(), n.app.Journal(), *kindFl, *idFl, *artistFl, *addressFl, *afterFl, *eventFl)
	if err != nil {
		return err
	}
	return writeJSON(output, res)
}

func query(db royalty.ReadOnlyKVStore, journal app.Journal, kind, id, artist string, addr royalty.Address, after int64, event string) (interface{}, error) {
	switch kind {
	case "protocol":
		return app.QueryProtocol(db)
	case "track":
		return app.QueryTrack(db, id)
	case "tracks":
		return app.QueryTracksByArtist(db, artist)
	case "dispute":
		return app.QueryDispute(db, id)
	case "disputes":
		return app.QueryDisputesByTrack(db, id)
	case "balance":
		balance, err := app.QueryBalance(db, addr)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"address": addr, "balance": balance}, nil
	case "vault":
		vault, balance, err := app.QueryVault(db, id)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"track_id": id, "address": vault, "balance": balance}, nil
	case "nonce":
		nonce, err := app.QueryNonce(db, addr)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"address": addr, "nonce": nonce}, nil
	case "events":
		return journal.Since(db, after, event)
	default:
		return nil, fmt.Errorf("unknown query kind %q", kind)
	}
}
