package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// node is the application opened on the state in the home directory.
type node struct {
	app   *app.Application
	store iavl.CommitStore
}

func openNode(nf *nodeFlags) (*node, error) {
	logger, err := newLogger(os.Stderr, *nf.logLevel)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(*nf.home, 0700); err != nil {
		return nil, fmt.Errorf("cannot create home directory: %s", err)
	}
	st := iavl.NewCommitStore(filepath.Join(*nf.home, "data"), "royalty")
	a, err := app.NewRoyaltyApp(st, logger.With("module", "royaltyd"))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("cannot open application: %s", err)
	}
	return &node{app: a, store: st}, nil
}

func (n *node) Close() {
	n.store.Close()
}

// newLogger returns a tendermint logger writing to w, filtered by level.
func newLogger(w io.Writer, level string) (log.Logger, error) {
	if level == "none" {
		return log.NewNopLogger(), nil
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), opt), nil
}

// readKey loads the raw ed25519 private key written by keygen.
func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

// deliverMsg signs the message with the key owner, delivers it at the block
// time and commits the result.
func deliverMsg(out io.Writer, nf *nodeFlags, msg royalty.Msg) error {
	key, err := readKey(nf.keyPath())
	if err != nil {
		return err
	}
	n, err := openNode(nf)
	if err != nil {
		return err
	}
	defer n.Close()

	chainID := n.app.ChainID()
	if chainID == "" {
		return fmt.Errorf("state in %q is not initialized, run init first", *nf.home)
	}
	nonce, err := app.QueryNonce(n.app.ReadStore(), key.PublicKey().Address())
	if err != nil {
		return fmt.Errorf("cannot get nonce: %s", err)
	}
	tx := app.NewTx(msg)
	if err := tx.Sign(key, chainID, nonce); err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	res, err := n.app.Deliver(nf.now(), tx)
	if err != nil {
		return fmt.Errorf("%s: %s", msg.Path(), err)
	}
	if _, err := n.app.Commit(); err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	if err := writeEvents(out, res.Events); err != nil {
		return err
	}
	if len(res.Data) == 0 && res.Log == "" {
		return nil
	}
	return writeJSON(out, struct {
		Data string `json:"data,omitempty"`
		Log  string `json:"log,omitempty"`
	}{Data: string(res.Data), Log: res.Log})
}

// writeEvents prints one JSON document per event.
func writeEvents(out io.Writer, events []royalty.Event) error {
	for _, ev := range events {
		doc := struct {
			Kind  string        `json:"kind"`
			Event royalty.Event `json:"event"`
		}{Kind: ev.Kind(), Event: ev}
		if err := writeJSON(out, doc); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
