package app

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/dispute"
	"github.com/iov-one/royalty/x/distribution"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/sigs"
	"github.com/iov-one/royalty/x/track"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction format accepted by the application. It carries a
// single message and the signatures authorizing it.
type Tx struct {
	Msg        royalty.Msg          `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

var _ royalty.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg royalty.Msg) *Tx {
	return &Tx{Msg: msg}
}

func (tx *Tx) GetMsg() (royalty.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the binary representation of the transaction
// without its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(Tx{Msg: tx.Msg})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Sign appends a signature of given key. The sequence must be the next
// nonce of the signer.
func (tx *Tx) Sign(key *crypto.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// Marshal returns the binary representation of the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// DecodeTx parses the binary representation of a transaction.
func DecodeTx(raw []byte) (*Tx, error) {
	var tx Tx
	if err := cdc.UnmarshalBinaryBare(raw, &tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	return &tx, nil
}

var cdc = newCodec()

// newCodec returns an amino codec aware of every message the application
// routes.
func newCodec() *amino.Codec {
	c := amino.NewCodec()
	c.RegisterInterface((*royalty.Msg)(nil), nil)
	c.RegisterConcrete(&cash.SendMsg{}, "royalty/cash/send", nil)
	c.RegisterConcrete(&sigs.BumpSequenceMsg{}, "royalty/sigs/bump_sequence", nil)
	c.RegisterConcrete(&protocol.InitializeMsg{}, "royalty/protocol/initialize", nil)
	c.RegisterConcrete(&protocol.UpdateFeeMsg{}, "royalty/protocol/update_fee", nil)
	c.RegisterConcrete(&track.CreateTrackMsg{}, "royalty/track/create", nil)
	c.RegisterConcrete(&track.UpdateStreamingDataMsg{}, "royalty/track/update_streaming_data", nil)
	c.RegisterConcrete(&track.SetStatusMsg{}, "royalty/track/set_status", nil)
	c.RegisterConcrete(&distribution.DistributeMsg{}, "royalty/distribution/distribute", nil)
	c.RegisterConcrete(&distribution.BatchDistributeMsg{}, "royalty/distribution/batch_distribute", nil)
	c.RegisterConcrete(&distribution.AutoDistributeMsg{}, "royalty/distribution/auto_distribute", nil)
	c.RegisterConcrete(&dispute.CreateDisputeMsg{}, "royalty/dispute/create", nil)
	c.RegisterConcrete(&dispute.ResolveDisputeMsg{}, "royalty/dispute/resolve", nil)
	dispute.RegisterCodec(c)
	c.Seal()
	return c
}
