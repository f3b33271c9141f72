package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/errors"
)

// SignCodeV1 prefixes every signed payload. Changing the layout of the
// payload requires a new code.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks every signature of tx and bumps the nonce of
// each signer. It returns the signer conditions in signature order.
func VerifyTxSignatures(db royalty.KVStore, tx SignedTx, chainID string) ([]royalty.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	var signers []royalty.Condition
	for i, sig := range tx.GetSignatures() {
		cond, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// VerifySignature checks a single signature over payload. The signer record
// is created on first use and its sequence must match the signature.
func VerifySignature(db royalty.KVStore, sig *StdSignature, payload []byte, chainID string) (royalty.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	b := NewBucket()
	user, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := b.Save(db, user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest of
//
//	SignCodeV1 | uint8 len(chainID) | chainID | int64 big endian seq | payload
//
// which is what a key signs.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !royalty.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	var buf bytes.Buffer
	buf.Write(SignCodeV1)
	buf.WriteByte(uint8(len(chainID)))
	buf.WriteString(chainID)
	if err := binary.Write(&buf, binary.BigEndian, seq); err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	buf.Write(payload)

	digest := sha512.Sum512(buf.Bytes())
	return digest[:], nil
}

// SignTx signs tx with the given key for the seq nonce on chainID.
func SignTx(key *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	digest, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	raw, err := key.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Pubkey:    key.PublicKey(),
		Signature: raw,
		Sequence:  seq,
	}, nil
}

// NextNonce returns the sequence the next signature of signer must carry.
// Unknown signers start at zero.
func NextNonce(db royalty.ReadOnlyKVStore, signer royalty.Address) (int64, error) {
	var u UserData
	err := NewBucket().One(db, signer, &u)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "load signer")
	}
	return u.Sequence, nil
}
