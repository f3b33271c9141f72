package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/royalty/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("distribute track-1")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("other"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
	assert.False(t, (&PublicKey{Ed25519: []byte{1}}).Verify(msg, sig))

	_, err = (&PrivateKey{Ed25519: []byte{1, 2}}).Sign(msg)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestCondition(t *testing.T) {
	pub := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{7}, 32)).PublicKey()
	cond := pub.Condition()
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, pub.Ed25519, data)
	assert.Equal(t, cond.Address(), pub.Address())
}

func TestDerivePrivateKey(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 64)

	a, err := DerivePrivateKey(seed, "m/44'/234'/0'")
	require.NoError(t, err)
	b, err := DerivePrivateKey(seed, "m/44'/234'/0'")
	require.NoError(t, err)
	c, err := DerivePrivateKey(seed, "m/44'/234'/1'")
	require.NoError(t, err)

	assert.Equal(t, a.Ed25519, b.Ed25519, "derivation must be deterministic")
	assert.NotEqual(t, a.Ed25519, c.Ed25519)

	_, err = DerivePrivateKey(seed, "not a path")
	assert.True(t, errors.ErrInput.Is(err))
}
