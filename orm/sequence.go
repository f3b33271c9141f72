package orm

import (
	"encoding/binary"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Sequence is a persistent counter stored under _s.<bucket>:<name>. Values
// are encoded big endian so that byte order matches numeric order and they
// can be used as keys.
type Sequence struct {
	key []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns the new value encoded.
func (s *Sequence) NextVal(db royalty.KVStore) ([]byte, error) {
	n, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// NextInt increments the counter and returns the new value. The first call
// returns 1.
func (s *Sequence) NextInt(db royalty.KVStore) (int64, error) {
	n, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return n, nil
}

// Latest returns the last value handed out, or 0.
func (s *Sequence) Latest(db royalty.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw), nil
}

func DecodeSequence(raw []byte) int64 {
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

func EncodeSequence(n int64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(n))
	return raw[:]
}
