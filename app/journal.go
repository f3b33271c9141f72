package app

import (
	"encoding/json"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
)

// JournalEntry is a committed event. Payload is the JSON encoding of the
// event.
type JournalEntry struct {
	Seq     int64            `json:"seq"`
	Height  int64            `json:"height"`
	Time    royalty.UnixTime `json:"time"`
	Kind    string           `json:"kind"`
	Payload json.RawMessage  `json:"payload"`
}

var _ orm.Model = (*JournalEntry)(nil)

func (e *JournalEntry) Validate() error {
	var errs error
	if e.Seq <= 0 {
		errs = errors.Append(errs, errors.Field("Seq", errors.ErrInput, "must be positive"))
	}
	if e.Kind == "" {
		errs = errors.Append(errs, errors.Field("Kind", errors.ErrEmpty, "required"))
	}
	if !json.Valid(e.Payload) {
		errs = errors.Append(errs, errors.Field("Payload", errors.ErrInput, "invalid json"))
	}
	return errs
}

// Journal keeps every event produced by delivered messages and ticks, in
// the order they were produced.
type Journal struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewJournal returns a journal using the "journal" bucket.
func NewJournal() Journal {
	return Journal{
		bucket: orm.NewModelBucket("journal", &JournalEntry{}),
		seq:    orm.NewSequence("journal", "id"),
	}
}

// Record appends events to the journal.
func (j Journal) Record(db royalty.KVStore, height int64, now royalty.UnixTime, events []royalty.Event) error {
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "encode %s: %s", ev.Kind(), err)
		}
		key, err := j.seq.NextVal(db)
		if err != nil {
			return errors.Wrap(err, "journal sequence")
		}
		entry := &JournalEntry{
			Seq:     orm.DecodeSequence(key),
			Height:  height,
			Time:    now,
			Kind:    ev.Kind(),
			Payload: payload,
		}
		if err := j.bucket.Put(db, key, entry); err != nil {
			return errors.Wrap(err, "journal entry")
		}
	}
	return nil
}

// Since returns entries with a sequence greater than after. A kind other
// than empty string limits the result to events of that kind.
func (j Journal) Since(db royalty.ReadOnlyKVStore, after int64, kind string) ([]*JournalEntry, error) {
	var entries []*JournalEntry
	err := j.bucket.Iterate(db, func(key []byte, m orm.Model) error {
		e := m.(*JournalEntry)
		if e.Seq <= after {
			return nil
		}
		if kind != "" && e.Kind != kind {
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate journal")
	}
	return entries, nil
}
