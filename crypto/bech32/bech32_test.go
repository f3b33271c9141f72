package bech32

import (
	"bytes"
	"testing"

	"github.com/iov-one/royalty/errors"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	raw, err := Encode("roy", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if !bytes.HasPrefix(raw, []byte("roy1")) {
		t.Fatalf("unexpected representation: %s", raw)
	}
	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "roy" || !bytes.Equal(got, payload) {
		t.Fatalf("unexpected result: %q %X", hrp, got)
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := Encode("", []byte{1}); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty hrp error, got %v", err)
	}
	if _, _, err := Decode("roy1invalidchecksum"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %v", err)
	}
}
