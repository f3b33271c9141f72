package errors

import "testing"

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("TrackID", ErrEmpty, "required"),
		Field("Recipients.1.Amount", ErrAmount, "must be positive"),
		nil,
	)

	if errs := FieldErrors(err, "TrackID"); len(errs) != 1 || !ErrEmpty.Is(errs[0]) {
		t.Fatalf("unexpected TrackID errors: %v", errs)
	}
	if errs := FieldErrors(err, "Recipients.1.Amount"); len(errs) != 1 || !ErrAmount.Is(errs[0]) {
		t.Fatalf("unexpected Recipients errors: %v", errs)
	}
	if errs := FieldErrors(err, "Title"); len(errs) != 0 {
		t.Fatalf("unexpected Title errors: %v", errs)
	}
	if errs := FieldErrors(Wrap(err, "wrapped"), "TrackID"); len(errs) != 1 {
		t.Fatalf("wrapping must not hide field errors: %v", errs)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	single := Wrap(ErrState, "single")
	if err := Append(nil, single); err != single {
		t.Fatalf("single error must be returned as is, got %v", err)
	}
	err := Append(Append(ErrState, ErrAmount), ErrInput)
	if n := len(err.(unpacker).Unpack()); n != 3 {
		t.Fatalf("want a flat list of 3 errors, got %d", n)
	}
	if got := AppendField(nil, "Title", nil); got != nil {
		t.Fatalf("want nil, got %v", got)
	}
}
