package content

import (
	"errors"
	"testing"
)

func mustRecord(t *testing.T, doc string) Record {
	t.Helper()
	rec, err := DecodeRecord([]byte(doc))
	if err != nil {
		t.Fatalf("decode record: %v", err)
	}
	return rec
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !errors.Is(err, ErrContentValidation) {
		t.Fatalf("expected ErrContentValidation, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return verr
}
