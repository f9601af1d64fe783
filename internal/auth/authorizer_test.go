package auth

import (
	"errors"
	"testing"
)

func TestSharedCodeAuthorize(t *testing.T) {
	a := NewSharedCode("Alpha#12345")

	if err := a.Authorize("Alpha#12345"); err != nil {
		t.Fatalf("exact match: %v", err)
	}
	// Codes are compared trimmed on both sides.
	if err := a.Authorize("  Alpha#12345\n"); err != nil {
		t.Fatalf("trimmed match: %v", err)
	}
	if err := a.Authorize("alpha#12345"); !errors.Is(err, ErrInvalidAccessCode) {
		t.Fatalf("case mismatch: err=%v", err)
	}
	if err := a.Authorize(""); !errors.Is(err, ErrMissingAccessCode) {
		t.Fatalf("empty code: err=%v", err)
	}
}

func TestSharedCodeTrimsConfiguredCode(t *testing.T) {
	a := NewSharedCode(" Alpha#12345 ")
	if err := a.Authorize("Alpha#12345"); err != nil {
		t.Fatalf("configured code should be trimmed: %v", err)
	}
}
