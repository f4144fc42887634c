package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "edge references unknown vertex %q", "v9")

	if err.Code != ErrCodeInvalidGraph {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGraph)
	}
	if err.Message != `edge references unknown vertex "v9"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_GRAPH: edge references unknown vertex "v9"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeStorage, cause, "failed to load quilt")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeQuiltNotFound, "quilt %s not found", "abc")

	if !Is(err, ErrCodeQuiltNotFound) {
		t.Error("Is with matching code = false, want true")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is with wrong code = true, want false")
	}
	if Is(errors.New("plain"), ErrCodeInternal) {
		t.Error("Is with plain error = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "took too long")); got != ErrCodeTimeout {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidImage, "unsupported image type")
	if got := UserMessage(err); got != "unsupported image type" {
		t.Errorf("UserMessage = %v", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage on plain error = %v", got)
	}
}

func TestNestedWrap(t *testing.T) {
	inner := New(ErrCodeQuiltNotFound, "quilt missing")
	outer := Wrap(ErrCodeInternal, inner, "handler failed")

	// errors.As finds the outermost *Error first.
	if code := GetCode(outer); code != ErrCodeInternal {
		t.Errorf("GetCode = %v, want %v", code, ErrCodeInternal)
	}
	if !errors.Is(outer, inner) {
		t.Error("errors.Is should see the inner error through the chain")
	}
}
