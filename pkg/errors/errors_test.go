package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidSpec, "missing topic"),
			want: "INVALID_SPEC: missing topic",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInternal, stderrors.New("boom"), "layout failed"),
			want: "INTERNAL_ERROR: layout failed: boom",
		},
		{
			name: "Formatted",
			err:  New(ErrCodeInvalidStrategy, "unknown strategy %q", "spiral"),
			want: `INVALID_STRATEGY: unknown strategy "spiral"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidSpec, "bad spec")

	if !Is(err, ErrCodeInvalidSpec) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() = true, want false for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidSpec) {
		t.Error("Is() = true, want false for non-structured error")
	}

	// Wrapped errors should still match by code.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeInvalidSpec) {
		t.Error("Is() = false, want true for wrapped structured error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "wrapper")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDiagramNotFound, "gone")); got != ErrCodeDiagramNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeDiagramNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidSpec, "missing topic")); got != "missing topic" {
		t.Errorf("UserMessage() = %q, want %q", got, "missing topic")
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain failure")
	}
}
