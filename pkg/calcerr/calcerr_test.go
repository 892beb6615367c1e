package calcerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorUnwrapsToKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     string
	}{
		{"Invalid", Invalid("principal", "must be positive"), ErrInvalidInput, KindInvalidInput},
		{"OutOfOrder", OutOfOrder("end", "before start"), ErrDateOutOfOrder, KindDateOutOfOrder},
		{"Degenerate", Degenerate("oldValue", "zero base"), ErrNumericDegenerate, KindNumericDegenerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			wrapped := fmt.Errorf("calculating: %w", tt.err)
			if KindOf(wrapped) != tt.kind {
				t.Errorf("KindOf(wrapped) = %q, expected %q", KindOf(wrapped), tt.kind)
			}
			if !IsCalculation(wrapped) {
				t.Error("IsCalculation(wrapped) = false, expected true")
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := Invalid("termMonths", "must be positive, got %d", -3)
	if got := err.Error(); got != "invalid input: termMonths: must be positive, got -3" {
		t.Errorf("Error() = %q", got)
	}

	noField := &Error{Kind: ErrNumericDegenerate, Msg: "overflow"}
	if got := noField.Error(); got != "numeric degenerate: overflow" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOfNonCalculationErrors(t *testing.T) {
	if KindOf(nil) != "" {
		t.Errorf("KindOf(nil) = %q, expected empty", KindOf(nil))
	}
	other := errors.New("disk full")
	if KindOf(other) != KindInternal {
		t.Errorf("KindOf(other) = %q, expected %q", KindOf(other), KindInternal)
	}
	if IsCalculation(other) || IsCalculation(nil) {
		t.Error("IsCalculation should be false for nil and internal errors")
	}
}
