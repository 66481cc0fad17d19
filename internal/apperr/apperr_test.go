package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{InvalidState("wrong phase"), http.StatusConflict},
		{SequenceMismatch("out of order"), http.StatusConflict},
		{Exhausted("bank empty"), http.StatusServiceUnavailable},
		{EvaluationUnavailable(nil, "model down"), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRetryableClassification(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{EvaluationUnavailable(nil, "model down"), true},
		{Exhausted("bank empty"), true},
		{InvalidInput("bad"), false},
		{NotFound("missing"), false},
		{InvalidState("wrong phase"), false},
		{SequenceMismatch("out of order"), false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := Retryable(tt.err); got != tt.want {
			t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := NotFound("interview 5 not found")
	wrapped := fmt.Errorf("loading session: %w", inner)

	if !Is(wrapped, CodeNotFound) {
		t.Error("wrapped error should still match its code")
	}
	if got := HTTPStatus(wrapped); got != http.StatusNotFound {
		t.Errorf("HTTPStatus(wrapped) = %d, want %d", got, http.StatusNotFound)
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := EvaluationUnavailable(cause, "evaluator call failed")
	if !errors.Is(err, cause) {
		t.Error("EvaluationUnavailable should wrap its cause")
	}
}
