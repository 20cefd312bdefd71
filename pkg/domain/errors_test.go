package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCallbackError(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", &CallbackError{Track: TrackAssertion, Op: "AssertAll", Position: 2, Err: cause})

	if !errors.Is(err, ErrCallbackFailed) {
		t.Error("expected ErrCallbackFailed match")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}

	var cbErr *CallbackError
	if !errors.As(err, &cbErr) {
		t.Fatal("expected *CallbackError")
	}
	if cbErr.Position != 2 || cbErr.Track != TrackAssertion {
		t.Errorf("unexpected fields: %+v", cbErr)
	}
	if !strings.Contains(err.Error(), "assertion callback 2 failed") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestOpError(t *testing.T) {
	err := &OpError{
		Op:   "SetupTheRestAfter",
		Err:  fmt.Errorf("%w: %w", ErrInvalidRestTarget, ErrLoopEndpointAmbiguous),
		Hint: "use SetupTheRest()",
	}

	if !errors.Is(err, ErrInvalidRestTarget) || !errors.Is(err, ErrLoopEndpointAmbiguous) {
		t.Error("expected both sentinels to match")
	}
	if !strings.HasPrefix(err.Error(), "SetupTheRestAfter: ") || !strings.HasSuffix(err.Error(), "use SetupTheRest()") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "list level",
			err:  &ValidationError{Reason: "participants cannot be empty", Err: ErrShapeMismatch},
			want: "participants/setups/assertions shape mismatch: participants cannot be empty",
		},
		{
			name: "nil participant",
			err:  &ValidationError{Position: 2, Reason: "cannot be nil", Err: ErrNullParticipant},
			want: "participant 2: cannot be nil",
		},
		{
			name: "typed value",
			err:  &ValidationError{Position: 1, Reason: "text participants are not allowed", Value: "svc", Err: ErrUnsupportedParticipantType},
			want: "participant 1: text participants are not allowed (got string)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, tt.err.Err) {
				t.Error("expected sentinel match")
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	both := &OpError{Op: "AssertTheRestAfter", Err: fmt.Errorf("%w: %w", ErrInvalidRestTarget, ErrLoopEndpointAmbiguous)}
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("other"), ""},
		{&OpError{Op: "SetupTheRest", Err: ErrNoOpenWindow}, "no_open_window"},
		{&CallbackError{Track: TrackSetup, Err: errors.New("boom")}, "callback_failed"},
		{both, "loop_endpoint_ambiguous"},
	}
	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	if err, ok := ErrorForCode("stale_rest_target"); !ok || err != ErrStaleRestTarget {
		t.Errorf("ErrorForCode(stale_rest_target) = %v, %v", err, ok)
	}
	if _, ok := ErrorForCode("nope"); ok {
		t.Error("expected unknown code")
	}
}
