package domain

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when the participant list is nil, empty, or not as long as
// the callback lists.
var ErrShapeMismatch = errors.New("participants/setups/assertions shape mismatch")

// ErrNullParticipant is returned when a participant is nil.
var ErrNullParticipant = errors.New("participant cannot be nil")

// ErrDuplicateParticipant is returned when a participant repeats anywhere other than the closing
// position of a loop.
var ErrDuplicateParticipant = errors.New("participant is the same as a previous participant")

// ErrUnsupportedParticipantType is returned when a participant cannot carry an identity, or
// belongs to a category the validation profile disallows.
var ErrUnsupportedParticipantType = errors.New("unsupported participant type")

// ErrUnknownParticipant is returned when an operation names a participant that is not in the chain.
var ErrUnknownParticipant = errors.New("participant not in chain")

// ErrWrongTopology is returned when a first/last operation is used on a path.
var ErrWrongTopology = errors.New("operation not valid for chain topology")

// ErrLoopEndpointAmbiguous is returned when the shared endpoint of a loop is passed to an
// operation that resolves participants by position.
var ErrLoopEndpointAmbiguous = errors.New("loop endpoint is ambiguous")

// ErrNoOpenWindow is returned by the rest operations when no before/through call opened a window.
var ErrNoOpenWindow = errors.New("no open window")

// ErrInvalidRestTarget is returned when a rest-after operation names the loop endpoint or the
// last participant.
var ErrInvalidRestTarget = errors.New("invalid rest target")

// ErrStaleRestTarget is returned when a rest-after operation names a participant located before
// the open window.
var ErrStaleRestTarget = errors.New("rest target is before the open window")

// ErrNoInteractionCheckerMissing is returned when a no-interaction operation is used before a
// predicate was registered.
var ErrNoInteractionCheckerMissing = errors.New("no-interaction checker not registered")

// ErrCallbackFailed matches every *CallbackError.
var ErrCallbackFailed = errors.New("callback failed")

// ValidationError describes a participant rejected at construction time.
type ValidationError struct {
	Position int    // 1-based position in the participant list, 0 for list-level failures
	Reason   string // Human-readable reason for failure
	Value    any    // The participant that failed validation
	Err      error  // Sentinel classifying the failure
}

func (e *ValidationError) Error() string {
	if e.Position == 0 {
		return fmt.Sprintf("%s: %s", e.Err, e.Reason)
	}
	if e.Value == nil {
		return fmt.Sprintf("participant %d: %s", e.Position, e.Reason)
	}
	return fmt.Sprintf("participant %d: %s (got %T)", e.Position, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// OpError reports misuse of a chain operation.
type OpError struct {
	Op   string // Operation name, e.g. "AssertTheRestAfter"
	Err  error  // Sentinel classifying the misuse
	Hint string // Optional suggestion naming the operation to use instead
}

func (e *OpError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Hint)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// CallbackError wraps the failure raised by a user-supplied callback or predicate.
type CallbackError struct {
	Track    Track  // Track that ran the callback
	Op       string // Operation that was running
	Position int    // 1-based position of the callback
	Err      error  // Failure returned by the callback
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s callback %d failed during %s: %v", e.Track, e.Position, e.Op, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// Is reports ErrCallbackFailed as a match so callers can classify without errors.As.
func (e *CallbackError) Is(target error) bool {
	return target == ErrCallbackFailed
}
