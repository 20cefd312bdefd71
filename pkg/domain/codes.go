package domain

import "errors"

var codes = []struct {
	code string
	err  error
}{
	{"shape_mismatch", ErrShapeMismatch},
	{"null_participant", ErrNullParticipant},
	{"duplicate_participant", ErrDuplicateParticipant},
	{"unsupported_participant_type", ErrUnsupportedParticipantType},
	{"unknown_participant", ErrUnknownParticipant},
	{"wrong_topology", ErrWrongTopology},
	// Precedes invalid_rest_target: a rest target naming a loop endpoint matches both.
	{"loop_endpoint_ambiguous", ErrLoopEndpointAmbiguous},
	{"invalid_rest_target", ErrInvalidRestTarget},
	{"no_open_window", ErrNoOpenWindow},
	{"stale_rest_target", ErrStaleRestTarget},
	{"no_interaction_checker_missing", ErrNoInteractionCheckerMissing},
	{"callback_failed", ErrCallbackFailed},
}

// ErrorCode returns a stable snake_case code for the first sentinel err matches, or "" if none.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// ErrorForCode returns the sentinel registered under code.
func ErrorForCode(code string) (error, bool) {
	for _, c := range codes {
		if c.code == code {
			return c.err, true
		}
	}
	return nil, false
}
