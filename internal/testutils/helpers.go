package testutils

import (
	"fmt"
	"testing"

	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Mock is a named participant. Distinct *Mock values are distinct participants even when their
// names are equal.
type Mock struct {
	Name string
}

func (m *Mock) String() string {
	return m.Name
}

// Mocks returns n fresh participants named m1..mn.
func Mocks(n int) []*Mock {
	out := make([]*Mock, n)
	for i := range out {
		out[i] = &Mock{Name: fmt.Sprintf("m%d", i+1)}
	}
	return out
}

// Participants converts mocks into a participant list.
func Participants(mocks ...*Mock) []any {
	out := make([]any, len(mocks))
	for i, m := range mocks {
		out[i] = m
	}
	return out
}

// Recorder builds callbacks that log their invocations, so tests can compare the exact order
// in which a chain ran them.
type Recorder struct {
	Calls []string
	fail  map[string]error
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{fail: make(map[string]error)}
}

// FailAt makes the callback recorded under track/position (1-based) return err.
func (r *Recorder) FailAt(track domain.Track, position int, err error) {
	r.fail[key(track, position)] = err
}

// Callbacks returns n callbacks for track, recording "track:position" on each call.
func (r *Recorder) Callbacks(track domain.Track, n int) []domain.Callback {
	out := make([]domain.Callback, n)
	for i := range out {
		k := key(track, i+1)
		out[i] = func() error {
			r.Calls = append(r.Calls, k)
			return r.fail[k]
		}
	}
	return out
}

// NoInteraction returns a predicate recording "no-interaction:name" for *Mock participants.
func (r *Recorder) NoInteraction() domain.NoInteractionFunc {
	return func(p any) error {
		k := fmt.Sprintf("%s:%v", domain.TrackNoInteraction, p)
		r.Calls = append(r.Calls, k)
		return r.fail[k]
	}
}

// FailNoInteraction makes the predicate fail for the participant with the given name.
func (r *Recorder) FailNoInteraction(name string, err error) {
	r.fail[fmt.Sprintf("%s:%s", domain.TrackNoInteraction, name)] = err
}

// Reset forgets recorded calls but keeps configured failures.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Expect lists "track:position" keys for the given 1-based positions.
func Expect(track domain.Track, positions ...int) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = key(track, p)
	}
	return out
}

// RequireCalls fails the test unless the recorder saw exactly want, in order.
func (r *Recorder) RequireCalls(t *testing.T, want ...string) {
	t.Helper()
	if len(want) == 0 {
		require.Empty(t, r.Calls)
		return
	}
	require.Equal(t, want, r.Calls)
}

func key(track domain.Track, position int) string {
	return fmt.Sprintf("%s:%d", track, position)
}
