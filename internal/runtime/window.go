package runtime

import (
	"fmt"

	"github.com/aretw0/mockcoach/pkg/domain"
)

// Before runs the callbacks before participant and opens the track's window at it.
func (e *Engine) Before(t domain.Track, participant any) error {
	tr := e.track(t)
	op := opName(t, "Before")

	k, err := e.resolve(op, participant, endpointHint(t, "BeforeFirst()", "BeforeLast()"))
	if err != nil {
		return err
	}
	return e.runAndOpen(tr, op, 0, k, k, false)
}

// Through runs the callbacks up to and including participant and opens the window at it.
func (e *Engine) Through(t domain.Track, participant any) error {
	tr := e.track(t)
	op := opName(t, "Through")

	k, err := e.resolve(op, participant, endpointHint(t, "ThroughFirst()", "ThroughLast()"))
	if err != nil {
		return err
	}
	return e.runAndOpen(tr, op, 0, k+1, k, true)
}

// BeforeFirst opens the window at the loop endpoint without running anything.
func (e *Engine) BeforeFirst(t domain.Track) error {
	tr := e.track(t)
	op := opName(t, "BeforeFirst")

	if err := e.requireLoop(op, opName(t, "Before")+"(<first participant>)"); err != nil {
		return err
	}
	e.openWindow(tr, op, 0, false)
	return nil
}

// BeforeLast runs every callback except the closing one. It leaves the continuation state
// untouched, so a following rest call still needs a window opened elsewhere.
func (e *Engine) BeforeLast(t domain.Track) error {
	tr := e.track(t)
	op := opName(t, "BeforeLast")

	if err := e.requireLoop(op, opName(t, "Before")+"(<last participant>)"); err != nil {
		return err
	}
	return e.runRange(tr, op, 0, e.index.Len()-1)
}

// ThroughFirst runs the first callback and opens the window after it.
func (e *Engine) ThroughFirst(t domain.Track) error {
	tr := e.track(t)
	op := opName(t, "ThroughFirst")

	if err := e.requireLoop(op, opName(t, "Through")+"(<first participant>)"); err != nil {
		return err
	}
	return e.runAndOpen(tr, op, 0, 1, 0, true)
}

// ThroughLast runs every callback. It is All spelled for loops.
func (e *Engine) ThroughLast(t domain.Track) error {
	op := opName(t, "ThroughLast")

	if err := e.requireLoop(op, opName(t, "Through")+"(<last participant>)"); err != nil {
		return err
	}
	return e.runRange(e.track(t), op, 0, e.index.Len())
}

// All runs every callback of the track. Continuation state is left untouched.
func (e *Engine) All(t domain.Track) error {
	return e.runRange(e.track(t), opName(t, "All"), 0, e.index.Len())
}

// TheRest resumes from the open window and runs the remaining callbacks.
// The window is consumed even if a callback fails.
func (e *Engine) TheRest(t domain.Track) error {
	tr := e.track(t)
	op := opName(t, "TheRest")

	if !tr.win.open {
		return e.noWindow(t, op)
	}
	from := tr.win.next()
	defer e.closeWindow(tr, op)

	return e.runRange(tr, op, from, e.index.Len())
}

// TheRestAfter runs the callbacks after participant, which must not be before the open window.
// The window is consumed once the callbacks start running.
func (e *Engine) TheRestAfter(t domain.Track, participant any) error {
	tr := e.track(t)
	op := opName(t, "TheRestAfter")

	r, err := e.resolveRestTarget(t, op, participant)
	if err != nil {
		return err
	}
	defer e.closeWindow(tr, op)

	return e.runRange(tr, op, r+1, e.index.Len())
}

// runAndOpen runs [from, to) and opens the window at lastIndex. The window is opened even when
// a callback fails, so a later rest call resumes from the requested position.
func (e *Engine) runAndOpen(tr *track, op string, from, to, lastIndex int, inclusive bool) error {
	err := e.runRange(tr, op, from, to)
	e.openWindow(tr, op, lastIndex, inclusive)
	return err
}

// resolve maps participant to its position, refusing the loop endpoint.
func (e *Engine) resolve(op string, participant any, hint string) (int, error) {
	if e.index.IsEndpoint(participant) {
		return 0, &domain.OpError{Op: op, Err: domain.ErrLoopEndpointAmbiguous, Hint: hint}
	}
	k, ok := e.index.Position(participant)
	if !ok {
		return 0, &domain.OpError{Op: op, Err: domain.ErrUnknownParticipant}
	}
	return k, nil
}

// resolveRestTarget validates the argument of a rest-after call against the chain and the window.
func (e *Engine) resolveRestTarget(t domain.Track, op string, participant any) (int, error) {
	rest := opName(t, "TheRest()")
	if t == domain.TrackNoInteraction {
		t = domain.TrackAssertion
	}

	if e.index.IsEndpoint(participant) {
		return 0, &domain.OpError{
			Op:   op,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidRestTarget, domain.ErrLoopEndpointAmbiguous),
			Hint: fmt.Sprintf("use %s to run after the first participant, or omit the call for the last", rest),
		}
	}
	if e.index.IsLast(participant) {
		return 0, &domain.OpError{
			Op:   op,
			Err:  domain.ErrInvalidRestTarget,
			Hint: "nothing runs after the last participant, omit the call",
		}
	}
	r, ok := e.index.Position(participant)
	if !ok {
		return 0, &domain.OpError{Op: op, Err: domain.ErrUnknownParticipant}
	}

	tr := e.track(t)
	if !tr.win.open {
		return 0, e.noWindow(t, op)
	}
	if r < tr.win.lastIndex {
		return 0, &domain.OpError{
			Op:   op,
			Err:  domain.ErrStaleRestTarget,
			Hint: fmt.Sprintf("participant %d is before the window opened at participant %d", r+1, tr.win.lastIndex+1),
		}
	}
	return r, nil
}

func (e *Engine) requireLoop(op, pathHint string) error {
	if e.index.IsLoop() || e.index.IsSingleton() {
		return nil
	}
	return &domain.OpError{
		Op:   op,
		Err:  domain.ErrWrongTopology,
		Hint: fmt.Sprintf("chain is a %s, use %s", e.index.Topology(), pathHint),
	}
}

func (e *Engine) noWindow(t domain.Track, op string) error {
	if t == domain.TrackSetup {
		return &domain.OpError{Op: op, Err: domain.ErrNoOpenWindow, Hint: "call SetupBefore(participant) or SetupBeforeFirst() first"}
	}
	return &domain.OpError{Op: op, Err: domain.ErrNoOpenWindow, Hint: "call AssertBefore/AssertThrough(participant) or AssertBeforeFirst()/AssertThroughFirst() first"}
}

func endpointHint(t domain.Track, first, last string) string {
	return fmt.Sprintf("for loops use %s or %s", opName(t, first), opName(t, last))
}
