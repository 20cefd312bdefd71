package runtime

import (
	"github.com/aretw0/mockcoach/pkg/domain"
)

var opPrefix = map[domain.Track]string{
	domain.TrackSetup:         "Setup",
	domain.TrackAssertion:     "Assert",
	domain.TrackNoInteraction: "AssertNoInteractions",
}

// opName builds the public operation name, e.g. ("setup", "TheRest") -> "SetupTheRest".
func opName(t domain.Track, verb string) string {
	return opPrefix[t] + verb
}

// runRange invokes callbacks [from, to) in ascending order and stops at the first failure.
func (e *Engine) runRange(tr *track, op string, from, to int) error {
	for i := from; i < to; i++ {
		if err := e.invoke(tr.name, op, i, tr.callbacks[i]); err != nil {
			return err
		}
	}
	return nil
}

// invoke runs one callback, reporting it to the hooks and wrapping its failure.
func (e *Engine) invoke(t domain.Track, op string, i int, fn func() error) error {
	start := e.now()
	event := &domain.CallbackEvent{
		EventBase: domain.EventBase{Timestamp: start, Type: domain.EventCallbackStart, Track: t, Op: op},
		Position:  i + 1,
	}
	if e.hooks.OnCallbackStart != nil {
		e.hooks.OnCallbackStart(event)
	}

	var err error
	if fn != nil {
		err = fn()
	}

	finished := e.now()
	if e.hooks.OnCallbackFinish != nil {
		e.hooks.OnCallbackFinish(&domain.CallbackEvent{
			EventBase: domain.EventBase{Timestamp: finished, Type: domain.EventCallbackFinish, Track: t, Op: op},
			Position:  i + 1,
			Duration:  finished.Sub(start),
			Err:       err,
		})
	}

	if err != nil {
		e.logger.Warn("callback failed", "track", t, "op", op, "position", i+1, "error", err)
		return &domain.CallbackError{Track: t, Op: op, Position: i + 1, Err: err}
	}
	return nil
}

func (e *Engine) openWindow(tr *track, op string, lastIndex int, inclusive bool) {
	tr.win = window{open: true, lastIndex: lastIndex, inclusive: inclusive}
	e.logger.Debug("window opened", "track", tr.name, "op", op, "last_index", lastIndex, "inclusive", inclusive)
	if e.hooks.OnWindowOpen != nil {
		e.hooks.OnWindowOpen(&domain.WindowEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventWindowOpen, Track: tr.name, Op: op},
			LastIndex: lastIndex,
			Inclusive: inclusive,
		})
	}
}

func (e *Engine) closeWindow(tr *track, op string) {
	closed := tr.win
	tr.win = window{}
	e.logger.Debug("window closed", "track", tr.name, "op", op, "last_index", closed.lastIndex)
	if e.hooks.OnWindowClose != nil {
		e.hooks.OnWindowClose(&domain.WindowEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventWindowClose, Track: tr.name, Op: op},
			LastIndex: closed.lastIndex,
			Inclusive: closed.inclusive,
		})
	}
}
