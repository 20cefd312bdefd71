package runtime

import (
	"github.com/aretw0/mockcoach/pkg/domain"
)

// NoInteractionsTheRest calls the no-interaction predicate for every participant remaining after
// the assertion window. A loop's closing slot is not visited since its participant is the first one.
func (e *Engine) NoInteractionsTheRest() error {
	op := opName(domain.TrackNoInteraction, "TheRest")

	if err := e.requireNoInteraction(op); err != nil {
		return err
	}
	tr := e.assertion
	if !tr.win.open {
		return e.noWindow(domain.TrackAssertion, op)
	}
	from := tr.win.next()
	defer e.closeWindow(tr, op)

	return e.checkNoInteractions(op, from)
}

// NoInteractionsTheRestAfter calls the predicate for every participant after participant.
func (e *Engine) NoInteractionsTheRestAfter(participant any) error {
	op := opName(domain.TrackNoInteraction, "TheRestAfter")

	if err := e.requireNoInteraction(op); err != nil {
		return err
	}
	r, err := e.resolveRestTarget(domain.TrackNoInteraction, op, participant)
	if err != nil {
		return err
	}
	defer e.closeWindow(e.assertion, op)

	return e.checkNoInteractions(op, r+1)
}

func (e *Engine) checkNoInteractions(op string, from int) error {
	for i := from; i < e.index.Unique(); i++ {
		p := e.index.Participant(i)
		if err := e.invoke(domain.TrackNoInteraction, op, i, func() error { return e.noInteraction(p) }); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) requireNoInteraction(op string) error {
	if e.noInteraction != nil {
		return nil
	}
	return &domain.OpError{
		Op:   op,
		Err:  domain.ErrNoInteractionCheckerMissing,
		Hint: "register a predicate with WithNoInteraction",
	}
}
