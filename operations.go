package mockcoach

import (
	"github.com/aretw0/mockcoach/pkg/domain"
)

// SetupBefore runs the setups of the participants before participant.
// SetupTheRest continues from participant.
func (c *Coach) SetupBefore(participant any) error {
	return c.engine.Before(domain.TrackSetup, participant)
}

// SetupBeforeFirst opens the setup window at the start of a loop without running anything.
func (c *Coach) SetupBeforeFirst() error {
	return c.engine.BeforeFirst(domain.TrackSetup)
}

// SetupBeforeLast runs every setup of a loop except the closing one.
func (c *Coach) SetupBeforeLast() error {
	return c.engine.BeforeLast(domain.TrackSetup)
}

// SetupAll runs every setup in order.
func (c *Coach) SetupAll() error {
	return c.engine.All(domain.TrackSetup)
}

// SetupTheRest runs the setups remaining after the last SetupBefore* call.
func (c *Coach) SetupTheRest() error {
	return c.engine.TheRest(domain.TrackSetup)
}

// SetupTheRestAfter runs the setups after participant, skipping the ones in between.
func (c *Coach) SetupTheRestAfter(participant any) error {
	return c.engine.TheRestAfter(domain.TrackSetup, participant)
}

// AssertBefore runs the assertions of the participants before participant.
func (c *Coach) AssertBefore(participant any) error {
	return c.engine.Before(domain.TrackAssertion, participant)
}

// AssertThrough runs the assertions up to and including participant.
func (c *Coach) AssertThrough(participant any) error {
	return c.engine.Through(domain.TrackAssertion, participant)
}

// AssertBeforeFirst opens the assertion window at the start of a loop.
func (c *Coach) AssertBeforeFirst() error {
	return c.engine.BeforeFirst(domain.TrackAssertion)
}

// AssertBeforeLast runs every assertion of a loop except the closing one.
func (c *Coach) AssertBeforeLast() error {
	return c.engine.BeforeLast(domain.TrackAssertion)
}

// AssertThroughFirst runs the first assertion of a loop.
func (c *Coach) AssertThroughFirst() error {
	return c.engine.ThroughFirst(domain.TrackAssertion)
}

// AssertThroughLast runs every assertion of a loop.
func (c *Coach) AssertThroughLast() error {
	return c.engine.ThroughLast(domain.TrackAssertion)
}

// AssertAll runs every assertion in order.
func (c *Coach) AssertAll() error {
	return c.engine.All(domain.TrackAssertion)
}

// AssertTheRest runs the assertions remaining after the last AssertBefore*/AssertThrough* call.
func (c *Coach) AssertTheRest() error {
	return c.engine.TheRest(domain.TrackAssertion)
}

// AssertTheRestAfter runs the assertions after participant.
func (c *Coach) AssertTheRestAfter(participant any) error {
	return c.engine.TheRestAfter(domain.TrackAssertion, participant)
}

// AssertNoInteractionsTheRest checks that no participant after the assertion window was used.
func (c *Coach) AssertNoInteractionsTheRest() error {
	return c.engine.NoInteractionsTheRest()
}

// AssertNoInteractionsTheRestAfter checks that no participant after participant was used.
func (c *Coach) AssertNoInteractionsTheRestAfter(participant any) error {
	return c.engine.NoInteractionsTheRestAfter(participant)
}
