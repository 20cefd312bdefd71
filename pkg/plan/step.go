package plan

import (
	"fmt"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/pkg/domain"
)

// Op names a coach operation.
type Op string

const (
	OpSetupBefore                      Op = "SetupBefore"
	OpSetupBeforeFirst                 Op = "SetupBeforeFirst"
	OpSetupBeforeLast                  Op = "SetupBeforeLast"
	OpSetupAll                         Op = "SetupAll"
	OpSetupTheRest                     Op = "SetupTheRest"
	OpSetupTheRestAfter                Op = "SetupTheRestAfter"
	OpAssertBefore                     Op = "AssertBefore"
	OpAssertThrough                    Op = "AssertThrough"
	OpAssertBeforeFirst                Op = "AssertBeforeFirst"
	OpAssertBeforeLast                 Op = "AssertBeforeLast"
	OpAssertThroughFirst               Op = "AssertThroughFirst"
	OpAssertThroughLast                Op = "AssertThroughLast"
	OpAssertAll                        Op = "AssertAll"
	OpAssertTheRest                    Op = "AssertTheRest"
	OpAssertTheRestAfter               Op = "AssertTheRestAfter"
	OpAssertNoInteractionsTheRest      Op = "AssertNoInteractionsTheRest"
	OpAssertNoInteractionsTheRestAfter Op = "AssertNoInteractionsTheRestAfter"
)

type opSpec struct {
	track  domain.Track
	target bool
	call   func(c *mockcoach.Coach, p any) error
}

var ops = map[Op]opSpec{
	OpSetupBefore:       {domain.TrackSetup, true, func(c *mockcoach.Coach, p any) error { return c.SetupBefore(p) }},
	OpSetupBeforeFirst:  {domain.TrackSetup, false, func(c *mockcoach.Coach, _ any) error { return c.SetupBeforeFirst() }},
	OpSetupBeforeLast:   {domain.TrackSetup, false, func(c *mockcoach.Coach, _ any) error { return c.SetupBeforeLast() }},
	OpSetupAll:          {domain.TrackSetup, false, func(c *mockcoach.Coach, _ any) error { return c.SetupAll() }},
	OpSetupTheRest:      {domain.TrackSetup, false, func(c *mockcoach.Coach, _ any) error { return c.SetupTheRest() }},
	OpSetupTheRestAfter: {domain.TrackSetup, true, func(c *mockcoach.Coach, p any) error { return c.SetupTheRestAfter(p) }},

	OpAssertBefore:       {domain.TrackAssertion, true, func(c *mockcoach.Coach, p any) error { return c.AssertBefore(p) }},
	OpAssertThrough:      {domain.TrackAssertion, true, func(c *mockcoach.Coach, p any) error { return c.AssertThrough(p) }},
	OpAssertBeforeFirst:  {domain.TrackAssertion, false, func(c *mockcoach.Coach, _ any) error { return c.AssertBeforeFirst() }},
	OpAssertBeforeLast:   {domain.TrackAssertion, false, func(c *mockcoach.Coach, _ any) error { return c.AssertBeforeLast() }},
	OpAssertThroughFirst: {domain.TrackAssertion, false, func(c *mockcoach.Coach, _ any) error { return c.AssertThroughFirst() }},
	OpAssertThroughLast:  {domain.TrackAssertion, false, func(c *mockcoach.Coach, _ any) error { return c.AssertThroughLast() }},
	OpAssertAll:          {domain.TrackAssertion, false, func(c *mockcoach.Coach, _ any) error { return c.AssertAll() }},
	OpAssertTheRest:      {domain.TrackAssertion, false, func(c *mockcoach.Coach, _ any) error { return c.AssertTheRest() }},
	OpAssertTheRestAfter: {domain.TrackAssertion, true, func(c *mockcoach.Coach, p any) error { return c.AssertTheRestAfter(p) }},

	OpAssertNoInteractionsTheRest: {domain.TrackNoInteraction, false, func(c *mockcoach.Coach, _ any) error {
		return c.AssertNoInteractionsTheRest()
	}},
	OpAssertNoInteractionsTheRestAfter: {domain.TrackNoInteraction, true, func(c *mockcoach.Coach, p any) error {
		return c.AssertNoInteractionsTheRestAfter(p)
	}},
}

// Valid reports whether op is a known operation.
func (op Op) Valid() bool {
	_, ok := ops[op]
	return ok
}

// TakesParticipant reports whether op is called with a participant argument.
func (op Op) TakesParticipant() bool {
	return ops[op].target
}

// Track returns the callback track op runs on.
func (op Op) Track() domain.Track {
	return ops[op].track
}

// Ops lists every operation in declaration order.
func Ops() []Op {
	return []Op{
		OpSetupBefore, OpSetupBeforeFirst, OpSetupBeforeLast, OpSetupAll, OpSetupTheRest, OpSetupTheRestAfter,
		OpAssertBefore, OpAssertThrough, OpAssertBeforeFirst, OpAssertBeforeLast, OpAssertThroughFirst,
		OpAssertThroughLast, OpAssertAll, OpAssertTheRest, OpAssertTheRestAfter,
		OpAssertNoInteractionsTheRest, OpAssertNoInteractionsTheRestAfter,
	}
}

// Step is one coach operation held as a value, so a test can list the calls it makes as data
// and apply them later with In.
type Step struct {
	Op          Op
	Participant any
}

// In applies the step to coach.
func (s Step) In(coach *mockcoach.Coach) error {
	spec, ok := ops[s.Op]
	if !ok {
		return fmt.Errorf("unknown operation %q", s.Op)
	}
	return spec.call(coach, s.Participant)
}

func (s Step) String() string {
	if s.Op.TakesParticipant() {
		return fmt.Sprintf("%s(%v)", s.Op, s.Participant)
	}
	return string(s.Op) + "()"
}

// Run applies steps in order and stops at the first failing one.
func Run(coach *mockcoach.Coach, steps ...Step) error {
	for i, s := range steps {
		if err := s.In(coach); err != nil {
			return fmt.Errorf("step %d %s: %w", i+1, s, err)
		}
	}
	return nil
}

func SetupBefore(p any) Step       { return Step{Op: OpSetupBefore, Participant: p} }
func SetupBeforeFirst() Step       { return Step{Op: OpSetupBeforeFirst} }
func SetupBeforeLast() Step        { return Step{Op: OpSetupBeforeLast} }
func SetupAll() Step               { return Step{Op: OpSetupAll} }
func SetupTheRest() Step           { return Step{Op: OpSetupTheRest} }
func SetupTheRestAfter(p any) Step { return Step{Op: OpSetupTheRestAfter, Participant: p} }

func AssertBefore(p any) Step       { return Step{Op: OpAssertBefore, Participant: p} }
func AssertThrough(p any) Step      { return Step{Op: OpAssertThrough, Participant: p} }
func AssertBeforeFirst() Step       { return Step{Op: OpAssertBeforeFirst} }
func AssertBeforeLast() Step        { return Step{Op: OpAssertBeforeLast} }
func AssertThroughFirst() Step      { return Step{Op: OpAssertThroughFirst} }
func AssertThroughLast() Step       { return Step{Op: OpAssertThroughLast} }
func AssertAll() Step               { return Step{Op: OpAssertAll} }
func AssertTheRest() Step           { return Step{Op: OpAssertTheRest} }
func AssertTheRestAfter(p any) Step { return Step{Op: OpAssertTheRestAfter, Participant: p} }

func AssertNoInteractionsTheRest() Step { return Step{Op: OpAssertNoInteractionsTheRest} }
func AssertNoInteractionsTheRestAfter(p any) Step {
	return Step{Op: OpAssertNoInteractionsTheRestAfter, Participant: p}
}
