package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/pkg/domain"
)

// errEmptyLoop is returned by Build when CloseLoop was called before any participant was added.
var errEmptyLoop = errors.New("cannot close a loop without participants")

// Builder accumulates (participant, setup, assertion) triples in call order.
type Builder struct {
	links  []*ParticipantBuilder
	closed bool
}

// New creates an empty chain builder.
func New() *Builder {
	return &Builder{}
}

// Add appends a participant with its callbacks.
func (b *Builder) Add(participant any, setup, assertion domain.Callback) *Builder {
	b.links = append(b.links, &ParticipantBuilder{participant: participant, setup: setup, assertion: assertion, builder: b})
	return b
}

// Participant appends a participant and returns a builder for its callbacks.
func (b *Builder) Participant(participant any) *ParticipantBuilder {
	pb := &ParticipantBuilder{participant: participant, builder: b}
	b.links = append(b.links, pb)
	return pb
}

// CloseLoop appends the first participant again, turning the chain into a loop.
func (b *Builder) CloseLoop(setup, assertion domain.Callback) *Builder {
	b.closed = true
	if len(b.links) == 0 {
		return b
	}
	return b.Add(b.links[0].participant, setup, assertion)
}

// Len returns the number of positions added so far.
func (b *Builder) Len() int {
	return len(b.links)
}

// Lists returns the participant and callback lists in the shape mockcoach.New expects.
func (b *Builder) Lists() (participants []any, setups, assertions []domain.Callback) {
	participants = make([]any, len(b.links))
	setups = make([]domain.Callback, len(b.links))
	assertions = make([]domain.Callback, len(b.links))
	for i, l := range b.links {
		participants[i] = l.participant
		setups[i] = l.setup
		assertions[i] = l.assertion
	}
	return participants, setups, assertions
}

// Build validates the accumulated chain and returns a coach for it.
func (b *Builder) Build(opts ...mockcoach.Option) (*mockcoach.Coach, error) {
	if b.closed && len(b.links) < 2 {
		return nil, errEmptyLoop
	}
	participants, setups, assertions := b.Lists()
	coach, err := mockcoach.New(participants, setups, assertions, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build chain: %w", err)
	}
	return coach, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild(opts ...mockcoach.Option) *mockcoach.Coach {
	coach, err := b.Build(opts...)
	if err != nil {
		panic(err)
	}
	return coach
}
