package dsl

import (
	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/pkg/domain"
)

// ParticipantBuilder provides a fluent API for configuring one position of the chain.
type ParticipantBuilder struct {
	participant any
	setup       domain.Callback
	assertion   domain.Callback
	builder     *Builder
}

// Setup sets the callback that prepares the participant.
func (p *ParticipantBuilder) Setup(fn domain.Callback) *ParticipantBuilder {
	p.setup = fn
	return p
}

// Assert sets the callback that verifies the participant.
func (p *ParticipantBuilder) Assert(fn domain.Callback) *ParticipantBuilder {
	p.assertion = fn
	return p
}

// Add continues the chain with the next participant.
func (p *ParticipantBuilder) Add(participant any, setup, assertion domain.Callback) *Builder {
	return p.builder.Add(participant, setup, assertion)
}

// Participant continues the chain with the next participant.
func (p *ParticipantBuilder) Participant(participant any) *ParticipantBuilder {
	return p.builder.Participant(participant)
}

// CloseLoop closes the chain back to its first participant.
func (p *ParticipantBuilder) CloseLoop(setup, assertion domain.Callback) *Builder {
	return p.builder.CloseLoop(setup, assertion)
}

// Build finishes the chain.
func (p *ParticipantBuilder) Build(opts ...mockcoach.Option) (*mockcoach.Coach, error) {
	return p.builder.Build(opts...)
}
