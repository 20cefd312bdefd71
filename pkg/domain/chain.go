package domain

// Callback is a zero-argument step bound to one participant. A non-nil error aborts the
// operation that is running it. A nil Callback is a no-op that succeeds.
type Callback func() error

// NoInteractionFunc asserts that a participant was not interacted with.
type NoInteractionFunc func(participant any) error

// Topology classifies the shape of a participant list.
type Topology string

const (
	// TopologyPath means every participant is distinct.
	TopologyPath Topology = "path"
	// TopologyLoop means the first and last participants are the same identity.
	TopologyLoop Topology = "loop"
)

// Track names one of the callback sequences a chain manages.
type Track string

const (
	TrackSetup         Track = "setup"
	TrackAssertion     Track = "assertion"
	TrackNoInteraction Track = "no-interaction"
)
