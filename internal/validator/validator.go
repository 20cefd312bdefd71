package validator

import (
	"fmt"

	"github.com/aretw0/mockcoach/pkg/domain"
)

// Index is the validated, immutable view of a participant list.
type Index struct {
	participants []any
	positions    map[any]int
	topology     domain.Topology
}

// ValidateChain checks the participant list against the callback list lengths and the
// profile, classifies its topology and builds the position index.
func ValidateChain(participants []any, setups, assertions int, profile domain.Profile) (*Index, error) {
	if participants == nil {
		return nil, &domain.ValidationError{Reason: "participants cannot be nil", Err: domain.ErrShapeMismatch}
	}
	if len(participants) != setups {
		return nil, &domain.ValidationError{
			Reason: fmt.Sprintf("setups length %d does not match participants length %d", setups, len(participants)),
			Err:    domain.ErrShapeMismatch,
		}
	}
	if len(participants) != assertions {
		return nil, &domain.ValidationError{
			Reason: fmt.Sprintf("assertions length %d does not match participants length %d", assertions, len(participants)),
			Err:    domain.ErrShapeMismatch,
		}
	}
	if len(participants) == 0 {
		return nil, &domain.ValidationError{Reason: "participants cannot be empty", Err: domain.ErrShapeMismatch}
	}

	idx := &Index{
		participants: participants,
		positions:    make(map[any]int, len(participants)),
		topology:     domain.TopologyPath,
	}

	// A singleton is only checked for nil.
	if len(participants) == 1 {
		if domain.IsNil(participants[0]) {
			return nil, &domain.ValidationError{Position: 1, Reason: "cannot be nil", Err: domain.ErrNullParticipant}
		}
		if domain.Comparable(participants[0]) {
			idx.positions[participants[0]] = 0
		}
		return idx, nil
	}

	last := len(participants) - 1
	if !domain.IsNil(participants[0]) && domain.Same(participants[0], participants[last]) {
		idx.topology = domain.TopologyLoop
	}

	unique := len(participants)
	if idx.topology == domain.TopologyLoop {
		unique = last
	}

	for i := 0; i < unique; i++ {
		p := participants[i]
		if domain.IsNil(p) {
			return nil, &domain.ValidationError{Position: i + 1, Reason: "cannot be nil", Err: domain.ErrNullParticipant}
		}

		category := domain.CategoryOf(p)
		if !profile.Allows(category) {
			reason := fmt.Sprintf("%s participants are not allowed by the %s profile", category, profile.Name)
			if domain.ZeroSizePointer(p) {
				reason = "points to a zero-size type, whose values may share one address and cannot be told apart"
			}
			return nil, &domain.ValidationError{
				Position: i + 1,
				Reason:   reason,
				Value:    p,
				Err:      domain.ErrUnsupportedParticipantType,
			}
		}

		if prev, dup := idx.positions[p]; dup {
			return nil, &domain.ValidationError{
				Position: i + 1,
				Reason:   fmt.Sprintf("cannot be the same as participant %d", prev+1),
				Value:    p,
				Err:      domain.ErrDuplicateParticipant,
			}
		}
		idx.positions[p] = i
	}

	return idx, nil
}

// Topology returns the classified shape of the chain.
func (x *Index) Topology() domain.Topology {
	return x.topology
}

// Len returns the number of positions, counting a loop's closing duplicate.
func (x *Index) Len() int {
	return len(x.participants)
}

// IsLoop reports whether the chain is a loop.
func (x *Index) IsLoop() bool {
	return x.topology == domain.TopologyLoop
}

// IsSingleton reports whether the chain has exactly one participant.
func (x *Index) IsSingleton() bool {
	return len(x.participants) == 1
}

// Participant returns the participant at a zero-based position.
func (x *Index) Participant(i int) any {
	return x.participants[i]
}

// Unique returns the number of distinct positions: Len for a path, Len-1 for a loop.
func (x *Index) Unique() int {
	if x.IsLoop() {
		return len(x.participants) - 1
	}
	return len(x.participants)
}

// Position resolves a participant to its zero-based index. The loop endpoint resolves to 0.
func (x *Index) Position(participant any) (int, bool) {
	if !domain.Comparable(participant) {
		return 0, false
	}
	i, ok := x.positions[participant]
	return i, ok
}

// IsEndpoint reports whether participant is the shared endpoint of a loop.
func (x *Index) IsEndpoint(participant any) bool {
	return x.IsLoop() && domain.Same(participant, x.participants[0])
}

// IsLast reports whether participant is the chain's last element.
func (x *Index) IsLast(participant any) bool {
	return domain.Same(participant, x.participants[len(x.participants)-1])
}
