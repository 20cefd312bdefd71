package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/mockcoach/internal/testutils"
	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type state int

// stubMailer has no fields, so every *stubMailer may share one address.
type stubMailer struct{}

const (
	idle state = iota
	busy
)

func TestValidateChain_Shape(t *testing.T) {
	m := testutils.Mocks(2)
	two := testutils.Participants(m...)

	tests := []struct {
		name         string
		participants []any
		setups       int
		assertions   int
	}{
		{"nil participants", nil, 0, 0},
		{"setups shorter", two, 1, 2},
		{"assertions longer", two, 2, 3},
		{"empty", []any{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateChain(tt.participants, tt.setups, tt.assertions, domain.StrictProfile)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrShapeMismatch)
		})
	}
}

func TestValidateChain_Topology(t *testing.T) {
	m := testutils.Mocks(3)

	t.Run("Path", func(t *testing.T) {
		idx, err := ValidateChain(testutils.Participants(m...), 3, 3, domain.StrictProfile)
		require.NoError(t, err)
		assert.Equal(t, domain.TopologyPath, idx.Topology())
		assert.Equal(t, 3, idx.Unique())
		for i, mock := range m {
			pos, ok := idx.Position(mock)
			assert.True(t, ok)
			assert.Equal(t, i, pos)
		}
		assert.True(t, idx.IsLast(m[2]))
		assert.False(t, idx.IsEndpoint(m[0]))
	})

	t.Run("Loop", func(t *testing.T) {
		idx, err := ValidateChain(testutils.Participants(m[0], m[1], m[2], m[0]), 4, 4, domain.StrictProfile)
		require.NoError(t, err)
		assert.Equal(t, domain.TopologyLoop, idx.Topology())
		assert.Equal(t, 4, idx.Len())
		assert.Equal(t, 3, idx.Unique())

		pos, ok := idx.Position(m[0])
		assert.True(t, ok)
		assert.Equal(t, 0, pos, "shared endpoint resolves to the first position")
		assert.True(t, idx.IsEndpoint(m[0]))
		assert.True(t, idx.IsLast(m[0]))
	})

	t.Run("Two Element Loop", func(t *testing.T) {
		idx, err := ValidateChain(testutils.Participants(m[0], m[0]), 2, 2, domain.StrictProfile)
		require.NoError(t, err)
		assert.True(t, idx.IsLoop())
		assert.Equal(t, 1, idx.Unique())
	})

	t.Run("Singleton", func(t *testing.T) {
		idx, err := ValidateChain(testutils.Participants(m[0]), 1, 1, domain.StrictProfile)
		require.NoError(t, err)
		assert.Equal(t, domain.TopologyPath, idx.Topology())
		assert.True(t, idx.IsSingleton())
	})

	t.Run("Singleton Skips Type Checks", func(t *testing.T) {
		idx, err := ValidateChain([]any{"just-a-string"}, 1, 1, domain.StrictProfile)
		require.NoError(t, err)
		pos, ok := idx.Position("just-a-string")
		assert.True(t, ok)
		assert.Equal(t, 0, pos)
	})

	t.Run("Singleton Nil", func(t *testing.T) {
		_, err := ValidateChain([]any{nil}, 1, 1, domain.StrictProfile)
		assert.ErrorIs(t, err, domain.ErrNullParticipant)
	})
}

func TestValidateChain_Participants(t *testing.T) {
	m := testutils.Mocks(3)
	var typedNil *testutils.Mock

	tests := []struct {
		name         string
		participants []any
		profile      domain.Profile
		wantErr      error
		wantPosition int
	}{
		{"nil in middle", []any{m[0], nil, m[1]}, domain.StrictProfile, domain.ErrNullParticipant, 2},
		{"typed nil", []any{m[0], typedNil}, domain.StrictProfile, domain.ErrNullParticipant, 2},
		{"duplicate in middle", []any{m[0], m[1], m[1]}, domain.StrictProfile, domain.ErrDuplicateParticipant, 3},
		{"cyclic but not a loop", []any{m[0], m[1], m[0], m[2]}, domain.StrictProfile, domain.ErrDuplicateParticipant, 3},
		{"loop with inner repeat", []any{m[0], m[1], m[0], m[0]}, domain.StrictProfile, domain.ErrDuplicateParticipant, 3},
		{"integer", []any{m[0], 7}, domain.StrictProfile, domain.ErrUnsupportedParticipantType, 2},
		{"string", []any{"svc", m[0]}, domain.StrictProfile, domain.ErrUnsupportedParticipantType, 1},
		{"enum", []any{m[0], busy}, domain.StrictProfile, domain.ErrUnsupportedParticipantType, 2},
		{"slice under legacy", []any{m[0], []int{1}}, domain.LegacyProfile, domain.ErrUnsupportedParticipantType, 2},
		{"duplicate enum under legacy", []any{idle, busy, busy}, domain.LegacyProfile, domain.ErrDuplicateParticipant, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.participants)
			_, err := ValidateChain(tt.participants, n, n, tt.profile)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantPosition, vErr.Position)
		})
	}
}

func TestValidateChain_ZeroSizePointers(t *testing.T) {
	a, b := &stubMailer{}, &stubMailer{}
	m := testutils.Mocks(1)

	tests := []struct {
		name         string
		participants []any
		profile      domain.Profile
		wantPosition int
	}{
		{"two would look like a loop", []any{a, b}, domain.StrictProfile, 1},
		{"three would look like duplicates", []any{a, b, m[0]}, domain.StrictProfile, 1},
		{"after a regular mock", []any{m[0], a}, domain.StrictProfile, 2},
		{"legacy profile", []any{m[0], &struct{}{}}, domain.LegacyProfile, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.participants)
			_, err := ValidateChain(tt.participants, n, n, tt.profile)
			require.ErrorIs(t, err, domain.ErrUnsupportedParticipantType)
			assert.NotErrorIs(t, err, domain.ErrDuplicateParticipant)
			assert.Contains(t, err.Error(), "zero-size type")

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantPosition, vErr.Position)
		})
	}

	t.Run("singleton is accepted", func(t *testing.T) {
		idx, err := ValidateChain([]any{a}, 1, 1, domain.StrictProfile)
		require.NoError(t, err)
		assert.Equal(t, domain.TopologyPath, idx.Topology())
	})
}

func TestValidateChain_LegacyProfile(t *testing.T) {
	idx, err := ValidateChain([]any{idle, busy, idle}, 3, 3, domain.LegacyProfile)
	require.NoError(t, err)
	assert.True(t, idx.IsLoop())

	pos, ok := idx.Position(busy)
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestIndex_PositionNonComparable(t *testing.T) {
	m := testutils.Mocks(2)
	idx, err := ValidateChain(testutils.Participants(m...), 2, 2, domain.StrictProfile)
	require.NoError(t, err)

	_, ok := idx.Position([]string{"not", "hashable"})
	assert.False(t, ok)
	_, ok = idx.Position(&testutils.Mock{Name: "m1"})
	assert.False(t, ok, "lookup is by identity, not by value")
}

func TestValidateChain_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(t, "n")
		m := testutils.Mocks(n)
		closeLoop := rapid.Bool().Draw(t, "loop")

		participants := testutils.Participants(m...)
		if closeLoop {
			participants[n-1] = m[0]
		}

		idx, err := ValidateChain(participants, n, n, domain.StrictProfile)
		if err != nil {
			t.Fatalf("valid chain rejected: %v", err)
		}
		if idx.IsLoop() != closeLoop {
			t.Fatalf("loop = %v, want %v", idx.IsLoop(), closeLoop)
		}

		// Copying any participant over another slot is a duplicate unless it closes a loop.
		src := rapid.IntRange(0, n-1).Draw(t, "src")
		dst := rapid.IntRange(0, n-1).Draw(t, "dst")
		if participants[src] == participants[dst] {
			return
		}
		broken := append([]any(nil), participants...)
		broken[dst] = participants[src]
		if broken[0] == broken[n-1] {
			return
		}
		if _, err := ValidateChain(broken, n, n, domain.StrictProfile); !errors.Is(err, domain.ErrDuplicateParticipant) {
			t.Fatalf("expected duplicate error, got %v", err)
		}
	})
}
