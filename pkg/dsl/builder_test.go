package dsl_test

import (
	"testing"

	"github.com/aretw0/mockcoach/internal/testutils"
	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Path(t *testing.T) {
	m := testutils.Mocks(3)
	rec := testutils.NewRecorder()
	setups := rec.Callbacks(domain.TrackSetup, 3)
	asserts := rec.Callbacks(domain.TrackAssertion, 3)

	coach, err := dsl.New().
		Add(m[0], setups[0], asserts[0]).
		Participant(m[1]).Setup(setups[1]).Assert(asserts[1]).
		Add(m[2], setups[2], asserts[2]).
		Build()
	require.NoError(t, err)

	assert.Equal(t, domain.TopologyPath, coach.Topology())
	require.NoError(t, coach.SetupAll())
	require.NoError(t, coach.AssertThrough(m[1]))
	rec.RequireCalls(t, "setup:1", "setup:2", "setup:3", "assertion:1", "assertion:2")
}

func TestBuilder_CloseLoop(t *testing.T) {
	m := testutils.Mocks(2)
	rec := testutils.NewRecorder()
	setups := rec.Callbacks(domain.TrackSetup, 3)
	asserts := rec.Callbacks(domain.TrackAssertion, 3)

	b := dsl.New().
		Add(m[0], setups[0], asserts[0]).
		Add(m[1], setups[1], asserts[1]).
		CloseLoop(setups[2], asserts[2])
	assert.Equal(t, 3, b.Len())

	coach := b.MustBuild()
	assert.Equal(t, domain.TopologyLoop, coach.Topology())

	require.NoError(t, coach.SetupBeforeLast())
	rec.RequireCalls(t, "setup:1", "setup:2")
}

func TestBuilder_NilCallbacksAreSkipped(t *testing.T) {
	m := testutils.Mocks(2)
	rec := testutils.NewRecorder()
	asserts := rec.Callbacks(domain.TrackAssertion, 2)

	coach, err := dsl.New().
		Participant(m[0]).Assert(asserts[0]).
		Participant(m[1]).Assert(asserts[1]).
		Build()
	require.NoError(t, err)

	require.NoError(t, coach.SetupAll())
	require.NoError(t, coach.AssertAll())
	rec.RequireCalls(t, "assertion:1", "assertion:2")
}

func TestBuilder_Errors(t *testing.T) {
	m := testutils.Mocks(2)

	t.Run("Empty", func(t *testing.T) {
		_, err := dsl.New().Build()
		assert.ErrorIs(t, err, domain.ErrShapeMismatch)
	})

	t.Run("Empty Loop", func(t *testing.T) {
		_, err := dsl.New().CloseLoop(nil, nil).Build()
		assert.Error(t, err)
	})

	t.Run("Loop Of One", func(t *testing.T) {
		_, err := dsl.New().Add(m[0], nil, nil).CloseLoop(nil, nil).Build()
		require.NoError(t, err)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := dsl.New().Add(m[0], nil, nil).Add(m[0], nil, nil).Add(m[1], nil, nil).Build()
		assert.ErrorIs(t, err, domain.ErrDuplicateParticipant)
	})

	t.Run("MustBuild Panics", func(t *testing.T) {
		assert.Panics(t, func() { dsl.New().MustBuild() })
	})
}
