package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	id := "contract-test-result-" + time.Now().Format("20060102150405")

	sample := func(name string) *plan.Result {
		return &plan.Result{
			Name:     name,
			Topology: domain.TopologyLoop,
			Steps: []plan.StepResult{
				{Step: 1, Call: "SetupAll()", Calls: []plan.Call{
					{Step: 1, Track: domain.TrackSetup, Position: 1, Participant: "a"},
					{Step: 1, Track: domain.TrackSetup, Position: 2, Participant: "b", Failed: true},
				}, Error: "boom", ErrorCode: "callback_failed"},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		res := sample("ring")
		require.NoError(t, store.Save(ctx, id, res), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, res, loaded)
	})

	t.Run("Isolation", func(t *testing.T) {
		res := sample("ring")
		require.NoError(t, store.Save(ctx, id, res))

		// Mutating the saved value or a loaded copy must not leak into the store.
		res.Steps[0].Calls[0].Participant = "mutated"
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		loaded.Steps[0].Error = "mutated"

		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "a", again.Steps[0].Calls[0].Participant)
		assert.Equal(t, "boom", again.Steps[0].Error)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, ErrResultNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, sample("ring")))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrResultNotFound, "Load after Delete should return ErrResultNotFound")
		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, sample("one")))
		require.NoError(t, store.Save(ctx, id2, sample("two")))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
