package plan_test

import (
	"testing"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *plan.Document {
	t.Helper()
	doc, err := plan.Parse([]byte(src), "yaml")
	require.NoError(t, err)
	return doc
}

func calls(sr plan.StepResult) []string {
	out := make([]string, len(sr.Calls))
	for i, c := range sr.Calls {
		out[i] = c.String()
	}
	return out
}

func TestSimulate_Path(t *testing.T) {
	res, err := plan.Simulate(mustParse(t, welcomeYAML))
	require.NoError(t, err)

	assert.Equal(t, "welcome", res.Name)
	assert.Equal(t, domain.TopologyPath, res.Topology)
	require.Len(t, res.Steps, 4)

	assert.Equal(t, "SetupBefore(cache)", res.Steps[0].Call)
	assert.Equal(t, []string{"setup 1 (repo)"}, calls(res.Steps[0]))
	assert.Equal(t, []string{"assertion 1 (repo)"}, calls(res.Steps[1]))
	assert.Equal(t, []string{"no-interaction 3 (mailer)"}, calls(res.Steps[2]))

	// The setup window was opened at cache, whose setup is configured to fail.
	last := res.Steps[3]
	assert.Equal(t, []string{"setup 2 (cache) FAILED"}, calls(last))
	assert.Equal(t, "callback_failed", last.ErrorCode)
	assert.Contains(t, last.Error, "cache full")
	assert.True(t, res.Failed())
}

func TestSimulate_Loop(t *testing.T) {
	doc := mustParse(t, `
participants: [a, b, c, a]
steps:
  - SetupBeforeLast
  - {op: SetupTheRest, expect_error: no_open_window}
  - AssertThroughFirst
  - {op: AssertTheRestAfter, participant: b}
  - {op: AssertBefore, participant: a, expect_error: loop_endpoint_ambiguous}
`)
	res, err := plan.Simulate(doc)
	require.NoError(t, err)

	assert.Equal(t, domain.TopologyLoop, res.Topology)
	assert.False(t, res.Failed())
	assert.Equal(t, []string{"setup 1 (a)", "setup 2 (b)", "setup 3 (c)"}, calls(res.Steps[0]))
	assert.Empty(t, calls(res.Steps[1]))
	assert.True(t, res.Steps[1].Expected)
	assert.Equal(t, []string{"assertion 1 (a)"}, calls(res.Steps[2]))
	assert.Equal(t, []string{"assertion 3 (c)", "assertion 4 (a)"}, calls(res.Steps[3]))
	assert.True(t, res.Steps[4].Expected)
	assert.Equal(t, "loop_endpoint_ambiguous", res.Steps[4].ErrorCode)
}

func TestSimulate_ExpectedErrorMissing(t *testing.T) {
	doc := mustParse(t, `
participants: [a, b]
steps:
  - {op: SetupAll, expect_error: callback_failed}
  - AssertAll
`)
	res, err := plan.Simulate(doc)
	require.NoError(t, err)

	assert.True(t, res.Failed())
	require.Len(t, res.Steps, 1, "simulation stops at the first unexpected outcome")
	assert.Equal(t, "expected callback_failed, got no error", res.Steps[0].Error)
}

func TestSimulate_NoInteractionFailure(t *testing.T) {
	doc := mustParse(t, `
participants: [a, b, c]
no_interaction: true
failures:
  - {track: no-interaction, participant: b, message: b was called}
steps:
  - {op: AssertBefore, participant: b}
  - {op: AssertNoInteractionsTheRest, expect_error: callback_failed}
`)
	res, err := plan.Simulate(doc)
	require.NoError(t, err)

	assert.False(t, res.Failed())
	assert.Equal(t, []string{"no-interaction 2 (b) FAILED"}, calls(res.Steps[1]))
	assert.Contains(t, res.Steps[1].Error, "b was called")
}

func TestSimulate_Invalid(t *testing.T) {
	t.Run("Document", func(t *testing.T) {
		_, err := plan.Simulate(mustParse(t, "steps: [SetupAll]"))
		assert.ErrorContains(t, err, "invalid plan")
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		_, err := plan.Simulate(mustParse(t, "participants: [a, b, b]"))
		assert.ErrorIs(t, err, domain.ErrDuplicateParticipant)
	})
}

func TestBuild_PassesOptions(t *testing.T) {
	var started int
	ch, err := plan.Build(mustParse(t, "participants: [a, b]"),
		mockcoach.WithLifecycleHooks(domain.LifecycleHooks{OnCallbackStart: func(*domain.CallbackEvent) { started++ }}))
	require.NoError(t, err)

	require.NoError(t, ch.Coach.AssertAll())
	assert.Equal(t, 2, started)
	assert.Same(t, ch.Participants[0], ch.Lookup("a"))
	assert.NotSame(t, ch.Lookup("z"), ch.Lookup("z"))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want plan.Report
	}{
		{
			name: "Loop",
			src:  "participants: [a, b, a]\nsteps: [SetupAll]\n",
			want: plan.Report{Valid: true, Topology: domain.TopologyLoop},
		},
		{
			name: "Document Problems",
			src:  "participants: []\nsteps: [Nope]\n",
			want: plan.Report{Errors: []string{"plan has no participants", `step 1: unknown operation "Nope"`}},
		},
		{
			name: "Chain Problems",
			src:  "participants: [a, b, b]\n",
			want: plan.Report{
				Errors: []string{"invalid chain: participant 3: cannot be the same as participant 2 (got *plan.Participant)"},
				Code:   "duplicate_participant",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plan.Check(mustParse(t, tt.src)))
		})
	}
}
