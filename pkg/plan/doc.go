/*
Package plan turns coach operations into data.

Step values wrap a single operation so table-driven tests can list the calls a case makes:

	tests := []struct {
		name  string
		steps []plan.Step
	}{
		{"cache fails", []plan.Step{plan.SetupBefore(cache), plan.AssertBefore(cache)}},
		{"mail fails", []plan.Step{plan.SetupBefore(mailer), plan.AssertThrough(mailer)}},
	}
	...
	require.NoError(t, plan.Run(coach, tt.steps...))

Documents describe a whole chain by participant names, in YAML or JSON:

	name: welcome
	participants: [repo, cache, mailer]
	no_interaction: true
	failures:
	  - {track: setup, position: 2, message: cache full}
	steps:
	  - {op: SetupBefore, participant: cache}
	  - {op: AssertBefore, participant: cache}
	  - {op: AssertNoInteractionsTheRestAfter, participant: cache}

Simulate runs a document against recording callbacks, which is how the mockcoach command
validates, describes and renders chains.
*/
package plan
