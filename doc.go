/*
Package mockcoach sequences the setup and verification code of the mocked collaborators a unit
under test talks to, in the order the unit talks to them.

A test lists its collaborators ("participants") in call order together with one setup callback
and one assertion callback per participant. The Coach then runs slices of those lists on demand:
everything before a participant, everything through it, or everything remaining after a previous
call. A test that wants to break the chain at participant k only writes the code that differs
for k; the Coach fills in the rest.

# Topology

A chain whose first and last participants are the same value is a loop (A -> B -> C -> A),
anything else is a path. Loops reject Before/Through calls naming the shared endpoint, since the
position would be ambiguous, and offer BeforeFirst, BeforeLast, ThroughFirst and ThroughLast
instead. A chain with a single participant is a path that also accepts those calls.

# Windows

Each track (setup and assertion) keeps its own continuation window. Before* and Through* calls
open it, TheRest and TheRestAfter consume it. All never touches it.

# Usage

	coach := mockcoach.MustNew(
		[]any{repo, cache, mailer},
		[]domain.Callback{setupRepo, setupCache, setupMailer},
		[]domain.Callback{assertRepo, assertCache, assertMailer},
	).WithNoInteraction(func(p any) error {
		return verifyNoMoreCalls(p)
	})

	// The cache fails: prepare everything before it, make it fail, then verify.
	require.NoError(t, coach.SetupBefore(cache))
	cache.On("Get", key).Return(nil, errBoom)

	err := svc.Handle(ctx, req)

	require.NoError(t, coach.AssertBefore(cache))
	cache.AssertExpectations(t)
	require.NoError(t, coach.AssertNoInteractionsTheRestAfter(cache))

Errors are matched with errors.Is against the sentinels in pkg/domain. Construction failures are
*domain.ValidationError values, callback failures are *domain.CallbackError values.
*/
package mockcoach
