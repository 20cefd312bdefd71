/*
Package dsl provides a fluent builder for chains, as an alternative to passing three parallel
slices to mockcoach.New.

Each participant is added together with its setup and assertion callbacks, so the three lists
can never drift apart. Either callback may be nil when a participant has nothing to prepare or
to verify.

Example usage:

	coach, err := dsl.New().
		Add(repo, expectLoad, verifyLoad).
		Add(cache, expectPut, verifyPut).
		Participant(mailer).Setup(expectSend).Assert(verifySend).
		Build(mockcoach.WithLogger(logger))

A loop is closed with CloseLoop, which repeats the first participant with its own callbacks:

	coach, err := dsl.New().
		Add(a, setupA, assertA).
		Add(b, setupB, assertB).
		CloseLoop(setupBackToA, assertBackToA).
		Build()
*/
package dsl
