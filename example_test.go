package mockcoach_test

import (
	"fmt"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/pkg/domain"
)

type collaborator struct {
	name string
}

func say(format, name string) domain.Callback {
	return func() error {
		fmt.Printf(format+"\n", name)
		return nil
	}
}

func callbacks(format string, names ...string) []domain.Callback {
	out := make([]domain.Callback, len(names))
	for i, n := range names {
		out[i] = say(format, n)
	}
	return out
}

// ExampleCoach_SetupBefore breaks a path at its middle participant and lets the coach prepare
// everything else.
func ExampleCoach_SetupBefore() {
	a, b, c := &collaborator{"a"}, &collaborator{"b"}, &collaborator{"c"}

	coach := mockcoach.MustNew(
		[]any{a, b, c},
		callbacks("setup %s", "a", "b", "c"),
		callbacks("verify %s", "a", "b", "c"),
	)

	_ = coach.SetupBefore(b)
	fmt.Println("stub b to fail")
	_ = coach.SetupTheRestAfter(b)

	_ = coach.AssertThrough(b)
	// Output:
	// setup a
	// stub b to fail
	// setup c
	// verify a
	// verify b
}

// ExampleCoach_AssertBeforeFirst walks a loop whose first and last participants are the same.
func ExampleCoach_AssertBeforeFirst() {
	a, b := &collaborator{"a"}, &collaborator{"b"}

	coach := mockcoach.MustNew(
		[]any{a, b, a},
		callbacks("setup %s", "a", "b", "a again"),
		callbacks("verify %s", "a", "b", "a again"),
	)

	fmt.Println(coach.Topology())
	fmt.Println(coach.AssertBefore(a))

	_ = coach.AssertBeforeFirst()
	_ = coach.AssertTheRestAfter(b)
	// Output:
	// loop
	// AssertBefore: loop endpoint is ambiguous: for loops use AssertBeforeFirst() or AssertBeforeLast()
	// verify a again
}

// ExampleCoach_WithNoInteraction checks that nothing after the failing participant was used.
func ExampleCoach_WithNoInteraction() {
	a, b, c := &collaborator{"a"}, &collaborator{"b"}, &collaborator{"c"}

	coach := mockcoach.MustNew(
		[]any{a, b, c},
		callbacks("setup %s", "a", "b", "c"),
		callbacks("verify %s", "a", "b", "c"),
	).WithNoInteraction(func(p any) error {
		fmt.Printf("no calls to %s\n", p.(*collaborator).name)
		return nil
	})

	_ = coach.AssertThrough(a)
	_ = coach.AssertNoInteractionsTheRest()
	// Output:
	// verify a
	// no calls to b
	// no calls to c
}
