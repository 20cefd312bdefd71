package mockcoach

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/mockcoach/internal/logging"
	"github.com/aretw0/mockcoach/internal/runtime"
	"github.com/aretw0/mockcoach/internal/validator"
	"github.com/aretw0/mockcoach/pkg/domain"
)

// Coach sequences the setup and assertion callbacks of a chain of participants.
// It wraps the internal runtime and is not safe for concurrent use.
type Coach struct {
	engine  *runtime.Engine
	index   *validator.Index
	profile domain.Profile
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	checker domain.NoInteractionFunc
}

// Option defines a functional option for configuring the Coach.
type Option func(*Coach)

// WithLogger sets a custom structured logger for the coach.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coach) {
		c.logger = logger
	}
}

// WithProfile selects which participant categories are accepted (default: domain.StrictProfile).
func WithProfile(profile domain.Profile) Option {
	return func(c *Coach) {
		c.profile = profile
	}
}

// WithLifecycleHooks registers observability hooks. Repeated options are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Coach) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithNoInteraction registers the predicate used by the AssertNoInteractions operations.
func WithNoInteraction(fn domain.NoInteractionFunc) Option {
	return func(c *Coach) {
		c.checker = fn
	}
}

// New validates the chain and binds setups[i] and assertions[i] to participants[i].
// Validation happens once; every later call reuses the resulting index.
//
// A nil callback means the participant needs nothing on that track: its slot is a no-op that
// always succeeds, and lifecycle hooks still see it run.
func New(participants []any, setups, assertions []domain.Callback, opts ...Option) (*Coach, error) {
	c := &Coach{profile: domain.StrictProfile}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}

	idx, err := validator.ValidateChain(participants, len(setups), len(assertions), c.profile)
	if err != nil {
		return nil, fmt.Errorf("invalid chain: %w", err)
	}
	c.index = idx
	c.logger = c.logger.With("topology", idx.Topology(), "participants", idx.Len())

	c.engine = runtime.NewEngine(idx, setups, assertions,
		runtime.WithLogger(c.logger),
		runtime.WithLifecycleHooks(c.hooks),
		runtime.WithNoInteraction(c.checker),
	)
	c.logger.Debug("chain validated", "profile", c.profile.Name)
	return c, nil
}

// MustNew is like New but panics on an invalid chain. Intended for test setup code.
func MustNew(participants []any, setups, assertions []domain.Callback, opts ...Option) *Coach {
	c, err := New(participants, setups, assertions, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// WithNoInteraction registers or replaces the no-interaction predicate and returns the same coach.
func (c *Coach) WithNoInteraction(fn domain.NoInteractionFunc) *Coach {
	c.checker = fn
	c.engine.SetNoInteraction(fn)
	return c
}

// Topology reports whether the chain is a path or a loop.
func (c *Coach) Topology() domain.Topology {
	return c.index.Topology()
}

// Len returns the number of positions, counting a loop's closing duplicate.
func (c *Coach) Len() int {
	return c.index.Len()
}

// Participants returns a copy of the participant list.
func (c *Coach) Participants() []any {
	out := make([]any, c.index.Len())
	for i := range out {
		out[i] = c.index.Participant(i)
	}
	return out
}

// Profile returns the validation profile the chain was checked against.
func (c *Coach) Profile() domain.Profile {
	return c.profile
}

// Window reports whether track t has an open continuation window and its zero-based position.
func (c *Coach) Window(t domain.Track) (open bool, lastIndex int) {
	return c.engine.Window(t)
}
