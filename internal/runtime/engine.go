package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/mockcoach/internal/logging"
	"github.com/aretw0/mockcoach/internal/validator"
	"github.com/aretw0/mockcoach/pkg/domain"
)

// Engine is the windowed execution state machine of a chain.
// It is not safe for concurrent use.
type Engine struct {
	index         *validator.Index
	setup         *track
	assertion     *track
	noInteraction domain.NoInteractionFunc
	logger        *slog.Logger
	hooks         domain.LifecycleHooks
	now           func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithNoInteraction registers the no-interaction predicate.
func WithNoInteraction(fn domain.NoInteractionFunc) EngineOption {
	return func(e *Engine) {
		e.noInteraction = fn
	}
}

// WithClock overrides the clock used for event timestamps and durations.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine binds validated participants to their callbacks.
// The callback slices must have index.Len() elements each.
func NewEngine(index *validator.Index, setups, assertions []domain.Callback, opts ...EngineOption) *Engine {
	e := &Engine{
		index:     index,
		setup:     &track{name: domain.TrackSetup, callbacks: setups},
		assertion: &track{name: domain.TrackAssertion, callbacks: assertions},
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetNoInteraction registers or replaces the no-interaction predicate.
func (e *Engine) SetNoInteraction(fn domain.NoInteractionFunc) {
	e.noInteraction = fn
}

// Window reports the continuation state of a track.
func (e *Engine) Window(t domain.Track) (open bool, lastIndex int) {
	tr := e.track(t)
	return tr.win.open, tr.win.lastIndex
}

func (e *Engine) track(t domain.Track) *track {
	if t == domain.TrackSetup {
		return e.setup
	}
	return e.assertion
}

// track is one callback sequence and its continuation window.
type track struct {
	name      domain.Track
	callbacks []domain.Callback
	win       window
}

// window is the continuation state left by a before/through call.
// When inclusive is false the callback at lastIndex has not run yet.
type window struct {
	open      bool
	lastIndex int
	inclusive bool
}

// next is the first position a rest operation resumes from.
func (w window) next() int {
	if w.inclusive {
		return w.lastIndex + 1
	}
	return w.lastIndex
}
