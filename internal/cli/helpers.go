package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/internal/logging"
	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/observability"
	"github.com/aretw0/mockcoach/pkg/plan"
	"golang.org/x/term"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	LogLevel string // debug, info, warn, error
	Profile  string // overrides the profile named by the plan when set
	Verbose  bool   // log every callback through LogHooks
}

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger on stderr, keeping stdout for command output.
func CreateLogger(opts Options) (*slog.Logger, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// loadPlan reads a plan and applies the profile override.
func loadPlan(path string, opts Options) (*plan.Document, error) {
	doc, err := plan.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Profile != "" {
		doc.Profile = opts.Profile
	}
	return doc, nil
}

// coachOptions prepares the functional options for the coach of a simulated plan.
func coachOptions(opts Options, logger *slog.Logger, extra ...domain.LifecycleHooks) []mockcoach.Option {
	coachOpts := []mockcoach.Option{mockcoach.WithLogger(logger)}
	if opts.Verbose {
		coachOpts = append(coachOpts, mockcoach.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	for _, h := range extra {
		coachOpts = append(coachOpts, mockcoach.WithLifecycleHooks(h))
	}
	return coachOpts
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
