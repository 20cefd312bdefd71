package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/pkg/domain"
)

// Participant is the stand-in identity a simulation uses for a participant name.
type Participant struct {
	Name string
}

func (p *Participant) String() string {
	return p.Name
}

// Call is one callback or predicate invocation observed during a simulation.
type Call struct {
	Step        int          `json:"step"`
	Track       domain.Track `json:"track"`
	Position    int          `json:"position"`
	Participant string       `json:"participant"`
	Failed      bool         `json:"failed,omitempty"`
}

func (c Call) String() string {
	s := fmt.Sprintf("%s %d (%s)", c.Track, c.Position, c.Participant)
	if c.Failed {
		s += " FAILED"
	}
	return s
}

// StepResult is the outcome of one document step.
type StepResult struct {
	Step      int    `json:"step"`
	Call      string `json:"call"`
	Calls     []Call `json:"calls"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Expected  bool   `json:"expected,omitempty"`
}

// OK reports whether the step either succeeded or failed the way it said it would.
func (r StepResult) OK() bool {
	return r.Error == "" || r.Expected
}

// Result is the trace of a simulated document.
type Result struct {
	Name     string          `json:"name"`
	Topology domain.Topology `json:"topology"`
	Steps    []StepResult    `json:"steps"`
}

// Failed reports whether any step ended in an unexpected outcome.
func (r *Result) Failed() bool {
	for _, s := range r.Steps {
		if !s.OK() {
			return true
		}
	}
	return false
}

// Chain is a coach built from a document, with recording callbacks bound to every position.
type Chain struct {
	Coach        *mockcoach.Coach
	Participants []*Participant
	byName       map[string]*Participant
	current      *StepResult
}

// Build creates the participants and recording callbacks of doc and validates the chain.
// The same name always maps to the same participant, so repeating the first name at the end
// produces a loop and repeating any other name is rejected as a duplicate.
func Build(doc *Document, opts ...mockcoach.Option) (*Chain, error) {
	profile, ok := domain.ProfileByName(doc.Profile)
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", doc.Profile)
	}

	ch := &Chain{byName: make(map[string]*Participant)}
	n := len(doc.Participants)
	participants := make([]any, n)
	setups := make([]domain.Callback, n)
	assertions := make([]domain.Callback, n)

	failAt := map[domain.Track]map[int]error{
		domain.TrackSetup:     {},
		domain.TrackAssertion: {},
	}
	failFor := map[string]error{}
	for _, f := range doc.Failures {
		msg := f.Message
		if msg == "" {
			msg = "simulated failure"
		}
		if f.Track == domain.TrackNoInteraction {
			failFor[f.Participant] = errors.New(msg)
		} else if m, ok := failAt[f.Track]; ok {
			m[f.Position-1] = errors.New(msg)
		}
	}

	for i, name := range doc.Participants {
		p, ok := ch.byName[name]
		if !ok {
			p = &Participant{Name: name}
			ch.byName[name] = p
		}
		ch.Participants = append(ch.Participants, p)
		participants[i] = p
		setups[i] = ch.recorder(domain.TrackSetup, i, name, failAt[domain.TrackSetup][i])
		assertions[i] = ch.recorder(domain.TrackAssertion, i, name, failAt[domain.TrackAssertion][i])
	}

	opts = append([]mockcoach.Option{mockcoach.WithProfile(profile)}, opts...)
	if doc.NoInteraction {
		opts = append(opts, mockcoach.WithNoInteraction(func(participant any) error {
			p := participant.(*Participant)
			err := failFor[p.Name]
			ch.record(domain.TrackNoInteraction, ch.positionOf(p), p.Name, err)
			return err
		}))
	}

	coach, err := mockcoach.New(participants, setups, assertions, opts...)
	if err != nil {
		return nil, err
	}
	ch.Coach = coach
	return ch, nil
}

// Lookup returns the participant with the given name, or a fresh outsider if no position uses it.
func (ch *Chain) Lookup(name string) *Participant {
	if p, ok := ch.byName[name]; ok {
		return p
	}
	return &Participant{Name: name}
}

func (ch *Chain) recorder(t domain.Track, i int, name string, err error) domain.Callback {
	return func() error {
		ch.record(t, i+1, name, err)
		return err
	}
}

func (ch *Chain) record(t domain.Track, position int, name string, err error) {
	if ch.current == nil {
		return
	}
	ch.current.Calls = append(ch.current.Calls, Call{
		Step:        ch.current.Step,
		Track:       t,
		Position:    position,
		Participant: name,
		Failed:      err != nil,
	})
}

func (ch *Chain) positionOf(p *Participant) int {
	for i, q := range ch.Participants {
		if q == p {
			return i + 1
		}
	}
	return 0
}

// Simulate builds the chain of doc and applies its steps in order, recording every callback.
// Like a test, it stops at the first step with an unexpected outcome. The returned error is
// reserved for documents that cannot be simulated at all.
func Simulate(doc *Document, opts ...mockcoach.Option) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	ch, err := Build(doc, opts...)
	if err != nil {
		return nil, err
	}

	res := &Result{Name: doc.Name, Topology: ch.Coach.Topology()}
	for i, spec := range doc.Steps {
		step := Step{Op: spec.Op}
		if spec.Op.TakesParticipant() {
			step.Participant = ch.Lookup(spec.Participant)
		}

		sr := StepResult{Step: i + 1, Call: step.String(), Calls: []Call{}}
		ch.current = &sr
		stepErr := step.In(ch.Coach)
		ch.current = nil

		if stepErr != nil {
			sr.Error = stepErr.Error()
			sr.ErrorCode = domain.ErrorCode(stepErr)
		}
		if spec.ExpectError != "" {
			want, _ := domain.ErrorForCode(spec.ExpectError)
			sr.Expected = errors.Is(stepErr, want)
			if stepErr == nil {
				sr.Error = fmt.Sprintf("expected %s, got no error", spec.ExpectError)
			} else if !sr.Expected {
				sr.Error = fmt.Sprintf("expected %s, got: %v", spec.ExpectError, stepErr)
			}
		}

		res.Steps = append(res.Steps, sr)
		if !sr.OK() {
			break
		}
	}
	return res, nil
}

// Report is the outcome of checking a document and building its chain without running steps.
type Report struct {
	Valid    bool            `json:"valid"`
	Topology domain.Topology `json:"topology,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
	Code     string          `json:"code,omitempty"`
}

// Check validates doc and builds its chain. Document problems are listed one per entry; a
// chain that fails to build carries the error code of the failure.
func Check(doc *Document, opts ...mockcoach.Option) Report {
	if err := doc.Validate(); err != nil {
		return Report{Errors: strings.Split(err.Error(), "\n")}
	}
	ch, err := Build(doc, opts...)
	if err != nil {
		return Report{Errors: []string{err.Error()}, Code: domain.ErrorCode(err)}
	}
	return Report{Valid: true, Topology: ch.Coach.Topology()}
}
