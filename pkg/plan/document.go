package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Document describes a chain by participant names plus the operations a test would call on it.
// It lets a chain layout be reviewed, rendered and simulated outside a test binary.
type Document struct {
	Name          string    `yaml:"name" json:"name"`
	Description   string    `yaml:"description,omitempty" json:"description,omitempty"`
	Profile       string    `yaml:"profile,omitempty" json:"profile,omitempty"`
	Participants  []string  `yaml:"participants" json:"participants"`
	NoInteraction bool      `yaml:"no_interaction,omitempty" json:"no_interaction,omitempty"`
	Failures      []Failure `yaml:"failures,omitempty" json:"failures,omitempty"`
	RawSteps      []any     `yaml:"steps" json:"steps"`

	Steps []StepSpec `yaml:"-" json:"-"`
}

// Failure makes one simulated callback fail. Setup and assertion failures are addressed by
// 1-based position; no-interaction failures by participant name.
type Failure struct {
	Track       domain.Track `yaml:"track" json:"track"`
	Position    int          `yaml:"position,omitempty" json:"position,omitempty"`
	Participant string       `yaml:"participant,omitempty" json:"participant,omitempty"`
	Message     string       `yaml:"message,omitempty" json:"message,omitempty"`
}

// StepSpec is one step of a document. ExpectError holds an error code (see domain.ErrorCode)
// the step is expected to fail with.
type StepSpec struct {
	Op          Op     `mapstructure:"op" json:"op"`
	Participant string `mapstructure:"participant" json:"participant,omitempty"`
	ExpectError string `mapstructure:"expect_error" json:"expect_error,omitempty"`
}

func (s StepSpec) String() string {
	if s.Participant != "" {
		return fmt.Sprintf("%s(%s)", s.Op, s.Participant)
	}
	return string(s.Op) + "()"
}

// Load reads a plan document (YAML or JSON, chosen by extension).
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Parse decodes a plan document. format is "json" or "yaml" (the default).
func Parse(data []byte, format string) (*Document, error) {
	var doc Document
	if format == "json" {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse plan json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse plan yaml: %w", err)
		}
	}

	steps, err := decodeSteps(doc.RawSteps)
	if err != nil {
		return nil, err
	}
	doc.Steps = steps
	return &doc, nil
}

// decodeSteps accepts either a bare operation name or an inline map per step.
func decodeSteps(raw []any) ([]StepSpec, error) {
	steps := make([]StepSpec, 0, len(raw))
	for i, item := range raw {
		var s StepSpec
		switch v := item.(type) {
		case string:
			s.Op = Op(v)
		case map[string]any, map[any]any:
			if err := mapstructure.Decode(v, &s); err != nil {
				return nil, fmt.Errorf("failed to decode step %d: %w", i+1, err)
			}
		default:
			return nil, fmt.Errorf("invalid step %d definition type: %T", i+1, v)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// Validate checks the document without building a chain. Chain-level rules (topology,
// duplicates) are left to the coach.
func (d *Document) Validate() error {
	var errs []error

	if len(d.Participants) == 0 {
		errs = append(errs, errors.New("plan has no participants"))
	}
	if _, ok := domain.ProfileByName(d.Profile); !ok {
		errs = append(errs, fmt.Errorf("unknown profile %q", d.Profile))
	}

	known := make(map[string]bool, len(d.Participants))
	for i, name := range d.Participants {
		if name == "" {
			errs = append(errs, fmt.Errorf("participant %d has no name", i+1))
		}
		known[name] = true
	}

	for i, s := range d.Steps {
		switch {
		case !s.Op.Valid():
			errs = append(errs, fmt.Errorf("step %d: unknown operation %q", i+1, s.Op))
		case s.Op.TakesParticipant() && s.Participant == "":
			errs = append(errs, fmt.Errorf("step %d: %s needs a participant", i+1, s.Op))
		case !s.Op.TakesParticipant() && s.Participant != "":
			errs = append(errs, fmt.Errorf("step %d: %s takes no participant", i+1, s.Op))
		case s.Participant != "" && !known[s.Participant]:
			// Naming an outsider is only allowed when the step expects the lookup to fail.
			if s.ExpectError != domain.ErrorCode(domain.ErrUnknownParticipant) {
				errs = append(errs, fmt.Errorf("step %d: participant %q is not in the chain", i+1, s.Participant))
			}
		}
		if s.ExpectError != "" {
			if _, ok := domain.ErrorForCode(s.ExpectError); !ok {
				errs = append(errs, fmt.Errorf("step %d: unknown error code %q", i+1, s.ExpectError))
			}
		}
	}

	for i, f := range d.Failures {
		switch f.Track {
		case domain.TrackSetup, domain.TrackAssertion:
			if f.Position < 1 || f.Position > len(d.Participants) {
				errs = append(errs, fmt.Errorf("failure %d: position %d out of range", i+1, f.Position))
			}
		case domain.TrackNoInteraction:
			if !known[f.Participant] {
				errs = append(errs, fmt.Errorf("failure %d: participant %q is not in the chain", i+1, f.Participant))
			}
		default:
			errs = append(errs, fmt.Errorf("failure %d: unknown track %q", i+1, f.Track))
		}
	}

	return errors.Join(errs...)
}
