package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/mockcoach/pkg/plan"
)

// Report builds a markdown description of a plan and, when res is not nil, of its simulation.
func Report(doc *plan.Document, res *plan.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", doc.Name)
	if doc.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", doc.Description)
	}

	profile := doc.Profile
	if profile == "" {
		profile = "strict"
	}
	if res != nil {
		fmt.Fprintf(&sb, "**Topology:** %s, **Profile:** %s\n\n", res.Topology, profile)
	} else {
		fmt.Fprintf(&sb, "**Profile:** %s\n\n", profile)
	}

	sb.WriteString("## Participants\n\n| # | Participant |\n|---|---|\n")
	for i, name := range doc.Participants {
		fmt.Fprintf(&sb, "| %d | %s |\n", i+1, name)
	}
	sb.WriteString("\n")

	if len(doc.Failures) > 0 {
		sb.WriteString("## Simulated failures\n\n")
		for _, f := range doc.Failures {
			target := fmt.Sprintf("position %d", f.Position)
			if f.Participant != "" {
				target = f.Participant
			}
			fmt.Fprintf(&sb, "- %s at %s", f.Track, target)
			if f.Message != "" {
				fmt.Fprintf(&sb, ": %s", f.Message)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Steps\n\n")
	for i, s := range doc.Steps {
		fmt.Fprintf(&sb, "%d. `%s`", i+1, s)
		if s.ExpectError != "" {
			fmt.Fprintf(&sb, " expects `%s`", s.ExpectError)
		}
		sb.WriteString("\n")
		if res == nil || i >= len(res.Steps) {
			continue
		}
		sr := res.Steps[i]
		if len(sr.Calls) == 0 {
			sb.WriteString("   - runs nothing\n")
		}
		for _, c := range sr.Calls {
			fmt.Fprintf(&sb, "   - %s\n", c)
		}
		if sr.Error != "" {
			mark := "**error**"
			if sr.Expected {
				mark = "expected error"
			}
			fmt.Fprintf(&sb, "   - %s: %s\n", mark, sr.Error)
		}
	}

	if res != nil && len(res.Steps) < len(doc.Steps) {
		fmt.Fprintf(&sb, "\nStopped after step %d.\n", len(res.Steps))
	}
	return sb.String()
}
