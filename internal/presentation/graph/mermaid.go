package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/plan"
)

// Overlay contains simulation data to visualize on the chain.
type Overlay struct {
	Visited []string // participants whose callbacks ran
	Failed  []string // participants whose callback or no-interaction check failed
}

// OverlayFromResult collects the participants touched by a simulation.
func OverlayFromResult(res *plan.Result) *Overlay {
	o := &Overlay{}
	for _, step := range res.Steps {
		for _, c := range step.Calls {
			if c.Failed {
				o.Failed = append(o.Failed, c.Participant)
			} else {
				o.Visited = append(o.Visited, c.Participant)
			}
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a chain from its participant names.
// It applies semantic styling:
// - First participant: ((Circle))
// - Others: [Rectangle]
// A loop's closing position is drawn as a dotted edge back to the first participant.
func GenerateMermaid(participants []string, topology domain.Topology, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	unique := len(participants)
	if topology == domain.TopologyLoop {
		unique--
	}

	for i := 0; i < unique; i++ {
		name := participants[i]
		opener, closer := "[", "]"
		if i == 0 {
			opener, closer = "((", "))"
		}
		label := strings.ReplaceAll(name, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%d. %s\"%s\n", sanitizeMermaidID(name), opener, i+1, label, closer))
	}

	for i := 1; i < unique; i++ {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(participants[i-1]), sanitizeMermaidID(participants[i])))
	}
	if topology == domain.TopologyLoop {
		sb.WriteString(fmt.Sprintf("    %s -. \"%d. back to start\" .-> %s\n",
			sanitizeMermaidID(participants[unique-1]), len(participants), sanitizeMermaidID(participants[0])))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		failed := make(map[string]bool)
		for _, name := range overlay.Failed {
			failed[sanitizeMermaidID(name)] = true
		}
		seen := make(map[string]bool)
		for _, name := range overlay.Visited {
			id := sanitizeMermaidID(name)
			if !seen[id] && !failed[id] && id != "" {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", id))
			}
		}
		for _, name := range overlay.Failed {
			id := sanitizeMermaidID(name)
			if !seen[id] && id != "" {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s failed;\n", id))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "\"", "_")
	return s
}
