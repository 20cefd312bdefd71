package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/mockcoach/internal/presentation/graph"
	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/plan"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name         string
		participants []string
		topology     domain.Topology
		overlay      *graph.Overlay
		contains     []string
		excludes     []string
	}{
		{
			name:         "Path",
			participants: []string{"repo", "cache", "mailer"},
			topology:     domain.TopologyPath,
			contains: []string{
				"repo((\"1. repo\"))",
				"cache[\"2. cache\"]",
				"repo --> cache",
				"cache --> mailer",
			},
			excludes: []string{".->", "classDef"},
		},
		{
			name:         "Loop",
			participants: []string{"a", "b", "a"},
			topology:     domain.TopologyLoop,
			contains: []string{
				"a((\"1. a\"))",
				"a --> b",
				"b -. \"3. back to start\" .-> a",
			},
			excludes: []string{"a[\"3. a\"]"},
		},
		{
			name:         "ID Sanitization",
			participants: []string{"user-repo", "mail.client", "say \"hi\""},
			topology:     domain.TopologyPath,
			contains: []string{
				"user_repo((\"1. user-repo\"))",
				"mail_client[\"2. mail.client\"]",
				"say__hi_[\"3. say 'hi'\"]",
			},
		},
		{
			name:         "Overlay",
			participants: []string{"a", "b", "c"},
			topology:     domain.TopologyPath,
			overlay:      &graph.Overlay{Visited: []string{"a", "a", "b"}, Failed: []string{"b"}},
			contains: []string{
				"classDef visited",
				"class a visited;",
				"class b failed;",
			},
			excludes: []string{"class b visited;", "class c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.participants, tt.topology, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnwanted substring: %v", got, unwanted)
				}
			}
		})
	}
}

func TestOverlayFromResult(t *testing.T) {
	res := &plan.Result{Steps: []plan.StepResult{
		{Calls: []plan.Call{{Participant: "a"}, {Participant: "b", Failed: true}}},
		{Calls: []plan.Call{{Participant: "c"}}},
	}}

	o := graph.OverlayFromResult(res)
	if strings.Join(o.Visited, ",") != "a,c" {
		t.Errorf("Visited = %v", o.Visited)
	}
	if strings.Join(o.Failed, ",") != "b" {
		t.Errorf("Failed = %v", o.Failed)
	}
}
