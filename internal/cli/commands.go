package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	loamAdapter "github.com/aretw0/mockcoach/internal/adapters/loam"
	"github.com/aretw0/mockcoach/internal/presentation/graph"
	"github.com/aretw0/mockcoach/internal/presentation/tui"
	"github.com/aretw0/mockcoach/pkg/observability"
	"github.com/aretw0/mockcoach/pkg/plan"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// ErrPlanFailed is returned when a plan is invalid or its simulation ends in an unexpected outcome.
// The details have already been printed.
var ErrPlanFailed = errors.New("plan failed")

// Validate checks every plan and prints one status line per plan. A directory is read as a
// Loam vault of markdown plans.
func Validate(ctx context.Context, w io.Writer, paths []string, opts Options, logger *slog.Logger) error {
	sources, err := collectPlans(ctx, paths)
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range sources {
		doc, err := src.load()
		if err == nil {
			if opts.Profile != "" {
				doc.Profile = opts.Profile
			}
			err = doc.Validate()
		}
		var ch *plan.Chain
		if err == nil {
			ch, err = plan.Build(doc, coachOptions(opts, logger)...)
		}
		if err != nil {
			failed++
			tui.Status(w, false, "%s: %v", src.label, err)
			continue
		}
		tui.Status(w, true, "%s: %s with %s", src.label, ch.Coach.Topology(), plural(len(doc.Steps), "step"))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d plans invalid", ErrPlanFailed, failed, len(sources))
	}
	return nil
}

type planSource struct {
	label string
	load  func() (*plan.Document, error)
}

// collectPlans expands directories into the plans of their vault.
func collectPlans(ctx context.Context, paths []string) ([]planSource, error) {
	var sources []planSource
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			sources = append(sources, planSource{label: path, load: func() (*plan.Document, error) {
				return plan.Load(path)
			}})
			continue
		}

		vault, err := loamAdapter.Open(path)
		if err != nil {
			return nil, err
		}
		ids, err := vault.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			sources = append(sources, planSource{label: filepath.Join(path, id), load: func() (*plan.Document, error) {
				return vault.Load(ctx, id)
			}})
		}
	}
	return sources, nil
}

// DescribeOptions controls how Describe renders its report.
type DescribeOptions struct {
	Raw   bool // print markdown even on a terminal
	Width int
}

// Describe simulates a plan and prints a markdown report, rendered with glamour on a terminal.
func Describe(w io.Writer, path string, opts Options, logger *slog.Logger, dopts DescribeOptions) error {
	doc, err := loadPlan(path, opts)
	if err != nil {
		return err
	}
	res, err := plan.Simulate(doc, coachOptions(opts, logger)...)
	if err != nil {
		return err
	}

	report := tui.Report(doc, res)
	if !dopts.Raw && isTerminal(w) {
		render, err := tui.NewRenderer(dopts.Width)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		if report, err = render(report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}
	_, err = io.WriteString(w, report)
	return err
}

// Graph prints the Mermaid flowchart of a plan's chain, optionally overlaid with a simulation.
func Graph(w io.Writer, path string, opts Options, logger *slog.Logger, overlay bool) error {
	doc, err := loadPlan(path, opts)
	if err != nil {
		return err
	}
	res, err := plan.Simulate(doc, coachOptions(opts, logger)...)
	if err != nil {
		return err
	}

	var o *graph.Overlay
	if overlay {
		o = graph.OverlayFromResult(res)
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(doc.Participants, res.Topology, o))
	return err
}

// RunOptions controls the output of Run.
type RunOptions struct {
	JSON    bool // print the simulation result as JSON
	Metrics bool // print the collected metrics in the Prometheus text format
}

// Run simulates a plan and prints one status line per step.
func Run(w io.Writer, path string, opts Options, logger *slog.Logger, ropts RunOptions) error {
	doc, err := loadPlan(path, opts)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	res, err := plan.Simulate(doc, coachOptions(opts, logger, metrics.Hooks())...)
	if err != nil {
		return err
	}

	if ropts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		for _, sr := range res.Steps {
			detail := plural(len(sr.Calls), "call")
			if sr.Error != "" {
				detail += ": " + sr.Error
			}
			tui.Status(w, sr.OK(), "%d. %s (%s)", sr.Step, sr.Call, detail)
		}
		if skipped := len(doc.Steps) - len(res.Steps); skipped > 0 {
			fmt.Fprintf(w, "%s not run\n", plural(skipped, "step"))
		}
	}

	if ropts.Metrics {
		if err := writeMetrics(w, reg); err != nil {
			return err
		}
	}

	if res.Failed() {
		return ErrPlanFailed
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
