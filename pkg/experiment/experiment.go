// Package experiment runs imputation strategies over a set of datasets with
// missing values and scores each output against a complete reference table.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	"github.com/wdm0006/hotdeck/pkg/evaluate"
	"github.com/wdm0006/hotdeck/pkg/transform/impute"
)

// Dataset is a named table with missing values.
type Dataset struct {
	Name  string
	Table *ds.Table
}

// Strategy is a named imputation transform.
type Strategy struct {
	Name      string
	Transform ds.Transform
}

// ParseStrategy builds a strategy from its name. Steps joined with "+" run in
// order, so "hotdeck+mean" mean-fills whatever hot-deck left missing. "hd" is
// accepted for "hotdeck".
func ParseStrategy(name string) (Strategy, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(name)), "+")
	steps := make([]ds.Transform, 0, len(parts))
	for _, p := range parts {
		switch strings.TrimSpace(p) {
		case "mean":
			steps = append(steps, &impute.Mean{})
		case "hotdeck", "hd":
			steps = append(steps, &impute.HotDeck{})
		default:
			return Strategy{}, fmt.Errorf("experiment: unknown strategy %q", p)
		}
	}
	if len(steps) == 1 {
		return Strategy{Name: name, Transform: steps[0]}, nil
	}
	return Strategy{Name: name, Transform: ds.NewPipeline(steps...)}, nil
}

// ParseStrategies parses each name in turn.
func ParseStrategies(names []string) ([]Strategy, error) {
	out := make([]Strategy, 0, len(names))
	for _, n := range names {
		s, err := ParseStrategy(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Result is the outcome of one strategy applied to one dataset. Eval is nil
// when the runner has no reference table.
type Result struct {
	Dataset  string           `json:"dataset"`
	Strategy string           `json:"strategy"`
	Imputed  *ds.Table        `json:"-"`
	Eval     *evaluate.Result `json:"eval,omitempty"`
	Elapsed  time.Duration    `json:"elapsed_ns"`
}

// Runner applies every strategy to every dataset.
type Runner struct {
	// Reference is the complete table imputed outputs are scored against.
	Reference *ds.Table
	Logger    *slog.Logger
	// OnResult is called after each run, typically to persist Imputed.
	OnResult func(Result) error
}

// Run executes strategies in the outer loop and datasets in the inner loop.
// Elapsed covers imputation only. The first error stops the run.
func (r *Runner) Run(ctx context.Context, datasets []Dataset, strategies []Strategy) ([]Result, error) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	results := make([]Result, 0, len(datasets)*len(strategies))
	for _, s := range strategies {
		for _, d := range datasets {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			res, err := r.runOne(ctx, d, s)
			if err != nil {
				return results, fmt.Errorf("experiment: %s/%s: %w", d.Name, s.Name, err)
			}
			attrs := []any{"dataset", d.Name, "strategy", s.Name, "elapsed", res.Elapsed, "missing_before", d.Table.MissingCount()}
			if res.Eval != nil {
				attrs = append(attrs, "mae", res.Eval.MAE, "unfilled", res.Eval.Unfilled)
			}
			log.Info("imputation finished", attrs...)
			if r.OnResult != nil {
				if err := r.OnResult(res); err != nil {
					return results, fmt.Errorf("experiment: %s/%s: %w", d.Name, s.Name, err)
				}
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, d Dataset, s Strategy) (Result, error) {
	start := time.Now()
	out, err := s.Transform.Apply(ctx, d.Table)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, err
	}
	res := Result{Dataset: d.Name, Strategy: s.Name, Imputed: out, Elapsed: elapsed}
	if r.Reference != nil {
		ev, err := evaluate.Compare(out, r.Reference)
		if err != nil {
			return Result{}, err
		}
		res.Eval = &ev
	}
	return res, nil
}
