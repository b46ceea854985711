// Package report prints experiment results as key = value lines and as a
// summary table.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/wdm0006/hotdeck/pkg/experiment"
)

// Reporter writes result lines to W and mirrors each result to Logger.
type Reporter struct {
	W      io.Writer
	Logger *slog.Logger
}

func New(w io.Writer, logger *slog.Logger) *Reporter {
	return &Reporter{W: w, Logger: logger}
}

// Result prints
//
//	MAE_<dataset>_<strategy> = <mae>
//	Runtime_<dataset>_<strategy> = <ms> ms
//
// The MAE line is omitted when the result was not evaluated.
func (r *Reporter) Result(res experiment.Result) error {
	key := res.Dataset + "_" + res.Strategy
	if res.Eval != nil {
		if _, err := fmt.Fprintf(r.W, "MAE_%s = %s\n", key, FormatFloat(res.Eval.MAE)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(r.W, "Runtime_%s = %d ms\n", key, res.Elapsed.Milliseconds()); err != nil {
		return err
	}
	if r.Logger != nil {
		attrs := []any{"dataset", res.Dataset, "strategy", res.Strategy, "runtime_ms", res.Elapsed.Milliseconds()}
		if res.Eval != nil {
			attrs = append(attrs, "mae", res.Eval.MAE, "compared", res.Eval.Compared, "unfilled", res.Eval.Unfilled)
		}
		r.Logger.Debug("result reported", attrs...)
	}
	return nil
}

// Table renders all results as one summary table.
func (r *Reporter) Table(results []experiment.Result) {
	tw := tablewriter.NewWriter(r.W)
	tw.SetHeader([]string{"Dataset", "Strategy", "MAE", "Compared", "Unfilled", "Runtime (ms)"})
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, res := range results {
		mae, compared, unfilled := "-", "-", "-"
		if res.Eval != nil {
			mae = FormatFloat(res.Eval.MAE)
			compared = strconv.Itoa(res.Eval.Compared)
			unfilled = strconv.Itoa(res.Eval.Unfilled)
		}
		tw.Append([]string{res.Dataset, res.Strategy, mae, compared, unfilled, strconv.FormatInt(res.Elapsed.Milliseconds(), 10)})
	}
	tw.Render()
}

// FormatFloat renders v in the shortest form that round-trips.
func FormatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
