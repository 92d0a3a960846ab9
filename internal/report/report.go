// Package report prints per-batch progress and a closing status line for a
// load run, and mirrors the same numbers into logs, metrics and the optional
// skip log. Nothing here changes what gets loaded.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/finance-etl/internal/loader"
	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/skiplog"
	"github.com/nimasrn/finance-etl/pkg/logger"
	"github.com/nimasrn/finance-etl/pkg/prom"
)

type Reporter struct {
	out     io.Writer
	runID   string
	skips   *skiplog.Log
	started time.Time
	results []loader.Result
	skipped map[string]int
}

var _ loader.Reporter = (*Reporter)(nil)

// New returns a Reporter writing to out. skips may be nil.
func New(out io.Writer, skips *skiplog.Log) *Reporter {
	return &Reporter{
		out:     out,
		runID:   uuid.NewString(),
		skips:   skips,
		started: time.Now(),
		skipped: make(map[string]int),
	}
}

func (r *Reporter) RunID() string {
	return r.runID
}

func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintln(r.out, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Success(format string, args ...any) {
	fmt.Fprintln(r.out, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Warning(format string, args ...any) {
	fmt.Fprintln(r.out, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) Error(format string, args ...any) {
	fmt.Fprintln(r.out, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func (r *Reporter) BatchStarted(table string, rows int) {
	logger.Info("inserting batch", "run_id", r.runID, "table", table, "rows", rows)
	r.Info("Inserting %d rows into %s...", rows, table)
}

func (r *Reporter) BatchFinished(res loader.Result) {
	r.results = append(r.results, res)
	prom.ObserveBatch(res.Table, res.Elapsed.Seconds(), res.Inserted, res.Ignored, !res.OK())

	if !res.OK() {
		logger.Error("batch failed", "run_id", r.runID, "table", res.Table, "elapsed", res.Elapsed, "error", res.Err)
		r.Error("Error inserting into %s: %v", res.Table, res.Err)
		return
	}

	logger.Info("batch finished", "run_id", r.runID, "table", res.Table, "rows", res.Rows,
		"inserted", res.Inserted, "ignored", res.Ignored, "skipped", res.Skipped, "elapsed", res.Elapsed)
	if res.Rows == 0 {
		r.Warning("No rows to insert into %s", res.Table)
		return
	}
	r.Success("Inserted %d of %d rows into %s in %s", res.Inserted, res.Rows, res.Table, res.Elapsed.Round(time.Millisecond))
}

func (r *Reporter) RowsSkipped(table string, rejected []model.Rejection) {
	if len(rejected) == 0 {
		return
	}
	r.skipped[table] += len(rejected)

	byReason := make(map[string]int)
	for _, rej := range rejected {
		byReason[rej.Reason]++
	}
	for reason, n := range byReason {
		prom.AddSkippedRows(table, reason, n)
	}

	if r.skips != nil {
		if err := r.skips.Add(rejected...); err != nil {
			logger.Error("cannot write skip log", "run_id", r.runID, "table", table, "error", err)
		}
	}
	r.Warning("Skipped %d %s rows (%s)", len(rejected), table, formatReasons(byReason))
}

// Results returns every batch result seen so far, in order.
func (r *Reporter) Results() []loader.Result {
	return append([]loader.Result(nil), r.results...)
}

// Summary renders one line per table.
func (r *Reporter) Summary() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Run " + r.runID))
	b.WriteString("\n")
	for _, res := range r.results {
		line := fmt.Sprintf("%-13s rows=%-8d inserted=%-8d ignored=%-8d skipped=%-8d %s",
			res.Table, res.Rows, res.Inserted, res.Ignored, res.Skipped, res.Elapsed.Round(time.Millisecond))
		if res.Variants > 0 {
			line += fmt.Sprintf(" variants=%d", res.Variants)
		}
		switch {
		case !res.OK():
			b.WriteString(ErrorStyle.Render(line + " FAILED"))
		case res.Rows == 0:
			b.WriteString(MutedStyle.Render(line))
		default:
			b.WriteString(SuccessStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Finish prints the summary and the closing status line. closeErr is the
// error of releasing the connection, if any.
func (r *Reporter) Finish(closeErr error) {
	fmt.Fprint(r.out, r.Summary())

	elapsed := time.Since(r.started).Round(time.Millisecond)
	failed := loader.Failed(r.results)
	logger.Info("run finished", "run_id", r.runID, "elapsed", elapsed, "failed", failed != nil)

	switch {
	case closeErr != nil:
		r.Error("Error closing connection: %v", closeErr)
	case failed != nil:
		r.Warning("Connection closed after %s with failed batches", elapsed)
	default:
		r.Success("Connection closed after %s", elapsed)
	}
}

// Push sends this run's metrics to a Pushgateway. An empty url is a no-op.
func (r *Reporter) Push(url string) {
	if url == "" {
		return
	}
	if err := prom.Push(url, "finance_etl", r.runID); err != nil {
		logger.Warn("cannot push metrics", "run_id", r.runID, "url", url, "error", err)
	}
}

func formatReasons(byReason map[string]int) string {
	reasons := make([]string, 0, len(byReason))
	for reason := range byReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	parts := make([]string, len(reasons))
	for i, reason := range reasons {
		parts[i] = fmt.Sprintf("%s=%d", reason, byReason[reason])
	}
	return strings.Join(parts, ", ")
}
