// Package telemetry provides the Search Driver's progress reporting: a
// thin, leveled wrapper around log/slog gated by a verbosity flag, the
// structured generalization of the teacher's Verbose-flag-gated
// fmt.Printf calls.
package telemetry

import (
	"io"
	"log/slog"

	"github.com/halbux/gogmab/arm"
	"github.com/halbux/gogmab/memory"
)

// Logger reports generation progress and the final result. When
// constructed with verbose=false it discards everything it is given,
// mirroring the io.Discard-when-disabled convention the retrieved corpus
// uses for its own opt-in debug logging.
type Logger struct {
	slog *slog.Logger
}

// New returns a Logger writing text-formatted records to w when verbose
// is true, or a no-op Logger otherwise. A nil w with verbose=true also
// discards, since there is nowhere to write.
func New(w io.Writer, verbose bool) *Logger {
	if !verbose || w == nil {
		return &Logger{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
	}
	return &Logger{slog: slog.New(slog.NewTextHandler(w, nil))}
}

// Generation logs the state of the search after completing generation n,
// along with a summary of the mean rewards held in memory at that point.
func (l *Logger) Generation(n int, simulationsUsed int, best arm.Candidate, snapshot memory.Snapshot) {
	l.slog.Info("generation complete",
		"generation", n,
		"simulations_used", simulationsUsed,
		"best_mean", best.MeanReward(),
		"best_n_evaluations", best.NEvaluations(),
		"best_vector", best.ActionVector(),
		"memory_size", snapshot.Count,
		"mean_min", snapshot.Min,
		"mean_max", snapshot.Max,
		"mean_avg", snapshot.Mean,
	)
}

// Result logs the final selection returned by Optimize.
func (l *Logger) Result(simulationsUsed int, best arm.Candidate) {
	l.slog.Info("optimization complete",
		"simulations_used", simulationsUsed,
		"best_mean", best.MeanReward(),
		"best_n_evaluations", best.NEvaluations(),
		"best_vector", best.ActionVector(),
	)
}
