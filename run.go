package setcover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kr/pretty"
)

var (
	// ErrCountMismatch is returned in strict mode when the instance header
	// announces a different number of sets than were read.
	ErrCountMismatch = errors.New("declared set count does not match sets read")
	// ErrInconsistentCover is returned in strict mode when a satisfying
	// model selects sets that do not cover the universe.
	ErrInconsistentCover = errors.New("chosen sets do not cover the universe")
)

// A Solver decides CNF formulas. Implementations live in package backend.
type Solver interface {
	Solve(ctx context.Context, f *Formula) (*Result, error)
}

// A Runner takes an instance through encoding, solving and interpretation.
type Runner struct {
	Solver Solver
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Metrics is optional.
	Metrics *Metrics
	// Strict turns the set-count mismatch and the cover consistency
	// check from warnings into errors.
	Strict bool
}

// Run decides inst. Solver verdicts other than SAT and UNSAT are not errors;
// they show up in the report. The Result is returned alongside the report so
// callers can show the solver's raw output.
func (r *Runner) Run(ctx context.Context, inst *Instance) (*Report, *Result, error) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	if inst.CountMismatch() {
		if r.Strict {
			return nil, nil, fmt.Errorf("%w: expected %d, read %d", ErrCountMismatch, inst.DeclaredSets, inst.SetCount())
		}
		log.Warn("set count mismatch; using the sets read",
			"expected", inst.DeclaredSets, "read", inst.SetCount())
	}
	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("instance", "value", pretty.Sprint(inst))
	}

	f, err := Encode(inst)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding instance: %w", err)
	}
	log.Info("encoded instance",
		"universe", inst.UniverseSize, "sets", inst.SetCount(), "k", inst.K,
		"variables", f.NumVars, "clauses", len(f.Clauses))
	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("formula", "value", pretty.Sprint(f))
	}
	if r.Metrics != nil {
		r.Metrics.observeFormula(inst, f)
	}

	start := time.Now()
	res, err := r.Solver.Solve(ctx, f)
	elapsed := time.Since(start)
	if err != nil {
		return nil, nil, fmt.Errorf("solving formula: %w", err)
	}
	if r.Metrics != nil {
		r.Metrics.SolveDuration.Observe(elapsed.Seconds())
	}
	log.Info("solver finished", "verdict", res.Verdict, "elapsed", elapsed)

	rep := Interpret(inst, res)
	if r.Metrics != nil {
		r.Metrics.observeReport(rep)
	}
	switch {
	case rep.Verdict != Satisfiable && rep.Verdict != Unsatisfiable:
		log.Warn("solver returned an unexpected result", "code", int(rep.Verdict))
	case !rep.Consistent():
		if r.Strict {
			return rep, res, fmt.Errorf("%w: missing %v", ErrInconsistentCover, rep.Missing)
		}
		log.Warn("chosen sets do not cover the universe", "missing", rep.Missing)
	}
	return rep, res, nil
}
