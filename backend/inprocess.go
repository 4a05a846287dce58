package backend

import (
	"context"

	"github.com/crillab/gophersat/solver"
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/cespare/setcover"
	"github.com/cespare/setcover/dpll"
)

// The in-process backends cannot be interrupted; ctx is only checked before
// they start.

// Gophersat solves formulas with the gophersat CDCL solver.
type Gophersat struct{}

func (Gophersat) Solve(ctx context.Context, f *setcover.Formula) (*setcover.Result, error) {
	if res, ok, err := trivial(ctx, f); ok || err != nil {
		return res, err
	}
	// ParseSlice keeps references to the clauses.
	cnf := make([][]int, len(f.Clauses))
	for i, c := range f.Clauses {
		cnf[i] = append([]int(nil), c...)
	}
	s := solver.New(solver.ParseSlice(cnf))
	if s.Solve() != solver.Sat {
		return &setcover.Result{Verdict: setcover.Unsatisfiable}, nil
	}
	return &setcover.Result{
		Verdict: setcover.Satisfiable,
		Model:   setcover.ModelFromBools(s.Model()),
	}, nil
}

// Gini solves formulas with the gini CDCL solver.
type Gini struct{}

func (Gini) Solve(ctx context.Context, f *setcover.Formula) (*setcover.Result, error) {
	if res, ok, err := trivial(ctx, f); ok || err != nil {
		return res, err
	}
	g := gini.NewV(f.NumVars)
	for _, c := range f.Clauses {
		for _, lit := range c {
			if lit < 0 {
				g.Add(z.Var(-lit).Neg())
			} else {
				g.Add(z.Var(lit).Pos())
			}
		}
		g.Add(0)
	}
	switch g.Solve() {
	case 1:
	case -1:
		return &setcover.Result{Verdict: setcover.Unsatisfiable}, nil
	default:
		return &setcover.Result{Verdict: 0}, nil
	}
	m := make(setcover.Model, f.NumVars)
	for v := z.Var(1); v <= g.MaxVar(); v++ {
		m[int(v)] = g.Value(v.Pos())
	}
	return &setcover.Result{Verdict: setcover.Satisfiable, Model: m}, nil
}

// DPLL solves formulas with package dpll.
type DPLL struct{}

func (DPLL) Solve(ctx context.Context, f *setcover.Formula) (*setcover.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	model, _, ok := dpll.Solve(f.Slices(), f.NumVars)
	if !ok {
		return &setcover.Result{Verdict: setcover.Unsatisfiable}, nil
	}
	return &setcover.Result{
		Verdict: setcover.Satisfiable,
		Model:   setcover.ModelFromBools(model),
	}, nil
}

// trivial settles formulas the CDCL libraries handle awkwardly: those with
// an empty clause and those with no clauses at all.
func trivial(ctx context.Context, f *setcover.Formula) (res *setcover.Result, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := f.Check(); err != nil {
		return nil, false, err
	}
	if len(f.Clauses) == 0 {
		return &setcover.Result{Verdict: setcover.Satisfiable, Model: setcover.Model{}}, true, nil
	}
	for _, c := range f.Clauses {
		if len(c) == 0 {
			return &setcover.Result{Verdict: setcover.Unsatisfiable}, true, nil
		}
	}
	return nil, false, nil
}
