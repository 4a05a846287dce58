package setcover

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBound is returned for a negative cardinality bound.
	ErrInvalidBound = errors.New("invalid cardinality bound")
	// ErrVariableOverlap is returned when fresh counter variables would
	// collide with the variables being counted.
	ErrVariableOverlap = errors.New("counter variables overlap constrained variables")
)

// AtMostK returns clauses that are satisfiable exactly when at most k of
// vars are true, using the sequential counter encoding.
//
// Fresh variables are numbered from start, which must exceed every variable
// in vars. Register s(i, j), true when at least j of vars[:i] are true, is
// variable start + (i-1)*k + (j-1). The returned last is the highest
// variable used, or start-1 if none were needed. That happens when vars is
// empty, when k == 0 (every variable gets a negative unit clause), and when
// k >= len(vars) (no clauses at all).
func AtMostK(vars []int, k, start int) (clauses []Clause, last int, err error) {
	if k < 0 {
		return nil, 0, fmt.Errorf("%w: k = %d", ErrInvalidBound, k)
	}
	n := len(vars)
	if n == 0 {
		return nil, start - 1, nil
	}
	for _, x := range vars {
		if x <= 0 || x >= start {
			return nil, 0, fmt.Errorf("%w: variable %d, counters start at %d", ErrVariableOverlap, x, start)
		}
	}
	if k == 0 {
		for _, x := range vars {
			clauses = append(clauses, Clause{-x})
		}
		return clauses, start - 1, nil
	}
	if k >= n {
		return nil, start - 1, nil
	}

	s := func(i, j int) int { return start + (i-1)*k + (j - 1) }

	clauses = make([]Clause, 0, 2*n*k)
	clauses = append(clauses, Clause{-vars[0], s(1, 1)})
	for j := 2; j <= k; j++ {
		clauses = append(clauses, Clause{-s(1, j)})
	}
	for i := 2; i <= n; i++ {
		x := vars[i-1]
		clauses = append(clauses,
			Clause{-x, s(i, 1)},
			Clause{-s(i-1, 1), s(i, 1)},
		)
		for j := 2; j <= k; j++ {
			clauses = append(clauses,
				Clause{-x, -s(i-1, j-1), s(i, j)},
				Clause{-s(i-1, j), s(i, j)},
			)
		}
		// The cutoff: k already true before position i forces x false.
		clauses = append(clauses, Clause{-x, -s(i-1, k)})
	}
	return clauses, s(n, k), nil
}
