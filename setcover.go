// Package setcover decides Set Cover instances by reduction to SAT.
//
// An Instance asks whether at most K of its sets cover every element of the
// universe [1, UniverseSize]. Encode turns it into a CNF Formula: one
// coverage clause per element plus a sequential-counter encoding of "at most
// K decision variables are true". A Solver decides the formula and Interpret
// maps the model back onto the chosen sets, checking that they really do
// cover the universe.
//
// Variable i (1 <= i <= SetCount) means "set i is chosen". Variables above
// SetCount are counter registers introduced by AtMostK; they mean nothing
// outside the formula.
package setcover

import (
	"fmt"
)

// An Instance is a Set Cover decision problem. It must not be modified once
// it has been handed to Encode or Interpret.
type Instance struct {
	UniverseSize int
	// DeclaredSets is the number of sets announced by the instance header.
	// It may disagree with len(Sets); the parsed sets win.
	DeclaredSets int
	K            int
	// Sets[i] lists the elements of set i+1.
	Sets [][]int
}

// SetCount is the number of sets (and decision variables) in the instance.
func (inst *Instance) SetCount() int { return len(inst.Sets) }

// CountMismatch reports whether the header announced a different number of
// sets than were actually read.
func (inst *Instance) CountMismatch() bool {
	return inst.DeclaredSets != len(inst.Sets)
}

// A Clause is a disjunction of literals. Positive literals are variables and
// negative literals their negations. An empty clause is unsatisfiable.
type Clause []int

// A Formula is a conjunction of clauses over the variables [1, NumVars].
type Formula struct {
	NumVars int
	Clauses []Clause
}

// Slices returns the clauses as plain int slices, sharing storage.
func (f *Formula) Slices() [][]int {
	cnf := make([][]int, len(f.Clauses))
	for i, c := range f.Clauses {
		cnf[i] = c
	}
	return cnf
}

// Check verifies that every literal names a variable in [1, f.NumVars].
func (f *Formula) Check() error {
	for i, c := range f.Clauses {
		for _, lit := range c {
			v := abs(lit)
			if v == 0 || v > f.NumVars {
				return fmt.Errorf("clause %d contains literal %d outside [1, %d]", i+1, lit, f.NumVars)
			}
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
