package setcover

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// A Verdict is a solver's answer, using the conventional SAT competition
// exit codes. Any value other than Satisfiable and Unsatisfiable is an
// unrecognized outcome and is reported as-is.
type Verdict int

const (
	Satisfiable   Verdict = 10
	Unsatisfiable Verdict = 20
)

func (v Verdict) String() string {
	switch v {
	case Satisfiable:
		return "SAT"
	case Unsatisfiable:
		return "UNSAT"
	default:
		return "unknown(" + strconv.Itoa(int(v)) + ")"
	}
}

// A Result is what a Solver gives back for a formula.
type Result struct {
	Verdict Verdict
	// Model is set only for Satisfiable results.
	Model Model
	// Output is the solver's raw text, if it produced any.
	Output []byte
}

// A Report describes the outcome of one run in terms of the instance.
type Report struct {
	Verdict Verdict
	K       int
	// Chosen, Covered and Missing are sorted and only filled in for a
	// satisfiable verdict.
	Chosen  []int
	Covered []int
	Missing []int
}

// Interpret maps res back onto inst. Only the decision variables
// 1..inst.SetCount() are read from the model; counter variables carry no
// meaning here.
func Interpret(inst *Instance, res *Result) *Report {
	r := &Report{Verdict: res.Verdict, K: inst.K}
	if res.Verdict != Satisfiable {
		return r
	}
	covered := mapset.NewThreadUnsafeSet[int]()
	for j := 1; j <= inst.SetCount(); j++ {
		if !res.Model.Value(j) {
			continue
		}
		r.Chosen = append(r.Chosen, j)
		covered.Append(inst.Sets[j-1]...)
	}
	universe := mapset.NewThreadUnsafeSetWithSize[int](inst.UniverseSize)
	for e := 1; e <= inst.UniverseSize; e++ {
		universe.Add(e)
	}
	r.Covered = sorted(covered)
	r.Missing = sorted(universe.Difference(covered))
	return r
}

func sorted(s mapset.Set[int]) []int {
	if s.Cardinality() == 0 {
		return nil
	}
	elems := s.ToSlice()
	slices.Sort(elems)
	return elems
}

// Consistent reports whether the chosen sets cover the universe. It is
// false only when a satisfying model fails to do so, which means the
// encoding or the solver is broken.
func (r *Report) Consistent() bool {
	return r.Verdict != Satisfiable || len(r.Missing) == 0
}

// Print writes a human-readable account of r.
func (r *Report) Print(w io.Writer) error {
	var b strings.Builder
	switch r.Verdict {
	case Unsatisfiable:
		fmt.Fprintf(&b, "UNSAT: no set cover of size <= %d exists for this instance.\n", r.K)
	case Satisfiable:
		fmt.Fprintf(&b, "\nChosen sets (indices): %s\n", join(r.Chosen))
		fmt.Fprintf(&b, "Covered elements: %s\n", join(r.Covered))
		if len(r.Missing) > 0 {
			fmt.Fprintf(&b, "WARNING: some elements are not covered: %s\n", join(r.Missing))
		} else {
			b.WriteString("All elements are covered.\n")
		}
	default:
		fmt.Fprintf(&b, "Solver returned unexpected code: %d\n", int(r.Verdict))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func join(ns []int) string {
	if len(ns) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
