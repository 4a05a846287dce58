package setcover

// Encode builds the CNF formula for inst.
//
// The first inst.UniverseSize clauses are the coverage clauses, in element
// order: clause e lists every set containing element e. An element that no
// set contains yields an empty clause, which correctly makes the formula
// unsatisfiable. The remaining clauses come from AtMostK over the decision
// variables 1..inst.SetCount() with bound inst.K.
//
// The only error is ErrInvalidBound, for a negative inst.K.
func Encode(inst *Instance) (*Formula, error) {
	n := inst.SetCount()

	covering := make([][]int, inst.UniverseSize+1)
	for i, set := range inst.Sets {
		x := i + 1
		for _, e := range set {
			if e < 1 || e > inst.UniverseSize {
				continue
			}
			// Sets may repeat an element; list each set once.
			if c := covering[e]; len(c) > 0 && c[len(c)-1] == x {
				continue
			}
			covering[e] = append(covering[e], x)
		}
	}

	f := &Formula{NumVars: n}
	f.Clauses = make([]Clause, 0, inst.UniverseSize)
	for e := 1; e <= inst.UniverseSize; e++ {
		f.Clauses = append(f.Clauses, Clause(covering[e]))
	}

	xs := make([]int, n)
	for i := range xs {
		xs[i] = i + 1
	}
	card, last, err := AtMostK(xs, inst.K, n+1)
	if err != nil {
		return nil, err
	}
	f.Clauses = append(f.Clauses, card...)
	if last > f.NumVars {
		f.NumVars = last
	}
	return f, nil
}
