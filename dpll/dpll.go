// Package dpll implements a small SAT solver using the Davis-Putnam
// backtracking algorithm with the two-watched-literal propagation scheme
// described in the 2001 paper Chaff: Engineering an Efficient SAT Solver.
//
// It has no clause learning and no restarts. It is meant for the modest
// formulas produced by Set Cover reductions and as an independent check on
// the other backends.
package dpll

import "fmt"

// A literal is 2v for variable index v, or 2v+1 for its negation.
type literal uint32

func (l literal) assn() assnVal { return assnVal(l&1) + 1 }

type assnVal uint8

const (
	unassigned assnVal = 0
	assnTrue   assnVal = 1
	assnFalse  assnVal = 2
	// Bit 2 marks a decision that is being tried for the second time.
	// The low bits stay the same as assnTrue/assnFalse.
	assnTrueSecond  assnVal = 5
	assnFalseSecond assnVal = 6
)

func (a assnVal) inv() assnVal { return a ^ 3 }

func (a assnVal) String() string {
	switch a {
	case unassigned:
		return "unassigned"
	case assnTrue, assnTrueSecond:
		return "true"
	case assnFalse, assnFalseSecond:
		return "false"
	default:
		panic("unreached")
	}
}

type decision struct {
	trailIdx int
	lit      literal
}

// Stats are purely informational.
type Stats struct {
	Decisions    int64
	Implications int64
	// Simplified is set when the formula was decided without search.
	Simplified bool
}

type solver struct {
	clauses     [][]literal // only clauses of two or more literals
	watches     [][]int     // clause indexes watching each literal; the watches are lits[0] and lits[1]
	assignments []assnVal
	decisions   []decision
	trail       []literal // every assigned literal, in assignment order
	propIndex   int       // index of the first unpropagated trail entry
	nextVar     int       // no variable below this is unassigned
	stats       Stats
}

// Solve determines whether problem is satisfiable and, if it is, gives a
// satisfying assignment: model[i] is the value of variable i+1.
//
// Each clause is a list of nonzero literals over the variables [1, nVars];
// negative integers are negated variables. A zero literal or a variable
// outside that range panics.
func Solve(problem [][]int, nVars int) (model []bool, stats Stats, sat bool) {
	sv := &solver{
		watches:     make([][]int, 2*nVars),
		assignments: make([]assnVal, nVars),
	}
	if !sv.load(problem, nVars) {
		sv.stats.Simplified = true
		return nil, sv.stats, false
	}
	if !sv.solve() {
		return nil, sv.stats, false
	}
	model = make([]bool, nVars)
	for v, a := range sv.assignments {
		model[v] = a&3 == assnTrue
	}
	return model, sv.stats, true
}

// load builds the clause database and assigns the unit clauses. It returns
// false if the problem is already known to be unsatisfiable.
func (sv *solver) load(problem [][]int, nVars int) bool {
	var units []literal
clauseLoop:
	for _, cls := range problem {
		seen := make(map[literal]struct{}, len(cls))
		var lits []literal
		for _, n := range cls {
			lit := toLiteral(n, nVars)
			if _, ok := seen[lit]; ok {
				continue
			}
			if _, ok := seen[lit^1]; ok {
				// x ∨ ¬x: always satisfied.
				continue clauseLoop
			}
			seen[lit] = struct{}{}
			lits = append(lits, lit)
		}
		switch len(lits) {
		case 0:
			return false
		case 1:
			units = append(units, lits[0])
		default:
			i := len(sv.clauses)
			sv.clauses = append(sv.clauses, lits)
			sv.watches[lits[0]] = append(sv.watches[lits[0]], i)
			sv.watches[lits[1]] = append(sv.watches[lits[1]], i)
		}
	}
	for _, lit := range units {
		switch sv.assignments[lit>>1] & 3 {
		case unassigned:
			sv.assign(lit)
		case lit.assn().inv():
			return false
		}
	}
	return sv.bcp()
}

func toLiteral(n, nVars int) literal {
	if n == 0 {
		panic("zero var passed to Solve")
	}
	neg := n < 0
	if neg {
		n = -n
	}
	if n > nVars {
		panic(fmt.Sprintf("var %d out of range [1, %d]", n, nVars))
	}
	lit := literal(n-1) << 1
	if neg {
		lit ^= 1
	}
	return lit
}

func (sv *solver) assign(lit literal) {
	sv.assignments[lit>>1] = lit.assn()
	sv.trail = append(sv.trail, lit)
}

func (sv *solver) solve() bool {
	for {
		// Decide on the next var to set, trying false first: for cover
		// problems that keeps the number of chosen sets down.
		for sv.nextVar < len(sv.assignments) && sv.assignments[sv.nextVar] != unassigned {
			sv.nextVar++
		}
		if sv.nextVar == len(sv.assignments) {
			return true
		}
		lit := literal(sv.nextVar)<<1 | 1
		sv.stats.Decisions++
		sv.decisions = append(sv.decisions, decision{trailIdx: len(sv.trail), lit: lit})
		sv.propIndex = len(sv.trail)
		sv.assign(lit)

		for !sv.bcp() {
			if !sv.resolveConflict() {
				return false
			}
		}
	}
}

// bcp carries out boolean constraint propagation (BCP) which finds all the
// direct implications of the current variable state. It returns true once
// there are no more implications to be made or false if it locates a
// conflict.
func (sv *solver) bcp() bool {
	for sv.propIndex < len(sv.trail) {
		neg := sv.trail[sv.propIndex] ^ 1 // now false
		sv.propIndex++
		watches := sv.watches[neg]
	watchesLoop:
		for i := 0; i < len(watches); {
			ci := watches[i]
			lits := sv.clauses[ci]
			// Put the false literal at lits[1] and the other watch at
			// lits[0].
			if lits[0] == neg {
				lits[0], lits[1] = lits[1], lits[0]
			}
			if sv.value(lits[0]) == assnTrue {
				// Satisfied by the other watch.
				i++
				continue
			}
			for j := 2; j < len(lits); j++ {
				if sv.value(lits[j]) == assnFalse {
					continue
				}
				// lits[j] becomes the new watch.
				sv.watches[lits[j]] = append(sv.watches[lits[j]], ci)
				watches[i] = watches[len(watches)-1]
				watches = watches[:len(watches)-1]
				sv.watches[neg] = watches
				lits[1], lits[j] = lits[j], lits[1]
				continue watchesLoop
			}
			i++
			// Every literal but lits[0] is false: either lits[0] is
			// implied or the clause is violated.
			if sv.value(lits[0]) == assnFalse {
				return false
			}
			sv.stats.Implications++
			sv.assign(lits[0])
		}
	}
	return true
}

// value gives the truth value of lit under the current assignment.
func (sv *solver) value(lit literal) assnVal {
	a := sv.assignments[lit>>1] & 3
	if a == unassigned {
		return unassigned
	}
	if a == lit.assn() {
		return assnTrue
	}
	return assnFalse
}

// resolveConflict tries to fix the current conflict by flipping the most
// recent decision that has not been tried both ways.
func (sv *solver) resolveConflict() bool {
	di := len(sv.decisions) - 1
	for ; di >= 0; di-- {
		if sv.assignments[sv.decisions[di].lit>>1]&4 == 0 {
			break
		}
	}
	if di < 0 {
		return false
	}
	d := sv.decisions[di]
	// Roll back everything assigned at or after d.
	for _, lit := range sv.trail[d.trailIdx:] {
		v := int(lit >> 1)
		sv.assignments[v] = unassigned
		if v < sv.nextVar {
			sv.nextVar = v
		}
	}
	sv.trail = sv.trail[:d.trailIdx]
	sv.decisions = sv.decisions[:di+1]
	flipped := d.lit ^ 1
	sv.decisions[di].lit = flipped
	sv.propIndex = d.trailIdx
	sv.assign(flipped)
	sv.assignments[flipped>>1] |= 4
	return true
}
