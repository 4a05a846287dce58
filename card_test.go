package setcover

import (
	"errors"
	"fmt"
	"math/bits"
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/google/go-cmp/cmp"

	"github.com/cespare/setcover/dpll"
)

func seq(lo, hi int) []int {
	var s []int
	for i := lo; i <= hi; i++ {
		s = append(s, i)
	}
	return s
}

// fixVars returns clauses plus unit clauses pinning variables 1..n to the
// bits of mask (bit i-1 is variable i).
func fixVars(clauses []Clause, n int, mask uint) [][]int {
	cnf := make([][]int, 0, len(clauses)+n)
	for _, c := range clauses {
		cnf = append(cnf, append([]int(nil), c...))
	}
	for i := 1; i <= n; i++ {
		if mask&(1<<(i-1)) != 0 {
			cnf = append(cnf, []int{i})
		} else {
			cnf = append(cnf, []int{-i})
		}
	}
	return cnf
}

func gophersatSat(cnf [][]int) bool {
	if len(cnf) == 0 {
		return true
	}
	return solver.New(solver.ParseSlice(cnf)).Solve() == solver.Sat
}

func TestAtMostKEquivalence(t *testing.T) {
	for n := 0; n <= 6; n++ {
		for k := 0; k <= n; k++ {
			t.Run(fmt.Sprintf("n=%d,k=%d", n, k), func(t *testing.T) {
				clauses, last, err := AtMostK(seq(1, n), k, n+1)
				if err != nil {
					t.Fatal(err)
				}
				nVars := max(n, last)
				for mask := uint(0); mask < 1<<n; mask++ {
					want := bits.OnesCount(mask) <= k
					cnf := fixVars(clauses, n, mask)
					_, _, got := dpll.Solve(cnf, nVars)
					if got != want {
						t.Fatalf("assignment %0*b: dpll says sat=%t; want %t", n, mask, got, want)
					}
					if got := gophersatSat(fixVars(clauses, n, mask)); got != want {
						t.Fatalf("assignment %0*b: gophersat says sat=%t; want %t", n, mask, got, want)
					}
				}
			})
		}
	}
}

func TestAtMostKVariableCount(t *testing.T) {
	for _, start := range []int{0, 100} {
		for n := 0; n <= 8; n++ {
			for k := 0; k <= n+1; k++ {
				first := start
				if first == 0 {
					first = n + 1
				}
				_, last, err := AtMostK(seq(1, n), k, first)
				if err != nil {
					t.Fatalf("n=%d, k=%d: %s", n, k, err)
				}
				want := 0
				if k > 0 && k < n {
					want = n * k
				}
				if got := last - first + 1; got != want {
					t.Errorf("n=%d, k=%d, start=%d: consumed %d variables; want %d", n, k, first, got, want)
				}
			}
		}
	}
}

func TestAtMostKClauses(t *testing.T) {
	for _, tt := range []struct {
		name     string
		vars     []int
		k        int
		start    int
		want     []Clause
		wantLast int
	}{
		{
			name:     "no vars",
			k:        2,
			start:    1,
			wantLast: 0,
		},
		{
			name:     "k=0",
			vars:     []int{1, 2, 3},
			k:        0,
			start:    4,
			want:     []Clause{{-1}, {-2}, {-3}},
			wantLast: 3,
		},
		{
			name:     "k=n",
			vars:     []int{1, 2, 3},
			k:        3,
			start:    4,
			wantLast: 3,
		},
		{
			name:     "k>n",
			vars:     []int{2, 5},
			k:        7,
			start:    9,
			wantLast: 8,
		},
		{
			name:  "n=3,k=1",
			vars:  []int{1, 2, 3},
			k:     1,
			start: 4,
			want: []Clause{
				{-1, 4},
				{-2, 5}, {-4, 5}, {-2, -4},
				{-3, 6}, {-5, 6}, {-3, -5},
			},
			wantLast: 6,
		},
		{
			name:  "n=3,k=2",
			vars:  []int{1, 2, 3},
			k:     2,
			start: 4,
			// s(i,j) = 4 + 2(i-1) + (j-1)
			want: []Clause{
				{-1, 4}, {-5},
				{-2, 6}, {-4, 6}, {-2, -4, 7}, {-5, 7}, {-2, -5},
				{-3, 8}, {-6, 8}, {-3, -6, 9}, {-7, 9}, {-3, -7},
			},
			wantLast: 9,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, last, err := AtMostK(tt.vars, tt.k, tt.start)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("AtMostK clauses (-got, +want):\n%s", diff)
			}
			if last != tt.wantLast {
				t.Errorf("AtMostK last var: got %d; want %d", last, tt.wantLast)
			}
		})
	}
}

func TestAtMostKErrors(t *testing.T) {
	for _, tt := range []struct {
		name  string
		vars  []int
		k     int
		start int
		want  error
	}{
		{"negative k", []int{1, 2}, -1, 3, ErrInvalidBound},
		{"negative k without vars", nil, -3, 1, ErrInvalidBound},
		{"start inside vars", []int{1, 2, 3}, 1, 3, ErrVariableOverlap},
		{"nonpositive var", []int{0, 1}, 1, 2, ErrVariableOverlap},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := AtMostK(tt.vars, tt.k, tt.start)
			if !errors.Is(err, tt.want) {
				t.Fatalf("AtMostK: got error %v; want %v", err, tt.want)
			}
		})
	}
}
