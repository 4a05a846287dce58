package setcover

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// A Model maps variables to truth values. Variables that are absent are
// false: solvers may leave don't-care variables out.
type Model map[int]bool

// Value reports the truth value of variable v.
func (m Model) Value(v int) bool { return m[v] }

// ModelFromBools converts a slice holding the value of variable i+1 at
// index i into a Model.
func ModelFromBools(vals []bool) Model {
	m := make(Model, len(vals))
	for i, b := range vals {
		m[i+1] = b
	}
	return m
}

// ParseModel extracts the model from a solver's standard output. Assignment
// lines start with 'v' and list signed literals; a 0 literal ends the model.
func ParseModel(output []byte) (Model, error) {
	m := make(Model)
	s := bufio.NewScanner(bytes.NewReader(output))
	s.Buffer(nil, 1<<26)
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, "v") {
			continue
		}
		for _, field := range strings.Fields(line)[1:] {
			lit, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("malformed model literal: %s", err)
			}
			if lit == 0 {
				return m, nil
			}
			m[abs(lit)] = lit > 0
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
