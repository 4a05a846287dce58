// Package backend provides the SAT solvers a setcover.Runner can use: an
// external solver process, and three in-process solvers.
package backend

import (
	"fmt"

	"github.com/cespare/setcover"
)

// Names lists the backends New knows about.
var Names = []string{"exec", "gophersat", "gini", "dpll"}

// New returns the backend called name. The exec settings are only used by
// the exec backend.
func New(name string, exec Exec) (setcover.Solver, error) {
	switch name {
	case "exec":
		e := exec
		return &e, nil
	case "gophersat":
		return Gophersat{}, nil
	case "gini":
		return Gini{}, nil
	case "dpll":
		return DPLL{}, nil
	}
	return nil, fmt.Errorf("unknown solver backend %q", name)
}
