package backend

import (
	"context"
	"fmt"
	"os"

	"github.com/cespare/setcover"
)

// Tee writes each formula to Path in DIMACS format before passing it on to
// Solver. It gives the in-process backends the same CNF file the exec
// backend leaves behind.
type Tee struct {
	Path   string
	Solver setcover.Solver
}

func (t *Tee) Solve(ctx context.Context, f *setcover.Formula) (*setcover.Result, error) {
	file, err := os.Create(t.Path)
	if err != nil {
		return nil, err
	}
	if err := setcover.WriteDIMACS(file, f); err != nil {
		file.Close()
		return nil, fmt.Errorf("writing %s: %s", t.Path, err)
	}
	if err := file.Close(); err != nil {
		return nil, err
	}
	return t.Solver.Solve(ctx, f)
}
