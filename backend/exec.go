package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/setcover"
)

// Exec runs an external SAT solver process on a DIMACS file.
//
// The solver is invoked as
//
//	<Binary> -model -verb=<Verbosity> <CNFPath>
//
// which is the glucose/minisat convention. Its exit code is the verdict (10
// satisfiable, 20 unsatisfiable, anything else reported as-is) and the model
// is read from the 'v' lines of its standard output.
type Exec struct {
	// Binary is the solver executable. A bare name that exists in the
	// working directory is run from there; otherwise it is looked up in
	// PATH.
	Binary string
	// CNFPath is where the formula is written. If empty, a temporary file
	// is used and removed afterwards.
	CNFPath   string
	Verbosity int
	// Timeout bounds the solver's run time. Zero means no limit.
	Timeout time.Duration
}

func (e *Exec) Solve(ctx context.Context, f *setcover.Formula) (*setcover.Result, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	path, cleanup, err := e.writeFormula(f)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, e.binary(), e.args(path)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// A solver that leaves children behind must not keep us waiting on
	// its output pipes once it has been killed.
	cmd.WaitDelay = time.Second

	var code int
	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		code = exitErr.ExitCode()
	case ctx.Err() != nil:
		return nil, fmt.Errorf("running %s: %w", e.Binary, ctx.Err())
	default:
		return nil, fmt.Errorf("running %s: %s", e.Binary, err)
	}

	res := &setcover.Result{
		Verdict: setcover.Verdict(code),
		Output:  stdout.Bytes(),
	}
	if res.Verdict == setcover.Satisfiable {
		res.Model, err = setcover.ParseModel(res.Output)
		if err != nil {
			return nil, fmt.Errorf("reading %s output: %s", e.Binary, err)
		}
	}
	if res.Verdict != setcover.Satisfiable && res.Verdict != setcover.Unsatisfiable && stderr.Len() > 0 {
		res.Output = append(res.Output, stderr.Bytes()...)
	}
	return res, nil
}

func (e *Exec) args(path string) []string {
	return []string{"-model", "-verb=" + strconv.Itoa(e.Verbosity), path}
}

func (e *Exec) binary() string {
	if strings.ContainsRune(e.Binary, filepath.Separator) {
		return e.Binary
	}
	if fi, err := os.Stat(e.Binary); err == nil && !fi.IsDir() {
		return "." + string(filepath.Separator) + e.Binary
	}
	return e.Binary
}

func (e *Exec) writeFormula(f *setcover.Formula) (path string, cleanup func(), err error) {
	var file *os.File
	if e.CNFPath != "" {
		file, err = os.Create(e.CNFPath)
		cleanup = func() {}
	} else {
		file, err = os.CreateTemp("", "setcover-*.cnf")
		if err == nil {
			name := file.Name()
			cleanup = func() { os.Remove(name) }
		}
	}
	if err != nil {
		return "", nil, err
	}
	if err := setcover.WriteDIMACS(file, f); err != nil {
		file.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing %s: %s", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return file.Name(), cleanup, nil
}
