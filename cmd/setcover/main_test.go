package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	cmd.SetOut(&errOut)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestResolveConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	configFile := writeFile(t, dir, "setcover.yaml", `
input: from-file.in
backend: gini
timeout: 30s
log_level: info
verbosity: 0
`)
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"--input", "from-flag.in", "--strict"}))

	flags := defaultConfig()
	flags.Input = "from-flag.in"
	flags.Strict = true
	flags.Backend = "dpll" // not set on the command line, so ignored

	cfg, err := resolveConfig(cmd, flags, configFile)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Input:     "from-flag.in",
		Output:    "formula.cnf",
		Solver:    "glucose-syrup",
		Verbosity: 0,
		Backend:   "gini",
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		Strict:    true,
	}, cfg)
}

func TestConfigValidation(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"verbosity too high": func(c *Config) { c.Verbosity = 2 },
		"negative verbosity": func(c *Config) { c.Verbosity = -1 },
		"unknown backend":    func(c *Config) { c.Backend = "z3" },
		"no input":           func(c *Config) { c.Input = "" },
		"exec without solver": func(c *Config) {
			c.Solver = ""
		},
		"bad log level": func(c *Config) { c.LogLevel = "loud" },
	} {
		cfg := defaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.validate(), name)
	}

	cfg := defaultConfig()
	cfg.Backend = "dpll"
	cfg.Solver = ""
	assert.NoError(t, cfg.validate())
}

func TestRunSatisfiable(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.in", "3\n3\n2\n2 1 2\n2 2 3\n1 3\n")
	output := filepath.Join(dir, "formula.cnf")
	metrics := filepath.Join(dir, "setcover.prom")

	stdout, _, err := execute(t, "-i", input, "-o", output, "--backend", "dpll", "--metrics-file", metrics)
	require.NoError(t, err)
	assert.Equal(t, "\nChosen sets (indices): 1 3\nCovered elements: 1 2 3\nAll elements are covered.\n", stdout)

	cnf, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(cnf), "p cnf 9 15\n")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "setcover_chosen_sets 2")
}

func TestRunUnsatisfiable(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.in", "2\n1\n3\n1 1\n")
	for _, backend := range []string{"gophersat", "gini", "dpll"} {
		stdout, _, err := execute(t, "-i", input, "-o", filepath.Join(dir, backend+".cnf"), "--backend", backend)
		require.NoError(t, err, backend)
		assert.Equal(t, "UNSAT: no set cover of size <= 3 exists for this instance.\n", stdout, backend)
	}
}

func TestRunCountMismatch(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.in", "1\n4\n1\n1 1\n")
	output := filepath.Join(dir, "formula.cnf")

	stdout, stderr, err := execute(t, "-i", input, "-o", output, "--backend", "gophersat")
	require.NoError(t, err)
	assert.Contains(t, stdout, "All elements are covered.")
	assert.Contains(t, stderr, "set count mismatch")

	_, stderr, err = execute(t, "-i", input, "-o", output, "--backend", "gophersat", "--strict")
	assert.Error(t, err)
	assert.Contains(t, stderr, "declared set count does not match")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.in", "3\nthree\n")
	negative := writeFile(t, dir, "negative.in", "1\n1\n-1\n1 1\n")
	for name, args := range map[string][]string{
		"missing input":  {"-i", filepath.Join(dir, "missing.in")},
		"bad input":      {"-i", bad, "--backend", "dpll"},
		"negative bound": {"-i", negative, "--backend", "dpll", "-o", filepath.Join(dir, "f.cnf")},
		"bad verbosity":  {"-i", negative, "-v", "3"},
		"extra argument": {"-i", negative, "input.in"},
		"missing config": {"--config", filepath.Join(dir, "missing.yaml")},
	} {
		_, _, err := execute(t, args...)
		assert.Error(t, err, name)
	}
}
