package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flags are package-level vars bound once at init(); pflag only
	// assigns them when the flag is present on the command line, so
	// reset every run to the zero value first to keep tests order
	// independent.
	flagCertificate, flagVerbose, flagQuiet, flagProgress, flagSparse = false, false, false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLIReportsTUOnIdentityMatrix(t *testing.T) {
	path := writeFile(t, "2 2\n1 0\n0 1\n")
	out, err := runCLI(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "TU")
	assert.NotContains(t, out, "NOT TU")
}

func TestCLIReportsNotTUWithViolatorOnSigningFailure(t *testing.T) {
	path := writeFile(t, "3 3\n1 1 0\n1 0 1\n0 1 1\n")
	out, err := runCLI(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "NOT TU")
	assert.Contains(t, out, "violator")
}

func TestCLIFailsOnMissingFile(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.Error(t, err)
}

func TestCLIPrintsCertificateOnRegularMatrix(t *testing.T) {
	path := writeFile(t, "2 2\n1 0\n0 1\n")
	out, err := runCLI(t, "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "TU")
	assert.Contains(t, out, "leaf:")
}
