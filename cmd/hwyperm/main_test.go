package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the root command with args and returns its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTargets(t *testing.T) {
	out, err := run(t, "", "targets")
	require.NoError(t, err)
	for _, name := range []string{"avx512", "avx2", "neon", "ssse3", "scalar"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "*", "the current target is marked")
	assert.Less(t, strings.Index(out, "avx512"), strings.Index(out, "scalar"), "highest priority first")
	assert.Contains(t, out, "emulated")
	assert.Contains(t, out, "cpu supports: ")
	if os.Getenv("HWY_TARGET") == "" {
		assert.Regexp(t, `\*\s+scalar\s+0\s+128 bits\s+native`, out, "emulated targets are not picked by default")
	}

	out, err = run(t, "", "targets", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "lane-crossing primitives: lookup_bytes")
}

func TestMask(t *testing.T) {
	out, err := run(t, "", "mask", "--elem", "4", "--", "1", "0", "-1", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "<1,0,-1,3> group=4 sources=1 zeroing=true")
	assert.Contains(t, out, "lane-local")
	assert.NotContains(t, out, "lane-crossing")

	out, err = run(t, "", "mask", "--", "1", "0", "3", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "lane-crossing", "8-byte lanes of a 4-group span two blocks")

	out, err = run(t, "", "mask", "--elem", "8", "--", "15", "14", "13", "12", "11", "10", "9", "8", "7", "6", "5", "4", "3", "2", "1", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "unsupported", "sixteen 8-byte lanes do not fit a 64-byte vector")
	assert.NotContains(t, out, "generic")
}

func TestMask_Errors(t *testing.T) {
	_, err := run(t, "", "mask", "--", "0", "x")
	assert.ErrorContains(t, err, "selector 1")

	_, err = run(t, "", "mask", "--", "0", "9")
	assert.Error(t, err)

	_, err = run(t, "", "mask", "--elem", "3", "--", "1", "0")
	assert.ErrorContains(t, err, "unsupported element sizes [3]")
}

const patternSet = `
patterns:
  - name: swap
    selectors: [1, 0]
  - name: zip-lo
    selectors: [0, 4, 1, 5]
    elem: [4]
`

func TestPatterns_Table(t *testing.T) {
	out, err := run(t, patternSet, "patterns")
	require.NoError(t, err)
	assert.Contains(t, out, "swap <1,0>")
	assert.Contains(t, out, "zip-lo <0,4,1,5> group=4 sources=2")
	assert.Contains(t, out, "zip_lo")
}

func TestPatterns_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, []byte(patternSet), 0o644))

	out, err := run(t, "", "patterns", "-f", path, "--format", "yaml")
	require.NoError(t, err)

	var reports []patternReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "swap", reports[0].Name)
	assert.Len(t, reports[0].Rows, 4)
	require.Len(t, reports[1].Rows, 1)
	assert.Equal(t, patternRow{Elem: 4, Kind: "zip_lo", Locality: "lane-local", Mask: reports[1].Rows[0].Mask}, reports[1].Rows[0])
	assert.NotEmpty(t, reports[1].Rows[0].Mask)
}

func TestPatterns_Errors(t *testing.T) {
	_, err := run(t, "patterns: []", "patterns")
	assert.ErrorContains(t, err, "empty")

	_, err = run(t, "patterns:\n  - name: a\n    selectors: [0]\n    bogus: 1\n", "patterns")
	assert.ErrorContains(t, err, "parsing pattern set")

	dup := "patterns:\n  - {name: a, selectors: [1, 0]}\n  - {name: a, selectors: [0, 1]}\n"
	_, err = run(t, dup, "patterns")
	assert.ErrorContains(t, err, "duplicate pattern names [a]")

	bad := "patterns:\n  - {name: first, selectors: [0, 7]}\n  - {name: second, selectors: [1, 0], elem: [16]}\n"
	_, err = run(t, bad, "patterns")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pattern "first"`)

	_, err = run(t, patternSet, "patterns", "--format", "json")
	assert.ErrorContains(t, err, `unknown format "json"`)

	_, err = run(t, "", "patterns", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading pattern set")
}

func TestVerify(t *testing.T) {
	out, err := run(t, "", "verify", "--target", "AVX2", "--seed", "3", "--seeds", "2", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "avx2: seed 3 ok")
	assert.Contains(t, out, "avx2: seed 4 ok")
	assert.Contains(t, out, "avx2: ok")

	_, err = run(t, "", "verify", "--target", "sve")
	assert.ErrorContains(t, err, `unknown target "sve"`)
}
