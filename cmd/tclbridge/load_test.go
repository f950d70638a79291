package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/feather-lang/tclbridge/interp"
)

const sampleDoc = `
arrays:
  - name: config
    elements:
      host: ${HOST:-localhost}
      port: 8080
  - name: limits
    namespace: app
    elements:
      max: "10"
lists:
  fruits: [apple, banana, cherry]
  words: ["two words", plain]
`

func TestDecodeDocument(t *testing.T) {
	doc, err := decodeDocument(interpolateEnv([]byte(sampleDoc), func(string) string { return "" }))
	require.NoError(t, err)
	require.Len(t, doc.Arrays, 2)
	require.Equal(t, map[string]string{"host": "localhost", "port": "8080"}, doc.Arrays[0].Elements)
	require.Equal(t, "app", doc.Arrays[1].Namespace)
	require.Equal(t, []string{"apple", "banana", "cherry"}, doc.Lists["fruits"])
}

func TestDecodeDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unknown field", "arrays: []\nextra: 1\n", "failed to parse input"},
		{"missing name", "arrays:\n  - elements: {a: b}\n", "arrays[0]: name is required"},
		{"bad yaml", "lists: [", "failed to parse input"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeDocument([]byte(tc.in))
			require.ErrorContains(t, err, tc.want)
		})
	}

	doc, err := decodeDocument(nil)
	require.NoError(t, err, "empty input is an empty document")
	require.Empty(t, doc.Arrays)
}

func TestInterpolateEnv(t *testing.T) {
	env := map[string]string{"HOST": "db.internal"}
	getenv := func(k string) string { return env[k] }

	got := interpolateEnv([]byte("${HOST} ${PORT:-5432} ${MISSING}"), getenv)
	require.Equal(t, "db.internal 5432 ", string(got))
}

func TestResolveInputPath(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	_, err := resolveInputPath(nil, getenv)
	require.ErrorContains(t, err, configEnv)

	env[configEnv] = "from-env.yaml"
	path, err := resolveInputPath(nil, getenv)
	require.NoError(t, err)
	require.Equal(t, "from-env.yaml", path)

	path, err = resolveInputPath([]string{"explicit.yaml"}, getenv)
	require.NoError(t, err)
	require.Equal(t, "explicit.yaml", path)
}

func TestRunLoad(t *testing.T) {
	color.NoColor = true
	doc, err := decodeDocument(interpolateEnv([]byte(sampleDoc), func(string) string { return "" }))
	require.NoError(t, err)

	ip := interp.NewInterp()
	defer ip.Close()

	var out bytes.Buffer
	require.NoError(t, runLoad(ip, doc, &out, zap.NewNop()))

	want := strings.Join([]string{
		"config:",
		"  host = localhost",
		"  port = 8080",
		"app::limits:",
		"  max = 10",
		"fruits [3]: apple banana cherry",
		"words [2]: {two words} plain",
		"",
	}, "\n")
	require.Equal(t, want, out.String())
	require.Equal(t, 0, ip.Live())
}

func TestLoadCommand(t *testing.T) {
	color.NoColor = true
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lists:\n  xs: [1, 2, 3]\n"), 0o644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"load", path})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "xs [3]: 1 2 3\n", out.String())
}

func TestLoadCommand_Stdin(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("arrays:\n  - name: a\n    elements: {k: v}\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"load", "-"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "a:\n  k = v\n", out.String())
}

func TestReplCommand_Piped(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("list xs a b\nlen xs\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"repl"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "a b\n2\n", out.String())
}
