package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points config loading at an empty directory with no LLM credentials.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"CONFIG_PATH", "LLM_PROVIDER", "AZURE_ENDPOINT", "AZURE_API_KEY", "AZURE_MODEL"} {
		t.Setenv(k, "")
	}
	t.Setenv("LLM_PROVIDER", "azure")
	t.Setenv("LOG_LEVEL", "error")
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dev (commit:"), out)
}

func TestLookupCmd_InvalidWord(t *testing.T) {
	isolateEnv(t)

	out, err := runCmd(t, "lookup", "c4t")
	require.ErrorIs(t, err, errLookupFailed)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "error", body["status"])
	assert.EqualValues(t, 400, body["statusCode"])
}

func TestLookupCmd_MissingCredentials(t *testing.T) {
	isolateEnv(t)

	out, err := runCmd(t, "lookup", "cat")
	require.ErrorIs(t, err, errLookupFailed)
	assert.Contains(t, out, "Missing Azure credentials")
}

func TestLookupCmd_RequiresOneArg(t *testing.T) {
	_, err := runCmd(t, "lookup")
	assert.Error(t, err)
}
