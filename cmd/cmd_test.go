package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args in an isolated directory and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("NO_COLOR", "1")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const scoreInput = `{"curriculumReference": null, "reviewStatus": "ai_only",
	"communityStats": {"helpfulCount": 10, "practiceCount": 500},
	"errorReports": [{"status": "pending"}]}`

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "ember (devel)\n", out)
}

func TestScore_StdinJSON(t *testing.T) {
	out, err := run(t, scoreInput, "score", "-o", "json")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, float64(28), res["score"])
	assert.Equal(t, "draft", res["tier"])
}

func TestScore_Text(t *testing.T) {
	path := writeFile(t, "input.json", scoreInput)
	out, err := run(t, "", "score", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 28 / 100  [Draft]")
}

func TestScore_InvalidInput(t *testing.T) {
	_, err := run(t, `{"communityStats": {"helpfulCount": -1}}`, "score")
	assert.Error(t, err)
}

func TestScore_PersistRequiresContentID(t *testing.T) {
	_, err := run(t, scoreInput, "score", "--persist")
	assert.ErrorContains(t, err, "--content-id")
}

func TestScore_PersistThenHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ember.db")

	_, err := run(t, scoreInput, "--db", db, "score", "--persist", "--content-id", "lesson-1")
	require.NoError(t, err)

	out, err := run(t, "", "--db", db, "history", "lesson-1", "-o", "json")
	require.NoError(t, err)

	var events []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)

	out, err = run(t, "", "--db", db, "history", "lesson-2")
	require.NoError(t, err)
	assert.Equal(t, "No scores recorded for lesson-2\n", out)
}

func TestValidate_StrictFailure(t *testing.T) {
	q := `{"answerFormat": "integer", "computedAnswer": "5",
		"computationalVerification": {"expression": "2 + 2", "expectedResult": "4"}}`

	out, err := run(t, q, "validate")
	require.NoError(t, err, "non-strict runs report but do not fail")
	assert.Contains(t, out, "FAIL  display_answer_verification")

	_, err = run(t, q, "validate", "--strict")
	assert.ErrorIs(t, err, errChecksFailed)
}

func TestValidate_JSON(t *testing.T) {
	q := `{"id": "q-1", "answerFormat": "fraction", "computedAnswer": "3/4",
		"computationalVerification": {"expression": "3/4", "expectedResult": "Fraction(3, 4)", "resultFormat": "fraction"}}`

	out, err := run(t, q, "validate", "--strict", "-o", "json")
	require.NoError(t, err)

	var got validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "q-1", got.QuestionID)
	assert.True(t, got.Summary.OK())
	assert.NotEmpty(t, got.Checks)
}

func TestAudit_NoPersist(t *testing.T) {
	bundle := writeFile(t, "bundle.json", `{
		"version": "v1.0.0",
		"items": [
			{"id": "lesson-1", "kind": "score", "score": {"reviewStatus": "reviewed"}},
			{"id": "q-1", "kind": "question", "question": {"answerFormat": "integer", "computedAnswer": "4",
				"computationalVerification": {"expression": "2*2", "expectedResult": "4"}}}
		]
	}`)

	out, err := run(t, "", "audit", bundle, "--no-persist")
	require.NoError(t, err)
	assert.Contains(t, out, "2 items: 1 scored, 1 questions, 0 checks failed (0 critical), 0 invalid")

	_, err = os.Stat(filepath.Join(os.Getenv("XDG_DATA_HOME"), "ember", "ember.db"))
	assert.True(t, os.IsNotExist(err), "--no-persist must not create a database")
}

func TestAudit_UnsupportedVersion(t *testing.T) {
	bundle := writeFile(t, "bundle.json", `{"version": "v2.0.0", "items": []}`)
	_, err := run(t, "", "audit", bundle, "--no-persist")
	assert.ErrorContains(t, err, "v2.0.0")
}

func TestTiers(t *testing.T) {
	out, err := run(t, "", "tiers")
	require.NoError(t, err)
	assert.Contains(t, out, "Verified")
	assert.Contains(t, out, "Confident")
	assert.Contains(t, out, "Draft")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "tiers")
	assert.ErrorContains(t, err, "log level")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "", "tiers", "-o", "yaml")
	assert.Error(t, err)
}
