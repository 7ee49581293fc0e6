package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/flashnotes/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInference serves Hugging Face style summarization responses.
func fakeInference(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeConfig writes a config file pointing the default provider at srv.
func writeConfig(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  log_level: error\nllm:\n  base_url: " + srv.URL + "/models\n" +
		"  device: cpu\n  max_retries: 0\n  timeout_seconds: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeNotes(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "summarize", "mcp", "version"}, names)

	for _, flag := range []string{"config", "log-level", "env-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestVersionCmd_Output(t *testing.T) {
	original := versionInfo
	t.Cleanup(func() { versionInfo = original })

	setVersion("1.2.3", "abc123", "2026-01-31")

	out, _, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "flashnotes 1.2.3")
	assert.Contains(t, out, "Commit: abc123")
	assert.Contains(t, out, "Built:  2026-01-31")
}

func TestSummarizeCmd_Text(t *testing.T) {
	srv := fakeInference(t, http.StatusOK, `[{"summary_text": "Cells divide. DNA replicates first."}]`)
	cfgPath := writeConfig(t, srv)
	notes := writeNotes(t, "bio.txt", "Cells divide after their DNA replicates.")

	out, _, err := runRoot(t, "summarize", "--config", cfgPath, notes)
	require.NoError(t, err)

	assert.Contains(t, out, "Summary (1 chunks):\nCells divide. DNA replicates first.")
	assert.Contains(t, out, "[1] What is the main idea of the notes?")
	assert.Contains(t, out, "[2] What is key point 1 from the notes?\n    Cells divide.")
	assert.Contains(t, out, "[3] What is key point 2 from the notes?\n    DNA replicates first.")
}

func TestSummarizeCmd_JSON(t *testing.T) {
	srv := fakeInference(t, http.StatusOK, `[{"summary_text": "Plants use light."}]`)
	cfgPath := writeConfig(t, srv)
	notes := writeNotes(t, "plants.md", "# Plants\n\nPlants turn *light* into energy.\n")

	out, _, err := runRoot(t, "summarize", "--config", cfgPath, "--json", notes)
	require.NoError(t, err)

	var deck api.DeckResponse
	require.NoError(t, json.Unmarshal([]byte(out), &deck))
	assert.Equal(t, "plants.md", deck.Source)
	assert.NotContains(t, deck.Content, "*")
	assert.Equal(t, "Plants use light.", deck.Summary)
	assert.Len(t, deck.Flashcards, 2)
}

func TestSummarizeCmd_Stdin(t *testing.T) {
	srv := fakeInference(t, http.StatusOK, `[{"summary_text": "Short."}]`)
	cfgPath := writeConfig(t, srv)

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("Some notes from a pipe."))
	cmd.SetArgs([]string{"--env-file", "", "summarize", "--config", cfgPath, "-"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Short.")
}

func TestSummarizeCmd_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		srv := fakeInference(t, http.StatusOK, `[]`)
		_, _, err := runRoot(t, "summarize", "--config", writeConfig(t, srv), filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("empty document", func(t *testing.T) {
		srv := fakeInference(t, http.StatusOK, `[]`)
		_, _, err := runRoot(t, "summarize", "--config", writeConfig(t, srv), writeNotes(t, "empty.txt", " \n "))
		require.Error(t, err)
		assert.Equal(t, "The document is empty. Please provide some notes to summarize", err.Error())
	})

	t.Run("model rejects request", func(t *testing.T) {
		srv := fakeInference(t, http.StatusBadRequest, `{"error": "bad input"}`)
		_, _, err := runRoot(t, "summarize", "--config", writeConfig(t, srv), writeNotes(t, "n.txt", "notes"))
		require.Error(t, err)
		assert.Equal(t, "The summarization model failed to summarize the notes", err.Error())
	})

	t.Run("missing config file", func(t *testing.T) {
		_, _, err := runRoot(t, "summarize", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
			writeNotes(t, "n.txt", "notes"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})

	t.Run("invalid log level flag", func(t *testing.T) {
		srv := fakeInference(t, http.StatusOK, `[]`)
		_, _, err := runRoot(t, "summarize", "--config", writeConfig(t, srv), "--log-level", "loud",
			writeNotes(t, "n.txt", "notes"))
		assert.Error(t, err)
	})
}

func TestServeCmd_RejectsInvalidPort(t *testing.T) {
	srv := fakeInference(t, http.StatusOK, `[]`)

	for _, port := range []string{"99999", "0", "-1"} {
		_, _, err := runRoot(t, "serve", "--config", writeConfig(t, srv), "--port", port)
		require.Error(t, err, "port %s", port)
		assert.Contains(t, err.Error(), "config validation failed")
		assert.Contains(t, err.Error(), "Port")
	}
}

func TestLoadEnvFile(t *testing.T) {
	const key = "FLASHNOTES_TEST_ENV_FILE_VALUE"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, loadEnvFile(""))
}
