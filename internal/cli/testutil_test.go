package cli

import (
	"bytes"
	"path/filepath"
	"testing"
)

// setupEnv points the CLI at a fresh sqlite database under a temp dir.
func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("LABGENIE_DB_DRIVER", "sqlite")
	t.Setenv("LABGENIE_DB_PATH", filepath.Join(dir, "experiments.db"))
	t.Setenv("LABGENIE_EXPORT_DIR", filepath.Join(dir, "records"))
	t.Setenv("LABGENIE_LOG_LEVEL", "error")
	t.Setenv("LABGENIE_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	return dir
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag variables are package globals; reset them between invocations.
	configPath, logLevel = "", ""
	servePort = 0
	generateDescription, generateReadings, generateShow = "", "", false
	exportFormat, exportOutput = "pdf", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}
