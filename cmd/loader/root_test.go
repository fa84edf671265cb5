package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"bookloader/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"AUTHOR_DUMP_PATH", "WORKS_DUMP_PATH", "STORE_BACKEND", "WRITE_RPS", "SKIP_AUTHORS", "STRICT"} {
		t.Setenv(k, "")
	}
	// keep .env files of the developer's checkout out of the tests
	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestResolveConfig_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "dynamodb")
	t.Setenv("WRITE_RPS", "5")

	root := newRootCmd()
	cmd, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags([]string{"--backend", "memory", "--strict", "--skip-authors", "--works", "/tmp/works.txt"}))

	cfg, err := resolveConfig(cmd, modeAll)
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.SkipAuthors)
	assert.Equal(t, "/tmp/works.txt", cfg.WorksDumpPath)
	assert.Equal(t, 5, cfg.WriteRPS)
}

func TestResolveConfig_WorksModeSkipsAuthors(t *testing.T) {
	clearEnv(t)

	root := newRootCmd()
	cmd, _, err := root.Find([]string{"works"})
	require.NoError(t, err)

	cfg, err := resolveConfig(cmd, modeWorks)
	require.NoError(t, err)
	assert.True(t, cfg.SkipAuthors)
}

func TestResolveConfig_RejectsUnknownBackend(t *testing.T) {
	clearEnv(t)

	root := newRootCmd()
	cmd, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags([]string{"--backend", "cassandra"}))

	_, err = resolveConfig(cmd, modeAll)
	assert.ErrorContains(t, err, "cassandra")
}

func TestRunCommand_MemoryBackend(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	authors := writeFile(t, dir, "authors.txt",
		"/type/author\t/authors/A1\t1\t2008-04-01T03:28:50.625462\t{\"key\":\"/authors/A1\",\"name\":\"Jane Doe\"}\n")
	works := writeFile(t, dir, "works.txt",
		"/type/work\t/works/W1\t1\t2008-04-01T03:28:50.625462\t{\"key\":\"/works/W1\",\"title\":\"Book One\",\"authors\":[{\"author\":{\"key\":\"/authors/A1\"}}]}\n")

	root := newRootCmd()
	root.SetArgs([]string{"run", "--backend", "memory", "--authors", authors, "--works", works})
	assert.NoError(t, root.Execute())
}

func TestRunCommand_MissingWorksFails(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	authors := writeFile(t, dir, "authors.txt", "{\"key\":\"/authors/A1\"}\n")

	root := newRootCmd()
	root.SetArgs([]string{"run", "--backend", "memory", "--authors", authors, "--works", filepath.Join(dir, "missing.txt")})
	root.SetErr(io.Discard)
	assert.Error(t, root.Execute())
}
