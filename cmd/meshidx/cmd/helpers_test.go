package cmd

import (
	"bytes"
	"context"
	"testing"
)

// runCmd executes the CLI in isolation and captures both streams.
// The user config and lock directories are redirected to empty directories
// and the project config is looked up in configDir.
func runCmd(t *testing.T, configDir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return runCmdEnv(t, configDir, nil, args...)
}

// runCmdEnv is runCmd with extra environment overrides applied last.
func runCmdEnv(t *testing.T, configDir string, env map[string]string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range []string{"MESHIDX_OUTPUT", "MESHIDX_LOG_LEVEL", "MESHIDX_ATOMIC", "MESHIDX_LOCK"} {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	outBuf, errBuf := &bytes.Buffer{}, &bytes.Buffer{}
	err = execute(context.Background(), append([]string{"--config-dir", configDir}, args...), outBuf, errBuf)
	return outBuf.String(), errBuf.String(), err
}
