package sfm

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
}

func TestOSExecutorCapturesOutput(t *testing.T) {
	requirePosixShell(t)
	e := NewOSExecutor(nil, nil)

	res, err := e.Run(context.Background(), Command{
		Program: "sh",
		Args:    []string{"-c", "echo captured-out; echo captured-err 1>&2"},
	}, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "captured-out")
	assert.Contains(t, res.Stderr, "captured-err")
}

func TestOSExecutorVerboseStreams(t *testing.T) {
	requirePosixShell(t)
	var out, errOut bytes.Buffer
	e := NewOSExecutor(&out, &errOut)

	res, err := e.Run(context.Background(), Command{
		Program: "sh",
		Args:    []string{"-c", "echo live-out; echo live-err 1>&2"},
	}, RunOptions{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	// Streamed, not captured.
	assert.Empty(t, res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.Contains(t, out.String(), "live-out")
	assert.Contains(t, errOut.String(), "live-err")
}

func TestOSExecutorNonZeroExit(t *testing.T) {
	requirePosixShell(t)
	e := NewOSExecutor(nil, nil)

	res, err := e.Run(context.Background(), Command{
		Program: "sh",
		Args:    []string{"-c", "echo boom 1>&2; exit 3"},
	}, RunOptions{})
	// Non-zero exit is data, not an error.
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "boom")
}

func TestOSExecutorStartFailure(t *testing.T) {
	e := NewOSExecutor(nil, nil)
	_, err := e.Run(context.Background(), Command{
		Program: "definitely-not-a-real-binary-dataprep",
	}, RunOptions{})
	assert.Error(t, err)
}

func TestOSExecutorArgsBypassShell(t *testing.T) {
	requirePosixShell(t)
	e := NewOSExecutor(nil, nil)

	// A metacharacter-laden argument arrives at the child verbatim.
	res, err := e.Run(context.Background(), Command{
		Program: "echo",
		Args:    []string{"a;b && $(whoami)", "path with spaces"},
	}, RunOptions{})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "a;b && $(whoami) path with spaces")
}

func TestOSExecutorContextCancel(t *testing.T) {
	requirePosixShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewOSExecutor(nil, nil)

	_, err := e.Run(ctx, Command{Program: "sh", Args: []string{"-c", "sleep 10"}}, RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
