package shell_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.slipway.dev/slipway/internal/adapters/shell"
	"go.slipway.dev/slipway/internal/core/domain"
	"go.slipway.dev/slipway/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// writeScript creates an executable shell script in dir and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755) //nolint:gosec // test fixture must be executable
	require.NoError(t, err)
	return path
}

func TestExecutor_Execute_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	var stdout bytes.Buffer
	task := domain.NewTask("hello", "sh", "-c", "echo hello")

	err := executor.Execute(context.Background(), &task, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestExecutor_Execute_AcceptedExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	executor := shell.NewExecutor(mockLogger)

	task := domain.NewTask("idempotent", "sh", "-c", "exit 1").WithAcceptedCodes(1)
	err := executor.Execute(context.Background(), &task, io.Discard, io.Discard)
	require.NoError(t, err, "exit code 1 is in the accepted set")
}

func TestExecutor_Execute_FatalExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	task := domain.NewTask("broken", "sh", "-c", "exit 2").WithAcceptedCodes(1)
	err := executor.Execute(context.Background(), &task, io.Discard, io.Discard)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrCommandFailed)

	// The diagnostic names the executable and the exit code.
	report := fmt.Sprintf("%+v", err)
	assert.Contains(t, report, "sh")
	assert.Contains(t, report, "2")
}

func TestExecutor_Execute_EnvOverrideWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	t.Setenv("SLIPWAY_TEST_VAR", "inherited")

	var stdout bytes.Buffer
	task := domain.NewTask("env", "sh", "-c", "printf %s \"$SLIPWAY_TEST_VAR\"").
		WithEnv(map[string]string{"SLIPWAY_TEST_VAR": "override"})

	err := executor.Execute(context.Background(), &task, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "override", stdout.String())
}

func TestExecutor_Execute_InheritsEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	t.Setenv("SLIPWAY_AMBIENT", "kept")

	var stdout bytes.Buffer
	task := domain.NewTask("env", "sh", "-c", "printf %s \"$SLIPWAY_AMBIENT\"").
		WithEnv(map[string]string{"OTHER": "x"})

	err := executor.Execute(context.Background(), &task, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "kept", stdout.String())
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	tmpDir := t.TempDir()
	var stdout bytes.Buffer
	task := domain.NewTask("pwd", "sh", "-c", "pwd").WithWorkingDir(tmpDir)

	err := executor.Execute(context.Background(), &task, &stdout, io.Discard)
	require.NoError(t, err)

	got, err := filepath.EvalSymlinks(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecutor_Execute_FreshProcessPerInvocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	tmpDir := t.TempDir()
	marker := filepath.Join(tmpDir, "count")
	script := writeScript(t, tmpDir, "count.sh", `echo run >> "`+marker+`"`)

	task := domain.NewTask("count", script)
	require.NoError(t, executor.Execute(context.Background(), &task, io.Discard, io.Discard))
	require.NoError(t, executor.Execute(context.Background(), &task, io.Discard, io.Discard))

	data, err := os.ReadFile(marker) //nolint:gosec // test fixture
	require.NoError(t, err)
	assert.Equal(t, "run\nrun\n", string(data))
}

func TestExecutor_Execute_MissingExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	executor := shell.NewExecutor(mockLogger)

	task := domain.NewTask("missing", "slipway-no-such-tool")
	err := executor.Execute(context.Background(), &task, io.Discard, io.Discard)
	require.Error(t, err)
}
