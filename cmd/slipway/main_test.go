package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	t.Run("version exits zero", func(t *testing.T) {
		os.Args = []string{"slipway", "version"}
		assert.Equal(t, 0, run())
	})

	t.Run("build without a project file exits one", func(t *testing.T) {
		os.Args = []string{"slipway", "build"}
		assert.Equal(t, 1, run())
	})

	t.Run("unknown command exits one", func(t *testing.T) {
		os.Args = []string{"slipway", "launch"}
		assert.Equal(t, 1, run())
	})
}
