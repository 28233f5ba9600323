package toolchain_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.slipway.dev/slipway/internal/adapters/toolchain"
	"go.slipway.dev/slipway/internal/core/domain"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := toolchain.NewResolver()

	tools, err := resolver.Resolve([]string{"sh", "sh", ""})
	require.NoError(t, err)

	path, ok := tools["sh"]
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(path))
}

func TestResolver_Resolve_Missing(t *testing.T) {
	resolver := toolchain.NewResolver()

	_, err := resolver.Resolve([]string{"sh", "slipway-no-such-tool", "slipway-also-missing"})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrToolNotFound)

	// Every missing tool is named in one diagnostic.
	report := fmt.Sprintf("%+v", err)
	assert.Contains(t, report, "slipway-no-such-tool")
	assert.Contains(t, report, "slipway-also-missing")
}
