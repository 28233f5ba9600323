package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.slipway.dev/slipway/internal/adapters/config"
	"go.slipway.dev/slipway/internal/core/domain"
)

func writeProjectfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slipway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validProject = `
version: "1"
crate: mls-rs-uniffi
framework: MlsRsUniffi
min_platform_version: "13.0"
targets:
  - name: device-arm64
    triple: aarch64-apple-ios
    platform: device
  - name: simulator-arm64
    triple: aarch64-apple-ios-sim
    platform: simulator
    environment:
      IPHONEOS_DEPLOYMENT_TARGET: "14.0"
  - name: simulator-x86_64
    triple: x86_64-apple-ios
    platform: simulator
`

func TestLoad_Valid(t *testing.T) {
	path := writeProjectfile(t, validProject)

	loader := config.NewLoader()
	plan, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mls-rs-uniffi", plan.Crate)
	assert.Equal(t, "mls_rs_uniffi", plan.Library, "library defaults to the underscored crate name")
	assert.Equal(t, "MlsRsUniffi", plan.Framework)
	assert.Equal(t, "swift", plan.Language)
	assert.Equal(t, "13.0", plan.MinVersion)
	assert.Equal(t, "build", plan.OutputDir)
	assert.Equal(t, "bindings", plan.BindingsDir)
	assert.Equal(t, filepath.Dir(path), plan.RootDir)

	require.Len(t, plan.Targets, 3)
	assert.Equal(t, domain.PlatformDevice, plan.Targets[0].Platform)
	assert.Equal(t, "14.0", plan.Targets[1].Env["IPHONEOS_DEPLOYMENT_TARGET"])

	// Toolchain defaults.
	assert.Equal(t, "cargo", plan.Toolchain.Cargo)
	assert.Equal(t, "uniffi-bindgen", plan.Toolchain.Bindgen)
	assert.Equal(t, "rm", plan.Toolchain.Remove)
}

func TestLoad_ToolchainOverrides(t *testing.T) {
	path := writeProjectfile(t, validProject+`
toolchain:
  cargo: /opt/rust/bin/cargo
  lipo: /usr/bin/lipo
`)

	loader := config.NewLoader()
	plan, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/rust/bin/cargo", plan.Toolchain.Cargo)
	assert.Equal(t, "/usr/bin/lipo", plan.Toolchain.Lipo)
	assert.Equal(t, "xcodebuild", plan.Toolchain.Xcodebuild)
}

func TestLoad_MissingFile(t *testing.T) {
	loader := config.NewLoader()
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing crate",
			content: `
framework: X
targets:
  - {name: d, triple: a, platform: device}
  - {name: s, triple: b, platform: simulator}
`,
		},
		{
			name: "missing framework",
			content: `
crate: x
targets:
  - {name: d, triple: a, platform: device}
  - {name: s, triple: b, platform: simulator}
`,
		},
		{
			name: "no device target",
			content: `
crate: x
framework: X
targets:
  - {name: s, triple: b, platform: simulator}
`,
		},
		{
			name: "two device targets",
			content: `
crate: x
framework: X
targets:
  - {name: d1, triple: a, platform: device}
  - {name: d2, triple: c, platform: device}
  - {name: s, triple: b, platform: simulator}
`,
		},
		{
			name: "no simulator target",
			content: `
crate: x
framework: X
targets:
  - {name: d, triple: a, platform: device}
`,
		},
		{
			name: "duplicate target name",
			content: `
crate: x
framework: X
targets:
  - {name: d, triple: a, platform: device}
  - {name: d, triple: b, platform: simulator}
`,
		},
		{
			name: "unknown platform",
			content: `
crate: x
framework: X
targets:
  - {name: d, triple: a, platform: device}
  - {name: s, triple: b, platform: watch}
`,
		},
	}

	loader := config.NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProjectfile(t, tt.content)
			_, err := loader.Load(path)
			require.Error(t, err)
			require.ErrorIs(t, err, domain.ErrInvalidPlan)
		})
	}
}
