package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.slipway.dev/slipway/internal/core/domain"
)

func stagePlan(root string) *domain.Plan {
	return &domain.Plan{
		Crate:       "demo",
		Library:     "demo",
		Framework:   "Demo",
		Language:    "swift",
		MinVersion:  "13.0",
		RootDir:     root,
		OutputDir:   "build",
		BindingsDir: "bindings",
		Toolchain: domain.Toolchain{
			Cargo:      "cargo",
			Rustup:     "rustup",
			Bindgen:    "uniffi-bindgen",
			Lipo:       "lipo",
			Xcodebuild: "xcodebuild",
			Zip:        "zip",
			Swift:      "swift",
			Remove:     "rm",
			Mkdir:      "mkdir",
		},
		Targets: []domain.Target{
			{Name: "device", Triple: "aarch64-apple-ios", Platform: domain.PlatformDevice},
			{Name: "sim-arm", Triple: "aarch64-apple-ios-sim", Platform: domain.PlatformSimulator},
			{Name: "sim-x86", Triple: "x86_64-apple-ios", Platform: domain.PlatformSimulator},
		},
	}
}

// identityTools maps every configured tool name to itself, standing in
// for resolver output.
func identityTools(plan *domain.Plan) map[string]string {
	tools := make(map[string]string)
	for _, name := range plan.Toolchain.Names() {
		tools[name] = name
	}
	return tools
}

func TestMergeSimulatorSlices_ArgumentShape(t *testing.T) {
	plan := stagePlan("/proj")
	task := mergeSimulatorSlices(plan, identityTools(plan))

	assert.Equal(t, "lipo", task.Executable)
	assert.Equal(t, []string{
		"-create",
		"/proj/target/aarch64-apple-ios-sim/release/libdemo.a",
		"/proj/target/x86_64-apple-ios/release/libdemo.a",
		"-output", "/proj/build/libdemo_sim.a",
	}, task.Args)
}

func TestAssembleContainer_TwoPairsSameBindings(t *testing.T) {
	plan := stagePlan("/proj")
	task := assembleContainer(plan, identityTools(plan))

	assert.Equal(t, []string{
		"-create-xcframework",
		"-library", "/proj/target/aarch64-apple-ios/release/libdemo.a",
		"-headers", "/proj/bindings",
		"-library", "/proj/build/libdemo_sim.a",
		"-headers", "/proj/bindings",
		"-output", "/proj/build/Demo.xcframework",
	}, task.Args)
}

// The archive must contain relative paths, so compression and checksum
// run inside the staging directory with bare file names.
func TestCompressAndChecksum_RelativeToStagingDir(t *testing.T) {
	plan := stagePlan("/proj")
	tools := identityTools(plan)

	compress := compressContainer(plan, tools)
	assert.Equal(t, "/proj/build", compress.WorkingDir)
	assert.Equal(t, []string{"-r", "Demo.xcframework.zip", "Demo.xcframework"}, compress.Args)

	checksum := computeChecksum(plan, tools)
	assert.Equal(t, "/proj/build", checksum.WorkingDir)
	assert.Equal(t, []string{"package", "compute-checksum", "Demo.xcframework.zip"}, checksum.Args)
}

// Both build stages are scoped to the configured crate so a workspace
// checkout does not compile unrelated packages.
func TestBuildStages_CrateScoped(t *testing.T) {
	plan := stagePlan("/proj")
	tools := identityTools(plan)

	debug := debugBuild(plan, tools)
	assert.Equal(t, "cargo", debug.Executable)
	assert.Equal(t, []string{"build", "-p", "demo"}, debug.Args)
	assert.Equal(t, "/proj", debug.WorkingDir)
}

func TestReleaseBuild_EnvOverrides(t *testing.T) {
	plan := stagePlan("/proj")
	tools := identityTools(plan)

	device := releaseBuild(plan, tools, plan.Targets[0])
	assert.Equal(t, []string{"build", "-p", "demo", "--release", "--target", "aarch64-apple-ios"}, device.Args)
	assert.NotContains(t, device.Env, "IPHONEOS_DEPLOYMENT_TARGET")

	sim := releaseBuild(plan, tools, plan.Targets[1])
	assert.Equal(t, "13.0", sim.Env["IPHONEOS_DEPLOYMENT_TARGET"])

	// A target's own override wins over the plan default.
	custom := plan.Targets[2]
	custom.Env = map[string]string{"IPHONEOS_DEPLOYMENT_TARGET": "15.0"}
	task := releaseBuild(plan, tools, custom)
	assert.Equal(t, "15.0", task.Env["IPHONEOS_DEPLOYMENT_TARGET"])
}

func TestCleanSlate_ToleratesMissingState(t *testing.T) {
	plan := stagePlan("/proj")
	tasks := cleanSlate(plan, identityTools(plan))

	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.Equal(t, "rm", task.Executable)
		assert.True(t, task.Accepts(codeAlreadySatisfied), "%s must tolerate a missing target", task.Name)
	}
	assert.Equal(t, []string{"-r", "/proj/build"}, tasks[0].Args)
	assert.Equal(t, []string{"-r", "/proj/build/Demo.xcframework"}, tasks[1].Args)
	assert.Equal(t, []string{"/proj/build/libdemo_sim.a"}, tasks[2].Args)
}

func TestRelocateModuleMap(t *testing.T) {
	root := t.TempDir()
	plan := stagePlan(root)
	require.NoError(t, os.MkdirAll(plan.Bindings(), 0o750))

	t.Run("missing source is fatal", func(t *testing.T) {
		err := relocateModuleMap(plan)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingModuleMap)
	})

	t.Run("renames to the fixed name", func(t *testing.T) {
		src := plan.ModuleMapSource()
		require.NoError(t, os.WriteFile(src, []byte("framework module demoFFI {}"), 0o600))

		require.NoError(t, relocateModuleMap(plan))
		assert.NoFileExists(t, src)
		assert.FileExists(t, filepath.Join(plan.Bindings(), "module.modulemap"))
	})
}
