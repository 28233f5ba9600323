package pipeline

import (
	"maps"

	"go.slipway.dev/slipway/internal/core/domain"
)

// Exit codes the idempotent stages tolerate. These are a proxy for
// "desired state already holds": the tools report them when there is
// nothing left to do, and probing the filesystem first would race with
// the tool anyway.
const (
	codeAlreadySatisfied = 1
)

// registerTargets ensures every target triple is registered with the
// compiler toolchain. Re-registration is tolerated so reruns succeed.
func registerTargets(plan *domain.Plan, tools map[string]string) domain.Task {
	args := append([]string{"target", "add"}, plan.Triples()...)
	return domain.NewTask("register targets", tools[plan.Toolchain.Rustup], args...).
		WithWorkingDir(plan.RootDir).
		WithAcceptedCodes(codeAlreadySatisfied)
}

// cleanSlate removes the staging directory, the prior container, and the
// prior merged slice. Each removal tolerates "does not exist" so a first
// run is not penalized.
func cleanSlate(plan *domain.Plan, tools map[string]string) []domain.Task {
	rm := tools[plan.Toolchain.Remove]
	return []domain.Task{
		domain.NewTask("remove staging directory", rm, "-r", plan.Output()).
			WithAcceptedCodes(codeAlreadySatisfied),
		domain.NewTask("remove container", rm, "-r", plan.Container()).
			WithAcceptedCodes(codeAlreadySatisfied),
		domain.NewTask("remove merged slice", rm, plan.MergedSimulatorSlice()).
			WithAcceptedCodes(codeAlreadySatisfied),
	}
}

// resetBuildCache clears the compiler toolchain's build cache for a
// reproducible rebuild. Must succeed.
func resetBuildCache(plan *domain.Plan, tools map[string]string) domain.Task {
	return domain.NewTask("reset build cache", tools[plan.Toolchain.Cargo], "clean").
		WithWorkingDir(plan.RootDir)
}

// createStagingDir creates the output directory, tolerating "already
// exists".
func createStagingDir(plan *domain.Plan, tools map[string]string) domain.Task {
	return domain.NewTask("create staging directory", tools[plan.Toolchain.Mkdir], plan.Output()).
		WithAcceptedCodes(codeAlreadySatisfied)
}

// debugBuild produces the development-mode artifact that drives binding
// generation.
func debugBuild(plan *domain.Plan, tools map[string]string) domain.Task {
	return domain.NewTask("debug build", tools[plan.Toolchain.Cargo],
		"build", "-p", plan.Crate,
	).WithWorkingDir(plan.RootDir)
}

// generateBindings emits interface source and the module-description
// file into the bindings directory.
func generateBindings(plan *domain.Plan, tools map[string]string) domain.Task {
	return domain.NewTask("generate bindings", tools[plan.Toolchain.Bindgen],
		"generate",
		"--library", plan.DebugLibrary(),
		"--language", plan.Language,
		"--out-dir", plan.Bindings(),
	).WithWorkingDir(plan.RootDir)
}

// releaseBuild produces the release static library for one target,
// applying the target's environment overrides. Simulator targets get the
// minimum-platform-version override unless the target sets its own.
func releaseBuild(plan *domain.Plan, tools map[string]string, t domain.Target) domain.Task {
	env := maps.Clone(t.Env)
	if plan.MinVersion != "" && t.Platform == domain.PlatformSimulator {
		if env == nil {
			env = make(map[string]string, 1)
		}
		if _, ok := env["IPHONEOS_DEPLOYMENT_TARGET"]; !ok {
			env["IPHONEOS_DEPLOYMENT_TARGET"] = plan.MinVersion
		}
	}

	return domain.NewTask("release build "+t.Name, tools[plan.Toolchain.Cargo],
		"build", "-p", plan.Crate, "--release", "--target", t.Triple,
	).WithWorkingDir(plan.RootDir).WithEnv(env)
}
