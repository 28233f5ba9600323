package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.slipway.dev/slipway/internal/core/domain"
	"go.trai.ch/zerr"
)

// relocateModuleMap renames the generator's default module-description
// file to the fixed name the packaging stage expects. A missing source
// means binding generation did not produce a complete set, which is a
// fatal pipeline defect.
func relocateModuleMap(plan *domain.Plan) error {
	src := plan.ModuleMapSource()
	dst := plan.ModuleMapTarget()

	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrMissingModuleMap, "path", src)
		}
		return zerr.Wrap(err, "failed to relocate module description")
	}
	return nil
}

// mergeSimulatorSlices unions all simulator release slices into one fat
// binary. The packaging utility accepts only one binary per platform
// slot, so heterogeneous simulator architectures must be pre-merged.
// The merge is order-independent and idempotent.
func mergeSimulatorSlices(plan *domain.Plan, tools map[string]string) domain.Task {
	args := []string{"-create"}
	for _, t := range plan.SimulatorTargets() {
		args = append(args, plan.ReleaseSlice(t))
	}
	args = append(args, "-output", plan.MergedSimulatorSlice())

	return domain.NewTask("merge simulator slices", tools[plan.Toolchain.Lipo], args...)
}

// assembleContainer packages exactly two binary+interface pairs into the
// distribution container: the device slice and the merged simulator
// slice. Both pairs reference the identical bindings directory so the
// two platform frameworks expose the same interface surface.
func assembleContainer(plan *domain.Plan, tools map[string]string) domain.Task {
	bindings := plan.Bindings()
	return domain.NewTask("assemble container", tools[plan.Toolchain.Xcodebuild],
		"-create-xcframework",
		"-library", plan.ReleaseSlice(plan.DeviceTarget()),
		"-headers", bindings,
		"-library", plan.MergedSimulatorSlice(),
		"-headers", bindings,
		"-output", plan.Container(),
	)
}

// compressContainer zips the container directory into the distribution
// archive. The task runs in the staging directory so the archive's
// internal paths are relative, not absolute.
func compressContainer(plan *domain.Plan, tools map[string]string) domain.Task {
	return domain.NewTask("compress container", tools[plan.Toolchain.Zip],
		"-r", filepath.Base(plan.Archive()), filepath.Base(plan.Container()),
	).WithWorkingDir(plan.Output())
}

// computeChecksum prints the distribution checksum over the archive for
// downstream integrity verification.
func computeChecksum(plan *domain.Plan, tools map[string]string) domain.Task {
	return domain.NewTask("compute checksum", tools[plan.Toolchain.Swift],
		"package", "compute-checksum", filepath.Base(plan.Archive()),
	).WithWorkingDir(plan.Output())
}
