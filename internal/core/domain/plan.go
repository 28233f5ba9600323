package domain

import "path/filepath"

// Toolchain holds the command names (or absolute paths) of the external
// tools the pipeline drives. Every entry is resolved against PATH before
// the first stage runs.
type Toolchain struct {
	Cargo      string
	Rustup     string
	Bindgen    string
	Lipo       string
	Xcodebuild string
	Zip        string
	Swift      string
	Remove     string
	Mkdir      string
}

// Names returns the tool entries in a fixed order.
func (tc Toolchain) Names() []string {
	return []string{
		tc.Cargo, tc.Rustup, tc.Bindgen, tc.Lipo,
		tc.Xcodebuild, tc.Zip, tc.Swift, tc.Remove, tc.Mkdir,
	}
}

// Plan is the fully resolved description of one pipeline run, derived
// from the project configuration. All paths are rooted at RootDir.
type Plan struct {
	Crate      string // cargo package name
	Library    string // static-library base name; artifacts are lib<Library>.*
	Framework  string // distribution-container base name
	Language   string // binding-generator language selector
	MinVersion string // minimum platform version override for simulator builds

	RootDir     string
	OutputDir   string // staging directory for container, archive, merged slice
	BindingsDir string // generated interface source and module description

	Toolchain Toolchain
	Targets   []Target
}

// DeviceTarget returns the single device target.
func (p *Plan) DeviceTarget() Target {
	for _, t := range p.Targets {
		if t.Platform == PlatformDevice {
			return t
		}
	}
	return Target{}
}

// SimulatorTargets returns the simulator targets in declaration order.
func (p *Plan) SimulatorTargets() []Target {
	var out []Target
	for _, t := range p.Targets {
		if t.Platform == PlatformSimulator {
			out = append(out, t)
		}
	}
	return out
}

// Triples returns the target triples in declaration order.
func (p *Plan) Triples() []string {
	out := make([]string, len(p.Targets))
	for i, t := range p.Targets {
		out[i] = t.Triple
	}
	return out
}

// Output returns the staging directory path.
func (p *Plan) Output() string {
	return filepath.Join(p.RootDir, p.OutputDir)
}

// Bindings returns the bindings directory path.
func (p *Plan) Bindings() string {
	return filepath.Join(p.RootDir, p.BindingsDir)
}

// DebugLibrary returns the development-mode build artifact the binding
// generator reads.
func (p *Plan) DebugLibrary() string {
	return filepath.Join(p.RootDir, "target", "debug", "lib"+p.Library+".dylib")
}

// ReleaseSlice returns the release static library produced for a target.
func (p *Plan) ReleaseSlice(t Target) string {
	return filepath.Join(p.RootDir, "target", t.Triple, "release", "lib"+p.Library+".a")
}

// MergedSimulatorSlice returns the fat simulator binary the merge stage
// writes.
func (p *Plan) MergedSimulatorSlice() string {
	return filepath.Join(p.Output(), "lib"+p.Library+"_sim.a")
}

// Container returns the distribution-container directory.
func (p *Plan) Container() string {
	return filepath.Join(p.Output(), p.Framework+".xcframework")
}

// Archive returns the compressed distribution archive.
func (p *Plan) Archive() string {
	return p.Container() + ".zip"
}

// ModuleMapSource returns the module-description file as emitted by the
// binding generator.
func (p *Plan) ModuleMapSource() string {
	return filepath.Join(p.Bindings(), p.Library+"FFI.modulemap")
}

// ModuleMapTarget returns the fixed module-description name the
// packaging stage expects.
func (p *Plan) ModuleMapTarget() string {
	return filepath.Join(p.Bindings(), "module.modulemap")
}
