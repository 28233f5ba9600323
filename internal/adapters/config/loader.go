// Package config provides the project configuration loader.
package config

import (
	"os"
	"path/filepath"

	"go.slipway.dev/slipway/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the project file looked up when no -c flag is given.
const DefaultFilename = "slipway.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// NewLoader creates a new FileConfigLoader.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{}
}

// Projectfile represents the structure of the slipway.yaml file.
type Projectfile struct {
	Version    string       `yaml:"version"`
	Crate      string       `yaml:"crate"`
	Library    string       `yaml:"library"`
	Framework  string       `yaml:"framework"`
	Language   string       `yaml:"language"`
	MinVersion string       `yaml:"min_platform_version"`
	Output     string       `yaml:"output"`
	Bindings   string       `yaml:"bindings"`
	Toolchain  ToolchainDTO `yaml:"toolchain"`
	Targets    []TargetDTO  `yaml:"targets"`
}

// ToolchainDTO holds overridable tool command names.
type ToolchainDTO struct {
	Cargo      string `yaml:"cargo"`
	Rustup     string `yaml:"rustup"`
	Bindgen    string `yaml:"bindgen"`
	Lipo       string `yaml:"lipo"`
	Xcodebuild string `yaml:"xcodebuild"`
	Zip        string `yaml:"zip"`
	Swift      string `yaml:"swift"`
	Remove     string `yaml:"rm"`
	Mkdir      string `yaml:"mkdir"`
}

// TargetDTO represents one build target definition.
type TargetDTO struct {
	Name        string            `yaml:"name"`
	Triple      string            `yaml:"triple"`
	Platform    string            `yaml:"platform"`
	Environment map[string]string `yaml:"environment"`
}

// Load reads the project file at path and returns the resolved plan.
func (l *FileConfigLoader) Load(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read project file")
	}

	var pf Projectfile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, zerr.Wrap(err, "failed to parse project file")
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project root")
	}

	plan := &domain.Plan{
		Crate:       pf.Crate,
		Library:     defaultStr(pf.Library, underscored(pf.Crate)),
		Framework:   pf.Framework,
		Language:    defaultStr(pf.Language, "swift"),
		MinVersion:  pf.MinVersion,
		RootDir:     root,
		OutputDir:   defaultStr(pf.Output, "build"),
		BindingsDir: defaultStr(pf.Bindings, "bindings"),
		Toolchain: domain.Toolchain{
			Cargo:      defaultStr(pf.Toolchain.Cargo, "cargo"),
			Rustup:     defaultStr(pf.Toolchain.Rustup, "rustup"),
			Bindgen:    defaultStr(pf.Toolchain.Bindgen, "uniffi-bindgen"),
			Lipo:       defaultStr(pf.Toolchain.Lipo, "lipo"),
			Xcodebuild: defaultStr(pf.Toolchain.Xcodebuild, "xcodebuild"),
			Zip:        defaultStr(pf.Toolchain.Zip, "zip"),
			Swift:      defaultStr(pf.Toolchain.Swift, "swift"),
			Remove:     defaultStr(pf.Toolchain.Remove, "rm"),
			Mkdir:      defaultStr(pf.Toolchain.Mkdir, "mkdir"),
		},
	}

	for _, dto := range pf.Targets {
		plan.Targets = append(plan.Targets, domain.Target{
			Name:     dto.Name,
			Triple:   dto.Triple,
			Platform: domain.Platform(dto.Platform),
			Env:      dto.Environment,
		})
	}

	if err := validate(plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// validate checks that the plan describes a packageable build: the
// container has exactly one device slot and one merged simulator slot,
// so the target set must contain exactly one device target and at least
// one simulator target.
func validate(plan *domain.Plan) error {
	if plan.Crate == "" {
		return zerr.With(domain.ErrInvalidPlan, "reason", "crate is required")
	}
	if plan.Framework == "" {
		return zerr.With(domain.ErrInvalidPlan, "reason", "framework is required")
	}

	seen := make(map[string]bool)
	devices := 0
	simulators := 0
	for _, t := range plan.Targets {
		if t.Name == "" || t.Triple == "" {
			return zerr.With(domain.ErrInvalidPlan, "reason", "target name and triple are required")
		}
		if seen[t.Name] {
			return zerr.With(zerr.With(domain.ErrInvalidPlan, "reason", "duplicate target"), "target", t.Name)
		}
		seen[t.Name] = true

		switch t.Platform {
		case domain.PlatformDevice:
			devices++
		case domain.PlatformSimulator:
			simulators++
		default:
			return zerr.With(zerr.With(domain.ErrInvalidPlan, "reason", "unknown platform"), "target", t.Name)
		}
	}

	if devices != 1 {
		return zerr.With(domain.ErrInvalidPlan, "reason", "exactly one device target is required")
	}
	if simulators == 0 {
		return zerr.With(domain.ErrInvalidPlan, "reason", "at least one simulator target is required")
	}

	return nil
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func underscored(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '-' {
			out[i] = '_'
		}
	}
	return string(out)
}
