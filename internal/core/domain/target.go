package domain

// Platform identifies which slot of the distribution container a build
// target belongs to.
type Platform string

const (
	// PlatformDevice targets physical hardware.
	PlatformDevice Platform = "device"
	// PlatformSimulator targets the platform simulator.
	PlatformSimulator Platform = "simulator"
)

// Target is a named (architecture, platform-variant) pair mapping to one
// compiled static-library artifact. Targets are inputs to the assembler
// and are never mutated, only merged.
type Target struct {
	Name     string
	Triple   string
	Platform Platform
	Env      map[string]string
}
