package domain

import "go.trai.ch/zerr"

var (
	// ErrCommandFailed is returned when an external process exits with a
	// code outside the task's accepted set.
	ErrCommandFailed = zerr.New("command failed")

	// ErrToolNotFound is returned by preflight resolution when a
	// configured tool cannot be located.
	ErrToolNotFound = zerr.New("tool not found")

	// ErrInvalidPlan is returned when the project configuration does not
	// describe a buildable plan.
	ErrInvalidPlan = zerr.New("invalid project configuration")

	// ErrMissingModuleMap is returned when the module-description file is
	// absent at relocation time, which means binding generation did not
	// produce a complete set.
	ErrMissingModuleMap = zerr.New("module description missing")
)
