// Package domain contains the core domain models for the build pipeline.
package domain

import "slices"

// Task describes a single external-process invocation: an executable,
// its arguments, environment overrides applied atop the inherited
// environment, and the set of non-zero exit codes treated as success.
//
// A Task is a value; it is fully constructed before invocation and never
// mutated afterwards. Running the same Task twice spawns two independent
// processes.
type Task struct {
	Name          string
	Executable    string
	Args          []string
	Env           map[string]string
	WorkingDir    string
	AcceptedCodes []int
}

// NewTask creates a Task for the given executable and arguments.
func NewTask(name, executable string, args ...string) Task {
	return Task{
		Name:       name,
		Executable: executable,
		Args:       args,
	}
}

// WithEnv returns a copy of the task with the given environment overrides.
func (t Task) WithEnv(env map[string]string) Task {
	t.Env = env
	return t
}

// WithWorkingDir returns a copy of the task that runs in dir.
func (t Task) WithWorkingDir(dir string) Task {
	t.WorkingDir = dir
	return t
}

// WithAcceptedCodes returns a copy of the task that additionally treats
// the given non-zero exit codes as success.
func (t Task) WithAcceptedCodes(codes ...int) Task {
	t.AcceptedCodes = append(slices.Clone(t.AcceptedCodes), codes...)
	return t
}

// Accepts reports whether the given exit code counts as success.
// Zero is always accepted.
func (t Task) Accepts(code int) bool {
	return code == 0 || slices.Contains(t.AcceptedCodes, code)
}
