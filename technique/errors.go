package technique

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrCreateProgram is returned by New when the driver hands out no program.
	ErrCreateProgram = errors.New("unable to create glsl program")
	// ErrDestroyed is returned when a destroyed technique is used.
	ErrDestroyed = errors.New("technique already destroyed")
)

// CompileError reports a stage the driver refused to compile.
type CompileError struct {
	Path   string
	Kind   ShaderKind
	Log    string
	Source string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("unable to build %s\n%s\nshader source:\n%s", e.Path, e.Log, e.Source)
}

// LinkError carries the driver's link log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "unable to link program:\n" + e.Log
}

// ValidateError carries the driver's validation log.
type ValidateError struct {
	Log string
}

func (e *ValidateError) Error() string {
	return "unable to validate program:\n" + e.Log
}

// UniformError names a uniform the linked program does not expose.
type UniformError struct {
	Name string
}

func (e *UniformError) Error() string {
	return fmt.Sprintf("unable to locate uniform %s", e.Name)
}
