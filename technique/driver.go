package technique

import "github.com/go-gl/mathgl/mgl32"

// Driver is the native graphics API as seen by a Technique. Each method maps
// onto one driver entry point; status checks and error reporting are left
// to the caller. All calls assume the owning context is current.
type Driver interface {
	// CreateProgram returns 0 when no program object could be allocated.
	CreateProgram() uint32
	DeleteProgram(program uint32)

	CreateShader(kind ShaderKind) uint32
	DeleteShader(shader uint32)
	// CompileShader uploads source and compiles it.
	CompileShader(shader uint32, source string)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string

	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ValidateProgram(program uint32)
	ProgramValidated(program uint32) bool
	ProgramInfoLog(program uint32) string

	// UseProgram binds program for subsequent draws; 0 unbinds.
	UseProgram(program uint32)
	// UniformLocation returns -1 when name is not an active uniform.
	UniformLocation(program uint32, name string) int32

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v mgl32.Vec3)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix4f(location int32, m mgl32.Mat4)
}

// Translator rewrites a stage's source before it is compiled. The returned
// map goes from the uniform names declared in source to the names they
// carry in code; names that are not renamed may be omitted.
type Translator interface {
	Translate(kind ShaderKind, source string) (code string, uniforms map[string]string, err error)
}
