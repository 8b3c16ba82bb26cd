// Package gldriver implements technique.Driver on top of desktop OpenGL 4.1
// core through go-gl.
package gldriver

import (
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/richinsley/gltechnique/technique"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Init loads the OpenGL function pointers. It must run with a context
// current and only does work the first time it is called.
func Init() error {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return errors.Wrap(glInitErr, "failed to initialize OpenGL")
	}
	return nil
}

// Version reports the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Driver forwards every call to the current OpenGL context.
type Driver struct{}

var _ technique.Driver = (*Driver)(nil)

// New returns a driver bound to whatever context is current. Init must
// have succeeded first.
func New() *Driver {
	return &Driver{}
}

func shaderType(kind technique.ShaderKind) uint32 {
	switch kind {
	case technique.Vertex:
		return gl.VERTEX_SHADER
	case technique.Fragment:
		return gl.FRAGMENT_SHADER
	case technique.Geometry:
		return gl.GEOMETRY_SHADER
	case technique.TessControl:
		return gl.TESS_CONTROL_SHADER
	case technique.TessEvaluation:
		return gl.TESS_EVALUATION_SHADER
	default:
		return 0
	}
}

func (d *Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Driver) CreateShader(kind technique.ShaderKind) uint32 {
	return gl.CreateShader(shaderType(kind))
}

func (d *Driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Driver) CompileShader(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)
}

func (d *Driver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Driver) ProgramLinked(program uint32) bool {
	return programStatus(program, gl.LINK_STATUS)
}

func (d *Driver) ValidateProgram(program uint32) {
	gl.ValidateProgram(program)
}

func (d *Driver) ProgramValidated(program uint32) bool {
	return programStatus(program, gl.VALIDATE_STATUS)
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Driver) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Driver) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (d *Driver) Uniform4f(location int32, v mgl32.Vec4) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

// UniformMatrix4f uploads m as stored: mgl32 matrices are column-major,
// which is what GL expects without transposition.
func (d *Driver) UniformMatrix4f(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func programStatus(program, pname uint32) bool {
	var status int32
	gl.GetProgramiv(program, pname, &status)
	return status != gl.FALSE
}
