// Package technique wraps the lifecycle of a GLSL program: compiling stages,
// linking and validating them, caching uniform locations and binding the
// program around draw calls.
//
// A Technique is not safe for concurrent use. Every method talks to the
// driver and therefore needs the owning context current on the calling
// OS thread.
package technique

import (
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Technique owns one program object and the stages waiting to be linked
// into it.
type Technique struct {
	driver     Driver
	translator Translator
	logger     *log.Logger

	program   uint32
	shaders   []uint32
	uniforms  map[string]int32
	names     map[string]string
	destroyed bool
}

// Option configures a Technique at construction.
type Option func(*Technique)

// WithTranslator routes every stage source through tr before compiling.
func WithTranslator(tr Translator) Option {
	return func(t *Technique) {
		t.translator = tr
	}
}

// WithLogger enables progress logging.
func WithLogger(l *log.Logger) Option {
	return func(t *Technique) {
		t.logger = l
	}
}

// Stage names a shader source file and the stage it implements.
type Stage struct {
	Kind ShaderKind
	Path string
}

// New allocates a program object through d.
func New(d Driver, opts ...Option) (*Technique, error) {
	t := &Technique{
		driver:   d,
		uniforms: make(map[string]int32),
		names:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.program = d.CreateProgram()
	if t.program == 0 {
		return nil, ErrCreateProgram
	}
	return t, nil
}

// Build creates a technique, adds stages in order and finalizes it. On any
// failure the partially built technique is destroyed.
func Build(d Driver, stages []Stage, opts ...Option) (*Technique, error) {
	t, err := New(d, opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		if err := t.AddShaderProgram(s.Kind, s.Path); err != nil {
			t.Destroy()
			return nil, err
		}
	}
	if err := t.Finalize(); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// Handle returns the driver's program handle.
func (t *Technique) Handle() uint32 {
	return t.program
}

// Pending returns the number of compiled stages not yet released by Finalize.
func (t *Technique) Pending() int {
	return len(t.shaders)
}

// AddShaderProgram reads path verbatim and compiles it as a stage of kind.
func (t *Technique) AddShaderProgram(kind ShaderKind, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open shader %s", path)
	}
	return t.AddShaderSource(kind, path, string(source))
}

// AddShaderSource compiles source as a stage of kind. name identifies the
// source in diagnostics. On success the stage waits for Finalize.
func (t *Technique) AddShaderSource(kind ShaderKind, name, source string) error {
	if t.destroyed {
		return ErrDestroyed
	}

	code := source
	if t.translator != nil {
		var renamed map[string]string
		var err error
		code, renamed, err = t.translator.Translate(kind, source)
		if err != nil {
			return errors.Wrapf(err, "unable to translate %s", name)
		}
		for from, to := range renamed {
			t.names[from] = to
		}
	}

	shader := t.driver.CreateShader(kind)
	t.driver.CompileShader(shader, code)
	if !t.driver.ShaderCompiled(shader) {
		infoLog := t.driver.ShaderInfoLog(shader)
		t.driver.DeleteShader(shader)
		return &CompileError{Path: name, Kind: kind, Log: infoLog, Source: code}
	}

	t.shaders = append(t.shaders, shader)
	t.logf("compiled %s stage %s", kind, name)
	return nil
}

// Finalize attaches every pending stage, links and validates the program.
// The stages are released once validation succeeds; on failure they stay
// pending until Destroy.
func (t *Technique) Finalize() error {
	if t.destroyed {
		return ErrDestroyed
	}

	for _, shader := range t.shaders {
		t.driver.AttachShader(t.program, shader)
	}

	t.driver.LinkProgram(t.program)
	if !t.driver.ProgramLinked(t.program) {
		return &LinkError{Log: t.driver.ProgramInfoLog(t.program)}
	}

	t.driver.ValidateProgram(t.program)
	if !t.driver.ProgramValidated(t.program) {
		return &ValidateError{Log: t.driver.ProgramInfoLog(t.program)}
	}

	t.logf("linked program %d from %d stage(s)", t.program, len(t.shaders))
	t.deleteShaders()
	return nil
}

// Enable makes the program current for subsequent draws.
func (t *Technique) Enable() *Technique {
	t.driver.UseProgram(t.program)
	return t
}

// Disable unbinds any program.
func (t *Technique) Disable() *Technique {
	t.driver.UseProgram(0)
	return t
}

// UniformLocation resolves name in the linked program. The driver is asked
// at most once per name; unknown names are reported and not cached.
func (t *Technique) UniformLocation(name string) (int32, error) {
	if t.destroyed {
		return -1, ErrDestroyed
	}
	if loc, ok := t.uniforms[name]; ok {
		return loc, nil
	}

	query := name
	if mapped, ok := t.names[name]; ok {
		query = mapped
	}
	loc := t.driver.UniformLocation(t.program, query)
	if loc == -1 {
		return -1, &UniformError{Name: name}
	}
	t.uniforms[name] = loc
	return loc, nil
}

// SetUniformInt writes an int or sampler uniform of the current program.
func (t *Technique) SetUniformInt(location int32, v int32) *Technique {
	t.driver.Uniform1i(location, v)
	return t
}

// SetUniformFloat writes a float uniform of the current program.
func (t *Technique) SetUniformFloat(location int32, v float32) *Technique {
	t.driver.Uniform1f(location, v)
	return t
}

func (t *Technique) SetUniformVec3(location int32, v mgl32.Vec3) *Technique {
	t.driver.Uniform3f(location, v)
	return t
}

func (t *Technique) SetUniformVec4(location int32, v mgl32.Vec4) *Technique {
	t.driver.Uniform4f(location, v)
	return t
}

// SetUniformMat4 writes a column-major 4x4 matrix uniform of the current program.
func (t *Technique) SetUniformMat4(location int32, m mgl32.Mat4) *Technique {
	t.driver.UniformMatrix4f(location, m)
	return t
}

// Destroy releases pending stages and the program. Further calls are no-ops.
func (t *Technique) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.deleteShaders()
	t.driver.DeleteProgram(t.program)
	t.logf("deleted program %d", t.program)
}

func (t *Technique) deleteShaders() {
	for _, shader := range t.shaders {
		t.driver.DeleteShader(shader)
	}
	t.shaders = t.shaders[:0]
}

func (t *Technique) logf(format string, args ...interface{}) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
	}
}
