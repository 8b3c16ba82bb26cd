package technique

import (
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)`)

type fakeShader struct {
	kind     ShaderKind
	source   string
	compiled bool
	log      string
}

type fakeProgram struct {
	attached  []uint32
	linked    bool
	validated bool
	log       string
	uniforms  map[string]int32
}

// fakeDriver compiles anything without "@@" in it, links when a vertex and
// a fragment stage are attached and lays out every declared uniform in
// declaration order.
type fakeDriver struct {
	next     uint32
	failNew  bool
	failLink bool
	failVal  bool

	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram

	deletedShaders  []uint32
	deletedPrograms []uint32
	queries         map[string]int
	bound           uint32
	ints            map[int32]int32
	floats          map[int32]float32
	vec3s           map[int32]mgl32.Vec3
	vec4s           map[int32]mgl32.Vec4
	mats            map[int32]mgl32.Mat4
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
		queries:  make(map[string]int),
		ints:     make(map[int32]int32),
		floats:   make(map[int32]float32),
		vec3s:    make(map[int32]mgl32.Vec3),
		vec4s:    make(map[int32]mgl32.Vec4),
		mats:     make(map[int32]mgl32.Mat4),
	}
}

func (d *fakeDriver) handle() uint32 {
	d.next++
	return d.next
}

func (d *fakeDriver) CreateProgram() uint32 {
	if d.failNew {
		return 0
	}
	h := d.handle()
	d.programs[h] = &fakeProgram{uniforms: make(map[string]int32)}
	return h
}

func (d *fakeDriver) DeleteProgram(program uint32) {
	d.deletedPrograms = append(d.deletedPrograms, program)
}

func (d *fakeDriver) CreateShader(kind ShaderKind) uint32 {
	h := d.handle()
	d.shaders[h] = &fakeShader{kind: kind}
	return h
}

func (d *fakeDriver) DeleteShader(shader uint32) {
	d.deletedShaders = append(d.deletedShaders, shader)
}

func (d *fakeDriver) CompileShader(shader uint32, source string) {
	s := d.shaders[shader]
	s.source = source
	if strings.Contains(source, "@@") {
		s.log = "ERROR: 0:1: '@@' : syntax error"
		return
	}
	s.compiled = true
}

func (d *fakeDriver) ShaderCompiled(shader uint32) bool { return d.shaders[shader].compiled }
func (d *fakeDriver) ShaderInfoLog(shader uint32) string { return d.shaders[shader].log }

func (d *fakeDriver) AttachShader(program, shader uint32) {
	p := d.programs[program]
	p.attached = append(p.attached, shader)
}

func (d *fakeDriver) LinkProgram(program uint32) {
	p := d.programs[program]
	p.linked = false
	if d.failLink {
		p.log = "ERROR: forced link failure"
		return
	}

	var vertex, fragment bool
	next := int32(0)
	for _, h := range p.attached {
		s := d.shaders[h]
		switch s.kind {
		case Vertex:
			vertex = true
		case Fragment:
			fragment = true
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			if _, ok := p.uniforms[m[1]]; !ok {
				p.uniforms[m[1]] = next
				next++
			}
		}
	}
	if !vertex || !fragment {
		p.log = "ERROR: missing vertex or fragment stage"
		return
	}
	p.linked = true
}

func (d *fakeDriver) ProgramLinked(program uint32) bool { return d.programs[program].linked }

func (d *fakeDriver) ValidateProgram(program uint32) {
	p := d.programs[program]
	p.validated = p.linked && !d.failVal
	if !p.validated {
		p.log = "ERROR: forced validation failure"
	}
}

func (d *fakeDriver) ProgramValidated(program uint32) bool { return d.programs[program].validated }
func (d *fakeDriver) ProgramInfoLog(program uint32) string { return d.programs[program].log }

func (d *fakeDriver) UseProgram(program uint32) { d.bound = program }

func (d *fakeDriver) UniformLocation(program uint32, name string) int32 {
	d.queries[name]++
	p := d.programs[program]
	if !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDriver) Uniform1i(location int32, v int32) { d.ints[location] = v }
func (d *fakeDriver) Uniform1f(location int32, v float32) { d.floats[location] = v }
func (d *fakeDriver) Uniform3f(location int32, v mgl32.Vec3) { d.vec3s[location] = v }
func (d *fakeDriver) Uniform4f(location int32, v mgl32.Vec4) { d.vec4s[location] = v }
func (d *fakeDriver) UniformMatrix4f(location int32, m mgl32.Mat4) { d.mats[location] = m }

// renameTranslator prefixes every declared uniform with "_u".
type renameTranslator struct {
	calls int
	err   error
}

func (r *renameTranslator) Translate(kind ShaderKind, source string) (string, map[string]string, error) {
	r.calls++
	if r.err != nil {
		return "", nil, r.err
	}
	names := make(map[string]string)
	for _, m := range uniformDecl.FindAllStringSubmatch(source, -1) {
		names[m[1]] = "_u" + m[1]
	}
	code := uniformDecl.ReplaceAllStringFunc(source, func(decl string) string {
		m := uniformDecl.FindStringSubmatch(decl)
		return strings.TrimSuffix(decl, m[1]) + "_u" + m[1]
	})
	return code, names, nil
}
