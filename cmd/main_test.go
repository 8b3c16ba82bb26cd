package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gltechnique/options"
	"github.com/richinsley/gltechnique/technique"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDriver accepts every program and places uniform "u_<n>" at n.
type stubDriver struct {
	next    uint32
	kinds   []technique.ShaderKind
	sources []string
	bound   []uint32
}

func (d *stubDriver) CreateProgram() uint32 {
	d.next++
	return d.next
}

func (d *stubDriver) DeleteProgram(uint32) {}

func (d *stubDriver) CreateShader(kind technique.ShaderKind) uint32 {
	d.kinds = append(d.kinds, kind)
	d.next++
	return d.next
}

func (d *stubDriver) DeleteShader(uint32) {}
func (d *stubDriver) CompileShader(_ uint32, src string) { d.sources = append(d.sources, src) }
func (d *stubDriver) ShaderCompiled(uint32) bool { return true }
func (d *stubDriver) ShaderInfoLog(uint32) string { return "" }
func (d *stubDriver) AttachShader(uint32, uint32) {}
func (d *stubDriver) LinkProgram(uint32) {}
func (d *stubDriver) ProgramLinked(uint32) bool { return true }
func (d *stubDriver) ValidateProgram(uint32) {}
func (d *stubDriver) ProgramValidated(uint32) bool { return true }
func (d *stubDriver) ProgramInfoLog(uint32) string { return "" }
func (d *stubDriver) UseProgram(p uint32) { d.bound = append(d.bound, p) }
func (d *stubDriver) Uniform1i(int32, int32) {}
func (d *stubDriver) Uniform1f(int32, float32) {}
func (d *stubDriver) Uniform3f(int32, mgl32.Vec3) {}
func (d *stubDriver) Uniform4f(int32, mgl32.Vec4) {}
func (d *stubDriver) UniformMatrix4f(int32, mgl32.Mat4) {}

func (d *stubDriver) UniformLocation(_ uint32, name string) int32 {
	switch name {
	case "u_0":
		return 0
	case "u_1":
		return 1
	}
	return -1
}

func checkOptions(shaders []string, uniforms []string) *options.CheckOptions {
	return &options.CheckOptions{Shaders: shaders, Uniforms: uniforms}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPlan(t *testing.T) {
	stages, needVertex, needFragment, err := plan([]string{"a.frag", "b.geom"})
	require.NoError(t, err)
	assert.True(t, needVertex)
	assert.False(t, needFragment)
	assert.Equal(t, []technique.Stage{
		{Kind: technique.Fragment, Path: "a.frag"},
		{Kind: technique.Geometry, Path: "b.geom"},
	}, stages)

	_, _, _, err = plan([]string{"a.txt"})
	assert.Error(t, err)
}

func TestCheckAddsBuiltinVertexStage(t *testing.T) {
	frag := writeFile(t, "effect.frag", "#version 410 core\nvoid main() {}\n")
	d := &stubDriver{}
	var out bytes.Buffer

	err := check(d, checkOptions([]string{frag}, []string{"u_1", "u_0"}), false, &out)
	require.NoError(t, err)

	assert.Equal(t, []technique.ShaderKind{technique.Vertex, technique.Fragment}, d.kinds)
	assert.Contains(t, d.sources[0], "#version 410 core")
	assert.Equal(t, "u_1=1\nu_0=0\n", out.String())
	assert.Equal(t, []uint32{1, 0}, d.bound)
}

func TestCheckAddsBuiltinFragmentStage(t *testing.T) {
	vert := writeFile(t, "quad.vs", "#version 300 es\nvoid main() {}\n")
	d := &stubDriver{}

	require.NoError(t, check(d, checkOptions([]string{vert}, nil), true, &bytes.Buffer{}))
	assert.Equal(t, []technique.ShaderKind{technique.Vertex, technique.Fragment}, d.kinds)
	assert.Contains(t, d.sources[1], "#version 300 es")
}

func TestCheckUnknownUniform(t *testing.T) {
	frag := writeFile(t, "effect.frag", "void main() {}\n")
	err := check(&stubDriver{}, checkOptions([]string{frag}, []string{"u_missing"}), false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "u_missing")
}
