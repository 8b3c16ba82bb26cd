package technique

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ShaderKind identifies a programmable pipeline stage.
type ShaderKind int

const (
	Vertex ShaderKind = iota
	Fragment
	Geometry
	TessControl
	TessEvaluation
)

func (k ShaderKind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	case Geometry:
		return "geometry"
	case TessControl:
		return "tess_control"
	case TessEvaluation:
		return "tess_evaluation"
	default:
		return "unknown"
	}
}

var kindExtensions = map[string]ShaderKind{
	".vert": Vertex,
	".vs":   Vertex,
	".frag": Fragment,
	".fs":   Fragment,
	".geom": Geometry,
	".gs":   Geometry,
	".tesc": TessControl,
	".tese": TessEvaluation,
}

// KindFromPath infers the stage kind from a shader file name.
// A trailing ".glsl" is ignored, so "blit.frag.glsl" is a fragment stage.
func KindFromPath(path string) (ShaderKind, error) {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".glsl")
	if kind, ok := kindExtensions[filepath.Ext(name)]; ok {
		return kind, nil
	}
	return 0, errors.Errorf("cannot infer shader kind from %s", path)
}
