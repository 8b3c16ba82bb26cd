// Package translator turns WebGL2 (GLSL ES 3.00) stage sources into the
// dialect of the current context using goshadertranslator.
package translator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/richinsley/gltechnique/technique"
	gst "github.com/richinsley/goshadertranslator"
)

type translateFunc func(source, stage string) (code string, names map[string]string, err error)

// Translator implements technique.Translator.
type Translator struct {
	translate translateFunc
}

var _ technique.Translator = (*Translator)(nil)

// New starts a shader translator targeting GLSL 4.10, or ESSL when gles is set.
func New(ctx context.Context, gles bool) (*Translator, error) {
	st, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start shader translator")
	}

	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}

	return &Translator{
		translate: func(source, stage string) (string, map[string]string, error) {
			shader, err := st.TranslateShader(source, stage, gst.ShaderSpecWebGL2, outputFormat)
			if err != nil {
				return "", nil, err
			}
			names := make(map[string]string, len(shader.Variables))
			for name, v := range shader.Variables {
				names[name] = v.MappedName
			}
			return shader.Code, names, nil
		},
	}, nil
}

func stageName(kind technique.ShaderKind) (string, bool) {
	switch kind {
	case technique.Vertex:
		return "vertex", true
	case technique.Fragment:
		return "fragment", true
	default:
		return "", false
	}
}

// Translate rewrites source and reports every uniform whose name changed.
func (t *Translator) Translate(kind technique.ShaderKind, source string) (string, map[string]string, error) {
	stage, ok := stageName(kind)
	if !ok {
		return "", nil, errors.Errorf("%s shaders cannot be translated", kind)
	}

	code, names, err := t.translate(source, stage)
	if err != nil {
		return "", nil, errors.Wrapf(err, "%s shader translation failed", kind)
	}

	renamed := make(map[string]string)
	for from, to := range names {
		if to != "" && to != from {
			renamed[from] = to
		}
	}
	return code, renamed, nil
}
