package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/richinsley/gltechnique/gldriver"
	"github.com/richinsley/gltechnique/glfwcontext"
	"github.com/richinsley/gltechnique/graphics"
	"github.com/richinsley/gltechnique/headless"
	"github.com/richinsley/gltechnique/options"
	"github.com/richinsley/gltechnique/shader"
	"github.com/richinsley/gltechnique/technique"
	"github.com/richinsley/gltechnique/translator"
)

// plan maps each file to a stage and reports which of the two mandatory
// stages have to come from the built-ins.
func plan(paths []string) (stages []technique.Stage, needVertex, needFragment bool, err error) {
	needVertex, needFragment = true, true
	for _, path := range paths {
		kind, err := technique.KindFromPath(path)
		if err != nil {
			return nil, false, false, err
		}
		switch kind {
		case technique.Vertex:
			needVertex = false
		case technique.Fragment:
			needFragment = false
		}
		stages = append(stages, technique.Stage{Kind: kind, Path: path})
	}
	return stages, needVertex, needFragment, nil
}

// check builds the program from o's stages in the current context and
// writes one "name=location" line per requested uniform to out.
func check(d technique.Driver, o *options.CheckOptions, builtinGLES bool, out io.Writer, opts ...technique.Option) error {
	stages, needVertex, needFragment, err := plan(o.Shaders)
	if err != nil {
		return err
	}

	tech, err := technique.New(d, opts...)
	if err != nil {
		return err
	}
	defer tech.Destroy()

	if needVertex {
		if err := tech.AddShaderSource(technique.Vertex, "<builtin vertex>", shader.VertexShader(builtinGLES)); err != nil {
			return err
		}
	}
	for _, s := range stages {
		if err := tech.AddShaderProgram(s.Kind, s.Path); err != nil {
			return err
		}
	}
	if needFragment {
		if err := tech.AddShaderSource(technique.Fragment, "<builtin fragment>", shader.FragmentShader(builtinGLES)); err != nil {
			return err
		}
	}

	if err := tech.Finalize(); err != nil {
		return err
	}

	tech.Enable()
	defer tech.Disable()
	for _, name := range o.Uniforms {
		loc, err := tech.UniformLocation(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s=%d\n", name, loc)
	}
	return nil
}

func run(o *options.CheckOptions) error {
	var ctx graphics.Context
	if *o.Headless {
		h, err := headless.NewHeadless(*o.Width, *o.Height)
		if err != nil {
			return errors.Wrap(err, "failed to create headless context")
		}
		ctx = h
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			return errors.Wrap(err, "failed to initialize glfw")
		}
		defer glfwcontext.TerminateGraphics()
		w, err := glfwcontext.New(o, *o.Visible)
		if err != nil {
			return err
		}
		ctx = w
	}
	defer ctx.Shutdown()

	ctx.MakeCurrent()
	if err := gldriver.Init(); err != nil {
		return err
	}
	log.Printf("OpenGL version: %s", gldriver.Version())

	var opts []technique.Option
	if *o.Verbose {
		opts = append(opts, technique.WithLogger(log.Default()))
	}
	builtinGLES := ctx.IsGLES()
	if *o.Translate {
		tr, err := translator.New(context.Background(), ctx.IsGLES())
		if err != nil {
			return err
		}
		opts = append(opts, technique.WithTranslator(tr))
		builtinGLES = true
	}

	return check(gldriver.New(), o, builtinGLES, os.Stdout, opts...)
}

func init() {
	runtime.LockOSThread()
}

func main() {
	o := options.Register(flag.CommandLine)
	flag.Parse()

	if *o.Help || len(o.Shaders) == 0 {
		fmt.Println("GLSL program checker: compiles, links and validates shader stages")
		flag.PrintDefaults()
		return
	}

	if err := run(o); err != nil {
		log.Fatalf("Check failed: %v", err)
	}
	log.Printf("Program OK: %d stage file(s), %d uniform(s) resolved", len(o.Shaders), len(o.Uniforms))
}
