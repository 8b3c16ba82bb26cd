package options

import (
	"flag"
	"strings"
)

// StringList is a repeatable string flag.
type StringList []string

func (l *StringList) String() string {
	return strings.Join(*l, ",")
}

func (l *StringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// CheckOptions holds the gltechnique command line.
type CheckOptions struct {
	Shaders   StringList
	Uniforms  StringList
	Headless  *bool
	Translate *bool
	Visible   *bool
	Verbose   *bool
	Width     *int
	Height    *int
	Help      *bool
}

// Register declares every option on fs.
func Register(fs *flag.FlagSet) *CheckOptions {
	o := &CheckOptions{}
	fs.Var(&o.Shaders, "shader", "Shader stage source file, kind taken from the extension (repeatable)")
	fs.Var(&o.Uniforms, "uniform", "Uniform that must resolve in the linked program (repeatable)")
	o.Headless = fs.Bool("headless", false, "Use an EGL pbuffer context instead of a GLFW window (linux only)")
	o.Translate = fs.Bool("translate", false, "Treat sources as WebGL2 GLSL and translate them for the context")
	o.Visible = fs.Bool("visible", false, "Show the GLFW window while checking")
	o.Verbose = fs.Bool("v", false, "Log each compile and link step")
	o.Width = fs.Int("width", 64, "Width of the context surface")
	o.Height = fs.Int("height", 64, "Height of the context surface")
	o.Help = fs.Bool("help", false, "Show help message")
	return o
}
