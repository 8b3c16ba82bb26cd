package graphics

// Context is an OpenGL context a technique can be built in.
type Context interface {
	// MakeCurrent binds the context to the calling thread.
	MakeCurrent()
	Shutdown()
	// IsGLES reports whether the context speaks OpenGL ES.
	IsGLES() bool
}
