package renderer

import _ "embed"

// GLSL 4.10 sources. shader.CompileProgram appends the NUL terminator.
var (
	//go:embed shaders/globe.vert
	globeVertexSource string

	//go:embed shaders/globe.frag
	globeFragmentSource string

	//go:embed shaders/overlay.vert
	overlayVertexSource string

	//go:embed shaders/overlay.frag
	overlayFragmentSource string
)
