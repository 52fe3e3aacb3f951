// Package renderer draws the globe and the dial overlay with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/global-clock/internal/engine/framebuffer"
	"github.com/Faultbox/global-clock/internal/engine/shader"
	"github.com/Faultbox/global-clock/internal/engine/texture"
	"github.com/Faultbox/global-clock/internal/engine/viewport"
	"github.com/Faultbox/global-clock/internal/globe"
	"github.com/Faultbox/global-clock/internal/logger"
)

// globeBinding is the uniform buffer binding point of the Globe block.
const globeBinding = 0

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Tuning globe.Tuning
}

// Frame is everything the renderer needs to draw one frame.
type Frame struct {
	Params globe.Parameters
	// Overlay is the dial image, drawn over the whole viewport square.
	// Nil skips the overlay pass.
	Overlay image.Image
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	vp     *viewport.Viewport
	log    *zap.Logger

	globeProgram   *shader.Program
	overlayProgram *shader.Program

	quadVAO uint32
	quadVBO uint32
	quadEBO uint32
	ubo     uint32

	dayTex     uint32
	nightTex   uint32
	overlayTex uint32
	overlayW   int
	overlayH   int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		vp:     viewport.New(cfg.Width, cfg.Height),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Shading is linear; the framebuffer encodes to sRGB on write.
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Disable(gl.DEPTH_TEST)
	bg := cfg.Tuning.Background
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), float32(bg.A))

	var err error
	if r.globeProgram, err = shader.New(globeVertexSource, globeFragmentSource); err != nil {
		r.Close()
		return nil, fmt.Errorf("globe program: %w", err)
	}
	if err := r.globeProgram.BindBlock("Globe", globeBinding); err != nil {
		r.Close()
		return nil, err
	}
	if r.overlayProgram, err = shader.New(overlayVertexSource, overlayFragmentSource); err != nil {
		r.Close()
		return nil, fmt.Errorf("overlay program: %w", err)
	}

	r.createQuad()
	r.createUniformBuffer()
	r.setStaticUniforms()

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// createQuad builds the -1..1 quad shared by both passes. Texture
// coordinates have their origin at the top-left.
func (r *Renderer) createQuad() {
	vertices := []float32{
		// Position  // UV
		-1, 1, 0, 0,
		1, 1, 1, 0,
		1, -1, 1, 1,
		-1, -1, 0, 1,
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.quadEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)

	// UV attribute (location = 1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("quad created",
		zap.Uint32("vao", r.quadVAO),
		zap.Uint32("vbo", r.quadVBO),
	)
}

func (r *Renderer) createUniformBuffer() {
	gl.GenBuffers(1, &r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, globe.UniformsSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, globeBinding, r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (r *Renderer) setStaticUniforms() {
	t := r.config.Tuning
	bg := t.Background

	r.globeProgram.Use()
	gl.Uniform1i(r.globeProgram.Uniform("uDay"), 0)
	gl.Uniform1i(r.globeProgram.Uniform("uNight"), 1)
	gl.Uniform1f(r.globeProgram.Uniform("uSharpness"), float32(t.TerminatorSharpness))
	gl.Uniform1f(r.globeProgram.Uniform("uAmbient"), float32(t.AmbientWeight))
	gl.Uniform1f(r.globeProgram.Uniform("uDiffuse"), float32(t.DiffuseWeight))
	gl.Uniform4f(r.globeProgram.Uniform("uBackground"), float32(bg.R), float32(bg.G), float32(bg.B), float32(bg.A))

	r.overlayProgram.Use()
	gl.Uniform1i(r.overlayProgram.Uniform("uOverlay"), 0)
	gl.UseProgram(0)
}

// SetMaps uploads the day and night maps, replacing any previous ones. The
// maps repeat horizontally and clamp at the poles.
func (r *Renderer) SetMaps(day, night *image.NRGBA) {
	r.dayTex = replaceTexture(r.dayTex, day, gl.REPEAT, gl.CLAMP_TO_EDGE)
	r.nightTex = replaceTexture(r.nightTex, night, gl.REPEAT, gl.CLAMP_TO_EDGE)
	r.log.Debug("maps uploaded",
		zap.Int("day_width", day.Rect.Dx()),
		zap.Int("night_width", night.Rect.Dx()),
	)
}

func replaceTexture(old uint32, img *image.NRGBA, wrapS, wrapT int32) uint32 {
	if old != 0 {
		gl.DeleteTextures(1, &old)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// uploadOverlay refreshes the overlay texture, reallocating only when the
// dial size changes. The texture holds straight alpha; the overlay shader
// premultiplies.
func (r *Renderer) uploadOverlay(img image.Image) {
	n := texture.ToNRGBA(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	if r.overlayTex == 0 || w != r.overlayW || h != r.overlayH {
		r.overlayTex = replaceTexture(r.overlayTex, n, gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
		r.overlayW, r.overlayH = w, h
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(n.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw renders one frame into the bound framebuffer.
func (r *Renderer) Draw(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	proj := r.vp.Projection()
	u := f.Params.Uniforms()
	block := u.Bytes()
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(block), gl.Ptr(block))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	gl.BindVertexArray(r.quadVAO)

	// Globe
	r.globeProgram.Use()
	gl.UniformMatrix4fv(r.globeProgram.Uniform("uViewport"), 1, false, proj.Ptr())
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.dayTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.nightTex)
	gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, nil)

	// Dial
	if f.Overlay != nil {
		r.uploadOverlay(f.Overlay)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
		r.overlayProgram.Use()
		gl.UniformMatrix4fv(r.overlayProgram.Uniform("uViewport"), 1, false, proj.Ptr())
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.overlayTex)
		gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, nil)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Capture renders a frame offscreen at the given size and reads it back.
func (r *Renderer) Capture(f Frame, width, height int) (*image.NRGBA, error) {
	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		return nil, err
	}
	defer fb.Destroy()

	prev := r.vp
	r.vp = viewport.New(width, height)
	restore := fb.BindWithViewport()
	r.Draw(f)
	img := fb.ReadImage()
	restore()
	r.vp = prev
	return img, nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if !r.vp.Resize(width, height) {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, tex := range []*uint32{&r.dayTex, &r.nightTex, &r.overlayTex} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
	if r.ubo != 0 {
		gl.DeleteBuffers(1, &r.ubo)
	}
	if r.quadEBO != 0 {
		gl.DeleteBuffers(1, &r.quadEBO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.globeProgram != nil {
		r.globeProgram.Delete()
	}
	if r.overlayProgram != nil {
		r.overlayProgram.Delete()
	}
}
