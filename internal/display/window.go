// Package display provides the native window the renderer draws into
package display

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Config contains window configuration
type Config struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window owns the GLFW window, the GL context and the blit pipeline.
// It accepts a width, a height and a packed RGBA8 pixel buffer
// ([]uint32, R in the low byte) per frame.
type Window struct {
	window *glfw.Window
	width  int
	height int

	blit  *blitter
	input *Input

	// Callbacks
	onResize func(width, height int)
}

// NewWindow creates the window and initializes OpenGL.
func NewWindow(config Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	window.MakeContextCurrent()

	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("[Display] OpenGL version: %s\n", version)

	blit, err := newBlitter()
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create blitter: %w", err)
	}

	w := &Window{
		window: window,
		width:  config.Width,
		height: config.Height,
		blit:   blit,
		input:  NewInput(),
	}

	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.input.HandleKey(key, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.input.HandleMouseMove(xpos, ypos)
	})
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return w, nil
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		return
	}
	w.width = width
	w.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// OnResize registers a callback invoked when the framebuffer size
// changes.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

// Input returns the window's input state.
func (w *Window) Input() *Input {
	return w.input
}

// Size returns the current framebuffer size.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose() || w.input.KeyDown(glfw.KeyEscape)
}

// Present blits the pixel plane and swaps buffers.
func (w *Window) Present(width, height int, pixels []uint32) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	w.blit.blit(width, height, pixels)
	w.window.SwapBuffers()
}

// Poll pumps pending window events.
func (w *Window) Poll() {
	w.input.BeginFrame()
	glfw.PollEvents()
}

// Cleanup releases GL resources and terminates GLFW.
func (w *Window) Cleanup() {
	w.blit.cleanup()
	glfw.Terminate()
}
