// Package display provides input handling for the viewer
package display

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input tracks keyboard state and mouse deltas for the fly camera.
type Input struct {
	// Keyboard state
	keys map[glfw.Key]bool

	// Mouse position
	mouseX, mouseY         float64
	lastMouseX, lastMouseY float64
	firstMouse             bool

	// Mouse delta accumulated since the last BeginFrame
	mouseDeltaX, mouseDeltaY float64
}

// NewInput creates a new input handler
func NewInput() *Input {
	return &Input{
		keys:       make(map[glfw.Key]bool),
		firstMouse: true,
	}
}

// HandleKey processes keyboard events
func (i *Input) HandleKey(key glfw.Key, action glfw.Action) {
	if action == glfw.Press {
		i.keys[key] = true
	} else if action == glfw.Release {
		i.keys[key] = false
	}
}

// HandleMouseMove processes mouse movement
func (i *Input) HandleMouseMove(xpos, ypos float64) {
	if i.firstMouse {
		i.lastMouseX = xpos
		i.lastMouseY = ypos
		i.firstMouse = false
	}

	i.mouseDeltaX += xpos - i.lastMouseX
	i.mouseDeltaY += i.lastMouseY - ypos // Y is inverted

	i.lastMouseX = xpos
	i.lastMouseY = ypos
	i.mouseX = xpos
	i.mouseY = ypos
}

// KeyDown reports whether the key is currently held.
func (i *Input) KeyDown(key glfw.Key) bool {
	return i.keys[key]
}

// MouseDelta returns the mouse movement accumulated since the last
// BeginFrame.
func (i *Input) MouseDelta() (float64, float64) {
	return i.mouseDeltaX, i.mouseDeltaY
}

// BeginFrame resets the per-frame deltas.
func (i *Input) BeginFrame() {
	i.mouseDeltaX = 0
	i.mouseDeltaY = 0
}
