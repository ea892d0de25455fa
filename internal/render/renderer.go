// Package render provides the renderer context and frame dispatcher
package render

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/internal/bvh"
	"raytracer/internal/primitive"
	"raytracer/pkg/math"
)

// Config contains renderer configuration
type Config struct {
	Width         int
	Height        int
	Workers       int // 0 means one worker per logical CPU
	MaxPrimitives int
	Bins          int
}

// DefaultConfig returns default renderer configuration
func DefaultConfig() Config {
	return Config{
		Width:         1280,
		Height:        720,
		Workers:       0,
		MaxPrimitives: 1 << 22,
		Bins:          bvh.DefaultBins,
	}
}

// Renderer owns the primitive store, the node array, the camera and
// the framebuffer. Traversal borrows them for the duration of a frame;
// mutations requested between frames are applied at the next frame
// boundary.
type Renderer struct {
	store  *primitive.Store
	nodes  []bvh.Node
	camera Camera
	fb     *Framebuffer

	builder       *bvh.Builder
	workers       int
	maxPrimitives int

	// Mutations staged for the next frame boundary. They are
	// validated at the call site so a failed request leaves the
	// current scene intact.
	pending []func()
}

// New creates a renderer with a cleared framebuffer and no scene.
func New(cfg Config) (*Renderer, error) {
	fb, err := NewFramebuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxPrims := cfg.MaxPrimitives
	if maxPrims <= 0 {
		maxPrims = DefaultConfig().MaxPrimitives
	}
	builder := bvh.NewBuilder()
	if cfg.Bins >= 2 {
		builder.Bins = cfg.Bins
	}
	return &Renderer{
		fb:            fb,
		builder:       builder,
		workers:       workers,
		maxPrimitives: maxPrims,
	}, nil
}

// Resize requests a framebuffer reallocation. Nothing else is
// invalidated. The new plane takes effect at the next frame.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrResizeZero
	}
	r.pending = append(r.pending, func() {
		r.fb.Resize(width, height)
	})
	return nil
}

// LoadScene replaces the primitive store, rebuilds the hierarchy and
// stores the camera. The input arrays are copied; the builder reorders
// the copy, permuting extensions identically so material links
// survive. A failed load leaves the previous scene intact.
func (r *Renderer) LoadScene(tris []primitive.Triangle, exts []primitive.TriangleExt, mats []primitive.Material, camera Camera) error {
	if len(tris) == 0 {
		return ErrEmptyScene
	}
	if len(tris) > r.maxPrimitives {
		return fmt.Errorf("%w: %d > %d", ErrSceneTooLarge, len(tris), r.maxPrimitives)
	}
	if len(exts) != len(tris) {
		return fmt.Errorf("render: %d extensions for %d triangles", len(exts), len(tris))
	}
	if err := camera.Validate(); err != nil {
		return err
	}
	for i := range exts {
		if int(exts[i].Material) >= len(mats) {
			return fmt.Errorf("render: primitive %d references material %d of %d", i, exts[i].Material, len(mats))
		}
	}

	store := (&primitive.Store{Triangles: tris, Ext: exts, Materials: mats}).Clone()
	nodes, err := r.builder.Build(store)
	if err != nil {
		return fmt.Errorf("render: scene rebuild failed: %w", err)
	}

	r.pending = append(r.pending, func() {
		r.store = store
		r.nodes = nodes
		r.camera = camera
	})
	return nil
}

// SetCamera replaces the camera only, effective at the next frame.
func (r *Renderer) SetCamera(transform mgl32.Mat4, halfAngle float32) error {
	camera := Camera{Transform: transform, HalfAngle: halfAngle}
	if err := camera.Validate(); err != nil {
		return err
	}
	r.pending = append(r.pending, func() {
		r.camera = camera
	})
	return nil
}

// applyPending is the pre-frame hook: staged mutations become visible
// to every worker before the first pixel of the frame.
func (r *Renderer) applyPending() {
	for _, apply := range r.pending {
		apply()
	}
	r.pending = r.pending[:0]
}

// Draw renders one frame and returns a view of the packed pixel
// buffer. On failure the previous frame's buffer is returned
// unchanged.
func (r *Renderer) Draw() ([]uint32, error) {
	r.applyPending()
	if r.store == nil {
		return r.fb.Pixels(), ErrNoScene
	}
	r.renderFrame()
	return r.fb.Pixels(), nil
}

// Framebuffer exposes the owned framebuffer for the display surface.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Workers returns the worker pool size used by the dispatcher.
func (r *Renderer) Workers() int {
	return r.workers
}

// renderFrame shards rows across the worker pool. Each worker owns a
// disjoint band of rows, so the only synchronisation is the barrier
// that ends the frame. A single worker degrades to a plain loop with
// identical output.
func (r *Renderer) renderFrame() {
	height := r.fb.Height()
	workers := r.workers
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		r.renderRows(0, height)
		return
	}

	band := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * band
		y1 := y0 + band
		if y1 > height {
			y1 = height
		}
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			r.renderRows(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

// renderRows traces and shades the rows [y0, y1). It allocates nothing
// on the heap; the traversal stack lives on the call stack.
func (r *Renderer) renderRows(y0, y1 int) {
	width := r.fb.Width()
	height := r.fb.Height()
	for y := y0; y < y1; y++ {
		row := r.fb.Row(y)
		for x := 0; x < width; x++ {
			ray := r.camera.Ray(x, y, width, height)
			bvh.Intersect(r.nodes, r.store.Triangles, &ray)
			row[x] = PackRGBA(r.shade(&ray))
		}
	}
}

// shade evaluates the depth-cue diagnostic shade: the base colour of
// the hit material divided by depth/8, or opaque black on a miss.
// Components are clamped to [0,1] by the packer.
func (r *Renderer) shade(ray *math.Ray) mgl32.Vec4 {
	if ray.Hit.Depth >= math.InfDepth {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	ext := &r.store.Ext[ray.Hit.Primitive]
	base := r.store.Materials[ext.Material].BaseColor
	return base.Mul(8 / ray.Hit.Depth)
}
