// Raytracer - Main entry point
// A CPU ray tracer written in Go with an OpenGL display surface
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"raytracer/internal/config"
	"raytracer/internal/display"
	"raytracer/internal/render"
	"raytracer/internal/save"
	"raytracer/internal/scene"
)

// Build metadata - injected at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the settings file")
	sceneName := flag.String("scene", "", "demo scene override (triangle, sphere-cube, terrain)")
	outPath := flag.String("out", "", "render one frame to this PNG and exit")
	flag.Parse()

	fmt.Printf("[Raytracer] version %s (%s)\n", Version, GitCommit)

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("[Raytracer] failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *sceneName != "" {
		settings.Scene = *sceneName
	}

	sc, err := scene.Demo(settings.Scene)
	if err != nil {
		fmt.Printf("[Raytracer] %v\n", err)
		os.Exit(1)
	}
	sc.Camera.HalfAngle = render.HalfAngle(settings.FOV)

	renderer, err := render.New(render.Config{
		Width:         settings.Width,
		Height:        settings.Height,
		Workers:       settings.Workers,
		MaxPrimitives: settings.MaxPrimitives,
		Bins:          settings.SahBins,
	})
	if err != nil {
		fmt.Printf("[Raytracer] %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	if err := renderer.LoadScene(sc.Triangles, sc.Ext, sc.Materials, sc.Camera); err != nil {
		fmt.Printf("[Raytracer] failed to load scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[Raytracer] scene %q: %d triangles, BVH built in %v, %d workers\n",
		settings.Scene, len(sc.Triangles), time.Since(start), renderer.Workers())

	if *outPath != "" {
		renderOnce(renderer, settings, *outPath)
		return
	}

	runViewer(renderer, settings)
}

// renderOnce draws a single frame headless and writes it to disk.
func renderOnce(renderer *render.Renderer, settings *config.Settings, path string) {
	start := time.Now()
	pixels, err := renderer.Draw()
	if err != nil {
		fmt.Printf("[Raytracer] draw failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[Raytracer] frame rendered in %v\n", time.Since(start))

	if err := save.WritePNG(path, settings.Width, settings.Height, pixels); err != nil {
		fmt.Printf("[Raytracer] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[Raytracer] wrote %s\n", path)
}

// runViewer opens the window and re-renders while the camera moves.
func runViewer(renderer *render.Renderer, settings *config.Settings) {
	window, err := display.NewWindow(display.Config{
		Width:  settings.Width,
		Height: settings.Height,
		Title:  "Raytracer",
		VSync:  settings.VSync,
	})
	if err != nil {
		fmt.Printf("[Raytracer] %v\n", err)
		os.Exit(1)
	}
	defer window.Cleanup()

	controller := render.NewController(mgl32.Vec3{0, 1.5, 6})
	controller.FOV = settings.FOV

	window.OnResize(func(width, height int) {
		renderer.Resize(width, height)
	})

	snapshots := save.NewWriter(settings.SnapshotDir)
	input := window.Input()
	lastFrame := time.Now()

	for !window.ShouldClose() {
		window.Poll()

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		// Fly camera
		dx, dy := input.MouseDelta()
		controller.ProcessMouseMovement(float32(dx), float32(dy))
		var forward, right float32
		if input.KeyDown(glfw.KeyW) {
			forward += controller.Speed * dt
		}
		if input.KeyDown(glfw.KeyS) {
			forward -= controller.Speed * dt
		}
		if input.KeyDown(glfw.KeyD) {
			right += controller.Speed * dt
		}
		if input.KeyDown(glfw.KeyA) {
			right -= controller.Speed * dt
		}
		controller.Move(forward, right, 0)

		camera := controller.Camera()
		if err := renderer.SetCamera(camera.Transform, camera.HalfAngle); err != nil {
			fmt.Printf("[Raytracer] %v\n", err)
		}

		pixels, err := renderer.Draw()
		if err != nil {
			fmt.Printf("[Raytracer] draw failed: %v\n", err)
		}

		fb := renderer.Framebuffer()
		window.Present(fb.Width(), fb.Height(), pixels)

		if input.KeyDown(glfw.KeyF2) {
			if path, err := snapshots.SavePNG(fb.Width(), fb.Height(), pixels); err == nil {
				fmt.Printf("[Raytracer] snapshot saved to %s\n", path)
			}
		}
	}
}
