// Package scene provides the built-in demo scenes
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/internal/primitive"
	"raytracer/internal/render"
	"raytracer/pkg/math"
)

// Demo builds one of the named demo scenes. Names: "triangle",
// "sphere-cube", "terrain".
func Demo(name string) (*Scene, error) {
	switch name {
	case "triangle":
		return Triangle(), nil
	case "sphere-cube":
		return SphereCube(), nil
	case "terrain":
		return Terrain(), nil
	default:
		return nil, fmt.Errorf("scene: unknown demo scene %q", name)
	}
}

// lookFrom places the camera at position with a yaw rotation about Y,
// in degrees. Zero yaw looks down negative Z.
func lookFrom(position mgl32.Vec3, yawDegrees, fovDegrees float32) render.Camera {
	rot := mgl32.QuatRotate(mgl32.DegToRad(yawDegrees), mgl32.Vec3{0, 1, 0}).Mat4()
	return render.Camera{
		Transform: mgl32.Translate3D(position[0], position[1], position[2]).Mul4(rot),
		HalfAngle: render.HalfAngle(fovDegrees),
	}
}

// Triangle is a single white triangle in the z=0 plane with the camera
// one unit in front of it.
func Triangle() *Scene {
	s := New()
	mat := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{1, 1, 1, 1}))

	tri := primitive.NewTriangle(
		mgl32.Vec3{-1, 0, 0},
		mgl32.Vec3{1, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
	var ext primitive.TriangleExt
	ext.Material = mat
	for i := range ext.Vertices {
		ext.Vertices[i] = primitive.Vertex{
			Normal: mgl32.Vec3{0, 0, -1},
			Color:  mgl32.Vec4{1, 1, 1, 1},
		}
	}
	s.Triangles = append(s.Triangles, tri)
	s.Ext = append(s.Ext, ext)

	// Looking up +Z from one unit in front of the plane.
	s.Camera = lookFrom(mgl32.Vec3{0, 0.25, -1}, 180, 60)
	return s
}

// SphereCube is a 100-triangle sphere at the origin with a unit cube
// three units behind it; the camera looks at the sphere from -Z.
func SphereCube() *Scene {
	s := New()
	red := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{0.9, 0.2, 0.2, 1}))
	blue := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{0.2, 0.3, 0.9, 1}))

	s.AddShape(Shape{
		Kind:      KindSphere,
		Transform: math.NewTRS(),
		Material:  red,
		Stacks:    6,
		Segments:  10,
	})

	cube := math.NewTRS()
	cube.Translation = mgl32.Vec3{0, 0, 3}
	s.AddShape(Shape{
		Kind:      KindCube,
		Transform: cube,
		Material:  blue,
	})

	s.Camera = lookFrom(mgl32.Vec3{0, 0, -3}, 180, 45)
	return s
}

// Terrain is a noise-displaced ground patch with a sphere and a cube
// resting on it.
func Terrain() *Scene {
	s := New()
	green := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{0.3, 0.7, 0.3, 1}))
	red := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{0.9, 0.2, 0.2, 1}))
	grey := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{0.6, 0.6, 0.6, 1}))

	ground := math.NewTRS()
	ground.Scale = mgl32.Vec3{12, 1, 12}
	s.AddShape(Shape{
		Kind:      KindTerrain,
		Transform: ground,
		Material:  green,
		Cells:     32,
		Amplitude: 0.08,
		Seed:      1337,
	})

	sphere := math.NewTRS()
	sphere.Translation = mgl32.Vec3{-1.2, 1, 0}
	s.AddShape(Shape{
		Kind:      KindSphere,
		Transform: sphere,
		Material:  red,
		Stacks:    12,
		Segments:  24,
	})

	cube := math.NewTRS()
	cube.Translation = mgl32.Vec3{1.2, 0.75, 0}
	cube.Rotation = mgl32.QuatRotate(mgl32.DegToRad(30), mgl32.Vec3{0, 1, 0})
	cube.Scale = mgl32.Vec3{1.5, 1.5, 1.5}
	s.AddShape(Shape{
		Kind:      KindCube,
		Transform: cube,
		Material:  grey,
	})

	s.Camera = lookFrom(mgl32.Vec3{0, 1.5, 6}, 0, 60)
	return s
}
