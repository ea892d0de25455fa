// Package math provides transform composition for scene placement
package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TRS composes a translation, a unit-quaternion rotation and a
// non-uniform scale. The matrix is evaluated on demand.
type TRS struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTRS returns an identity transform.
func NewTRS() TRS {
	return TRS{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Mat4 evaluates the composite as translate * rotate * scale.
func (t TRS) Mat4() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2])
	sc := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}

// TransformPoint applies m to p with w=1.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3()
}

// TransformDir applies m to d with w=0, so translation does not apply.
func TransformDir(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(d.Vec4(0))
	return v.Vec3()
}
