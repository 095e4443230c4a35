package types

import "github.com/go-gl/mathgl/mgl32"

// Rotation is expressed as an angle (radians) around an axis.
type Rotation struct {
	Axis  Vec3
	Angle float32
}

// Transform places an object in the world. Scale is applied first, then
// rotation and finally translation.
type Transform struct {
	Position Vec3
	Scale    Vec3
	Rotation Rotation
}

// Create an identity transform.
func IdentityTransform() Transform {
	return Transform{
		Scale:    Vec3{1, 1, 1},
		Rotation: Rotation{Axis: Vec3{0, 1, 0}},
	}
}

// Create a transform that translates and uniformly scales.
func TranslateScale(position Vec3, scale float32) Transform {
	t := IdentityTransform()
	t.Position = position
	t.Scale = Vec3{scale, scale, scale}
	return t
}

// Get the rotation quaternion. A zero axis or angle yields the identity.
func (t Transform) Quat() mgl32.Quat {
	axis := mgl32.Vec3(t.Rotation.Axis)
	if t.Rotation.Angle == 0 || axis.Len() < floatCmpEpsilon {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(t.Rotation.Angle, axis.Normalize())
}

// Get the model matrix for this transform.
func (t Transform) Matrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translation.Mul4(t.Quat().Mat4()).Mul4(scale)
}

// Transform a point from local to world space.
func (t Transform) Apply(point Vec3) Vec3 {
	return Vec3(mgl32.TransformCoordinate(mgl32.Vec3(point), t.Matrix()))
}
