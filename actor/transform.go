package actor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a body in world space.
// Rotation holds Euler angles in degrees (X pitch, Y yaw, Z roll) and is the
// authoritative orientation: the rotation matrix is always derived from it.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 0},
	}
}

// Matrix returns the world rotation matrix of the transform
func (t Transform) Matrix() mgl32.Mat3 {
	return RotationMatrix(t.Rotation)
}

// RotationMatrix builds R = Rz * Ry * Rx from Euler angles in degrees.
func RotationMatrix(euler mgl32.Vec3) mgl32.Mat3 {
	rx := mgl32.Rotate3DX(mgl32.DegToRad(euler.X()))
	ry := mgl32.Rotate3DY(mgl32.DegToRad(euler.Y()))
	rz := mgl32.Rotate3DZ(mgl32.DegToRad(euler.Z()))

	return rz.Mul3(ry).Mul3(rx)
}

// MatrixToEuler recovers Euler angles in degrees from a Rz * Ry * Rx matrix.
// Near gimbal lock (pitch about ±90° around Y) roll is folded into X and Z is zero.
func MatrixToEuler(m mgl32.Mat3) mgl32.Vec3 {
	sy := -m.At(2, 0)
	cy := math32.Sqrt(math32.Max(0, 1-sy*sy))

	var x, y, z float32
	if cy > 1e-6 {
		x = math32.Atan2(m.At(2, 1), m.At(2, 2))
		y = math32.Atan2(sy, cy)
		z = math32.Atan2(m.At(1, 0), m.At(0, 0))
	} else {
		x = math32.Atan2(-m.At(1, 2), m.At(1, 1))
		y = math32.Atan2(sy, cy)
		z = 0
	}

	return mgl32.Vec3{mgl32.RadToDeg(x), mgl32.RadToDeg(y), mgl32.RadToDeg(z)}
}

// Orthonormalize removes the drift accumulated by integrating a rotation matrix.
// The X column keeps its direction, Z is rebuilt from X and Y, then Y from Z and X.
func Orthonormalize(m mgl32.Mat3) mgl32.Mat3 {
	x := m.Col(0).Normalize()
	y := m.Col(1)
	z := x.Cross(y).Normalize()
	y = z.Cross(x).Normalize()

	return mgl32.Mat3FromCols(x, y, z)
}

// Skew returns the cross-product matrix Ω* of w, so that Skew(w) * v == w × v.
func Skew(w mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3FromRows(
		mgl32.Vec3{0, -w.Z(), w.Y()},
		mgl32.Vec3{w.Z(), 0, -w.X()},
		mgl32.Vec3{-w.Y(), w.X(), 0},
	)
}
