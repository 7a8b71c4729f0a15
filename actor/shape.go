package actor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind represents the type of collision shape
type ShapeKind int

const (
	ShapeKindBox ShapeKind = iota
	ShapeKindSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKindBox:
		return "box"
	case ShapeKindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape is a tagged variant describing the collision volume of a body.
// Box uses Size (full extents, i.e. half-extents * 2), Sphere uses Radius.
// Only boxes take part in narrow-phase detection.
type Shape struct {
	Kind   ShapeKind
	Size   mgl32.Vec3
	Radius float32
}

// NewBox creates a box shape from its full extents
func NewBox(size mgl32.Vec3) Shape {
	return Shape{Kind: ShapeKindBox, Size: size}
}

// NewSphere creates a sphere shape
func NewSphere(radius float32) Shape {
	return Shape{Kind: ShapeKindSphere, Radius: radius, Size: mgl32.Vec3{2 * radius, 2 * radius, 2 * radius}}
}

// HalfExtents returns half of the box size
func (s Shape) HalfExtents() mgl32.Vec3 {
	return s.Size.Mul(0.5)
}

// BoundingRadius is the half diagonal of the box: no rotation moves a corner
// further than this from the center, on any axis.
func (s Shape) BoundingRadius() float32 {
	if s.Kind == ShapeKindSphere {
		return s.Radius
	}
	return s.Size.Len() * 0.5
}

// Volume of the shape
func (s Shape) Volume() float32 {
	switch s.Kind {
	case ShapeKindSphere:
		return (4.0 / 3.0) * math32.Pi * s.Radius * s.Radius * s.Radius
	default:
		return s.Size.X() * s.Size.Y() * s.Size.Z()
	}
}

// ComputeInertia returns the diagonal inertia tensor of the shape in local space.
func ComputeInertia(shape Shape, mass float32) mgl32.Mat3 {
	switch shape.Kind {
	case ShapeKindSphere:
		// I = 2/5 * m * r²
		i := (2.0 / 5.0) * mass * shape.Radius * shape.Radius
		return mgl32.Diag3(mgl32.Vec3{i, i, i})
	default:
		// Formule pour une boîte : I = (m/12) * (dimension1² + dimension2²)
		x, y, z := shape.Size.X(), shape.Size.Y(), shape.Size.Z()
		factor := mass / 12.0
		return mgl32.Diag3(mgl32.Vec3{
			factor * (y*y + z*z),
			factor * (x*x + z*z),
			factor * (x*x + y*y),
		})
	}
}

// ComputeInverseInertia returns the inverse of ComputeInertia.
// Components whose inertia is degenerate (zero mass or flat shape) are left at zero
// instead of becoming infinite, so the body simply does not rotate about that axis.
func ComputeInverseInertia(shape Shape, mass float32) mgl32.Mat3 {
	inertia := ComputeInertia(shape, mass)

	var inv mgl32.Vec3
	for i := 0; i < 3; i++ {
		if v := inertia.At(i, i); v > 1e-6 {
			inv[i] = 1.0 / v
		}
	}

	return mgl32.Diag3(inv)
}
