// Package sat implements the Separating Axis Theorem for oriented boxes.
//
// Two convex shapes are disjoint iff some axis exists on which their projections
// do not overlap. For a pair of boxes it is enough to test 15 axes: the 3 face
// normals of each box, plus the 9 cross products of one box's edge directions
// with the other's.
//
// The test runs in two phases:
//  1. Rejection: the first axis with disjoint projections ends the test.
//  2. Selection: when all axes overlap, the axis with the smallest overlap becomes
//     the contact normal and the overlap its penetration depth.
//
// Edge-edge axes are slightly penalized (EdgeBias) so that a face contact wins
// over an edge contact of the same depth; edge normals wobble from one frame to
// the next and make resting stacks jitter.
//
// References:
//   - Gottschalk, Lin, Manocha: "OBBTree: A Hierarchical Structure for Rapid
//     Interference Detection" (1996)
//   - Ericson: "Real-Time Collision Detection" (2004), chapter 4.4
package sat

import (
	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/constraint"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// CrossEpsilon rejects cross-product axes of near-parallel edges, which have no
	// usable direction.
	CrossEpsilon = 1e-4

	// EdgeBias inflates the overlap measured on edge-edge axes.
	EdgeBias = 1.05

	// FeatureTolerance is the distance from the extreme projection within which a
	// vertex still belongs to the supporting face or edge.
	FeatureTolerance = 0.15

	// faceAxisCount is the number of face normals (3 per box) preceding the edge axes.
	faceAxisCount = 6
)

// unitCorners lists the box corners in a fixed order; vertex i of a box is
// center + R * (unitCorners[i] ∘ halfExtents).
var unitCorners = [8]mgl32.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// Vertices returns the 8 world-space corners of the body's box
func Vertices(rb *actor.RigidBody) [8]mgl32.Vec3 {
	return BoxVertices(rb.Transform, rb.Shape.HalfExtents())
}

// BoxVertices returns the corners of a box with the given half extents placed by transform
func BoxVertices(transform actor.Transform, half mgl32.Vec3) [8]mgl32.Vec3 {
	var vertices [8]mgl32.Vec3

	R := transform.Matrix()
	for i, corner := range unitCorners {
		local := mgl32.Vec3{corner.X() * half.X(), corner.Y() * half.Y(), corner.Z() * half.Z()}
		vertices[i] = transform.Position.Add(R.Mul3x1(local))
	}

	return vertices
}

// Axes returns the body's local X, Y and Z axes in world space
func Axes(rb *actor.RigidBody) [3]mgl32.Vec3 {
	R := rb.Transform.Matrix()
	return [3]mgl32.Vec3{R.Col(0), R.Col(1), R.Col(2)}
}

// CandidateAxes returns the axes to test, face normals first: A's 3, B's 3, then
// the normalized cross products A[i] × B[j] that are long enough to carry a direction.
func CandidateAxes(axesA, axesB [3]mgl32.Vec3) []mgl32.Vec3 {
	axes := make([]mgl32.Vec3, 0, 15)
	axes = append(axes, axesA[:]...)
	axes = append(axes, axesB[:]...)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := axesA[i].Cross(axesB[j])
			if cross.LenSqr() > CrossEpsilon {
				axes = append(axes, cross.Normalize())
			}
		}
	}

	return axes
}

// Project returns the interval covered by the vertices along axis
func Project(vertices [8]mgl32.Vec3, axis mgl32.Vec3) (float32, float32) {
	lo := vertices[0].Dot(axis)
	hi := lo
	for _, v := range vertices[1:] {
		d := v.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// Overlap reports whether both vertex sets overlap along axis, and by how much.
func Overlap(verticesA, verticesB [8]mgl32.Vec3, axis mgl32.Vec3) (float32, bool) {
	minA, maxA := Project(verticesA, axis)
	minB, maxB := Project(verticesB, axis)

	if maxA < minB || maxB < minA {
		return 0, false
	}

	return min(maxA-minB, maxB-minA), true
}

// Detect tests two boxes and returns their contact when they intersect.
// The contact normal points from a toward b. Shapes other than boxes never collide.
func Detect(a, b *actor.RigidBody) (constraint.Contact, bool) {
	if a.Shape.Kind != actor.ShapeKindBox || b.Shape.Kind != actor.ShapeKindBox {
		return constraint.Contact{}, false
	}

	verticesA := Vertices(a)
	verticesB := Vertices(b)
	axes := CandidateAxes(Axes(a), Axes(b))

	var bestAxis mgl32.Vec3
	minPenetration := float32(1e10)
	found := false

	for i, axis := range axes {
		penetration, overlapping := Overlap(verticesA, verticesB, axis)
		if !overlapping {
			return constraint.Contact{}, false
		}
		if i >= faceAxisCount {
			penetration *= EdgeBias
		}

		if penetration < minPenetration {
			minPenetration = penetration
			bestAxis = axis
			found = true
		}
	}

	if !found {
		return constraint.Contact{}, false
	}

	// Point the normal from A to B
	if bestAxis.Dot(b.Transform.Position.Sub(a.Transform.Position)) < 0 {
		bestAxis = bestAxis.Mul(-1)
	}

	return constraint.Contact{
		Point:       contactPoint(verticesA, verticesB, bestAxis),
		Normal:      bestAxis,
		Penetration: minPenetration,
	}, true
}

// contactPoint averages the supporting feature of A along the normal with the
// supporting feature of B against it.
func contactPoint(verticesA, verticesB [8]mgl32.Vec3, normal mgl32.Vec3) mgl32.Vec3 {
	pointA := SupportFeature(verticesA, normal)
	pointB := SupportFeature(verticesB, normal.Mul(-1))
	return pointA.Add(pointB).Mul(0.5)
}

// SupportFeature returns the centroid of the vertices lying within FeatureTolerance
// of the extreme projection along direction: a face center, an edge midpoint or
// a single vertex.
func SupportFeature(vertices [8]mgl32.Vec3, direction mgl32.Vec3) mgl32.Vec3 {
	_, maxDist := Project(vertices, direction)

	var sum mgl32.Vec3
	count := 0
	for _, v := range vertices {
		if v.Dot(direction) >= maxDist-FeatureTolerance {
			sum = sum.Add(v)
			count++
		}
	}

	if count == 0 {
		return vertices[0]
	}
	return sum.Mul(1.0 / float32(count))
}
