package cuboid

import (
	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/sat"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// BodyView is the read-only state a renderer needs from a body.
// Fields mirror the RigidBody fields of the same name.
type BodyView struct {
	Id         any
	Transform  actor.Transform
	Shape      actor.Shape
	Appearance actor.Appearance
	BodyType   actor.BodyType
	IsSleeping bool
	OnGround   bool
}

// Size returns the full extents of the box
func (v BodyView) Size() mgl32.Vec3 {
	return v.Shape.Size
}

// Matrix returns the rotation matrix of the body
func (v BodyView) Matrix() mgl32.Mat3 {
	return v.Transform.Matrix()
}

// Vertices returns the 8 world-space corners of the box
func (v BodyView) Vertices() [8]mgl32.Vec3 {
	return sat.BoxVertices(v.Transform, v.Shape.HalfExtents())
}

// Snapshot copies the renderable state of every body, in registry order.
// It must not run concurrently with Step.
func (w *World) Snapshot() ([]BodyView, error) {
	views := make([]BodyView, 0, len(w.Bodies))
	if err := copier.Copy(&views, w.Bodies); err != nil {
		return nil, errors.Wrap(err, "copying body state")
	}

	return views, nil
}
