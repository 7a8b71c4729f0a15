package actor

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by gravity and collisions
	// They have finite mass and can move and rotate freely
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are anchored: infinite mass, never integrated or moved
	// by the simulation (e.g., ground, walls)
	BodyTypeStatic

	// BodyTypePlayer bodies are characters: yaw-only rotation, no angular response
	// to contacts, never put to sleep
	BodyTypePlayer
)

// InertiaScale inflates box inertia so contacts spin bodies less than the textbook
// value would. 1 is physically exact; larger values trade realism for stability.
const InertiaScale = 10.0

// minMass is the mass floor below which a dynamic body falls back to unit mass
const minMass = 0.001

type Material struct {
	Density     float32
	Restitution float32 // 0= no rebound, 1= perfect restitution
	Friction    float32
}

// DefaultMaterial mirrors the defaults used for scene cubes
func DefaultMaterial() Material {
	return Material{
		Density:     1.0,
		Restitution: 0.2,
		Friction:    0.5,
	}
}

// Appearance carries render tags. The simulation never reads it.
type Appearance struct {
	Color   color.RGBA
	Texture string
}

// RigidBody represents an oriented box in the physics simulation
type RigidBody struct {
	Id any

	Transform Transform
	Shape     Shape

	// Linear motion
	Velocity mgl32.Vec3

	// Angular motion (rad/s)
	AngularVelocity mgl32.Vec3

	Mass        float32
	InverseMass float32

	InverseInertiaLocal mgl32.Mat3
	// InverseInertiaWorld = R * InverseInertiaLocal * Rᵗ, refreshed whenever Rotation changes
	InverseInertiaWorld mgl32.Mat3

	IsSleeping bool
	SleepTimer float32

	// OnGround is set by contacts whose normal supports a player from below
	OnGround bool
	// IsTrigger bodies report overlaps but are never pushed apart
	IsTrigger bool

	Material   Material
	Appearance Appearance
	BodyType   BodyType
}

// NewRigidBody creates a new rigid body with the given properties
// density is used to calculate mass for dynamic bodies (ignored for static)
func NewRigidBody(transform Transform, shape Shape, bodyType BodyType, density float32) *RigidBody {
	rb := &RigidBody{
		Transform: transform,
		Shape:     shape,
		BodyType:  bodyType,
		Material:  DefaultMaterial(),
	}
	rb.Material.Density = density

	if bodyType == BodyTypeStatic {
		rb.Material.Density = 0
		rb.Mass = 0
		rb.InverseMass = 0
		rb.InverseInertiaLocal = mgl32.Mat3{}
	} else {
		rb.Mass = density * shape.Volume()
		if rb.Mass < minMass {
			rb.Mass = 1.0
		}
		rb.InverseMass = 1.0 / rb.Mass

		if bodyType == BodyTypePlayer {
			rb.InverseInertiaLocal = mgl32.Mat3{}
		} else {
			rb.InverseInertiaLocal = ComputeInverseInertia(shape, rb.Mass).Mul(1.0 / InertiaScale)
		}
	}

	rb.UpdateInertiaWorld()

	return rb
}

// IsAnchored reports whether the body is static
func (rb *RigidBody) IsAnchored() bool {
	return rb.BodyType == BodyTypeStatic
}

// IsPlayer reports whether the body is a yaw-only character
func (rb *RigidBody) IsPlayer() bool {
	return rb.BodyType == BodyTypePlayer
}

// Immovable reports whether contacts must leave the body untouched:
// anchored bodies always, sleeping bodies until they are woken up.
func (rb *RigidBody) Immovable() bool {
	return rb.IsAnchored() || rb.IsSleeping
}

// Size returns the full extents of the body's box
func (rb *RigidBody) Size() mgl32.Vec3 {
	return rb.Shape.Size
}

// UpdateInertiaWorld recomputes the world inverse inertia from the current rotation
func (rb *RigidBody) UpdateInertiaWorld() {
	if rb.IsAnchored() {
		rb.InverseInertiaWorld = mgl32.Mat3{}
		return
	}

	// I_world^(-1) = R * I_local^(-1) * R^T
	R := rb.Transform.Matrix()
	rb.InverseInertiaWorld = R.Mul3(rb.InverseInertiaLocal).Mul3(R.Transpose())
}

// PointVelocity returns the velocity of a world-space point attached to the body
func (rb *RigidBody) PointVelocity(worldPoint mgl32.Vec3) mgl32.Vec3 {
	r := worldPoint.Sub(rb.Transform.Position)
	return rb.Velocity.Add(rb.AngularVelocity.Cross(r))
}

// Sleep freezes the body until WakeUp is called
func (rb *RigidBody) Sleep() {
	rb.IsSleeping = true
	rb.Velocity = mgl32.Vec3{}
	rb.AngularVelocity = mgl32.Vec3{}
}

// WakeUp is the only way back from sleep
func (rb *RigidBody) WakeUp() {
	rb.IsSleeping = false
	rb.SleepTimer = 0.0
}

// SetPosition teleports the body and wakes it up
func (rb *RigidBody) SetPosition(position mgl32.Vec3) {
	rb.Transform.Position = position
	rb.WakeUp()
}

// SetRotation replaces the Euler angles (degrees) and wakes the body up
func (rb *RigidBody) SetRotation(rotation mgl32.Vec3) {
	rb.Transform.Rotation = rotation
	rb.UpdateInertiaWorld()
	rb.WakeUp()
}

// SetVelocity replaces the linear velocity and wakes the body up
func (rb *RigidBody) SetVelocity(velocity mgl32.Vec3) {
	rb.Velocity = velocity
	rb.WakeUp()
}

// SetAngularVelocity replaces the angular velocity and wakes the body up
func (rb *RigidBody) SetAngularVelocity(angularVelocity mgl32.Vec3) {
	rb.AngularVelocity = angularVelocity
	rb.WakeUp()
}

// ApplyImpulse applies an instantaneous impulse at a world-space point
func (rb *RigidBody) ApplyImpulse(impulse mgl32.Vec3, worldPoint mgl32.Vec3) {
	if rb.IsAnchored() {
		return
	}
	rb.WakeUp()

	rb.Velocity = rb.Velocity.Add(impulse.Mul(rb.InverseMass))
	r := worldPoint.Sub(rb.Transform.Position)
	rb.AngularVelocity = rb.AngularVelocity.Add(rb.InverseInertiaWorld.Mul3x1(r.Cross(impulse)))
}
