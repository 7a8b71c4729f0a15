package constraint

import (
	"github.com/akmonengine/cuboid/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Contact is the single deepest contact between two boxes.
// It is produced by the narrow phase and consumed in the same resolution pass.
type Contact struct {
	// World-space point where the impulses are applied
	Point mgl32.Vec3
	// Unit normal pointing from body A toward body B
	Normal mgl32.Vec3
	// Depth of the overlap along Normal, always >= 0
	Penetration float32
}

// Settings tunes the contact resolver.
type Settings struct {
	// Tolerated penetration left uncorrected
	Slop float32 `yaml:"slop" toml:"slop"`
	// Fraction of the remaining penetration removed per pass
	Percent float32 `yaml:"percent" toml:"percent"`

	// Below this approach speed the contact is treated as resting:
	// no restitution, angular velocity damped instead of kicked, no friction torque.
	StabilizationSpeed          float32 `yaml:"stabilization_speed" toml:"stabilization_speed"`
	StabilizationAngularDamping float32 `yaml:"stabilization_angular_damping" toml:"stabilization_angular_damping"`
	// Share of the friction torque that is actually applied
	FrictionTorqueScale float32 `yaml:"friction_torque_scale" toml:"friction_torque_scale"`
}

func DefaultSettings() Settings {
	return Settings{
		Slop:                        0.01,
		Percent:                     0.2,
		StabilizationSpeed:          1.0,
		StabilizationAngularDamping: 0.95,
		FrictionTorqueScale:         0.1,
	}
}

// CombineRestitution keeps the least bouncy of both materials
func CombineRestitution(matA, matB actor.Material) float32 {
	return min(matA.Restitution, matB.Restitution)
}

// CombineFriction is the geometric mean of both frictions
func CombineFriction(matA, matB actor.Material) float32 {
	return math32.Sqrt(matA.Friction * matB.Friction)
}

// inverseMass returns 0 for bodies that contacts may not move
func inverseMass(rb *actor.RigidBody) float32 {
	if rb.Immovable() {
		return 0
	}
	return rb.InverseMass
}

func inverseInertia(rb *actor.RigidBody) mgl32.Mat3 {
	if rb.Immovable() {
		return mgl32.Mat3{}
	}
	return rb.InverseInertiaWorld
}
