package actor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// IntegrationSettings tunes the integrator and the sleep bookkeeping.
type IntegrationSettings struct {
	// Velocity multipliers applied every sub-step to bleed numerical energy
	LinearDamping  float32 `yaml:"linear_damping" toml:"linear_damping"`
	AngularDamping float32 `yaml:"angular_damping" toml:"angular_damping"`
	// Ceiling on |ω| in rad/s
	MaxAngularVelocity float32 `yaml:"max_angular_velocity" toml:"max_angular_velocity"`
	// Speeds below RestSpeed are snapped to exactly zero
	RestSpeed float32 `yaml:"rest_speed" toml:"rest_speed"`

	SleepLinearSpeed  float32 `yaml:"sleep_linear_speed" toml:"sleep_linear_speed"`
	SleepAngularSpeed float32 `yaml:"sleep_angular_speed" toml:"sleep_angular_speed"`
	// Seconds a body must stay under both sleep speeds before it sleeps
	SleepTime float32 `yaml:"sleep_time" toml:"sleep_time"`
}

func DefaultIntegrationSettings() IntegrationSettings {
	return IntegrationSettings{
		LinearDamping:      0.999,
		AngularDamping:     0.90,
		MaxAngularVelocity: 10.0,
		RestSpeed:          0.01,
		SleepLinearSpeed:   0.4,
		SleepAngularSpeed:  0.4,
		SleepTime:          0.5,
	}
}

// minAngularSpeedSqr below which the orientation is not integrated at all
const minAngularSpeedSqr = 1e-8

// IntegrateForces applies gravity and damping, then runs the sleep bookkeeping.
// Anchored and sleeping bodies are skipped.
func (rb *RigidBody) IntegrateForces(gravity mgl32.Vec3, dt float32, settings IntegrationSettings) {
	if rb.IsAnchored() || rb.IsSleeping {
		return
	}

	rb.Velocity = rb.Velocity.Add(gravity.Mul(dt))

	// ========== DAMPING ==========
	rb.Velocity = rb.Velocity.Mul(settings.LinearDamping)
	rb.AngularVelocity = rb.AngularVelocity.Mul(settings.AngularDamping)

	// Kill jitter before it compounds
	restSqr := settings.RestSpeed * settings.RestSpeed
	if rb.Velocity.LenSqr() < restSqr {
		rb.Velocity = mgl32.Vec3{}
	}
	if rb.AngularVelocity.LenSqr() < restSqr {
		rb.AngularVelocity = mgl32.Vec3{}
	}

	maxAng := settings.MaxAngularVelocity
	if rb.AngularVelocity.LenSqr() > maxAng*maxAng {
		rb.AngularVelocity = rb.AngularVelocity.Normalize().Mul(maxAng)
	}

	if !rb.IsPlayer() {
		rb.trySleep(dt, settings)
	}

	rb.UpdateInertiaWorld()

	if rb.IsPlayer() {
		rb.AngularVelocity = mgl32.Vec3{}
		rb.Transform.Rotation[0] = 0
		rb.Transform.Rotation[2] = 0
		rb.OnGround = false
	}
}

// trySleep puts the body to sleep once it stayed slow for settings.SleepTime
func (rb *RigidBody) trySleep(dt float32, settings IntegrationSettings) {
	linear := settings.SleepLinearSpeed
	angular := settings.SleepAngularSpeed

	if rb.Velocity.LenSqr() < linear*linear && rb.AngularVelocity.LenSqr() < angular*angular {
		rb.SleepTimer += dt
		if rb.SleepTimer > settings.SleepTime {
			rb.Sleep()
		}
	} else {
		rb.SleepTimer = 0.0
	}
}

// IntegratePositions advances position and orientation by one sub-step.
// The rotation matrix is advanced with R += (Ω* · R) · dt, re-orthonormalized,
// and converted back to Euler angles. Players keep their yaw untouched.
func (rb *RigidBody) IntegratePositions(dt float32) {
	if rb.IsAnchored() || rb.IsSleeping {
		return
	}

	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	if rb.IsPlayer() || rb.AngularVelocity.LenSqr() <= minAngularSpeedSqr {
		return
	}

	R := rb.Transform.Matrix()
	dR := Skew(rb.AngularVelocity).Mul3(R)
	R = Orthonormalize(R.Add(dR.Mul(dt)))

	rb.Transform.Rotation = MatrixToEuler(R)
	rb.UpdateInertiaWorld()
}
