package constraint

import (
	"testing"

	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl32"
)

func momentum(bodies ...*actor.RigidBody) mgl32.Vec3 {
	var total mgl32.Vec3
	for _, rb := range bodies {
		total = total.Add(rb.Velocity.Mul(rb.Mass))
	}
	return total
}

// =============================================================================
// Resolve Tests
// =============================================================================

func TestResolve_SymmetricElasticCollision(t *testing.T) {
	a := newBox(mgl32.Vec3{-0.45, 0, 0}, 1, actor.BodyTypeDynamic)
	b := newBox(mgl32.Vec3{0.45, 0, 0}, 1, actor.BodyTypeDynamic)
	for _, rb := range []*actor.RigidBody{a, b} {
		rb.Material.Restitution = 1
		rb.Material.Friction = 0
	}
	a.Velocity = mgl32.Vec3{5, 0, 0}
	b.Velocity = mgl32.Vec3{-5, 0, 0}

	contact := Contact{Point: mgl32.Vec3{}, Normal: mgl32.Vec3{1, 0, 0}, Penetration: 0.1}
	Resolve(a, b, contact, DefaultSettings())

	if !vec3AlmostEqual(a.Velocity, mgl32.Vec3{-5, 0, 0}, 1e-5) {
		t.Errorf("a.Velocity = %v, want {-5, 0, 0}", a.Velocity)
	}
	if !vec3AlmostEqual(b.Velocity, mgl32.Vec3{5, 0, 0}, 1e-5) {
		t.Errorf("b.Velocity = %v, want {5, 0, 0}", b.Velocity)
	}
	if a.AngularVelocity != (mgl32.Vec3{}) || b.AngularVelocity != (mgl32.Vec3{}) {
		t.Errorf("head-on collision must not spin: %v, %v", a.AngularVelocity, b.AngularVelocity)
	}
}

func TestResolve_MomentumConservation(t *testing.T) {
	tests := []struct {
		name      string
		velocityA mgl32.Vec3
		velocityB mgl32.Vec3
		point     mgl32.Vec3
		normal    mgl32.Vec3
	}{
		{
			name:      "head-on",
			velocityA: mgl32.Vec3{3, 0, 0},
			velocityB: mgl32.Vec3{-1, 0, 0},
			point:     mgl32.Vec3{0.5, 0, 0},
			normal:    mgl32.Vec3{1, 0, 0},
		},
		{
			name:      "off-center with sliding",
			velocityA: mgl32.Vec3{4, -2, 1},
			velocityB: mgl32.Vec3{-1, 3, 0},
			point:     mgl32.Vec3{0.5, 0.3, -0.2},
			normal:    mgl32.Vec3{1, 0, 0},
		},
		{
			name:      "slow contact (stabilizing)",
			velocityA: mgl32.Vec3{0.3, 0.2, 0},
			velocityB: mgl32.Vec3{0, 0, 0.1},
			point:     mgl32.Vec3{0.5, -0.4, 0.1},
			normal:    mgl32.Vec3{1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newBox(mgl32.Vec3{0, 0, 0}, 1, actor.BodyTypeDynamic)
			b := newBox(mgl32.Vec3{1.4, 0, 0}, 2, actor.BodyTypeDynamic)
			a.Velocity = tt.velocityA
			b.Velocity = tt.velocityB

			before := momentum(a, b)
			Resolve(a, b, Contact{Point: tt.point, Normal: tt.normal, Penetration: 0.1}, DefaultSettings())
			after := momentum(a, b)

			if !vec3AlmostEqual(before, after, 1e-4) {
				t.Errorf("momentum changed: before %v, after %v", before, after)
			}
			if a.Velocity == tt.velocityA {
				t.Error("approaching contact was not resolved")
			}
		})
	}
}

func TestResolve_SeparatingContactIsNoop(t *testing.T) {
	a := newBox(mgl32.Vec3{-0.45, 0, 0}, 1, actor.BodyTypeDynamic)
	b := newBox(mgl32.Vec3{0.45, 0, 0}, 1, actor.BodyTypeDynamic)
	a.Velocity = mgl32.Vec3{-2, 0, 0}
	b.Velocity = mgl32.Vec3{2, 1, 0}

	Resolve(a, b, Contact{Point: mgl32.Vec3{}, Normal: mgl32.Vec3{1, 0, 0}, Penetration: 0.1}, DefaultSettings())

	if a.Velocity != (mgl32.Vec3{-2, 0, 0}) || b.Velocity != (mgl32.Vec3{2, 1, 0}) {
		t.Errorf("separating bodies were modified: %v, %v", a.Velocity, b.Velocity)
	}
}

func TestResolve_DegenerateMassIsNoop(t *testing.T) {
	a := newBox(mgl32.Vec3{0, 0, 0}, 1, actor.BodyTypeStatic)
	b := newBox(mgl32.Vec3{0, 0.9, 0}, 1, actor.BodyTypeStatic)
	contact := Contact{Point: mgl32.Vec3{0, 0.45, 0}, Normal: mgl32.Vec3{0, 1, 0}, Penetration: 0.1}

	Resolve(a, b, contact, DefaultSettings())
	CorrectPosition(a, b, contact, DefaultSettings())

	if a.Transform.Position != (mgl32.Vec3{}) || b.Transform.Position != (mgl32.Vec3{0, 0.9, 0}) {
		t.Error("anchored bodies moved")
	}
	if a.Velocity != (mgl32.Vec3{}) || b.Velocity != (mgl32.Vec3{}) {
		t.Error("anchored bodies gained velocity")
	}
}

func TestResolve_BounceOffGround(t *testing.T) {
	ground := newBox(mgl32.Vec3{0, -0.5, 0}, 1, actor.BodyTypeStatic)
	box := newBox(mgl32.Vec3{0, 0.45, 0}, 1, actor.BodyTypeDynamic)
	box.Velocity = mgl32.Vec3{0, -5, 0}

	contact := Contact{Point: mgl32.Vec3{0, -0.05, 0}, Normal: mgl32.Vec3{0, 1, 0}, Penetration: 0.05}
	Resolve(ground, box, contact, DefaultSettings())

	// e = min(0.2, 0.2)
	if !vec3AlmostEqual(box.Velocity, mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("box.Velocity = %v, want {0, 1, 0}", box.Velocity)
	}
	if ground.Velocity != (mgl32.Vec3{}) {
		t.Errorf("ground.Velocity = %v, want zero", ground.Velocity)
	}
}

func TestResolve_Stabilization(t *testing.T) {
	ground := newBox(mgl32.Vec3{0, -0.5, 0}, 1, actor.BodyTypeStatic)
	box := newBox(mgl32.Vec3{0, 0.5, 0}, 1, actor.BodyTypeDynamic)
	box.Velocity = mgl32.Vec3{0, -0.5, 0}
	box.AngularVelocity = mgl32.Vec3{0, 0, 1}

	contact := Contact{Point: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}, Penetration: 0.01}
	Resolve(ground, box, contact, DefaultSettings())

	// No bounce: the approach speed is cancelled
	if !almostEqual(box.Velocity.Y(), 0, 1e-6) {
		t.Errorf("box.Velocity.Y = %v, want 0", box.Velocity.Y())
	}
	// Spin is damped, and the friction torque is skipped
	if !vec3AlmostEqual(box.AngularVelocity, mgl32.Vec3{0, 0, 0.95}, 1e-6) {
		t.Errorf("box.AngularVelocity = %v, want {0, 0, 0.95}", box.AngularVelocity)
	}
	// The contact point slides at +0.5 on X; friction is clamped to μ|j| = 0.5 * 0.5
	if !almostEqual(box.Velocity.X(), -0.25, 1e-6) {
		t.Errorf("box.Velocity.X = %v, want -0.25", box.Velocity.X())
	}
}

func TestResolve_SleepingBodyIsImmovable(t *testing.T) {
	sleeping := newBox(mgl32.Vec3{0.45, 0, 0}, 1, actor.BodyTypeDynamic)
	sleeping.Sleep()
	moving := newBox(mgl32.Vec3{-0.45, 0, 0}, 1, actor.BodyTypeDynamic)
	moving.Material.Restitution = 1
	sleeping.Material.Restitution = 1
	moving.Velocity = mgl32.Vec3{4, 0, 0}

	contact := Contact{Point: mgl32.Vec3{}, Normal: mgl32.Vec3{1, 0, 0}, Penetration: 0.1}
	Resolve(moving, sleeping, contact, DefaultSettings())
	CorrectPosition(moving, sleeping, contact, DefaultSettings())

	if sleeping.Velocity != (mgl32.Vec3{}) || sleeping.Transform.Position != (mgl32.Vec3{0.45, 0, 0}) {
		t.Error("sleeping body was moved by the contact")
	}
	if !vec3AlmostEqual(moving.Velocity, mgl32.Vec3{-4, 0, 0}, 1e-5) {
		t.Errorf("moving.Velocity = %v, want a full bounce {-4, 0, 0}", moving.Velocity)
	}
}

// =============================================================================
// CorrectPosition Tests
// =============================================================================

func TestCorrectPosition(t *testing.T) {
	tests := []struct {
		name        string
		typeA       actor.BodyType
		penetration float32
		wantA       mgl32.Vec3
		wantB       mgl32.Vec3
	}{
		{
			name:        "shared between equal masses",
			typeA:       actor.BodyTypeDynamic,
			penetration: 0.11,
			wantA:       mgl32.Vec3{0, -0.01, 0},
			wantB:       mgl32.Vec3{0, 1.01, 0},
		},
		{
			name:        "anchored A pushes B only",
			typeA:       actor.BodyTypeStatic,
			penetration: 0.11,
			wantA:       mgl32.Vec3{0, 0, 0},
			wantB:       mgl32.Vec3{0, 1.02, 0},
		},
		{
			name:        "within slop",
			typeA:       actor.BodyTypeDynamic,
			penetration: 0.005,
			wantA:       mgl32.Vec3{0, 0, 0},
			wantB:       mgl32.Vec3{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newBox(mgl32.Vec3{0, 0, 0}, 1, tt.typeA)
			b := newBox(mgl32.Vec3{0, 1, 0}, 1, actor.BodyTypeDynamic)

			contact := Contact{Point: mgl32.Vec3{0, 0.5, 0}, Normal: mgl32.Vec3{0, 1, 0}, Penetration: tt.penetration}
			CorrectPosition(a, b, contact, DefaultSettings())

			if !vec3AlmostEqual(a.Transform.Position, tt.wantA, 1e-6) {
				t.Errorf("a.Position = %v, want %v", a.Transform.Position, tt.wantA)
			}
			if !vec3AlmostEqual(b.Transform.Position, tt.wantB, 1e-6) {
				t.Errorf("b.Position = %v, want %v", b.Transform.Position, tt.wantB)
			}
		})
	}
}
