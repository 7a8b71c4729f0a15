package constraint

import (
	"github.com/akmonengine/cuboid/actor"
	"github.com/chewxy/math32"
)

const (
	// degenerateMass below which both bodies are considered immovable along the normal
	degenerateMass = 1e-6
	// minTangentSqr below which there is no sliding to oppose
	minTangentSqr = 1e-6
)

// Resolve applies the normal and friction impulses of a contact to both bodies.
// Separating contacts are left untouched. Anchored and sleeping bodies are not moved.
func Resolve(a, b *actor.RigidBody, contact Contact, settings Settings) {
	n := contact.Normal
	rA := contact.Point.Sub(a.Transform.Position)
	rB := contact.Point.Sub(b.Transform.Position)

	relativeVel := b.PointVelocity(contact.Point).Sub(a.PointVelocity(contact.Point))
	normalVel := relativeVel.Dot(n)
	if normalVel > 0 {
		return
	}

	invMassA, invMassB := inverseMass(a), inverseMass(b)
	IA_inv, IB_inv := inverseInertia(a), inverseInertia(b)

	// ========== Effective mass along the normal ==========
	angularA := IA_inv.Mul3x1(rA.Cross(n)).Cross(rA).Dot(n)
	angularB := IB_inv.Mul3x1(rB.Cross(n)).Cross(rB).Dot(n)
	invMassSum := invMassA + invMassB + angularA + angularB
	if invMassSum < degenerateMass {
		return
	}

	restitution := CombineRestitution(a.Material, b.Material)
	stabilizing := math32.Abs(normalVel) < settings.StabilizationSpeed
	if stabilizing {
		restitution = 0
	}

	// ========== NORMAL IMPULSE ==========
	j := -(1 + restitution) * normalVel / invMassSum
	impulse := n.Mul(j)

	if invMassA > 0 {
		a.Velocity = a.Velocity.Sub(impulse.Mul(invMassA))
		if stabilizing {
			a.AngularVelocity = a.AngularVelocity.Mul(settings.StabilizationAngularDamping)
		} else {
			a.AngularVelocity = a.AngularVelocity.Sub(IA_inv.Mul3x1(rA.Cross(impulse)))
		}
	}
	if invMassB > 0 {
		b.Velocity = b.Velocity.Add(impulse.Mul(invMassB))
		if stabilizing {
			b.AngularVelocity = b.AngularVelocity.Mul(settings.StabilizationAngularDamping)
		} else {
			b.AngularVelocity = b.AngularVelocity.Add(IB_inv.Mul3x1(rB.Cross(impulse)))
		}
	}

	// ========== FRICTION ==========
	tangent := relativeVel.Sub(n.Mul(normalVel))
	if tangent.LenSqr() <= minTangentSqr {
		return
	}
	tangent = tangent.Normalize()

	jt := -relativeVel.Dot(tangent) / invMassSum

	// Coulomb: |jt| <= μ|j|
	maxFriction := math32.Abs(j) * CombineFriction(a.Material, b.Material)
	if math32.Abs(jt) > maxFriction {
		jt = math32.Copysign(maxFriction, jt)
	}
	frictionImpulse := tangent.Mul(jt)

	if invMassA > 0 {
		a.Velocity = a.Velocity.Sub(frictionImpulse.Mul(invMassA))
		if !stabilizing {
			torque := IA_inv.Mul3x1(rA.Cross(frictionImpulse)).Mul(settings.FrictionTorqueScale)
			a.AngularVelocity = a.AngularVelocity.Sub(torque)
		}
	}
	if invMassB > 0 {
		b.Velocity = b.Velocity.Add(frictionImpulse.Mul(invMassB))
		if !stabilizing {
			torque := IB_inv.Mul3x1(rB.Cross(frictionImpulse)).Mul(settings.FrictionTorqueScale)
			b.AngularVelocity = b.AngularVelocity.Add(torque)
		}
	}
}

// CorrectPosition pushes both bodies apart along the normal, removing a fraction
// of the penetration beyond the slop, shared by inverse mass.
func CorrectPosition(a, b *actor.RigidBody, contact Contact, settings Settings) {
	invMassA, invMassB := inverseMass(a), inverseMass(b)
	invMassSum := invMassA + invMassB
	if invMassSum < degenerateMass {
		return
	}

	depth := max(contact.Penetration-settings.Slop, 0)
	correction := contact.Normal.Mul(depth * settings.Percent / invMassSum)

	if invMassA > 0 {
		a.Transform.Position = a.Transform.Position.Sub(correction.Mul(invMassA))
	}
	if invMassB > 0 {
		b.Transform.Position = b.Transform.Position.Add(correction.Mul(invMassB))
	}
}
