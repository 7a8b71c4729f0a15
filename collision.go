package cuboid

import (
	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/constraint"
	"github.com/akmonengine/cuboid/sat"
	"github.com/chewxy/math32"
)

// GroundNormal is the minimum vertical component of a contact normal that
// supports a player from below.
const GroundNormal = 0.7

// MayCollide is the broad-phase test: it compares the centers of both bodies
// against the sum of their bounding radii, on every axis. A unit cube reaches
// √3/2 from its center, a plank reaches half its diagonal whatever its rotation.
// It may report pairs that do not touch, never the other way around.
func MayCollide(a, b *actor.RigidBody) bool {
	reach := a.Shape.BoundingRadius() + b.Shape.BoundingRadius()
	d := a.Transform.Position.Sub(b.Transform.Position)

	for i := 0; i < 3; i++ {
		if math32.Abs(d[i]) >= reach {
			return false
		}
	}
	return true
}

// resolveContacts runs one resolution pass over every pair, in registry order
func (w *World) resolveContacts() {
	if w.SpatialGrid != nil {
		// Cells come from the positions at the start of the pass, collide
		// judges sleep state and distance when it reaches the pair
		for _, pair := range w.SpatialGrid.Build(w.Bodies).Candidates(w.Bodies) {
			w.collide(pair.BodyA, pair.BodyB)
		}
		return
	}

	for i := 0; i < len(w.Bodies); i++ {
		for j := i + 1; j < len(w.Bodies); j++ {
			w.collide(w.Bodies[i], w.Bodies[j])
		}
	}
}

// collide detects and resolves a single pair
func (w *World) collide(a, b *actor.RigidBody) {
	// Nothing can move: two anchored bodies, two sleepers, or a sleeper on the ground
	if a.Immovable() && b.Immovable() {
		return
	}
	if !MayCollide(a, b) {
		return
	}

	contact, ok := sat.Detect(a, b)
	if !ok {
		return
	}

	w.Events.recordContact(a, b)
	if a.IsTrigger || b.IsTrigger {
		return
	}

	wakeOnContact(a, b)
	wakeOnContact(b, a)

	if a.IsPlayer() && contact.Normal.Y() < -GroundNormal {
		a.OnGround = true
	}
	if b.IsPlayer() && contact.Normal.Y() > GroundNormal {
		b.OnGround = true
	}

	constraint.Resolve(a, b, contact, w.Settings.Contact)
	constraint.CorrectPosition(a, b, contact, w.Settings.Contact)
}

// wakeOnContact wakes a sleeping body touched by one that can move.
// The woken body takes over the settle time of the other, so bodies resting
// on each other reach the sleep threshold in the same sub-step.
func wakeOnContact(sleeper, other *actor.RigidBody) {
	if !sleeper.IsSleeping || other.Immovable() {
		return
	}
	sleeper.WakeUp()
	sleeper.SleepTimer = other.SleepTimer
}
