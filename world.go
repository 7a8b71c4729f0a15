package cuboid

import (
	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGravity in m/s²
var DefaultGravity = mgl32.Vec3{0, -9.81, 0}

type World struct {
	// List of all rigid bodies in the world, in registry order
	Bodies []*actor.RigidBody
	// Gravity acceleration (m/s², or N/kg)
	Gravity  mgl32.Vec3
	Settings Settings
	// SpatialGrid is an optional candidate filter for large scenes; nil tests every pair
	SpatialGrid *SpatialGrid

	Events Events
}

// NewWorld creates an empty world with default gravity and settings
func NewWorld() *World {
	return &World{
		Bodies:   make([]*actor.RigidBody, 0),
		Gravity:  DefaultGravity,
		Settings: DefaultSettings(),
		Events:   NewEvents(),
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body from the world
func (w *World) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Step advances the world by dt seconds, then flushes the events gathered during
// the step. The STEP event is always the last one delivered.
func (w *World) Step(dt float32) {
	w.Events.init()

	w.Simulate(dt)

	w.Events.processSleepEvents(w.Bodies)
	w.Events.flush(dt)
}

// Simulate runs the physics of one step without delivering events.
// dt is split into Settings.Substeps sub-steps; each sub-step integrates forces,
// resolves contacts Settings.Iterations times, then integrates positions.
func (w *World) Simulate(dt float32) {
	if dt <= 0 {
		return
	}

	substeps := max(1, w.Settings.Substeps)
	iterations := max(1, w.Settings.Iterations)
	h := dt / float32(substeps)

	for i := 0; i < substeps; i++ {
		// Phase 1: gravity, damping, sleep bookkeeping
		w.integrateForces(h)

		// Phase 2: broad phase, narrow phase and resolution, pair by pair
		for i := 0; i < iterations; i++ {
			w.resolveContacts()
		}

		// Phase 3: commit positions and orientations
		w.integratePositions(h)
	}
}

func (w *World) integrateForces(h float32) {
	for _, body := range w.Bodies {
		body.IntegrateForces(w.Gravity, h, w.Settings.Integration)
	}
}

func (w *World) integratePositions(h float32) {
	for _, body := range w.Bodies {
		body.IntegratePositions(h)
	}
}

// ClampStep bounds a frame time before it is handed to Step
func ClampStep(dt, maxStep float32) float32 {
	if maxStep > 0 && dt > maxStep {
		return maxStep
	}
	return max(dt, 0)
}
