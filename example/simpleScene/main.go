package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/akmonengine/cuboid"
	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/constraint"
	"github.com/akmonengine/cuboid/sat"
	"github.com/akmonengine/cuboid/scene"
)

// CollisionDebugger instruments the narrow phase of a pair
type CollisionDebugger interface {
	DebugContact(bodyA, bodyB *actor.RigidBody, contact constraint.Contact)
	DebugSeparated(bodyA, bodyB *actor.RigidBody)
}

// LogDebugger reports contacts through slog
type LogDebugger struct {
	logger *slog.Logger
}

func (d *LogDebugger) DebugContact(bodyA, bodyB *actor.RigidBody, contact constraint.Contact) {
	// Lever arms of the contact point
	rA := contact.Point.Sub(bodyA.Transform.Position)
	rB := contact.Point.Sub(bodyB.Transform.Position)

	d.logger.Debug("contact",
		"a", bodyA.Id, "b", bodyB.Id,
		"normal", contact.Normal,
		"penetration", contact.Penetration,
		"point", contact.Point,
		"rA", rA.Len(), "rB", rB.Len(),
	)
}

func (d *LogDebugger) DebugSeparated(bodyA, bodyB *actor.RigidBody) {
	d.logger.Debug("separated", "a", bodyA.Id, "b", bodyB.Id, "distance", bodyA.Transform.Position.Sub(bodyB.Transform.Position).Len())
}

// DebugDetect runs the narrow phase on a pair and reports the outcome
func DebugDetect(bodyA, bodyB *actor.RigidBody, debugger CollisionDebugger) (constraint.Contact, bool) {
	contact, ok := sat.Detect(bodyA, bodyB)
	if ok {
		debugger.DebugContact(bodyA, bodyB, contact)
	} else {
		debugger.DebugSeparated(bodyA, bodyB)
	}

	return contact, ok
}

// SetupScene loads path, or the stock scene when path is empty
func SetupScene(path string) (*cuboid.World, error) {
	if path == "" {
		return scene.Demo(), nil
	}
	return scene.Load(path)
}

func subscribe(world *cuboid.World, logger *slog.Logger) {
	world.Events.Subscribe(cuboid.COLLISION_ENTER, func(e cuboid.Event) {
		enter := e.(cuboid.CollisionEnterEvent)
		logger.Info("collision enter", "a", enter.BodyA.Id, "b", enter.BodyB.Id)
	})
	world.Events.Subscribe(cuboid.COLLISION_EXIT, func(e cuboid.Event) {
		exit := e.(cuboid.CollisionExitEvent)
		logger.Info("collision exit", "a", exit.BodyA.Id, "b", exit.BodyB.Id)
	})
	world.Events.Subscribe(cuboid.ON_SLEEP, func(e cuboid.Event) {
		logger.Info("sleep", "body", e.(cuboid.SleepEvent).Body.Id)
	})
	world.Events.Subscribe(cuboid.ON_WAKE, func(e cuboid.Event) {
		logger.Info("wake", "body", e.(cuboid.WakeEvent).Body.Id)
	})
}

func main() {
	scenePath := flag.String("scene", "", "YAML or TOML scene file, the stock scene when empty")
	settingsPath := flag.String("settings", "", "YAML or TOML settings file")
	frames := flag.Int("frames", 300, "number of frames to simulate")
	frameTime := flag.Float64("dt", 1.0/60.0, "frame time in seconds, clamped to max_step")
	verbose := flag.Bool("v", false, "log every contact of the player")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	world, err := SetupScene(*scenePath)
	if err != nil {
		logger.Error("loading scene", "err", err)
		os.Exit(1)
	}
	if *settingsPath != "" {
		settings, err := cuboid.LoadSettings(*settingsPath)
		if err != nil {
			logger.Error("loading settings", "err", err)
			os.Exit(1)
		}
		world.Settings = settings
	}

	subscribe(world, logger)

	var elapsed float32
	world.Events.Subscribe(cuboid.ON_STEP, func(e cuboid.Event) {
		elapsed += e.(cuboid.StepEvent).Dt
	})

	debugger := &LogDebugger{logger: logger}
	player := scene.Player(world)
	ground := scene.Find(world, "ground")

	logger.Info("scene ready", "bodies", len(world.Bodies), "gravity", world.Gravity)

	dt := cuboid.ClampStep(float32(*frameTime), world.Settings.MaxStep)
	for frame := 0; frame < *frames; frame++ {
		if player != nil && ground != nil && *verbose {
			DebugDetect(player, ground, debugger)
		}

		world.Step(dt)

		if frame%60 == 0 {
			for _, body := range world.Bodies {
				if body.IsAnchored() {
					continue
				}
				logger.Info("body",
					"frame", frame,
					"id", body.Id,
					"position", body.Transform.Position,
					"rotation", body.Transform.Rotation,
					"velocity", body.Velocity,
					"sleeping", body.IsSleeping,
				)
			}
		}
	}

	logger.Info("done", "simulated", elapsed)
}
