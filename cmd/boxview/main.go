package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/akmonengine/cuboid"
	"github.com/akmonengine/cuboid/actor"
	"github.com/akmonengine/cuboid/scene"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	// Horizontal speed of the player, world units per second
	walkSpeed = 20
	jumpSpeed = 35
	// Without a key-up event, the player stops once no key repeated for this long
	inputHold = 150 * time.Millisecond
)

type Game struct {
	screen tcell.Screen
	world  *cuboid.World
	player *actor.RigidBody
	camera Camera
	logger *slog.Logger

	// Horizontal direction requested by the last key press
	direction mgl32.Vec3
	lastInput time.Time
	jump      bool

	fps float32
}

func NewGame(world *cuboid.World, scale float32, logger *slog.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "creating screen")
	}

	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing screen")
	}

	g := &Game{
		screen: screen,
		world:  world,
		player: scene.Player(world),
		camera: Camera{Scale: scale},
		logger: logger,
	}

	world.Events.Subscribe(cuboid.COLLISION_ENTER, func(e cuboid.Event) {
		enter := e.(cuboid.CollisionEnterEvent)
		logger.Debug("collision enter", "a", enter.BodyA.Id, "b", enter.BodyB.Id)
	})
	world.Events.Subscribe(cuboid.ON_SLEEP, func(e cuboid.Event) {
		logger.Debug("sleep", "body", e.(cuboid.SleepEvent).Body.Id)
	})

	return g, nil
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		direction := mgl32.Vec3{}
		switch ev.Key() {
		case tcell.KeyLeft:
			direction = mgl32.Vec3{-1, 0, 0}
		case tcell.KeyRight:
			direction = mgl32.Vec3{1, 0, 0}
		case tcell.KeyUp:
			direction = mgl32.Vec3{0, 0, -1}
		case tcell.KeyDown:
			direction = mgl32.Vec3{0, 0, 1}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a':
				direction = mgl32.Vec3{-1, 0, 0}
			case 'd':
				direction = mgl32.Vec3{1, 0, 0}
			case 'w':
				direction = mgl32.Vec3{0, 0, -1}
			case 's':
				direction = mgl32.Vec3{0, 0, 1}
			case ' ':
				g.jump = true
			}
		}

		if direction != (mgl32.Vec3{}) {
			g.direction = direction
			g.lastInput = time.Now()
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}

	return true
}

// drivePlayer turns the pending input into a player velocity
func (g *Game) drivePlayer() {
	if g.player == nil {
		return
	}

	if time.Since(g.lastInput) > inputHold {
		g.direction = mgl32.Vec3{}
	}

	velocity := g.direction.Mul(walkSpeed)
	velocity[1] = g.player.Velocity.Y()
	if g.jump && g.player.OnGround {
		velocity[1] = jumpSpeed
	}
	g.jump = false

	if velocity != g.player.Velocity {
		g.player.SetVelocity(velocity)
	}
}

func (g *Game) update(dt float32) {
	g.drivePlayer()
	g.world.Step(cuboid.ClampStep(dt, g.world.Settings.MaxStep))

	if dt > 0 {
		g.fps = g.fps*0.9 + 0.1/dt
	}
}

func (g *Game) draw() {
	views, err := g.world.Snapshot()
	if err != nil {
		g.logger.Error("snapshot", "err", err)
		return
	}

	onGround := false
	if g.player != nil {
		g.camera.Center = g.player.Transform.Position.Vec2()
		onGround = g.player.OnGround
	}

	g.screen.Clear()
	for _, view := range views {
		drawBody(g.screen, g.camera, view)
	}
	drawHUD(g.screen, views, g.fps, onGround)
	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			g.update(float32(now.Sub(last).Seconds()))
			last = now
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.screen.Fini()
}

// setup opens the debug log and builds the world. On error, whatever it opened
// is already closed.
func setup(scenePath, logPath string) (*cuboid.World, *slog.Logger, func() error, error) {
	var out io.Writer = io.Discard
	closeLog := func() error { return nil }
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "creating log file")
		}
		out = f
		closeLog = f.Close
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if scenePath == "" {
		return scene.Demo(), logger, closeLog, nil
	}

	world, err := scene.Load(scenePath)
	if err != nil {
		logger.Error("loading scene", "path", scenePath, "err", err)
		closeLog()
		return nil, nil, nil, err
	}

	return world, logger, closeLog, nil
}

func main() {
	scenePath := flag.String("scene", "", "YAML or TOML scene file, the stock scene when empty")
	scale := flag.Float64("scale", 0.5, "terminal columns per world unit")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	// Startup failures go to stderr, before the renderer owns the terminal
	stderr := slog.New(slog.NewTextHandler(os.Stderr, nil))

	world, logger, closeLog, err := setup(*scenePath, *logPath)
	if err != nil {
		stderr.Error("starting", "err", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	game, err := NewGame(world, float32(*scale), logger)
	if err != nil {
		stderr.Error("starting renderer", "err", err)
		// os.Exit skips deferred calls
		closeLog()
		os.Exit(1)
	}

	defer game.cleanup()

	game.run()
}
