package scene

import (
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/akmonengine/cuboid"
	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// --- File types ---

// File is the on-disk description of a world
type File struct {
	Gravity  [3]float32      `yaml:"gravity" toml:"gravity"`
	Settings cuboid.Settings `yaml:"settings" toml:"settings"`
	// Grid attaches a SpatialGrid when set
	Grid  *GridDef `yaml:"grid" toml:"grid"`
	Boxes []BoxDef `yaml:"boxes" toml:"boxes"`
}

type GridDef struct {
	CellSize float32 `yaml:"cell_size" toml:"cell_size"`
	Cells    int     `yaml:"cells" toml:"cells"`
}

// BoxDef describes one body. Zero values fall back to the Box() defaults.
type BoxDef struct {
	Name     string     `yaml:"name" toml:"name"`
	Type     string     `yaml:"type" toml:"type"`
	Position [3]float32 `yaml:"position" toml:"position"`
	Rotation [3]float32 `yaml:"rotation" toml:"rotation"`
	Size     [3]float32 `yaml:"size" toml:"size"`
	// Color is a name ("red") or a hex code ("#00966e")
	Color       string   `yaml:"color" toml:"color"`
	Texture     string   `yaml:"texture" toml:"texture"`
	Density     *float32 `yaml:"density" toml:"density"`
	Restitution *float32 `yaml:"restitution" toml:"restitution"`
	Friction    *float32 `yaml:"friction" toml:"friction"`
	Trigger     bool     `yaml:"trigger" toml:"trigger"`
}

// --- Color mapping ---

var colorByName = map[string]color.RGBA{
	"white":  White,
	"black":  {A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
	"orange": {R: 255, G: 165, A: 255},
	"purple": {R: 128, B: 128, A: 255},
	"brown":  {R: 139, G: 69, B: 19, A: 255},
}

// ParseColor reads a color name or a #rrggbb code
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return White, nil
	}
	if c, ok := colorByName[strings.ToLower(s)]; ok {
		return c, nil
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Errorf("unknown color %q", s)
	}
	r, g, b := c.RGB255()

	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// ParseBodyType maps "dynamic" (or empty), "static" and "player" to a BodyType
func ParseBodyType(s string) (actor.BodyType, error) {
	switch strings.ToLower(s) {
	case "", "dynamic":
		return actor.BodyTypeDynamic, nil
	case "static", "anchored":
		return actor.BodyTypeStatic, nil
	case "player":
		return actor.BodyTypePlayer, nil
	}
	return actor.BodyTypeDynamic, errors.Errorf("unknown body type %q", s)
}

// --- Loading ---

// Decode parses a scene in the given format ("yaml", "yml" or "toml").
// Gravity and settings missing from data keep their default value.
func Decode(data []byte, format string) (File, error) {
	file := File{
		Gravity:  [3]float32(cuboid.DefaultGravity),
		Settings: cuboid.DefaultSettings(),
	}

	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &file)
	case "toml":
		err = toml.Unmarshal(data, &file)
	default:
		return file, errors.Errorf("unsupported scene format %q", format)
	}
	if err != nil {
		return file, errors.Wrapf(err, "decoding %s scene", format)
	}

	return file, nil
}

// Load reads a YAML or TOML scene file and builds its world
func Load(path string) (*cuboid.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}

	file, err := Decode(data, cuboid.FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "parse scene %s", path)
	}

	w, err := file.World()
	if err != nil {
		return nil, errors.Wrapf(err, "build scene %s", path)
	}

	slog.Debug("scene loaded", "path", path, "bodies", len(w.Bodies), "grid", w.SpatialGrid != nil)

	return w, nil
}

// World builds the bodies of the file, in file order
func (f File) World() (*cuboid.World, error) {
	if err := f.Settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "settings")
	}

	w := cuboid.NewWorld()
	w.Gravity = mgl32.Vec3(f.Gravity)
	w.Settings = f.Settings

	if f.Grid != nil {
		if f.Grid.CellSize <= 0 || f.Grid.Cells <= 0 {
			return nil, errors.Errorf("grid needs a positive cell_size and cells, got %v and %d", f.Grid.CellSize, f.Grid.Cells)
		}
		w.SpatialGrid = cuboid.NewSpatialGrid(f.Grid.CellSize, f.Grid.Cells)
	}

	for i, def := range f.Boxes {
		body, err := def.Body()
		if err != nil {
			return nil, errors.Wrapf(err, "box %d (%s)", i, def.Name)
		}
		w.AddBody(body)
	}

	return w, nil
}

// Body builds a single box. The body Id is the box name.
func (d BoxDef) Body() (*actor.RigidBody, error) {
	bodyType, err := ParseBodyType(d.Type)
	if err != nil {
		return nil, err
	}
	c, err := ParseColor(d.Color)
	if err != nil {
		return nil, err
	}

	b := Box().
		Id(d.Name).
		Type(bodyType).
		Pos(d.Position[0], d.Position[1], d.Position[2]).
		Rotation(d.Rotation[0], d.Rotation[1], d.Rotation[2]).
		Color(c.R, c.G, c.B).
		Texture(d.Texture)

	// Default size to 1 if zero
	if d.Size != [3]float32{} {
		for axis, extent := range d.Size {
			if extent <= 0 {
				return nil, errors.Errorf("size must be positive on every axis, got %v on axis %d", extent, axis)
			}
		}
		b.Size(d.Size[0], d.Size[1], d.Size[2])
	}

	if d.Density != nil {
		if *d.Density < 0 {
			return nil, errors.Errorf("density must not be negative, got %v", *d.Density)
		}
		b.Density(*d.Density)
	}
	if d.Restitution != nil {
		if *d.Restitution < 0 || *d.Restitution > 1 {
			return nil, errors.Errorf("restitution must be within [0, 1], got %v", *d.Restitution)
		}
		b.Restitution(*d.Restitution)
	}
	if d.Friction != nil {
		if *d.Friction < 0 {
			return nil, errors.Errorf("friction must not be negative, got %v", *d.Friction)
		}
		b.Friction(*d.Friction)
	}
	if d.Trigger {
		b.Trigger()
	}

	return b.Build(), nil
}
