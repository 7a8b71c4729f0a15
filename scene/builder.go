package scene

import (
	"image/color"

	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl32"
)

// White is the color of untextured boxes unless told otherwise
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Builder assembles a box body step by step:
//
//	ground := scene.Box().Size(200, 5, 200).Pos(0, -2.5, 0).Static().Build()
type Builder struct {
	id          any
	transform   actor.Transform
	size        mgl32.Vec3
	bodyType    actor.BodyType
	density     float32
	restitution float32
	friction    float32
	appearance  actor.Appearance
	trigger     bool
}

// Box starts a dynamic unit cube at the origin, with the default material
func Box() *Builder {
	material := actor.DefaultMaterial()
	return &Builder{
		transform:   actor.NewTransform(),
		size:        mgl32.Vec3{1, 1, 1},
		bodyType:    actor.BodyTypeDynamic,
		density:     material.Density,
		restitution: material.Restitution,
		friction:    material.Friction,
		appearance:  actor.Appearance{Color: White},
	}
}

func (b *Builder) Id(id any) *Builder {
	b.id = id
	return b
}

// Size sets the full extents of the box
func (b *Builder) Size(x, y, z float32) *Builder {
	b.size = mgl32.Vec3{x, y, z}
	return b
}

func (b *Builder) Pos(x, y, z float32) *Builder {
	b.transform.Position = mgl32.Vec3{x, y, z}
	return b
}

// Rotation sets the Euler angles, in degrees
func (b *Builder) Rotation(x, y, z float32) *Builder {
	b.transform.Rotation = mgl32.Vec3{x, y, z}
	return b
}

func (b *Builder) Color(r, g, bl uint8) *Builder {
	b.appearance.Color = color.RGBA{R: r, G: g, B: bl, A: 255}
	return b
}

func (b *Builder) Texture(path string) *Builder {
	b.appearance.Texture = path
	return b
}

func (b *Builder) Static() *Builder {
	b.bodyType = actor.BodyTypeStatic
	return b
}

func (b *Builder) Player() *Builder {
	b.bodyType = actor.BodyTypePlayer
	return b
}

func (b *Builder) Type(bodyType actor.BodyType) *Builder {
	b.bodyType = bodyType
	return b
}

func (b *Builder) Density(density float32) *Builder {
	b.density = density
	return b
}

func (b *Builder) Restitution(restitution float32) *Builder {
	b.restitution = restitution
	return b
}

func (b *Builder) Friction(friction float32) *Builder {
	b.friction = friction
	return b
}

// Trigger makes the box report overlaps without being pushed
func (b *Builder) Trigger() *Builder {
	b.trigger = true
	return b
}

// Build creates the body. The builder can be reused afterwards.
func (b *Builder) Build() *actor.RigidBody {
	rb := actor.NewRigidBody(b.transform, actor.NewBox(b.size), b.bodyType, b.density)
	rb.Id = b.id
	rb.Material.Restitution = b.restitution
	rb.Material.Friction = b.friction
	rb.Appearance = b.appearance
	rb.IsTrigger = b.trigger

	return rb
}
