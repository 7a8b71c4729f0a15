package scene

import (
	"github.com/akmonengine/cuboid"
	"github.com/akmonengine/cuboid/actor"
	"github.com/go-gl/mathgl/mgl32"
)

// DemoGravity is stronger than earth gravity: the demo works in decimeters
var DemoGravity = mgl32.Vec3{0, -98, 0}

// Demo builds the stock scene: a player, a 200x200 ground whose top face is at
// y=0, and a few dynamic crates.
func Demo() *cuboid.World {
	w := cuboid.NewWorld()
	w.Gravity = DemoGravity

	w.AddBody(Box().Id("player").Size(4, 6, 2).Pos(0, 10, 0).Texture("assets/textures/noob.jpg").Player().Build())
	w.AddBody(Box().Id("ground").Size(200, 5, 200).Pos(0, -2.5, 0).Static().Texture("assets/textures/rblx_grass.jpg").Build())
	w.AddBody(Box().Id("crate").Size(10, 10, 10).Pos(5, 10, 20).Texture("assets/textures/floppa_face_2048.jpg").Build())
	w.AddBody(Box().Id("stacked crate").Size(10, 10, 10).Pos(5, 15, 23).Texture("assets/textures/salad-cat.jpg").Build())
	w.AddBody(Box().Id("small crate").Size(5, 5, 5).Pos(-10, 10, 0).Color(0, 150, 100).Build())
	w.AddBody(Box().Id("falling crate").Size(6, 6, 6).Pos(10, 50, 10).Color(255, 0, 0).Build())

	return w
}

// Find returns the first body tagged with id
func Find(w *cuboid.World, id any) *actor.RigidBody {
	for _, body := range w.Bodies {
		if body.Id == id {
			return body
		}
	}
	return nil
}

// Player returns the first player body of the world
func Player(w *cuboid.World) *actor.RigidBody {
	for _, body := range w.Bodies {
		if body.IsPlayer() {
			return body
		}
	}
	return nil
}
