package main

import (
	"fmt"

	"github.com/akmonengine/cuboid"
	"github.com/akmonengine/cuboid/actor"
	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera maps the world XY plane to terminal cells. Cells are about twice as
// tall as wide, so rows cover twice the world height of a column.
type Camera struct {
	Center mgl32.Vec2
	// Columns per world unit
	Scale float32
}

// ToScreen converts a world point to a cell
func (c Camera) ToScreen(p mgl32.Vec3, width, height int) (int, int) {
	x := (p.X()-c.Center.X())*c.Scale + float32(width)/2
	y := float32(height)/2 - (p.Y()-c.Center.Y())*c.Scale/2
	return int(math32.Floor(x)), int(math32.Floor(y))
}

// ToWorld returns the world point at the center of a cell, on the plane z
func (c Camera) ToWorld(col, row, width, height int, z float32) mgl32.Vec3 {
	x := (float32(col)+0.5-float32(width)/2)/c.Scale + c.Center.X()
	y := (float32(height)/2-float32(row)-0.5)*2/c.Scale + c.Center.Y()
	return mgl32.Vec3{x, y, z}
}

// Contains reports whether p lies inside the box of the view
func Contains(view cuboid.BodyView, p mgl32.Vec3) bool {
	local := view.Matrix().Transpose().Mul3x1(p.Sub(view.Transform.Position))
	half := view.Shape.HalfExtents()
	for i := 0; i < 3; i++ {
		if math32.Abs(local[i]) > half[i] {
			return false
		}
	}
	return true
}

func bodyStyle(view cuboid.BodyView) tcell.Style {
	c := view.Appearance.Color
	r, g, b := int32(c.R), int32(c.G), int32(c.B)
	if view.IsSleeping {
		r, g, b = r/2, g/2, b/2
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b))
}

// drawBody fills the cells covered by the cross-section of the box at its own depth
func drawBody(screen tcell.Screen, camera Camera, view cuboid.BodyView) {
	width, height := screen.Size()

	// Screen bounds of the projected corners
	minCol, minRow := width, height
	maxCol, maxRow := -1, -1
	for _, v := range view.Vertices() {
		col, row := camera.ToScreen(v, width, height)
		minCol, maxCol = min(minCol, col), max(maxCol, col)
		minRow, maxRow = min(minRow, row), max(maxRow, row)
	}
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, width-1), min(maxRow, height-2)

	glyph := '█'
	if view.BodyType == actor.BodyTypePlayer {
		glyph = '▓'
	}
	style := bodyStyle(view)
	z := view.Transform.Position.Z()

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if Contains(view, camera.ToWorld(col, row, width, height, z)) {
				screen.SetContent(col, row, glyph, nil, style)
			}
		}
	}
}

func drawText(screen tcell.Screen, col, row int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(col, row, r, nil, style)
		col++
	}
}

// drawHUD writes the status line at the bottom of the screen
func drawHUD(screen tcell.Screen, views []cuboid.BodyView, fps float32, onGround bool) {
	_, height := screen.Size()
	sleeping := 0
	for _, view := range views {
		if view.IsSleeping {
			sleeping++
		}
	}

	status := fmt.Sprintf(" %3.0f fps | %d bodies, %d asleep | grounded: %v | arrows/wasd move, space jump, esc quit",
		fps, len(views), sleeping, onGround)
	drawText(screen, 0, height-1, status, tcell.StyleDefault.Reverse(true))
}
