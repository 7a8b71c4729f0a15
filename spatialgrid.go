package cuboid

import (
	"sort"

	"github.com/akmonengine/cuboid/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - indices of the bodies overlapping a cell
type Cell struct {
	bodyIndices []int
}

// Pair - two bodies that may be colliding, IndexA < IndexB in registry order
type Pair struct {
	IndexA int
	IndexB int
	BodyA  *actor.RigidBody
	BodyB  *actor.RigidBody
}

// SpatialGrid - uniform hashed grid used as a broad phase for large scenes
type SpatialGrid struct {
	cellSize float32
	cells    []Cell
	cellMask int
	seen     []bool
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid creates a grid of numCells hashed cells (rounded up to a power of two).
// cellSize should be close to the size of a typical body.
func NewSpatialGrid(cellSize float32, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo rounds n up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Build clears the grid and inserts every body
func (sg *SpatialGrid) Build(bodies []*actor.RigidBody) *SpatialGrid {
	sg.Clear()
	for i, body := range bodies {
		sg.Insert(i, body)
	}
	sg.SortCells()

	return sg
}

// Insert adds a body to every cell its broad-phase bounds cover
func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.RigidBody) {
	sg.forEachCell(actor.BroadAABB(body), func(cellIdx int) {
		sg.cells[cellIdx].bodyIndices = append(sg.cells[cellIdx].bodyIndices, bodyIndex)
	})
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs returns the deduplicated pairs sharing at least one cell, sorted in
// registry order. Pairs that cannot move or fail MayCollide are left out.
func (sg *SpatialGrid) FindPairs(bodies []*actor.RigidBody) []Pair {
	return sg.collectPairs(bodies, func(bodyA, bodyB *actor.RigidBody) bool {
		return !(bodyA.Immovable() && bodyB.Immovable()) && MayCollide(bodyA, bodyB)
	})
}

// Candidates returns every pair sharing at least one cell, sorted in registry
// order. Sleep state and distance are left to the caller, which checks them
// when it reaches the pair, after earlier pairs may have woken or moved a body.
func (sg *SpatialGrid) Candidates(bodies []*actor.RigidBody) []Pair {
	return sg.collectPairs(bodies, nil)
}

// collectPairs keeps the pairs accepted by keep, or all of them when keep is nil
func (sg *SpatialGrid) collectPairs(bodies []*actor.RigidBody, keep func(bodyA, bodyB *actor.RigidBody) bool) []Pair {
	pairs := make([]Pair, 0, len(bodies))
	if cap(sg.seen) < len(bodies) {
		sg.seen = make([]bool, len(bodies))
	}
	seen := sg.seen[:len(bodies)]

	for bodyIdx, bodyA := range bodies {
		clear(seen)
		first := len(pairs)

		sg.forEachCell(actor.BroadAABB(bodyA), func(cellIdx int) {
			for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
				// Avoid duplicates, (A,B) and (B,A)
				if otherIdx <= bodyIdx || seen[otherIdx] {
					continue
				}
				seen[otherIdx] = true

				bodyB := bodies[otherIdx]
				if keep == nil || keep(bodyA, bodyB) {
					pairs = append(pairs, Pair{IndexA: bodyIdx, IndexB: otherIdx, BodyA: bodyA, BodyB: bodyB})
				}
			}
		})

		// Cells are visited in space order, pairs must follow registry order
		sort.Slice(pairs[first:], func(i, j int) bool {
			return pairs[first+i].IndexB < pairs[first+j].IndexB
		})
	}

	return pairs
}

// forEachCell calls fn with the hashed index of every cell covered by aabb
func (sg *SpatialGrid) forEachCell(aabb actor.AABB, fn func(cellIdx int)) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				fn(sg.hashCell(CellKey{x, y, z}))
			}
		}
	}
}

// worldToCell converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl32.Vec3) CellKey {
	return CellKey{
		X: int(math32.Floor(pos.X() / sg.cellSize)),
		Y: int(math32.Floor(pos.Y() / sg.cellSize)),
		Z: int(math32.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell hashes a cell to an index in the array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
