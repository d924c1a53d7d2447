package langton

import "github.com/rodgzilla/langton-ant-machine-learning/internal/core"

// Ant is the automaton's agent: a logical position and a facing.
type Ant struct {
	X, Y   int
	Facing core.Direction
}

// applyRule evaluates the two-state rule for the cell under the ant:
// on white turn right and flip the cell to black, on black turn left and
// flip it to white. The returned displacement is the unit vector of the new
// facing; the caller moves the ant exactly one cell along it.
func applyRule(cell core.Cell, facing core.Direction) (newFacing core.Direction, newCell core.Cell, dx, dy int) {
	if cell == core.White {
		newFacing = facing.TurnRight()
		newCell = core.Black
	} else {
		newFacing = facing.TurnLeft()
		newCell = core.White
	}
	dx, dy = newFacing.Vector()
	return newFacing, newCell, dx, dy
}
