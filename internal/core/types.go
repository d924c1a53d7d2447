package core

// Cell is a single grid cell value.
type Cell = uint8

// Cell values. The canonical rule only distinguishes white from black.
const (
	White Cell = 0
	Black Cell = 1
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Direction is one of the four canonical facings of the ant. The numeric
// values follow the cyclic turn order: adding one turns right, subtracting
// one turns left.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// directionVectors maps a facing to its unit step in screen coordinates,
// where y grows downward: North=(0,-1), East=(1,0), South=(0,1), West=(-1,0).
var directionVectors = [4][2]int{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

var directionNames = [4]string{"N", "E", "S", "W"}

// Valid reports whether d is one of the four canonical directions.
func (d Direction) Valid() bool { return d < 4 }

// TurnRight returns the facing after a clockwise quarter turn.
func (d Direction) TurnRight() Direction { return (d + 1) % 4 }

// TurnLeft returns the facing after a counterclockwise quarter turn.
func (d Direction) TurnLeft() Direction { return (d + 3) % 4 }

// Vector returns the unit displacement for a step taken facing d.
func (d Direction) Vector() (dx, dy int) {
	v := directionVectors[d%4]
	return v[0], v[1]
}

// String returns the compass abbreviation for the facing.
func (d Direction) String() string {
	if !d.Valid() {
		return "?"
	}
	return directionNames[d]
}

// StepRecord captures what the highway detector needs from a single step:
// the facing after the turn and the unit displacement taken.
type StepRecord struct {
	Facing Direction
	DX     int
	DY     int
}
