package core

import "math"

// Axis indexes one of the five trait dimensions used to position answers and
// alignments. The enum is closed; Axes is indexed by it so a typo in an axis
// name cannot compile.
type Axis int

const (
	AxisEnergy Axis = iota
	AxisPace
	AxisOrientation
	AxisStructure
	AxisExpression

	NumAxes = 5
)

var axisNames = [NumAxes]string{"energy", "pace", "orientation", "structure", "expression"}

// String returns the canonical lower-case axis name.
func (a Axis) String() string {
	if a < 0 || a >= NumAxes {
		return "unknown"
	}
	return axisNames[a]
}

// Axes is a position in the 5-dimensional trait space.
// The zero value is the origin, which is also the documented default for
// missing or unparseable source values.
type Axes [NumAxes]float64

// Energy returns the energy coordinate.
func (x Axes) Energy() float64 { return x[AxisEnergy] }

// Pace returns the pace coordinate.
func (x Axes) Pace() float64 { return x[AxisPace] }

// Orientation returns the orientation coordinate.
func (x Axes) Orientation() float64 { return x[AxisOrientation] }

// Structure returns the structure coordinate.
func (x Axes) Structure() float64 { return x[AxisStructure] }

// Expression returns the expression coordinate.
func (x Axes) Expression() float64 { return x[AxisExpression] }

// DistanceTo computes the Euclidean distance between two trait-space positions.
func (x Axes) DistanceTo(other Axes) float64 {
	var sq float64
	for i := 0; i < NumAxes; i++ {
		d := x[i] - other[i]
		sq += d * d
	}
	return math.Sqrt(sq)
}

// PrimacyWeightedMean blends a sequence of positions with weight 1/(i+1) for
// the i-th entry, so earlier entries dominate. It is used both for an
// alignment's derived position (earlier-listed components dominate) and for a
// user profile (earlier selections dominate). An empty sequence yields the
// origin.
func PrimacyWeightedMean(points []Axes) Axes {
	var out Axes
	if len(points) == 0 {
		return out
	}

	var total float64
	for i, p := range points {
		w := 1.0 / float64(i+1)
		for a := 0; a < NumAxes; a++ {
			out[a] += p[a] * w
		}
		total += w
	}

	for a := 0; a < NumAxes; a++ {
		out[a] /= total
	}
	return out
}
