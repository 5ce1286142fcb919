package features

import (
	"math"

	"github.com/pable/go-nhl-features/internal/model"
)

// goalLineX is the distance from centre ice to each goal line.
const goalLineX = 89.0

// GoalX returns the x-coordinate of the goal attacked by side. Home attacks
// +89 only when it is known to defend the left end; a right or unknown side
// puts the home target at -89.
func GoalX(attacking model.Side, homeDefends model.DefendingSide) float64 {
	homeAttacks := -goalLineX
	if homeDefends == model.DefendingLeft {
		homeAttacks = goalLineX
	}
	if attacking == model.SideAway {
		return -homeAttacks
	}
	return homeAttacks
}

// ShotDistance is the Euclidean distance from (x, y) to (goalX, 0).
func ShotDistance(x, y, goalX float64) float64 {
	return math.Hypot(goalX-x, y)
}

// ShotAngle is the angle in degrees between the shot line and the goal line
// axis: atan2(|y|, goalX-x).
func ShotAngle(x, y, goalX float64) float64 {
	return math.Atan2(math.Abs(y), goalX-x) * 180 / math.Pi
}

// shotGeometry resolves distance and angle for an attributed event with
// both coordinates. ok is false when the event cannot be placed.
func shotGeometry(g *model.Game, e *model.Event, side model.Side) (distance, angle float64, ok bool) {
	if side == model.SideNone || !e.HasCoords() {
		return 0, 0, false
	}
	x, y := *e.Details.XCoord, *e.Details.YCoord
	goalX := GoalX(side, g.DefendingSideAt(e))
	return ShotDistance(x, y, goalX), ShotAngle(x, y, goalX), true
}
