package features

import "github.com/pable/go-nhl-features/internal/model"

// Distance buckets of the expected-goals proxy. This is a coarse heuristic,
// not a shot model.
const (
	xgCloseDistance  = 20.0
	xgMediumDistance = 40.0

	xgCloseValue  = 0.18
	xgMediumValue = 0.09
	xgFarValue    = 0.03

	xgPowerPlayFactor   = 1.2
	xgShortHandedFactor = 0.8
)

// proxyGoalX is the goal the xG proxy measures from: home always shoots at
// +89 and away at -89, whichever end each team defends.
func proxyGoalX(side model.Side) float64 {
	if side == model.SideAway {
		return -goalLineX
	}
	return goalLineX
}

// BaseExpectedGoals maps shot distance to the piecewise-constant proxy.
func BaseExpectedGoals(distance float64) float64 {
	switch {
	case distance < xgCloseDistance:
		return xgCloseValue
	case distance < xgMediumDistance:
		return xgMediumValue
	}
	return xgFarValue
}

// ExpectedGoals adjusts the base value by strength state for an attempt by
// side. Any pulled goalie zeroes the value. Equal skater counts tag the
// attempt as 5-on-5; otherwise the value is scaled up for the side with more
// skaters and down for the side with fewer. An undecodable situation
// returns the base value untagged.
func ExpectedGoals(distance float64, sit Situation, decoded bool, side model.Side) (xg float64, fiveOnFive bool) {
	xg = BaseExpectedGoals(distance)
	if !decoded {
		return xg, false
	}
	if sit.EmptyNet() {
		xg = 0
	}
	switch own, opp := sit.Skaters(side), sit.Skaters(side.Opponent()); {
	case own == opp:
		fiveOnFive = true
	case own > opp:
		xg *= xgPowerPlayFactor
	default:
		xg *= xgShortHandedFactor
	}
	return xg, fiveOnFive
}
