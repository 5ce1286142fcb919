package features

import "github.com/pable/go-nhl-features/internal/model"

// ScoreState is the running (home, away) score of one pass. It is a value;
// Credit returns the updated state.
type ScoreState struct {
	Home, Away int
}

// Credit returns the state after a goal by side.
func (s ScoreState) Credit(side model.Side) ScoreState {
	switch side {
	case model.SideHome:
		s.Home++
	case model.SideAway:
		s.Away++
	}
	return s
}

// Leader returns the leading side, or SideNone when tied.
func (s ScoreState) Leader() model.Side {
	switch {
	case s.Home > s.Away:
		return model.SideHome
	case s.Away > s.Home:
		return model.SideAway
	}
	return model.SideNone
}
