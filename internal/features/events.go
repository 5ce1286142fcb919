package features

import (
	"strconv"
	"strings"

	"github.com/pable/go-nhl-features/internal/model"
)

// eventCountStats maps counted event types to their column stat.
var eventCountStats = []struct {
	typ  model.EventType
	stat string
}{
	{model.EventGoal, "goals"},
	{model.EventShotOnGoal, "shots_on_goal"},
	{model.EventMissedShot, "missed_shots"},
	{model.EventBlockedShot, "blocked_shots"},
	{model.EventHit, "hits"},
	{model.EventGiveaway, "giveaways"},
	{model.EventTakeaway, "takeaways"},
	{model.EventFaceoff, "faceoffs"},
	{model.EventPenalty, "penalties"},
}

var eventCountsSchema = func() *Schema {
	stats := make([]string, 0, len(eventCountStats)+2)
	for _, s := range eventCountStats {
		stats = append(stats, s.stat)
	}
	stats = append(stats, "penalty_minutes", "shot_attempts")
	return NewSchema(append(perSide(stats...),
		"diff_goals",
		"diff_shots_on_goal",
		"diff_shot_attempts",
		"diff_faceoffs",
		"diff_penalty_minutes",
	)...)
}()

// EventCounts counts team events by type.
type EventCounts struct{}

func (EventCounts) Name() string    { return "events" }
func (EventCounts) Schema() *Schema { return eventCountsSchema }

func (EventCounts) Extract(g *model.Game) Features {
	acc := eventCountsSchema.New()
	for i := range g.Plays {
		e := &g.Plays[i]
		side := g.SideOf(e.Details.EventOwnerTeamID)
		if side == model.SideNone {
			continue
		}
		for _, s := range eventCountStats {
			if e.Type == s.typ {
				acc.Inc(key(side, s.stat))
				break
			}
		}
		if e.Type == model.EventPenalty {
			acc.Add(key(side, "penalty_minutes"), float64(penaltyMinutes(e.Details.Duration)))
		}
	}

	for _, side := range model.Sides {
		attempts := acc.Get(key(side, "shots_on_goal")) +
			acc.Get(key(side, "missed_shots")) +
			acc.Get(key(side, "blocked_shots"))
		acc.Set(key(side, "shot_attempts"), attempts)
	}
	acc.Diff("diff_goals", "goals")
	acc.Diff("diff_shots_on_goal", "shots_on_goal")
	acc.Diff("diff_shot_attempts", "shot_attempts")
	acc.Diff("diff_faceoffs", "faceoffs")
	acc.Diff("diff_penalty_minutes", "penalty_minutes")
	return acc.Finalize()
}

// penaltyMinutes reads a penalty duration that is either a whole number of
// minutes or an "mm:ss" string. Anything else counts as 0.
func penaltyMinutes(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if mm, _, found := strings.Cut(raw, ":"); found {
		n, err := strconv.Atoi(mm)
		if err != nil {
			return 0
		}
		return n
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}
