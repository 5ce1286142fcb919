package features

import "github.com/pable/go-nhl-features/internal/model"

var goalieSchema = NewSchema(append(
	perSide("shots_for_goalie", "goals_against", "saves", "save_pct"),
	"diff_save_pct",
)...)

// GoalieShots credits shots on goal and goals to the defending goalie.
// Goals are counted only as goals against, not as shots faced, so saves go
// negative when a goalie concedes more goals than recorded shots.
type GoalieShots struct{}

func (GoalieShots) Name() string    { return "goalie" }
func (GoalieShots) Schema() *Schema { return goalieSchema }

func (GoalieShots) Extract(g *model.Game) Features {
	acc := goalieSchema.New()
	for i := range g.Plays {
		e := &g.Plays[i]
		if e.Type != model.EventGoal && e.Type != model.EventShotOnGoal {
			continue
		}
		side := g.SideOf(e.Details.EventOwnerTeamID)
		if side == model.SideNone {
			continue
		}
		def := side.Opponent()
		if e.Type == model.EventGoal {
			acc.Inc(key(def, "goals_against"))
		} else {
			acc.Inc(key(def, "shots_for_goalie"))
		}
	}

	for _, side := range model.Sides {
		faced := acc.Get(key(side, "shots_for_goalie"))
		saves := faced - acc.Get(key(side, "goals_against"))
		acc.Set(key(side, "saves"), saves)
		acc.Set(key(side, "save_pct"), ratio(saves, faced))
	}
	acc.Diff("diff_save_pct", "save_pct")
	return acc.Finalize()
}
