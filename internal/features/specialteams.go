package features

import "github.com/pable/go-nhl-features/internal/model"

var specialTeamsSchema = func() *Schema {
	stats := make([]string, 0, len(Strengths)+len(model.ShotTypes))
	for _, s := range Strengths {
		stats = append(stats, string(s)+"_goals")
	}
	for _, t := range model.ShotTypes {
		stats = append(stats, string(t)+"_goals")
	}
	return NewSchema(append(perSide(stats...), "diff_pp_goals")...)
}()

// SpecialTeams splits goals by strength and by shot type. Strength follows
// the leading digit of the situation code: '0' is a power play, anything
// else even strength.
type SpecialTeams struct {
	// SkaterStrength classifies by the decoded skater counts instead, which
	// also yields short-handed goals.
	SkaterStrength bool
}

func (SpecialTeams) Name() string    { return "special_teams" }
func (SpecialTeams) Schema() *Schema { return specialTeamsSchema }

func (x SpecialTeams) Extract(g *model.Game) Features {
	acc := specialTeamsSchema.New()
	for i := range g.Plays {
		e := &g.Plays[i]
		if e.Type != model.EventGoal {
			continue
		}
		side := g.SideOf(e.Details.EventOwnerTeamID)
		if side == model.SideNone {
			continue
		}
		acc.Inc(key(side, string(x.strength(e.SituationCode, side))+"_goals"))
		acc.Inc(key(side, string(model.ParseShotType(e.Details.ShotType))+"_goals"))
	}
	acc.Diff("diff_pp_goals", "pp_goals")
	return acc.Finalize()
}

func (x SpecialTeams) strength(code string, side model.Side) Strength {
	if x.SkaterStrength {
		sit, ok := DecodeSituation(code)
		if !ok {
			return StrengthEven
		}
		return sit.StrengthFor(side)
	}
	if code != "" && code[0] == '0' {
		return StrengthPowerPlay
	}
	return StrengthEven
}
