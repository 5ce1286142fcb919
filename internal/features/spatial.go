package features

import "github.com/pable/go-nhl-features/internal/model"

const (
	highDangerDistance = 25.0
	slotAngle          = 15.0
)

var spatialSchema = NewSchema(append(
	perSide(
		"spatial_shots",
		"avg_shot_distance",
		"median_shot_distance",
		"std_shot_distance",
		"min_shot_distance",
		"avg_shot_angle",
		"median_shot_angle",
		"high_danger_shots",
		"high_danger_ratio",
		"slot_shots",
		"slot_ratio",
	),
	"diff_avg_shot_distance",
	"diff_high_danger_shots",
)...)

// SpatialShots aggregates distance and angle of goals and shots on goal.
type SpatialShots struct{}

func (SpatialShots) Name() string    { return "spatial" }
func (SpatialShots) Schema() *Schema { return spatialSchema }

func (SpatialShots) Extract(g *model.Game) Features {
	var dists, angles [2][]float64
	for i := range g.Plays {
		e := &g.Plays[i]
		if e.Type != model.EventGoal && e.Type != model.EventShotOnGoal {
			continue
		}
		side := g.SideOf(e.Details.EventOwnerTeamID)
		d, a, ok := shotGeometry(g, e, side)
		if !ok {
			continue
		}
		idx := sideIndex(side)
		dists[idx] = append(dists[idx], d)
		angles[idx] = append(angles[idx], a)
	}

	acc := spatialSchema.New()
	for _, side := range model.Sides {
		idx := sideIndex(side)
		aggregateShots(acc, side, dists[idx], angles[idx])
	}
	acc.Diff("diff_avg_shot_distance", "avg_shot_distance")
	acc.Diff("diff_high_danger_shots", "high_danger_shots")
	return acc.Finalize()
}

// aggregateShots writes side's summary columns. With no shots every column
// stays zero.
func aggregateShots(acc *Accumulator, side model.Side, dists, angles []float64) {
	n := float64(len(dists))
	if n == 0 {
		return
	}
	sd := sortedCopy(dists)
	var highDanger, slot float64
	for i := range dists {
		if dists[i] < highDangerDistance {
			highDanger++
		}
		if angles[i] < slotAngle {
			slot++
		}
	}
	acc.Set(key(side, "spatial_shots"), n)
	acc.Set(key(side, "avg_shot_distance"), mean(dists))
	acc.Set(key(side, "median_shot_distance"), median(sd))
	acc.Set(key(side, "std_shot_distance"), popStdDev(dists))
	acc.Set(key(side, "min_shot_distance"), sd[0])
	acc.Set(key(side, "avg_shot_angle"), mean(angles))
	acc.Set(key(side, "median_shot_angle"), median(sortedCopy(angles)))
	acc.Set(key(side, "high_danger_shots"), highDanger)
	acc.Set(key(side, "high_danger_ratio"), ratio(highDanger, n))
	acc.Set(key(side, "slot_shots"), slot)
	acc.Set(key(side, "slot_ratio"), ratio(slot, n))
}

func sideIndex(side model.Side) int {
	if side == model.SideAway {
		return 1
	}
	return 0
}
