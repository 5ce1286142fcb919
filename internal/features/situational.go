package features

import (
	"strconv"
	"strings"

	"github.com/pable/go-nhl-features/internal/model"
)

// lastMinutesWindow is the remaining clock, inclusive, that counts as late.
const lastMinutesWindow = 5 * 60

var physicalStats = map[model.EventType]string{
	model.EventHit:      "hits",
	model.EventTakeaway: "takeaways",
	model.EventGiveaway: "giveaways",
	model.EventPenalty:  "penalties",
}

var periodStats = map[model.EventType]string{
	model.EventGoal:        "goals",
	model.EventShotOnGoal:  "shots",
	model.EventMissedShot:  "missed",
	model.EventBlockedShot: "blocked",
}

var situationalSchema = func() *Schema {
	var stats []string
	for _, b := range PeriodBuckets {
		stats = append(stats, "goals_"+string(b), "shots_"+string(b), "missed_"+string(b))
		if b.TracksBlocks() {
			stats = append(stats, "blocked_"+string(b))
		}
	}
	stats = append(stats,
		"last5_goals", "last5_shots",
		"goals_PP", "goals_SH", "shots_PP", "shots_SH",
		"hits", "takeaways", "giveaways", "penalties",
		"corsi_5v5", "empty_net_events",
		"xg_proxy", "xg_5v5",
	)
	for _, z := range model.FaceoffZones {
		stats = append(stats, "faceoff_"+z)
	}
	for _, p := range model.Positions {
		stats = append(stats, "goals_"+string(p), "shots_"+string(p))
	}
	stats = append(stats, "events_leading")

	names := perSide(stats...)
	names = append(names, "events_tied", "stoppages_total")
	for _, d := range situationalDiffs {
		names = append(names, "diff_"+d[0])
	}
	return NewSchema(names...)
}()

// situationalDiffs pairs each diff column suffix with its per-side stat.
var situationalDiffs = [][2]string{
	{"hits", "hits"},
	{"takeaways", "takeaways"},
	{"giveaways", "giveaways"},
	{"penalties", "penalties"},
	{"corsi_5v5", "corsi_5v5"},
	{"empty_net", "empty_net_events"},
	{"events_leading", "events_leading"},
	{"xg_proxy", "xg_proxy"},
	{"xg_5v5", "xg_5v5"},
	{"last5_goals", "last5_goals"},
	{"last5_shots", "last5_shots"},
}

// Situational is the score-state aware pass: late-game tagging, period
// splits, special teams, Corsi, the xG proxy, faceoff zones and positional
// splits.
type Situational struct {
	// LegacyScoreState advances the running score only for goals inside the
	// last-5-minutes window, matching historical feature tables.
	LegacyScoreState bool
}

func (Situational) Name() string    { return "situational" }
func (Situational) Schema() *Schema { return situationalSchema }

func (x Situational) Extract(g *model.Game) Features {
	p := &situationalPass{g: g, acc: situationalSchema.New(), legacy: x.LegacyScoreState}
	for i := range g.Plays {
		p.handle(&g.Plays[i])
	}
	for _, d := range situationalDiffs {
		p.acc.Diff("diff_"+d[0], d[1])
	}
	return p.acc.Finalize()
}

type situationalPass struct {
	g      *model.Game
	acc    *Accumulator
	legacy bool
	score  ScoreState
}

func (p *situationalPass) handle(e *model.Event) {
	side := p.g.SideOf(e.Details.EventOwnerTeamID)
	sit, decoded := DecodeSituation(e.SituationCode)

	if e.Type == model.EventStoppage {
		p.acc.Inc("stoppages_total")
	}

	late := p.lastMinutes(e, side)
	if e.Type == model.EventGoal && side != model.SideNone && (!p.legacy || late) {
		p.score = p.score.Credit(side)
	}

	if side != model.SideNone {
		p.periodStats(e, side)
		if decoded {
			p.specialTeams(e, side, sit)
		}
		p.expectedGoals(e, side, sit, decoded)
		if stat, ok := physicalStats[e.Type]; ok {
			p.acc.Inc(key(side, stat))
		}
		p.faceoff(e, side)
		p.position(e, side)
	}

	switch p.score.Leader() {
	case model.SideHome:
		p.acc.Inc("home_events_leading")
	case model.SideAway:
		p.acc.Inc("away_events_leading")
	default:
		p.acc.Inc("events_tied")
	}
}

// lastMinutes tags goals and shots on goal with at most 05:00 remaining and
// reports whether e is a goal inside that window. An unreadable clock is
// never late.
func (p *situationalPass) lastMinutes(e *model.Event, side model.Side) bool {
	if side == model.SideNone || (e.Type != model.EventGoal && e.Type != model.EventShotOnGoal) {
		return false
	}
	secs, ok := clockSeconds(e.TimeRemaining)
	if !ok || secs > lastMinutesWindow {
		return false
	}
	p.acc.Inc(key(side, "last5_shots"))
	if e.Type == model.EventGoal {
		p.acc.Inc(key(side, "last5_goals"))
		return true
	}
	return false
}

func (p *situationalPass) periodStats(e *model.Event, side model.Side) {
	stat, ok := periodStats[e.Type]
	if !ok {
		return
	}
	b := BucketOf(e.Period)
	if !b.Tracked() || (e.Type == model.EventBlockedShot && !b.TracksBlocks()) {
		return
	}
	p.acc.Inc(key(side, stat+"_"+string(b)))
}

func (p *situationalPass) specialTeams(e *model.Event, side model.Side, sit Situation) {
	if e.Type.IsShotAttempt() && sit.FiveOnFive() {
		p.acc.Inc(key(side, "corsi_5v5"))
	}
	if e.Type != model.EventGoal && e.Type != model.EventShotOnGoal {
		return
	}
	if sit.HomeGoalie == 0 {
		p.acc.Inc("home_empty_net_events")
	}
	if sit.AwayGoalie == 0 {
		p.acc.Inc("away_empty_net_events")
	}
	stat := "shots"
	if e.Type == model.EventGoal {
		stat = "goals"
	}
	switch sit.StrengthFor(side) {
	case StrengthPowerPlay:
		p.acc.Inc(key(side, stat+"_PP"))
	case StrengthShortHanded:
		p.acc.Inc(key(side, stat+"_SH"))
	}
}

func (p *situationalPass) expectedGoals(e *model.Event, side model.Side, sit Situation, decoded bool) {
	switch e.Type {
	case model.EventGoal, model.EventShotOnGoal, model.EventMissedShot:
	default:
		return
	}
	if !e.HasCoords() {
		return
	}
	dist := ShotDistance(*e.Details.XCoord, *e.Details.YCoord, proxyGoalX(side))
	xg, fiveOnFive := ExpectedGoals(dist, sit, decoded, side)
	p.acc.Add(key(side, "xg_proxy"), xg)
	if fiveOnFive {
		p.acc.Add(key(side, "xg_5v5"), xg)
	}
}

func (p *situationalPass) faceoff(e *model.Event, side model.Side) {
	if e.Type != model.EventFaceoff {
		return
	}
	for _, z := range model.FaceoffZones {
		if e.Details.ZoneCode == z {
			p.acc.Inc(key(side, "faceoff_"+z))
			return
		}
	}
}

func (p *situationalPass) position(e *model.Event, side model.Side) {
	var playerID int
	var stat string
	switch e.Type {
	case model.EventGoal:
		playerID, stat = e.Details.ScoringPlayerID, "goals_"
	case model.EventShotOnGoal:
		playerID, stat = e.Details.ShootingPlayerID, "shots_"
	default:
		return
	}
	if playerID == 0 {
		return
	}
	if pos := p.g.PositionOf(playerID); pos != model.PositionUnknown {
		p.acc.Inc(key(side, stat+string(pos)))
	}
}

// clockSeconds reads an "mm:ss" clock as whole seconds.
func clockSeconds(clock string) (int, bool) {
	mm, ss, found := strings.Cut(clock, ":")
	if !found || len(ss) != 2 {
		return 0, false
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 {
		return 0, false
	}
	seconds, err := strconv.Atoi(ss)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, false
	}
	return minutes*60 + seconds, true
}
