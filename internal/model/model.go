// Package model holds the play-by-play input types and the small closed
// vocabularies the feature extractors switch on.
package model

// Side is which team an event is attributed to.
type Side int

const (
	SideNone Side = 0
	SideHome Side = 1
	SideAway Side = 2
)

func (s Side) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	default:
		return "?"
	}
}

// Opponent returns the other side. SideNone has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	default:
		return SideNone
	}
}

// Sides is the fixed home/away iteration order used for schemas.
var Sides = []Side{SideHome, SideAway}

// DefendingSide is the end of the ice the home team defends.
type DefendingSide int

const (
	DefendingUnknown DefendingSide = 0
	DefendingLeft    DefendingSide = 1
	DefendingRight   DefendingSide = 2
)

// ParseDefendingSide maps the feed's "left"/"right" to a DefendingSide.
func ParseDefendingSide(s string) DefendingSide {
	switch s {
	case "left":
		return DefendingLeft
	case "right":
		return DefendingRight
	default:
		return DefendingUnknown
	}
}

func (d DefendingSide) String() string {
	switch d {
	case DefendingLeft:
		return "left"
	case DefendingRight:
		return "right"
	default:
		return "unknown"
	}
}

// ---- Raw events decoded by the loader ----

// PeriodDescriptor identifies the period an event happened in.
type PeriodDescriptor struct {
	Number int
	Type   string // "REG", "OT", "SO"
}

// Details is the event's "details" sub-record. Coordinates are pointers
// because a missing coordinate must not read as zero.
type Details struct {
	EventOwnerTeamID int // 0 if absent
	XCoord, YCoord   *float64
	ShotType         string
	Duration         string // raw penalty duration, "2" or "02:00"
	ScoringPlayerID  int
	ShootingPlayerID int
	ZoneCode         string // faceoff zone: "O", "D", "N"
}

// Event is one play in the game timeline, in feed order.
type Event struct {
	EventID               int
	TypeKey               string // raw typeDescKey
	Type                  EventType
	Period                PeriodDescriptor
	TimeInPeriod          string
	TimeRemaining         string // "mm:ss"
	SituationCode         string
	HomeTeamDefendingSide DefendingSide // per-play override; unknown if absent
	Details               Details
}

// HasCoords reports whether both ice coordinates are present.
func (e *Event) HasCoords() bool {
	return e.Details.XCoord != nil && e.Details.YCoord != nil
}

// Game is one fully loaded play-by-play file: the per-game context plus the
// ordered plays. It is never mutated after loading.
type Game struct {
	ID                string
	SourceHash        string
	HomeTeamID        int
	AwayTeamID        int
	HomeDefendingSide DefendingSide
	Roster            map[int]Position
	Plays             []Event
}

// SideOf resolves an event-owner team id against the game's home/away ids.
// Zero or unknown ids are unattributed.
func (g *Game) SideOf(teamID int) Side {
	if teamID == 0 {
		return SideNone
	}
	switch teamID {
	case g.HomeTeamID:
		return SideHome
	case g.AwayTeamID:
		return SideAway
	default:
		return SideNone
	}
}

// DefendingSideAt returns the home defending side in effect for e: the
// per-play value when the feed carries one, otherwise the game-level value.
func (g *Game) DefendingSideAt(e *Event) DefendingSide {
	if e.HomeTeamDefendingSide != DefendingUnknown {
		return e.HomeTeamDefendingSide
	}
	return g.HomeDefendingSide
}

// PositionOf looks up a player's roster position.
func (g *Game) PositionOf(playerID int) Position {
	if playerID == 0 {
		return PositionUnknown
	}
	if p, ok := g.Roster[playerID]; ok {
		return p
	}
	return PositionUnknown
}

// Summary returns the metadata row stored next to the game's features.
func (g *Game) Summary() GameSummary {
	return GameSummary{
		GameID:     g.ID,
		SourceHash: g.SourceHash,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		EventCount: len(g.Plays),
	}
}

// GameSummary is a lightweight record for list/show commands.
type GameSummary struct {
	GameID     string
	SourceHash string
	HomeTeamID int
	AwayTeamID int
	EventCount int
	// Options fingerprints the extraction options the features were built with.
	Options string
}
