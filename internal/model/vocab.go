package model

// EventType is the closed set of play types the extractors know about.
// Anything else decodes to EventUnknown and is ignored by every extractor.
type EventType int

const (
	EventUnknown EventType = iota
	EventGoal
	EventShotOnGoal
	EventMissedShot
	EventBlockedShot
	EventHit
	EventGiveaway
	EventTakeaway
	EventFaceoff
	EventPenalty
	EventStoppage
)

var eventTypeKeys = map[string]EventType{
	"goal":         EventGoal,
	"shot-on-goal": EventShotOnGoal,
	"missed-shot":  EventMissedShot,
	"blocked-shot": EventBlockedShot,
	"hit":          EventHit,
	"giveaway":     EventGiveaway,
	"takeaway":     EventTakeaway,
	"faceoff":      EventFaceoff,
	"penalty":      EventPenalty,
	"stoppage":     EventStoppage,
}

// ParseEventType maps a feed typeDescKey to an EventType.
func ParseEventType(key string) EventType {
	return eventTypeKeys[key]
}

func (t EventType) String() string {
	for k, v := range eventTypeKeys {
		if v == t {
			return k
		}
	}
	return "unknown"
}

// IsShotAttempt reports whether t counts towards Corsi.
func (t EventType) IsShotAttempt() bool {
	switch t {
	case EventGoal, EventShotOnGoal, EventMissedShot, EventBlockedShot:
		return true
	}
	return false
}

// ShotType is the closed set of NHL shot types; unrecognized values map to
// ShotOther.
type ShotType string

const (
	ShotDeflected  ShotType = "deflected"
	ShotTipIn      ShotType = "tip-in"
	ShotSnap       ShotType = "snap"
	ShotWrist      ShotType = "wrist"
	ShotBackhand   ShotType = "backhand"
	ShotSlap       ShotType = "slap"
	ShotWraparound ShotType = "wraparound"
	ShotPoke       ShotType = "poke"
	ShotBat        ShotType = "bat"
	ShotOther      ShotType = "other"
)

// ShotTypes lists every shot type bucket in schema order, ShotOther last.
var ShotTypes = []ShotType{
	ShotDeflected, ShotTipIn, ShotSnap, ShotWrist, ShotBackhand,
	ShotSlap, ShotWraparound, ShotPoke, ShotBat, ShotOther,
}

// ParseShotType maps a feed shotType to its bucket.
func ParseShotType(s string) ShotType {
	for _, t := range ShotTypes {
		if t != ShotOther && string(t) == s {
			return t
		}
	}
	return ShotOther
}

// Position is a roster position code.
type Position string

const (
	PositionCenter    Position = "C"
	PositionLeftWing  Position = "L"
	PositionRightWing Position = "R"
	PositionDefense   Position = "D"
	PositionGoalie    Position = "G"
	PositionUnknown   Position = ""
)

// Positions lists the tracked positions in schema order.
var Positions = []Position{
	PositionCenter, PositionLeftWing, PositionRightWing, PositionDefense, PositionGoalie,
}

// ParsePosition maps a roster positionCode to a Position.
func ParsePosition(s string) Position {
	for _, p := range Positions {
		if string(p) == s {
			return p
		}
	}
	return PositionUnknown
}

// FaceoffZones lists the faceoff zone codes in schema order.
var FaceoffZones = []string{"O", "D", "N"}
