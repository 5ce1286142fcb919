// Package parser decodes a play-by-play JSON file into a model.Game.
//
// A missing field reads as its zero value. Only files that cannot be read,
// are not JSON objects or have no plays array are rejected.
package parser

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pable/go-nhl-features/internal/model"
)

// ErrInvalidGame is wrapped by every content error ParseGame returns.
var ErrInvalidGame = errors.New("invalid game file")

// ParseGame reads the play-by-play file at path. The game id is the file
// name without its extension.
func ParseGame(path string) (*model.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game: %w", err)
	}
	g, err := ParseGameBytes(GameID(path), data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return g, nil
}

// GameID derives the game id from a file path.
func GameID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseGameBytes decodes one play-by-play document.
func ParseGameBytes(id string, data []byte) (*model.Game, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidGame)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidGame)
	}
	plays := doc.Get("plays")
	if !plays.IsArray() {
		return nil, fmt.Errorf("%w: missing plays array", ErrInvalidGame)
	}

	// Hash file for idempotency key.
	sum := sha256.Sum256(data)

	g := &model.Game{
		ID:                id,
		SourceHash:        fmt.Sprintf("%x", sum[:]),
		HomeTeamID:        int(doc.Get("homeTeam.id").Int()),
		AwayTeamID:        int(doc.Get("awayTeam.id").Int()),
		HomeDefendingSide: model.ParseDefendingSide(doc.Get("homeTeamDefendingSide").String()),
		Roster:            make(map[int]model.Position),
	}

	doc.Get("rosterSpots").ForEach(func(_, spot gjson.Result) bool {
		pid := int(spot.Get("playerId").Int())
		if pos := model.ParsePosition(spot.Get("positionCode").String()); pid != 0 && pos != model.PositionUnknown {
			g.Roster[pid] = pos
		}
		return true
	})

	arr := plays.Array()
	g.Plays = make([]model.Event, 0, len(arr))
	for _, p := range arr {
		g.Plays = append(g.Plays, parseEvent(p))
	}
	return g, nil
}

func parseEvent(p gjson.Result) model.Event {
	d := p.Get("details")
	typeKey := p.Get("typeDescKey").String()
	return model.Event{
		EventID: int(p.Get("eventId").Int()),
		TypeKey: typeKey,
		Type:    model.ParseEventType(typeKey),
		Period: model.PeriodDescriptor{
			Number: int(p.Get("periodDescriptor.number").Int()),
			Type:   p.Get("periodDescriptor.periodType").String(),
		},
		TimeInPeriod:          p.Get("timeInPeriod").String(),
		TimeRemaining:         p.Get("timeRemaining").String(),
		SituationCode:         p.Get("situationCode").String(),
		HomeTeamDefendingSide: model.ParseDefendingSide(p.Get("homeTeamDefendingSide").String()),
		Details: model.Details{
			EventOwnerTeamID: int(d.Get("eventOwnerTeamId").Int()),
			XCoord:           coord(d.Get("xCoord")),
			YCoord:           coord(d.Get("yCoord")),
			ShotType:         d.Get("shotType").String(),
			Duration:         d.Get("duration").String(),
			ScoringPlayerID:  int(d.Get("scoringPlayerId").Int()),
			ShootingPlayerID: int(d.Get("shootingPlayerId").Int()),
			ZoneCode:         d.Get("zoneCode").String(),
		},
	}
}

// coord keeps absent and null coordinates distinct from 0.
func coord(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Float()
	return &v
}
