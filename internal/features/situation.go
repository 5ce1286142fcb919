package features

import "github.com/pable/go-nhl-features/internal/model"

const (
	situationCodeLength = 4
	fullStrengthSkaters = 5
)

// Situation is a decoded 4-digit strength code. Digit order is fixed:
// away goalie, away skaters, home skaters, home goalie. Goalie digits are
// 1 when the goalie is in net and 0 when pulled.
type Situation struct {
	AwayGoalie  int
	AwaySkaters int
	HomeSkaters int
	HomeGoalie  int
}

// DecodeSituation parses a situation code such as "1551". It returns false
// for anything that is not exactly four ASCII digits.
func DecodeSituation(code string) (Situation, bool) {
	if len(code) != situationCodeLength {
		return Situation{}, false
	}
	var d [situationCodeLength]int
	for i := 0; i < situationCodeLength; i++ {
		c := code[i]
		if c < '0' || c > '9' {
			return Situation{}, false
		}
		d[i] = int(c - '0')
	}
	return Situation{
		AwayGoalie:  d[0],
		AwaySkaters: d[1],
		HomeSkaters: d[2],
		HomeGoalie:  d[3],
	}, true
}

// FiveOnFive is full strength with both goalies in net.
func (s Situation) FiveOnFive() bool {
	return s.HomeSkaters == fullStrengthSkaters && s.AwaySkaters == fullStrengthSkaters &&
		s.HomeGoalie == 1 && s.AwayGoalie == 1
}

// EmptyNet reports whether either goalie is pulled.
func (s Situation) EmptyNet() bool {
	return s.HomeGoalie == 0 || s.AwayGoalie == 0
}

// Skaters returns the skater count for side.
func (s Situation) Skaters(side model.Side) int {
	switch side {
	case model.SideHome:
		return s.HomeSkaters
	case model.SideAway:
		return s.AwaySkaters
	}
	return 0
}

// Advantage returns the power-play and short-handed sides. Equal skater
// counts return SideNone for both.
func (s Situation) Advantage() (pp, sh model.Side) {
	switch {
	case s.HomeSkaters > s.AwaySkaters:
		return model.SideHome, model.SideAway
	case s.AwaySkaters > s.HomeSkaters:
		return model.SideAway, model.SideHome
	}
	return model.SideNone, model.SideNone
}

// Strength is the special-teams state from one side's point of view.
type Strength string

const (
	StrengthPowerPlay   Strength = "pp"
	StrengthShortHanded Strength = "sh"
	StrengthEven        Strength = "even"
)

// Strengths lists the strength buckets in schema order.
var Strengths = []Strength{StrengthPowerPlay, StrengthShortHanded, StrengthEven}

// StrengthFor classifies the situation for side.
func (s Situation) StrengthFor(side model.Side) Strength {
	pp, sh := s.Advantage()
	switch side {
	case model.SideNone:
		return StrengthEven
	case pp:
		return StrengthPowerPlay
	case sh:
		return StrengthShortHanded
	}
	return StrengthEven
}
