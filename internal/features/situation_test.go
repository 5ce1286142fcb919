package features

import (
	"fmt"
	"testing"

	"github.com/pable/go-nhl-features/internal/model"
)

func TestDecodeSituation_AllCodes(t *testing.T) {
	for n := 0; n < 10000; n++ {
		code := fmt.Sprintf("%04d", n)
		got, ok := DecodeSituation(code)
		if !ok {
			t.Fatalf("DecodeSituation(%q) not decodable", code)
		}
		want := Situation{
			AwayGoalie:  n / 1000,
			AwaySkaters: n / 100 % 10,
			HomeSkaters: n / 10 % 10,
			HomeGoalie:  n % 10,
		}
		if got != want {
			t.Fatalf("DecodeSituation(%q) = %+v, want %+v", code, got, want)
		}
	}
}

func TestDecodeSituation_Invalid(t *testing.T) {
	for _, code := range []string{"", "1", "155", "15511", "15a1", " 551", "-551", "1.51", "１５５１"} {
		if _, ok := DecodeSituation(code); ok {
			t.Errorf("DecodeSituation(%q) decoded, want not decodable", code)
		}
	}
}

func TestDecodeSituation_FullStrength(t *testing.T) {
	s, ok := DecodeSituation("1551")
	if !ok {
		t.Fatal("1551 not decodable")
	}
	if s != (Situation{1, 5, 5, 1}) {
		t.Errorf("got %+v", s)
	}
	if !s.FiveOnFive() {
		t.Error("1551 should be 5v5")
	}
	if s.EmptyNet() {
		t.Error("1551 should not be empty net")
	}
	if pp, sh := s.Advantage(); pp != model.SideNone || sh != model.SideNone {
		t.Errorf("Advantage() = %v, %v; want none", pp, sh)
	}
}

func TestDecodeSituation_PulledGoalie(t *testing.T) {
	s, ok := DecodeSituation("0641")
	if !ok {
		t.Fatal("0641 not decodable")
	}
	if s != (Situation{AwayGoalie: 0, AwaySkaters: 6, HomeSkaters: 4, HomeGoalie: 1}) {
		t.Errorf("got %+v", s)
	}
	if !s.EmptyNet() {
		t.Error("0641 should be empty net")
	}
	if s.FiveOnFive() {
		t.Error("0641 should not be 5v5")
	}
	pp, sh := s.Advantage()
	if pp != model.SideAway || sh != model.SideHome {
		t.Errorf("Advantage() = %v, %v; want away, home", pp, sh)
	}
	if got := s.StrengthFor(model.SideAway); got != StrengthPowerPlay {
		t.Errorf("away strength = %s, want pp", got)
	}
	if got := s.StrengthFor(model.SideHome); got != StrengthShortHanded {
		t.Errorf("home strength = %s, want sh", got)
	}
}

func TestStrengthFor_Even(t *testing.T) {
	// Both goalies pulled with equal skaters is still no special teams.
	s, _ := DecodeSituation("0660")
	for _, side := range model.Sides {
		if got := s.StrengthFor(side); got != StrengthEven {
			t.Errorf("%s strength = %s, want even", side, got)
		}
	}
}

func TestBucketOf(t *testing.T) {
	cases := []struct {
		p    model.PeriodDescriptor
		want PeriodBucket
		ok   bool
	}{
		{model.PeriodDescriptor{Number: 1, Type: "REG"}, PeriodREG1, true},
		{model.PeriodDescriptor{Number: 3, Type: "REG"}, PeriodREG3, true},
		{model.PeriodDescriptor{Number: 4, Type: "OT"}, PeriodOT, true},
		{model.PeriodDescriptor{Number: 5, Type: "SO"}, PeriodSO, true},
		{model.PeriodDescriptor{Number: 4, Type: "REG"}, "REG4", false},
		{model.PeriodDescriptor{}, "", false},
	}
	for _, c := range cases {
		got := BucketOf(c.p)
		if got != c.want || got.Tracked() != c.ok {
			t.Errorf("BucketOf(%+v) = %q (tracked %v), want %q (tracked %v)", c.p, got, got.Tracked(), c.want, c.ok)
		}
	}
	if PeriodSO.TracksBlocks() {
		t.Error("SO should not track blocked shots")
	}
	if !PeriodOT.TracksBlocks() {
		t.Error("OT should track blocked shots")
	}
}
