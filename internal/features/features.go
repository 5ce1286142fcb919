// Package features turns one game's play-by-play into a flat feature row.
//
// Five extractors each make a single pass over the same immutable game and
// write into their own fixed-schema accumulator. Their outputs are merged
// by column name into a Record keyed by game id.
package features

import (
	"fmt"

	"github.com/pable/go-nhl-features/internal/model"
)

// Extractor is one independent pass over a game.
type Extractor interface {
	Name() string
	Schema() *Schema
	Extract(g *model.Game) Features
}

// Options selects compatibility behaviour.
type Options struct {
	// LegacyScoreState advances the score only for goals inside the
	// last-minutes window.
	LegacyScoreState bool
	// SkaterStrength buckets special-teams goals by skater counts rather
	// than by the leading situation digit.
	SkaterStrength bool
}

// Fingerprint identifies the options a record was built with. Records
// built under different fingerprints are not interchangeable.
func (o Options) Fingerprint() string {
	score, strength := "score=all-goals", "strength=leading-digit"
	if o.LegacyScoreState {
		score = "score=last-minutes"
	}
	if o.SkaterStrength {
		strength = "strength=skaters"
	}
	return score + ";" + strength
}

// Extractors returns the five extractors in merge order.
func Extractors(opts Options) []Extractor {
	return []Extractor{
		EventCounts{},
		SpatialShots{},
		SpecialTeams{SkaterStrength: opts.SkaterStrength},
		GoalieShots{},
		Situational{LegacyScoreState: opts.LegacyScoreState},
	}
}

// Columns returns the merged column set, in record order.
func Columns(opts Options) []string {
	seen := make(map[string]bool)
	var out []string
	for _, x := range Extractors(opts) {
		for _, n := range x.Schema().Names() {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Extract runs every extractor over g and merges the results.
func Extract(g *model.Game, opts Options) (Record, error) {
	if g == nil {
		return Record{}, fmt.Errorf("nil Game")
	}
	xs := Extractors(opts)
	parts := make([]Features, 0, len(xs))
	for _, x := range xs {
		parts = append(parts, x.Extract(g))
	}
	return Merge(g.ID, parts...)
}
