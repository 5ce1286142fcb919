package features

import (
	"strconv"

	"github.com/pable/go-nhl-features/internal/model"
)

// PeriodBucket is the period split a goal/shot counter is routed to.
type PeriodBucket string

const (
	PeriodREG1 PeriodBucket = "REG1"
	PeriodREG2 PeriodBucket = "REG2"
	PeriodREG3 PeriodBucket = "REG3"
	PeriodOT   PeriodBucket = "OT"
	PeriodSO   PeriodBucket = "SO"
)

// PeriodBuckets lists the tracked buckets in schema order.
var PeriodBuckets = []PeriodBucket{PeriodREG1, PeriodREG2, PeriodREG3, PeriodOT, PeriodSO}

// BucketOf tags regulation periods REG{number}; any other period type is
// passed through unchanged.
func BucketOf(p model.PeriodDescriptor) PeriodBucket {
	if p.Type == "REG" {
		return PeriodBucket("REG" + strconv.Itoa(p.Number))
	}
	return PeriodBucket(p.Type)
}

// Tracked reports whether b has counters.
func (b PeriodBucket) Tracked() bool {
	for _, t := range PeriodBuckets {
		if b == t {
			return true
		}
	}
	return false
}

// TracksBlocks reports whether blocked shots are counted for b. Shootouts
// have no blocked shots.
func (b PeriodBucket) TracksBlocks() bool {
	return b.Tracked() && b != PeriodSO
}
