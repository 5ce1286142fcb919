package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreCommandsDescribeGameStore(t *testing.T) {
	for _, c := range []struct {
		name, long string
	}{
		{"drop", dropCmd.Long},
		{"list", listCmd.Long},
		{"sql", sqlCmd.Long},
	} {
		assert.Contains(t, c.long, "game", c.name)
		assert.Contains(t, c.long, "feature", c.name)
	}
	// The schema listing must track the columns build writes.
	assert.Contains(t, sqlCmd.Long, "event_count, options)")
	assert.Contains(t, sqlCmd.Long, "game_features(game_id, ordinal, name, value)")
}
