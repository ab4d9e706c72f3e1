// v0
// internal/history/history.go

// Package history replays archived XP and blitz leaderboards into per-player
// change logs.
package history

import (
	"sort"

	"pewpewworld/statsboard/internal/records"
)

// NameChange records a username in effect from Timestamp on.
type NameChange struct {
	Timestamp float64 `json:"timestamp"`
	Name      string  `json:"name"`
}

// ValueChange records a numeric value in effect from Timestamp on.
type ValueChange struct {
	Timestamp float64 `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Changes is the change log of a single account.
type Changes struct {
	Usernames []NameChange  `json:"usernames"`
	XP        []ValueChange `json:"xp_changes"`
	Blitz     []ValueChange `json:"blitz_changes"`
}

// Result holds every tracked account together with the newest snapshot
// timestamp consumed from each archive kind. Timestamps are Unix seconds
// with the fractional part kept, so snapshots within one second stay
// distinct.
type Result struct {
	Players   map[string]*Changes
	LastXP    float64
	LastBlitz float64
}

// Track replays the XP and blitz archives in timestamp order. A change is
// appended only when it differs from the last recorded value. Snapshots not
// newer than the previous cursor of their kind are skipped, and rows without
// an account id are ignored.
func Track(xp, blitz []records.Archive) Result {
	res := Result{Players: make(map[string]*Changes)}
	res.LastXP = replay(res.Players, xp, func(c *Changes, ts float64, row records.ArchiveRow) {
		c.XP = appendValue(c.XP, ts, row.XP)
	})
	res.LastBlitz = replay(res.Players, blitz, func(c *Changes, ts float64, row records.ArchiveRow) {
		c.Blitz = appendValue(c.Blitz, ts, row.BSR)
	})
	return res
}

func replay(players map[string]*Changes, archives []records.Archive, apply func(*Changes, float64, records.ArchiveRow)) float64 {
	ordered := make([]records.Archive, len(archives))
	copy(ordered, archives)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	var last float64
	for _, snap := range ordered {
		if snap.Timestamp <= last {
			continue
		}
		for _, row := range snap.Rows {
			if row.Acc == "" {
				continue
			}
			c, ok := players[row.Acc]
			if !ok {
				c = &Changes{}
				players[row.Acc] = c
			}
			if n := len(c.Usernames); n == 0 || c.Usernames[n-1].Name != row.Name {
				c.Usernames = append(c.Usernames, NameChange{Timestamp: snap.Timestamp, Name: row.Name})
			}
			apply(c, snap.Timestamp, row)
		}
		last = snap.Timestamp
	}
	return last
}

func appendValue(changes []ValueChange, ts float64, v float64) []ValueChange {
	if n := len(changes); n > 0 && changes[n-1].Value == v {
		return changes
	}
	return append(changes, ValueChange{Timestamp: ts, Value: v})
}
