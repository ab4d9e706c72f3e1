// v0
// internal/score/aggregate.go
package score

import (
	"sort"

	"pewpewworld/statsboard/internal/records"
)

// OfficialLevels are the levels shipped with the game. Every other level
// counts as community content.
var OfficialLevels = map[string]struct{}{
	"asteroids":   {},
	"waves":       {},
	"eskiv":       {},
	"fury":        {},
	"hexagon":     {},
	"ceasefire":   {},
	"partitioner": {},
	"symbiosis":   {},
	"pandemonium": {},
	"oasis":       {},
}

// placeholderAccount fills the second slot of incomplete co-op runs.
const placeholderAccount = "0"

// IsOfficial reports whether level is one of OfficialLevels.
func IsOfficial(level string) bool {
	_, ok := OfficialLevels[level]
	return ok
}

// AggregateSpeedrun builds the speedrun leaderboard from raw submissions.
// Only time scores on the newest version of each level count. On each level
// the rank-r run earns PointsForRank(n, r), n being the number of distinct
// accounts on the level, and every account on the run receives them in the
// bucket matching the level scope and the run's player count. An account is
// paid at most once per level and player count.
func AggregateSpeedrun(scores []records.LevelScore) []records.LeaderboardEntry {
	timed := make([]records.LevelScore, 0, len(scores))
	for _, s := range scores {
		if s.IsTime() {
			timed = append(timed, s)
		}
	}
	levels, order := latestByLevel(timed)

	players := make(map[string]*records.LeaderboardEntry)
	var seq []string
	entryFor := func(id, country string) *records.LeaderboardEntry {
		if e, ok := players[id]; ok {
			return e
		}
		e := &records.LeaderboardEntry{PlayerUUID: id, Country: country}
		players[id] = e
		seq = append(seq, id)
		return e
	}

	for _, level := range order {
		runs := levels[level]
		sortRuns(runs)

		participants := make(map[string]struct{})
		for _, run := range runs {
			for _, id := range run.AccountIDs() {
				participants[id] = struct{}{}
			}
		}
		n := len(participants)
		if n == 0 {
			continue
		}

		official := IsOfficial(level)
		paidSolo := make(map[string]struct{})
		paidDuo := make(map[string]struct{})
		for idx, run := range runs {
			points, err := PointsForRank(n, idx+1)
			if err != nil {
				break
			}
			ids := run.AccountIDs()
			duo := len(ids) > 1
			paid := paidSolo
			if duo {
				paid = paidDuo
			}
			for _, id := range ids {
				if id == placeholderAccount {
					continue
				}
				if _, done := paid[id]; done {
					continue
				}
				paid[id] = struct{}{}
				addToBucket(entryFor(id, run.Country), official, duo, points)
			}
		}
	}

	out := make([]records.LeaderboardEntry, 0, len(seq))
	for _, id := range seq {
		e := *players[id]
		e.Score1POfficial = RoundHalfUp(e.Score1POfficial, 2)
		e.Score2POfficial = RoundHalfUp(e.Score2POfficial, 2)
		e.Score1PCommunity = RoundHalfUp(e.Score1PCommunity, 2)
		e.Score2PCommunity = RoundHalfUp(e.Score2PCommunity, 2)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return speedrunTotal(out[i]) > speedrunTotal(out[j])
	})
	return out
}

func addToBucket(e *records.LeaderboardEntry, official, duo bool, points float64) {
	switch {
	case official && duo:
		e.Score2POfficial += points
	case official:
		e.Score1POfficial += points
	case duo:
		e.Score2PCommunity += points
	default:
		e.Score1PCommunity += points
	}
}

func speedrunTotal(e records.LeaderboardEntry) float64 {
	return e.Score1POfficial + e.Score2POfficial + e.Score1PCommunity + e.Score2PCommunity
}

// AggregateMonthly builds the monthly leaderboard over the selected levels.
// Only standard-mode scores on the newest level version count, the best
// MonthlyTopN runs of each level earn PositionPoints, first places are
// counted as world records and the average placement is kept to four
// decimals.
func AggregateMonthly(scores []records.LevelScore, levels []string) []records.LeaderboardEntry {
	selected := make(map[string]struct{}, len(levels))
	levelOrder := make([]string, 0, len(levels))
	for _, level := range levels {
		if level == "" {
			continue
		}
		if _, dup := selected[level]; dup {
			continue
		}
		selected[level] = struct{}{}
		levelOrder = append(levelOrder, level)
	}

	standard := make([]records.LevelScore, 0, len(scores))
	for _, s := range scores {
		if _, ok := selected[s.LevelUUID]; ok && s.Type == 0 {
			standard = append(standard, s)
		}
	}
	byLevel, _ := latestByLevel(standard)

	type tally struct {
		entry  records.LeaderboardEntry
		places int
	}
	players := make(map[string]*tally)
	var seq []string

	for _, level := range levelOrder {
		runs := byLevel[level]
		sortRuns(runs)
		if len(runs) > MonthlyTopN {
			runs = runs[:MonthlyTopN]
		}
		for idx, run := range runs {
			position := idx + 1
			points, err := PositionPoints(position)
			if err != nil {
				break
			}
			t, ok := players[run.Accounts]
			if !ok {
				t = &tally{entry: records.LeaderboardEntry{PlayerUUID: run.Accounts, Country: run.Country}}
				players[run.Accounts] = t
				seq = append(seq, run.Accounts)
			}
			t.entry.Score += float64(points)
			t.entry.AveragePlace += float64(position)
			t.places++
			if position == 1 {
				t.entry.Wrs++
			}
		}
	}

	out := make([]records.LeaderboardEntry, 0, len(seq))
	for _, id := range seq {
		t := players[id]
		e := t.entry
		e.AveragePlace = RoundHalfUp(e.AveragePlace/float64(t.places), 4)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// latestByLevel groups scores by level, keeping only those on the newest
// version seen for the level. Levels are returned in first-seen order.
func latestByLevel(scores []records.LevelScore) (map[string][]records.LevelScore, []string) {
	newest := make(map[string]int)
	for _, s := range scores {
		if v, ok := newest[s.LevelUUID]; !ok || s.LevelVersion > v {
			newest[s.LevelUUID] = s.LevelVersion
		}
	}
	grouped := make(map[string][]records.LevelScore, len(newest))
	var order []string
	for _, s := range scores {
		if s.LevelVersion < newest[s.LevelUUID] {
			continue
		}
		if _, ok := grouped[s.LevelUUID]; !ok {
			order = append(order, s.LevelUUID)
		}
		grouped[s.LevelUUID] = append(grouped[s.LevelUUID], s)
	}
	return grouped, order
}

// sortRuns orders runs best first: higher value, then older submission.
func sortRuns(runs []records.LevelScore) {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Value != runs[j].Value {
			return runs[i].Value > runs[j].Value
		}
		return runs[i].Timestamp < runs[j].Timestamp
	})
}
