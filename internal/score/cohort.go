// v0
// internal/score/cohort.go
package score

import (
	"math"

	"pewpewworld/statsboard/internal/records"
)

// RankedValue is a player's cell in a comparison row.
type RankedValue struct {
	Value   float64 `json:"value"`
	IsBest  bool    `json:"isBest"`
	IsWorst bool    `json:"isWorst"`
}

// CohortExtremes flags the best and worst values of one comparison row.
// Missing players are simply absent from row; NaN values count as missing.
// A higher stored value is always better, time scores included, because
// those are stored negated.
//
// With fewer than two values nothing is flagged. When every value ties they
// are all best and none is worst.
func CohortExtremes(row map[string]float64) map[string]RankedValue {
	out := make(map[string]RankedValue, len(row))
	hi, lo := math.Inf(-1), math.Inf(1)
	present := 0
	for player, v := range row {
		if math.IsNaN(v) {
			continue
		}
		out[player] = RankedValue{Value: v}
		present++
		hi = math.Max(hi, v)
		lo = math.Min(lo, v)
	}
	if present < 2 {
		return out
	}
	for player, cell := range out {
		cell.IsBest = cell.Value == hi
		cell.IsWorst = hi != lo && cell.Value == lo
		out[player] = cell
	}
	return out
}

// LevelRow holds the scores of every compared player on one level.
type LevelRow struct {
	Level  string
	Scores map[string]float64
}

// RankedRow is a LevelRow after highlighting.
type RankedRow struct {
	Level string                 `json:"level"`
	Cells map[string]RankedValue `json:"cells"`
}

// CohortGrid highlights every row independently, keeping row order.
func CohortGrid(rows []LevelRow) []RankedRow {
	out := make([]RankedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, RankedRow{Level: row.Level, Cells: CohortExtremes(row.Scores)})
	}
	return out
}

// CohortRows builds comparison rows for the given players from raw level
// submissions. Each player keeps their best value per level and levels appear
// in order of first submission by any cohort member. Co-op runs count for
// every cohort member on them.
func CohortRows(scores []records.LevelScore, cohort []string) []LevelRow {
	members := make(map[string]struct{}, len(cohort))
	for _, id := range cohort {
		members[id] = struct{}{}
	}

	index := make(map[string]int)
	var rows []LevelRow
	for _, s := range scores {
		for _, id := range s.AccountIDs() {
			if _, ok := members[id]; !ok {
				continue
			}
			pos, ok := index[s.LevelUUID]
			if !ok {
				pos = len(rows)
				index[s.LevelUUID] = pos
				rows = append(rows, LevelRow{Level: s.LevelUUID, Scores: make(map[string]float64)})
			}
			if cur, seen := rows[pos].Scores[id]; !seen || s.Value > cur {
				rows[pos].Scores[id] = s.Value
			}
		}
	}
	return rows
}
