// v0
// internal/score/composite.go

// Package score holds the leaderboard arithmetic shared by every page:
// composite scores over scope/mode buckets, frame-tick time display, cohort
// best/worst highlighting and the per-rank points formulas.
package score

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"pewpewworld/statsboard/internal/records"
)

// Scope splits levels into official and community ones.
type Scope string

// Mode splits runs by player count.
type Mode string

const (
	ScopeAll       Scope = "all"
	ScopeOfficial  Scope = "official"
	ScopeCommunity Scope = "community"

	ModeAll  Mode = "all"
	ModeSolo Mode = "1p"
	ModeDuo  Mode = "2p"
)

// Canonical bucket names used by the speedrun leaderboard.
const (
	Bucket1POfficial  = "score_1p_official"
	Bucket2POfficial  = "score_2p_official"
	Bucket1PCommunity = "score_1p_community"
	Bucket2PCommunity = "score_2p_community"
)

// Bucket is one named score component tagged with its position on both
// filter axes.
type Bucket struct {
	Name  string
	Scope Scope
	Mode  Mode
	Value float64
}

// Selection is the current filter on both axes. Empty values mean all.
type Selection struct {
	Scope Scope
	Mode  Mode
}

func (s Selection) includes(b Bucket) bool {
	scopeOK := s.Scope == "" || s.Scope == ScopeAll || s.Scope == b.Scope
	modeOK := s.Mode == "" || s.Mode == ModeAll || s.Mode == b.Mode
	return scopeOK && modeOK
}

// SpeedrunBuckets lays out the four speedrun buckets of an entry.
func SpeedrunBuckets(e records.LeaderboardEntry) []Bucket {
	return []Bucket{
		{Name: Bucket1POfficial, Scope: ScopeOfficial, Mode: ModeSolo, Value: e.Score1POfficial},
		{Name: Bucket2POfficial, Scope: ScopeOfficial, Mode: ModeDuo, Value: e.Score2POfficial},
		{Name: Bucket1PCommunity, Scope: ScopeCommunity, Mode: ModeSolo, Value: e.Score1PCommunity},
		{Name: Bucket2PCommunity, Scope: ScopeCommunity, Mode: ModeDuo, Value: e.Score2PCommunity},
	}
}

// CompositeScore sums the buckets selected by scope and mode and rounds the
// total to two decimals. visible is false when excludeZero is set and the
// total is exactly zero.
func CompositeScore(buckets []Bucket, scope Scope, mode Mode, excludeZero bool) (total float64, visible bool) {
	sel := Selection{Scope: scope, Mode: mode}
	var sum float64
	for _, b := range buckets {
		if sel.includes(b) {
			sum += b.Value
		}
	}
	total = RoundHalfUp(sum, 2)
	if excludeZero && total == 0 {
		return total, false
	}
	return total, true
}

// BoardRow pairs a leaderboard entry with its composite score.
type BoardRow struct {
	Entry records.LeaderboardEntry
	Score float64
}

// CompositeBoard computes the composite score of every speedrun entry under
// sel, keeping input order. Ordering is left to the table view.
func CompositeBoard(entries []records.LeaderboardEntry, sel Selection, excludeZero bool) []BoardRow {
	out := make([]BoardRow, 0, len(entries))
	for _, e := range entries {
		total, visible := CompositeScore(SpeedrunBuckets(e), sel.Scope, sel.Mode, excludeZero)
		if !visible {
			continue
		}
		out = append(out, BoardRow{Entry: e, Score: total})
	}
	return out
}

// RoundHalfUp rounds x to the given number of decimals, halves going up.
// The scaled value is snapped to six decimals first so binary noise such as
// 1.005*100 = 100.49999999999999 still rounds up.
func RoundHalfUp(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow10(places)
	scaled, err := strconv.ParseFloat(strconv.FormatFloat(x*p, 'f', 6, 64), 64)
	if err != nil {
		scaled = x * p
	}
	return math.Floor(scaled+0.5) / p
}

// FormatPoints renders a score with thousands separators and two decimals.
func FormatPoints(v float64) string {
	return humanize.FormatFloat("#,###.##", RoundHalfUp(v, 2))
}
