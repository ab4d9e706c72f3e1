// v0
// internal/score/score_test.go
package score

import (
	"errors"
	"math"
	"testing"

	"pewpewworld/statsboard/internal/records"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleBuckets() []Bucket {
	return SpeedrunBuckets(records.LeaderboardEntry{
		Score1POfficial:  10.111,
		Score2POfficial:  20.222,
		Score1PCommunity: 30.333,
		Score2PCommunity: 40.334,
	})
}

func TestCompositeScoreAllBuckets(t *testing.T) {
	got, visible := CompositeScore(sampleBuckets(), ScopeAll, ModeAll, false)
	if !visible {
		t.Fatalf("expected visible row")
	}
	if !approx(got, 101) {
		t.Fatalf("expected 101, got %v", got)
	}
}

func TestCompositeScoreSingleBucket(t *testing.T) {
	tests := []struct {
		scope Scope
		mode  Mode
		want  float64
	}{
		{ScopeOfficial, ModeSolo, 10.11},
		{ScopeOfficial, ModeDuo, 20.22},
		{ScopeCommunity, ModeSolo, 30.33},
		{ScopeCommunity, ModeDuo, 40.33},
		{ScopeOfficial, ModeAll, 30.33},
		{ScopeAll, ModeDuo, 60.56},
	}
	for _, tc := range tests {
		got, _ := CompositeScore(sampleBuckets(), tc.scope, tc.mode, false)
		if !approx(got, tc.want) {
			t.Fatalf("%s/%s: expected %v, got %v", tc.scope, tc.mode, tc.want, got)
		}
	}
}

func TestCompositeScoreExcludeZero(t *testing.T) {
	buckets := SpeedrunBuckets(records.LeaderboardEntry{Score1PCommunity: 12})
	if _, visible := CompositeScore(buckets, ScopeOfficial, ModeAll, true); visible {
		t.Fatalf("expected zero row to be hidden")
	}
	if _, visible := CompositeScore(buckets, ScopeOfficial, ModeAll, false); !visible {
		t.Fatalf("expected zero row to stay when not excluding")
	}
}

func TestCompositeBoard(t *testing.T) {
	entries := []records.LeaderboardEntry{
		{PlayerUUID: "a", Score1POfficial: 5},
		{PlayerUUID: "b", Score2PCommunity: 7},
		{PlayerUUID: "c", Score2POfficial: 1.005},
	}
	rows := CompositeBoard(entries, Selection{Scope: ScopeOfficial}, true)
	if len(rows) != 2 || rows[0].Entry.PlayerUUID != "a" || rows[1].Entry.PlayerUUID != "c" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if !approx(rows[1].Score, 1.01) {
		t.Fatalf("expected half-up rounding to 1.01, got %v", rows[1].Score)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{0.125, 2, 0.13},
		{2.675, 2, 2.68},
		{0.1 + 0.2, 2, 0.3},
		{3.49999, 0, 3},
		{1.23456, 4, 1.2346},
	}
	for _, tc := range tests {
		if got := RoundHalfUp(tc.in, tc.places); !approx(got, tc.want) {
			t.Fatalf("RoundHalfUp(%v, %d) = %v, want %v", tc.in, tc.places, got, tc.want)
		}
	}
}

func TestFormatPoints(t *testing.T) {
	if got := FormatPoints(1234.5); got != "1,234.50" {
		t.Fatalf("unexpected formatting %q", got)
	}
	if got := FormatPoints(200); got != "200.00" {
		t.Fatalf("unexpected formatting %q", got)
	}
}

func TestFormatTicksAsTime(t *testing.T) {
	tests := map[int64]string{
		0:     "0:00.00",
		1:     "0:00.03",
		45:    "0:01.50",
		1800:  "1:00.00",
		-5400: "3:00.00",
		1799:  "0:59.97",
		18030: "10:01.00",
	}
	for raw, want := range tests {
		if got := FormatTicksAsTime(raw); got != want {
			t.Fatalf("FormatTicksAsTime(%d) = %q, want %q", raw, got, want)
		}
	}
}

func TestFormatSecondsCarries(t *testing.T) {
	if got := FormatSeconds(59.999); got != "1:00.00" {
		t.Fatalf("expected carry into minutes, got %q", got)
	}
	if got := FormatSeconds(61.996); got != "1:02.00" {
		t.Fatalf("expected carry into seconds, got %q", got)
	}
	if got := FormatSeconds(math.NaN()); got != "0:00.00" {
		t.Fatalf("expected zero for NaN, got %q", got)
	}
}

func TestCohortExtremes(t *testing.T) {
	got := CohortExtremes(map[string]float64{"A": 10, "B": 10, "C": 5})
	if !got["A"].IsBest || !got["B"].IsBest || got["C"].IsBest {
		t.Fatalf("unexpected best flags %+v", got)
	}
	if got["A"].IsWorst || got["B"].IsWorst || !got["C"].IsWorst {
		t.Fatalf("unexpected worst flags %+v", got)
	}
	for player, cell := range got {
		if cell.IsBest && cell.IsWorst {
			t.Fatalf("player %s flagged both best and worst", player)
		}
	}
}

func TestCohortExtremesTimeScores(t *testing.T) {
	// Time scores are stored negated; the faster run has the larger value.
	got := CohortExtremes(map[string]float64{"fast": -900, "slow": -1200})
	if !got["fast"].IsBest || !got["slow"].IsWorst {
		t.Fatalf("unexpected flags %+v", got)
	}
}

func TestCohortExtremesDegenerate(t *testing.T) {
	if got := CohortExtremes(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	single := CohortExtremes(map[string]float64{"A": 3, "B": math.NaN()})
	if len(single) != 1 || single["A"].IsBest || single["A"].IsWorst {
		t.Fatalf("expected no flags for a single value, got %+v", single)
	}
	tied := CohortExtremes(map[string]float64{"A": 7, "B": 7})
	if !tied["A"].IsBest || !tied["B"].IsBest || tied["A"].IsWorst || tied["B"].IsWorst {
		t.Fatalf("expected all best and none worst on ties, got %+v", tied)
	}
}

func TestCohortRowsAndGrid(t *testing.T) {
	scores := []records.LevelScore{
		{LevelUUID: "waves", Accounts: "a", Value: 10},
		{LevelUUID: "fury", Accounts: "a|b", Value: 40},
		{LevelUUID: "waves", Accounts: "b", Value: 12},
		{LevelUUID: "waves", Accounts: "a", Value: 15},
		{LevelUUID: "waves", Accounts: "z", Value: 99},
	}
	rows := CohortRows(scores, []string{"a", "b"})
	if len(rows) != 2 || rows[0].Level != "waves" || rows[1].Level != "fury" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[0].Scores["a"] != 15 || rows[0].Scores["b"] != 12 || len(rows[0].Scores) != 2 {
		t.Fatalf("unexpected waves scores %+v", rows[0].Scores)
	}
	grid := CohortGrid(rows)
	if !grid[0].Cells["a"].IsBest || !grid[0].Cells["b"].IsWorst {
		t.Fatalf("unexpected waves highlighting %+v", grid[0])
	}
	if !grid[1].Cells["a"].IsBest || !grid[1].Cells["b"].IsBest {
		t.Fatalf("expected shared co-op run to tie, got %+v", grid[1])
	}
}

func TestPointsForRank(t *testing.T) {
	got, err := PointsForRank(64, 1)
	if err != nil || math.Abs(got-200) > 1e-9 {
		t.Fatalf("expected 200, got %v (%v)", got, err)
	}
	got, err = PointsForRank(64, 4)
	if err != nil || math.Abs(got-100) > 1e-9 {
		t.Fatalf("expected 100, got %v (%v)", got, err)
	}
	for _, args := range [][2]int{{0, 1}, {1, 0}, {-3, 2}} {
		if _, err := PointsForRank(args[0], args[1]); !errors.Is(err, ErrDomain) {
			t.Fatalf("expected domain error for %v, got %v", args, err)
		}
	}
}

func TestPositionPoints(t *testing.T) {
	tests := map[int]int{1: 2500, 2: 2250, 3: 2000, 4: 1750, 10: 1000, 11: 950, 25: 250}
	for rank, want := range tests {
		got, err := PositionPoints(rank)
		if err != nil || got != want {
			t.Fatalf("PositionPoints(%d) = %d (%v), want %d", rank, got, err, want)
		}
	}
	for _, rank := range []int{0, 26} {
		if _, err := PositionPoints(rank); !errors.Is(err, ErrDomain) {
			t.Fatalf("expected domain error for rank %d", rank)
		}
	}
}

func TestAggregateSpeedrun(t *testing.T) {
	scores := []records.LevelScore{
		// old version on waves is ignored
		{LevelUUID: "waves", LevelVersion: 1, Accounts: "x", Value: -10, ValueType: 1, Timestamp: 1},
		{LevelUUID: "waves", LevelVersion: 2, Accounts: "a", Value: -900, ValueType: 1, Timestamp: 5},
		{LevelUUID: "waves", LevelVersion: 2, Accounts: "b", Value: -900, ValueType: 1, Timestamp: 3},
		{LevelUUID: "waves", LevelVersion: 2, Accounts: "a", Value: -1000, ValueType: 1, Timestamp: 1},
		{LevelUUID: "custom", LevelVersion: 0, Accounts: "a|0", Value: -50, ValueType: 1, Timestamp: 1},
		// not a time score
		{LevelUUID: "custom", LevelVersion: 0, Accounts: "c", Value: 5000, ValueType: 0, Timestamp: 1},
	}
	board := AggregateSpeedrun(scores)
	if len(board) != 2 {
		t.Fatalf("expected two players, got %+v", board)
	}

	// waves: n=2, b is rank 1 (older tie), a rank 2; a's second run is not paid.
	rank1, _ := PointsForRank(2, 1)
	rank2, _ := PointsForRank(2, 2)
	// custom: participants a and 0, a paid once in the 2p community bucket.
	duo, _ := PointsForRank(2, 1)

	byID := map[string]records.LeaderboardEntry{}
	for _, e := range board {
		byID[e.PlayerUUID] = e
	}
	if b := byID["b"]; !approx(b.Score1POfficial, RoundHalfUp(rank1, 2)) {
		t.Fatalf("unexpected score for b: %+v", b)
	}
	a := byID["a"]
	if !approx(a.Score1POfficial, RoundHalfUp(rank2, 2)) || !approx(a.Score2PCommunity, RoundHalfUp(duo, 2)) {
		t.Fatalf("unexpected score for a: %+v", a)
	}
	if _, ok := byID["0"]; ok {
		t.Fatalf("placeholder account must not score")
	}
	if board[0].PlayerUUID != "a" {
		t.Fatalf("expected a to lead on total, got %s", board[0].PlayerUUID)
	}
}

func TestAggregateMonthly(t *testing.T) {
	scores := []records.LevelScore{
		{LevelUUID: "l1", Accounts: "a", Value: 100, Timestamp: 2, Country: "FR"},
		{LevelUUID: "l1", Accounts: "b", Value: 90, Timestamp: 1},
		{LevelUUID: "l2", Accounts: "b", Value: 300, Timestamp: 1},
		{LevelUUID: "l2", Accounts: "a", Value: 200, Timestamp: 1},
		{LevelUUID: "l2", Accounts: "c", Value: 999, Timestamp: 1, Type: 1},
		{LevelUUID: "l3", Accounts: "c", Value: 999, Timestamp: 1},
	}
	board := AggregateMonthly(scores, []string{"l1", "l2", "l1"})
	if len(board) != 2 {
		t.Fatalf("expected two players, got %+v", board)
	}
	for _, e := range board {
		if e.Score != 4750 || e.Wrs != 1 || e.AveragePlace != 1.5 {
			t.Fatalf("unexpected entry %+v", e)
		}
	}
	if board[0].PlayerUUID != "a" || board[0].Country != "FR" {
		t.Fatalf("expected stable order with a first, got %+v", board)
	}
}

func TestAggregateMonthlyTopN(t *testing.T) {
	scores := make([]records.LevelScore, 0, 30)
	for i := 0; i < 30; i++ {
		scores = append(scores, records.LevelScore{LevelUUID: "l", Accounts: string(rune('A' + i)), Value: float64(100 - i)})
	}
	board := AggregateMonthly(scores, []string{"l"})
	if len(board) != MonthlyTopN {
		t.Fatalf("expected %d players, got %d", MonthlyTopN, len(board))
	}
	if last := board[len(board)-1]; last.Score != 250 || last.AveragePlace != 25 {
		t.Fatalf("unexpected last entry %+v", last)
	}
}
