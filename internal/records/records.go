// v0
// internal/records/records.go

// Package records decodes the JSON payloads handed over by the fetch layer
// into the typed rows consumed by the scoring and table code.
package records

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformed reports a payload that is not a JSON array.
var ErrMalformed = errors.New("malformed payload")

// ValueTypeTime marks level scores that store elapsed frame ticks.
const ValueTypeTime = 1

// LeaderboardEntry is one row of a published leaderboard. Speedrun boards
// fill the four bucket fields, monthly boards fill Score, Wrs and
// AveragePlace.
type LeaderboardEntry struct {
	PlayerUUID       string  `json:"player_uuid"`
	Country          string  `json:"country"`
	Score            float64 `json:"score"`
	Wrs              int     `json:"wrs"`
	AveragePlace     float64 `json:"average_place"`
	Score1POfficial  float64 `json:"score_1p_official"`
	Score2POfficial  float64 `json:"score_2p_official"`
	Score1PCommunity float64 `json:"score_1p_community"`
	Score2PCommunity float64 `json:"score_2p_community"`
}

// LevelScore is a single submission on a level.
type LevelScore struct {
	LevelUUID    string `json:"level_uuid"`
	LevelVersion int    `json:"level_version"`
	// Accounts holds one id, or several joined by '|' for co-op runs.
	Accounts  string  `json:"account_ids"`
	Value     float64 `json:"value"`
	ValueType int     `json:"value_type"`
	// Type is the game mode; 0 is standard.
	Type      int    `json:"type"`
	Timestamp int64  `json:"date"`
	Country   string `json:"country"`
}

// AccountIDs splits the co-op account list.
func (s LevelScore) AccountIDs() []string {
	if s.Accounts == "" {
		return nil
	}
	return strings.Split(s.Accounts, "|")
}

// IsTime reports whether Value holds frame ticks.
func (s LevelScore) IsTime() bool {
	return s.ValueType == ValueTypeTime
}

// Player is an entry of the player directory.
type Player struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
}

// ArchiveRow is a player line inside an archived XP or blitz leaderboard.
type ArchiveRow struct {
	Acc  string  `json:"acc"`
	Name string  `json:"name"`
	XP   float64 `json:"xp"`
	BSR  float64 `json:"bsr"`
}

// Archive is one timestamped snapshot of an archived leaderboard.
type Archive struct {
	Timestamp float64      `json:"timestamp"`
	Rows      []ArchiveRow `json:"data"`
}

// ParseLeaderboard decodes a leaderboard document.
func ParseLeaderboard(data []byte) ([]LeaderboardEntry, error) {
	items, err := array(data)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardEntry, 0, len(items))
	for _, v := range items {
		out = append(out, LeaderboardEntry{
			PlayerUUID:       firstOf(v, "player_uuid", "account_id", "player_id").String(),
			Country:          v.Get("country").String(),
			Score:            v.Get("score").Float(),
			Wrs:              int(v.Get("wrs").Int()),
			AveragePlace:     v.Get("average_place").Float(),
			Score1POfficial:  v.Get("score_1p_official").Float(),
			Score2POfficial:  v.Get("score_2p_official").Float(),
			Score1PCommunity: v.Get("score_1p_community").Float(),
			Score2PCommunity: v.Get("score_2p_community").Float(),
		})
	}
	return out, nil
}

// ParseLevelScores decodes level submissions. Both the score-dump field
// names (account_ids, value, date) and the API names (player_id, score,
// timestamp) are accepted.
func ParseLevelScores(data []byte) ([]LevelScore, error) {
	items, err := array(data)
	if err != nil {
		return nil, err
	}
	out := make([]LevelScore, 0, len(items))
	for _, v := range items {
		out = append(out, LevelScore{
			LevelUUID:    v.Get("level_uuid").String(),
			LevelVersion: int(v.Get("level_version").Int()),
			Accounts:     firstOf(v, "account_ids", "player_id").String(),
			Value:        firstOf(v, "value", "score").Float(),
			ValueType:    int(v.Get("value_type").Int()),
			Type:         int(v.Get("type").Int()),
			Timestamp:    firstOf(v, "date", "timestamp").Int(),
			Country:      v.Get("country").String(),
		})
	}
	return out, nil
}

// ParsePlayers decodes the player directory.
func ParsePlayers(data []byte) ([]Player, error) {
	items, err := array(data)
	if err != nil {
		return nil, err
	}
	out := make([]Player, 0, len(items))
	for _, v := range items {
		out = append(out, Player{
			AccountID: v.Get("account_id").String(),
			Username:  v.Get("username").String(),
		})
	}
	return out, nil
}

// ParseArchive decodes a monthly archive file: an array of
// {"timestamp": ..., "data": [...]} snapshots.
func ParseArchive(data []byte) ([]Archive, error) {
	items, err := array(data)
	if err != nil {
		return nil, err
	}
	out := make([]Archive, 0, len(items))
	for _, snap := range items {
		rows := snap.Get("data").Array()
		archive := Archive{
			Timestamp: snap.Get("timestamp").Float(),
			Rows:      make([]ArchiveRow, 0, len(rows)),
		}
		for _, row := range rows {
			archive.Rows = append(archive.Rows, ArchiveRow{
				Acc:  row.Get("acc").String(),
				Name: row.Get("name").String(),
				XP:   row.Get("xp").Float(),
				BSR:  row.Get("bsr").Float(),
			})
		}
		out = append(out, archive)
	}
	return out, nil
}

// DirectoryIndex maps account ids to usernames. Later duplicates win.
func DirectoryIndex(players []Player) map[string]string {
	index := make(map[string]string, len(players))
	for _, p := range players {
		if p.AccountID == "" {
			continue
		}
		index[p.AccountID] = p.Username
	}
	return index
}

func array(data []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, ErrMalformed
	}
	return doc.Array(), nil
}

func firstOf(v gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := v.Get(p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
