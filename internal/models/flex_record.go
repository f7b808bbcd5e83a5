package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnmarshalJSON implements flexible unmarshaling for match rows arriving
// from the acquisition collaborator. CSV-derived feeds serialize every
// value as a quoted string; this coerces quoted numerics to the native
// pointer fields transparently and maps blanks to nil.
func (m *MatchRecord) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias MatchRecord
	a := (*Alias)(m)

	// Fast path: all types match natively
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	get := func(key string) string {
		rv, ok := raw[key]
		if !ok {
			return ""
		}
		var s string
		if err := json.Unmarshal(rv, &s); err == nil {
			return strings.TrimSpace(s)
		}
		// Unquoted numeric: keep the raw token
		return strings.TrimSpace(string(rv))
	}

	m.WinnerName = get("winner_name")
	m.LoserName = get("loser_name")
	m.WinnerHand = get("winner_hand")
	m.LoserHand = get("loser_hand")
	m.Surface = get("surface")
	m.TourneyLevel = get("tourney_level")
	m.Round = get("round")
	m.TourneyDate = get("tourney_date")
	m.WinnerRank = parseOptionalInt(get("winner_rank"))
	m.LoserRank = parseOptionalInt(get("loser_rank"))
	m.WinnerAge = parseOptionalFloat(get("winner_age"))
	m.LoserAge = parseOptionalFloat(get("loser_age"))
	m.WinnerHeight = parseOptionalFloat(get("winner_ht"))
	m.LoserHeight = parseOptionalFloat(get("loser_ht"))

	return nil
}

// RecordFromRow builds a MatchRecord from a CSV row keyed by header name.
// Blank cells become nil pointers so cleaning can impute them.
func RecordFromRow(row map[string]string) MatchRecord {
	return MatchRecord{
		WinnerName:   strings.TrimSpace(row["winner_name"]),
		LoserName:    strings.TrimSpace(row["loser_name"]),
		WinnerRank:   parseOptionalInt(row["winner_rank"]),
		LoserRank:    parseOptionalInt(row["loser_rank"]),
		WinnerAge:    parseOptionalFloat(row["winner_age"]),
		LoserAge:     parseOptionalFloat(row["loser_age"]),
		WinnerHeight: parseOptionalFloat(row["winner_ht"]),
		LoserHeight:  parseOptionalFloat(row["loser_ht"]),
		WinnerHand:   strings.TrimSpace(row["winner_hand"]),
		LoserHand:    strings.TrimSpace(row["loser_hand"]),
		Surface:      strings.TrimSpace(row["surface"]),
		TourneyLevel: strings.TrimSpace(row["tourney_level"]),
		Round:        strings.TrimSpace(row["round"]),
		TourneyDate:  strings.TrimSpace(row["tourney_date"]),
	}
}

func parseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// Ranks show up as "3.0" in some seasons; ParseFloat then truncate
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
