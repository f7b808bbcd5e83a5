package models

import "time"

// UnrankedSentinel replaces a missing ranking during cleaning. It sorts
// after every real ranking, so an unranked player is always the underdog
// on the ranking feature.
const UnrankedSentinel = 9999

// UnknownHand replaces a missing handedness code during cleaning.
const UnknownHand = "U"

// MatchRecord is one raw row from the match feed. Numeric fields are
// pointers because source files routinely leave them blank; cleaning
// imputes them rather than dropping the row.
type MatchRecord struct {
	WinnerName   string   `json:"winner_name"`
	LoserName    string   `json:"loser_name"`
	WinnerRank   *int     `json:"winner_rank"`
	LoserRank    *int     `json:"loser_rank"`
	WinnerAge    *float64 `json:"winner_age"`
	LoserAge     *float64 `json:"loser_age"`
	WinnerHeight *float64 `json:"winner_ht"`
	LoserHeight  *float64 `json:"loser_ht"`
	WinnerHand   string   `json:"winner_hand"`
	LoserHand    string   `json:"loser_hand"`
	Surface      string   `json:"surface"`
	TourneyLevel string   `json:"tourney_level"`
	Round        string   `json:"round"`
	TourneyDate  string   `json:"tourney_date"` // YYYYMMDD
}

// CleanedMatch is a MatchRecord after normalization: every field needed
// downstream is present, missing values imputed per the batch rules.
type CleanedMatch struct {
	WinnerName   string    `json:"winner_name"`
	LoserName    string    `json:"loser_name"`
	WinnerRank   int       `json:"winner_rank"`
	LoserRank    int       `json:"loser_rank"`
	WinnerAge    float64   `json:"winner_age"`
	LoserAge     float64   `json:"loser_age"`
	WinnerHeight float64   `json:"winner_ht"`
	LoserHeight  float64   `json:"loser_ht"`
	WinnerHand   string    `json:"winner_hand"`
	LoserHand    string    `json:"loser_hand"`
	Surface      string    `json:"surface"`
	TourneyLevel string    `json:"tourney_level"`
	Round        string    `json:"round"`
	Date         time.Time `json:"date"` // zero when the source date was malformed
}
