package models

// PlayerProfile is a player's most recent known attributes, built once
// per directory snapshot and immutable afterwards.
type PlayerProfile struct {
	Name   string  `json:"name"`
	Rank   int     `json:"rank"`
	Age    float64 `json:"age"`
	Height float64 `json:"height"`
	Hand   string  `json:"hand"`
}
