// Package directory holds the immutable per-deployment snapshot of
// player attributes used for head-to-head lookups.
package directory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sportstat/tennis-api/internal/models"
)

// ErrPlayerNotFound is returned when neither an exact nor a substring
// match exists for a name. User-facing, never fatal to the process.
var ErrPlayerNotFound = errors.New("player not found in directory")

// Snapshot is an immutable view of every known player's most recent
// attributes. Safe to share across concurrent readers without locking;
// a rebuild produces a new Snapshot rather than mutating this one.
type Snapshot struct {
	players map[string]models.PlayerProfile
	names   []string // sorted, fixes the substring fallback scan order
}

// Build constructs a snapshot from the given season of cleaned matches.
// Winners are scanned first, then losers, and the first occurrence of a
// name wins -- later rows never overwrite an entry.
func Build(matches []models.CleanedMatch) *Snapshot {
	players := make(map[string]models.PlayerProfile)

	for _, m := range matches {
		if _, ok := players[m.WinnerName]; !ok && m.WinnerName != "" {
			players[m.WinnerName] = models.PlayerProfile{
				Name:   m.WinnerName,
				Rank:   m.WinnerRank,
				Age:    m.WinnerAge,
				Height: m.WinnerHeight,
				Hand:   m.WinnerHand,
			}
		}
	}
	for _, m := range matches {
		if _, ok := players[m.LoserName]; !ok && m.LoserName != "" {
			players[m.LoserName] = models.PlayerProfile{
				Name:   m.LoserName,
				Rank:   m.LoserRank,
				Age:    m.LoserAge,
				Height: m.LoserHeight,
				Hand:   m.LoserHand,
			}
		}
	}

	return fromMap(players)
}

func fromMap(players map[string]models.PlayerProfile) *Snapshot {
	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Snapshot{players: players, names: names}
}

// Lookup resolves a player name. Exact matches always win; otherwise a
// case-insensitive substring scan runs over the names in alphabetical
// order so the fallback is deterministic, not container-order luck.
func (s *Snapshot) Lookup(name string) (models.PlayerProfile, error) {
	if p, ok := s.players[name]; ok {
		return p, nil
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle != "" {
		for _, candidate := range s.names {
			if strings.Contains(strings.ToLower(candidate), needle) {
				return s.players[candidate], nil
			}
		}
	}

	return models.PlayerProfile{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
}

// Names returns the sorted player names. The slice is shared; callers
// must not modify it.
func (s *Snapshot) Names() []string {
	return s.names
}

// Len reports the number of players in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.players)
}
