// Package skate implements the SKATE letter-progression game rules as pure
// functions over game state. Persistence and notification are the caller's
// concern; nothing here touches the store.
package skate

import (
	"errors"
	"time"

	"github.com/myhuemungusD/skatehubbamvp/models"
)

// Full letters spelled by the losing player.
const FullLetters = "SKATE"

// progression is the fixed five-step loss ladder. Every letters value a
// participant can hold is one of these, in order.
var progression = []string{"", "S", "SK", "SKA", "SKAT", "SKATE"}

var (
	ErrNotWaiting    = errors.New("game is not waiting for an opponent")
	ErrNotInProgress = errors.New("game is not in progress")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrNotAPlayer    = errors.New("you are not a player in this game")
)

// AddLetter advances a letters value one step on the ladder. Unknown values
// and values already at SKATE collapse to SKATE, so duplicate miss events
// cannot advance past the end.
func AddLetter(current string) string {
	for i, step := range progression {
		if step == current && i < len(progression)-1 {
			return progression[i+1]
		}
	}
	return FullLetters
}

// HasLost reports whether a player has spelled all of SKATE.
func HasLost(letters string) bool {
	return letters == FullLetters
}

// NextPlayer returns the participant who is not currentPlayer.
func NextPlayer(currentPlayer, createdBy, opponent string) string {
	if currentPlayer == createdBy {
		return opponent
	}
	return createdBy
}

// ValidateMove reports whether playerID may act on the game right now,
// with a human-readable reason when it may not. It never mutates the game;
// the mutating operations below assume this check already passed.
func ValidateMove(g *models.Game, playerID string) (bool, string) {
	if g.Turn != playerID {
		return false, "It's not your turn"
	}
	if g.Status != models.GameStatusInProgress {
		return false, "Game is not in progress"
	}
	if playerID != g.CreatedBy && playerID != g.Opponent {
		return false, "You are not a player in this game"
	}
	return true, ""
}

// Initialize transitions a waiting game to in-progress: the opponent joins,
// both letter tallies reset and the creator takes the first turn.
func Initialize(g *models.Game, opponentID string, now time.Time) error {
	if g.Status != models.GameStatusWaiting {
		return ErrNotWaiting
	}
	g.Opponent = opponentID
	g.Letters = map[string]string{
		g.CreatedBy: "",
		opponentID:  "",
	}
	g.Turn = g.CreatedBy
	g.Status = models.GameStatusInProgress
	g.UpdatedAt = now
	return nil
}

// MissResult describes the outcome of a missed trick.
type MissResult struct {
	NewLetters   string `json:"newLetters"`
	GameFinished bool   `json:"gameFinished"`
	Winner       string `json:"winner,omitempty"`
	Loser        string `json:"loser,omitempty"`
}

// ApplyMiss gives playerID their next letter. If that spells SKATE the game
// finishes (turn is left alone, the opponent wins); otherwise the turn flips.
func ApplyMiss(g *models.Game, playerID string, now time.Time) (MissResult, error) {
	if g.Status != models.GameStatusInProgress {
		return MissResult{}, ErrNotInProgress
	}
	newLetters := AddLetter(g.Letters[playerID])
	g.Letters[playerID] = newLetters
	g.UpdatedAt = now

	if HasLost(newLetters) {
		g.Status = models.GameStatusFinished
		g.Winner = NextPlayer(playerID, g.CreatedBy, g.Opponent)
		g.Loser = playerID
		return MissResult{
			NewLetters:   newLetters,
			GameFinished: true,
			Winner:       g.Winner,
			Loser:        g.Loser,
		}, nil
	}

	g.Turn = NextPlayer(playerID, g.CreatedBy, g.Opponent)
	return MissResult{NewLetters: newLetters}, nil
}

// ApplyLand records a landed trick: no letter, turn flips to the opponent.
// Returns the new turn holder.
func ApplyLand(g *models.Game, playerID string, now time.Time) (string, error) {
	if g.Status != models.GameStatusInProgress {
		return "", ErrNotInProgress
	}
	g.Turn = NextPlayer(playerID, g.CreatedBy, g.Opponent)
	g.UpdatedAt = now
	return g.Turn, nil
}

// Stats summarizes one player's standing in a game.
type Stats struct {
	LettersCount int  `json:"lettersCount"`
	IsClose      bool `json:"isClose"` // SKAT: one miss from losing
	HasLost      bool `json:"hasLost"`
}

// PlayerStats derives a player's standing from the game's letters map.
func PlayerStats(letters map[string]string, playerID string) Stats {
	playerLetters := letters[playerID]
	return Stats{
		LettersCount: len(playerLetters),
		IsClose:      len(playerLetters) >= 4,
		HasLost:      HasLost(playerLetters),
	}
}
