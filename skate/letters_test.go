package skate

import (
	"testing"
	"time"

	"github.com/myhuemungusD/skatehubbamvp/models"
)

func newTestGame() *models.Game {
	return &models.Game{
		ID:        "g1",
		CreatedBy: "u1",
		Opponent:  "u2",
		Letters:   map[string]string{"u1": "", "u2": ""},
		Turn:      "u1",
		Status:    models.GameStatusInProgress,
	}
}

func TestAddLetterProgression(t *testing.T) {
	steps := []string{"", "S", "SK", "SKA", "SKAT", "SKATE"}
	for i := 0; i < len(steps)-1; i++ {
		if got := AddLetter(steps[i]); got != steps[i+1] {
			t.Errorf("AddLetter(%q) = %q, want %q", steps[i], got, steps[i+1])
		}
	}
}

func TestAddLetterIdempotentAtSkate(t *testing.T) {
	if got := AddLetter("SKATE"); got != "SKATE" {
		t.Errorf("AddLetter(SKATE) = %q, want SKATE", got)
	}
	// Garbage input collapses to SKATE rather than inventing a ladder step.
	if got := AddLetter("XYZ"); got != "SKATE" {
		t.Errorf("AddLetter(XYZ) = %q, want SKATE", got)
	}
}

func TestLettersNeverSkip(t *testing.T) {
	letters := ""
	want := []string{"S", "SK", "SKA"}
	for i, expected := range want {
		letters = AddLetter(letters)
		if letters != expected {
			t.Fatalf("miss %d: letters = %q, want %q", i+1, letters, expected)
		}
	}
}

func TestApplyLandFlipsTurn(t *testing.T) {
	g := newTestGame()
	next, err := ApplyLand(g, "u1", time.Now())
	if err != nil {
		t.Fatalf("ApplyLand: %v", err)
	}
	if next != "u2" || g.Turn != "u2" {
		t.Errorf("turn = %q, want u2", g.Turn)
	}
	if g.Letters["u1"] != "" || g.Letters["u2"] != "" {
		t.Errorf("letters changed on a landed trick: %v", g.Letters)
	}
}

func TestApplyMissFlipsTurnWhileGameContinues(t *testing.T) {
	g := newTestGame()
	res, err := ApplyMiss(g, "u1", time.Now())
	if err != nil {
		t.Fatalf("ApplyMiss: %v", err)
	}
	if res.GameFinished {
		t.Fatal("game finished after a single miss")
	}
	if res.NewLetters != "S" {
		t.Errorf("newLetters = %q, want S", res.NewLetters)
	}
	if g.Turn != "u2" {
		t.Errorf("turn = %q, want u2", g.Turn)
	}
}

func TestApplyMissFinishesGame(t *testing.T) {
	g := newTestGame()
	g.Letters["u1"] = "SKAT"

	res, err := ApplyMiss(g, "u1", time.Now())
	if err != nil {
		t.Fatalf("ApplyMiss: %v", err)
	}
	if !res.GameFinished {
		t.Fatal("expected game to finish")
	}
	if res.NewLetters != "SKATE" {
		t.Errorf("newLetters = %q, want SKATE", res.NewLetters)
	}
	if res.Winner != "u2" || res.Loser != "u1" {
		t.Errorf("winner/loser = %q/%q, want u2/u1", res.Winner, res.Loser)
	}
	if g.Status != models.GameStatusFinished {
		t.Errorf("status = %q, want finished", g.Status)
	}
	if g.Turn != "u1" {
		t.Errorf("turn changed on game end: %q", g.Turn)
	}
}

func TestApplyMissAfterFinishKeepsOutcome(t *testing.T) {
	g := newTestGame()
	g.Letters["u1"] = "SKAT"

	if _, err := ApplyMiss(g, "u1", time.Now()); err != nil {
		t.Fatalf("first miss: %v", err)
	}
	winner, loser := g.Winner, g.Loser

	// A duplicate miss event on a finished game is refused outright.
	if _, err := ApplyMiss(g, "u1", time.Now()); err != ErrNotInProgress {
		t.Errorf("second miss err = %v, want ErrNotInProgress", err)
	}
	if g.Letters["u1"] != "SKATE" {
		t.Errorf("letters = %q, want SKATE", g.Letters["u1"])
	}
	if g.Winner != winner || g.Loser != loser {
		t.Errorf("winner/loser changed: %q/%q", g.Winner, g.Loser)
	}
}

func TestInitialize(t *testing.T) {
	g := &models.Game{
		ID:        "g2",
		CreatedBy: "u1",
		Letters:   map[string]string{"u1": ""},
		Status:    models.GameStatusWaiting,
	}
	if err := Initialize(g, "u2", time.Now()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if g.Status != models.GameStatusInProgress {
		t.Errorf("status = %q, want in-progress", g.Status)
	}
	if g.Turn != "u1" {
		t.Errorf("turn = %q, want creator", g.Turn)
	}
	if g.Letters["u1"] != "" || g.Letters["u2"] != "" {
		t.Errorf("letters not reset: %v", g.Letters)
	}

	if err := Initialize(g, "u3", time.Now()); err != ErrNotWaiting {
		t.Errorf("re-initialize err = %v, want ErrNotWaiting", err)
	}
}

func TestValidateMove(t *testing.T) {
	g := newTestGame()

	if ok, _ := ValidateMove(g, "u1"); !ok {
		t.Error("expected u1's move to be valid")
	}
	if ok, reason := ValidateMove(g, "u2"); ok || reason != "It's not your turn" {
		t.Errorf("out-of-turn move: ok=%v reason=%q", ok, reason)
	}

	g.Turn = "u3"
	if ok, reason := ValidateMove(g, "u3"); ok || reason != "You are not a player in this game" {
		t.Errorf("outsider move: ok=%v reason=%q", ok, reason)
	}

	g.Turn = "u1"
	g.Status = models.GameStatusFinished
	if ok, reason := ValidateMove(g, "u1"); ok || reason != "Game is not in progress" {
		t.Errorf("finished-game move: ok=%v reason=%q", ok, reason)
	}
}

func TestPlayerStats(t *testing.T) {
	letters := map[string]string{"u1": "SKAT", "u2": "S"}

	s := PlayerStats(letters, "u1")
	if s.LettersCount != 4 || !s.IsClose || s.HasLost {
		t.Errorf("u1 stats = %+v", s)
	}

	s = PlayerStats(letters, "u2")
	if s.LettersCount != 1 || s.IsClose || s.HasLost {
		t.Errorf("u2 stats = %+v", s)
	}

	s = PlayerStats(letters, "missing")
	if s.LettersCount != 0 || s.IsClose || s.HasLost {
		t.Errorf("missing player stats = %+v", s)
	}
}
