package services

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapInsertUserErrDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	err := mapInsertUserErr(dup)
	if CodeOf(err) != CodeFailedPrecondition {
		t.Errorf("code = %s, want %s", CodeOf(err), CodeFailedPrecondition)
	}
	if got, want := MessageOf(err), "An account with this email already exists"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestMapInsertUserErrPassthrough(t *testing.T) {
	boom := errors.New("connection reset")
	if err := mapInsertUserErr(boom); err != boom {
		t.Errorf("unrelated error rewritten to %v", err)
	}
}

func TestGameResultInc(t *testing.T) {
	won := gameResultInc("won")
	if won["stats.gamesPlayed"] != 1 || won["stats.gamesWon"] != 1 {
		t.Errorf("won inc = %v", won)
	}
	if _, ok := won["stats.gamesLost"]; ok {
		t.Errorf("won inc bumps gamesLost: %v", won)
	}

	lost := gameResultInc("lost")
	if lost["stats.gamesPlayed"] != 1 || lost["stats.gamesLost"] != 1 {
		t.Errorf("lost inc = %v", lost)
	}
	if _, ok := lost["stats.gamesWon"]; ok {
		t.Errorf("lost inc bumps gamesWon: %v", lost)
	}
}

func TestTrickField(t *testing.T) {
	if got := trickField(true); got != "stats.tricksLanded" {
		t.Errorf("trickField(true) = %q", got)
	}
	if got := trickField(false); got != "stats.tricksMissed" {
		t.Errorf("trickField(false) = %q", got)
	}
}
