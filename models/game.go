package models

import "time"

// Game statuses.
const (
	GameStatusWaiting    = "waiting"
	GameStatusInProgress = "in-progress"
	GameStatusFinished   = "finished"
)

// Game is one SKATE match stored in games/{id}.
// Letters maps each participant UID to their letter progression ("" up to "SKATE").
// Turn must equal one of the two participants while the game is in progress.
type Game struct {
	ID        string            `bson:"_id" json:"id"`
	CreatedBy string            `bson:"createdBy" json:"createdBy"`
	Opponent  string            `bson:"opponent" json:"opponent"` // empty while waiting
	Letters   map[string]string `bson:"letters" json:"letters"`
	Turn      string            `bson:"turn" json:"turn"`
	Status    string            `bson:"status" json:"status"`
	Winner    string            `bson:"winner,omitempty" json:"winner,omitempty"`
	Loser     string            `bson:"loser,omitempty" json:"loser,omitempty"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Round is one trick attempt within a game, stored in rounds/{id} keyed by GameID.
// Rounds are immutable once written; setter rounds are always landed.
type Round struct {
	ID         string    `bson:"_id" json:"id"`
	GameID     string    `bson:"gameId" json:"gameId"`
	Player     string    `bson:"player" json:"player"`
	VideoURL   string    `bson:"videoUrl" json:"videoUrl"`
	TrickName  string    `bson:"trickName" json:"trickName"`
	IsResponse bool      `bson:"isResponse" json:"isResponse"`
	Landed     bool      `bson:"landed" json:"landed"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
