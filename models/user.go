package models

import "time"

// UserStats holds lifetime game counters, updated when a game finishes.
type UserStats struct {
	GamesPlayed  int `bson:"gamesPlayed" json:"gamesPlayed"`
	GamesWon     int `bson:"gamesWon" json:"gamesWon"`
	GamesLost    int `bson:"gamesLost" json:"gamesLost"`
	TricksLanded int `bson:"tricksLanded" json:"tricksLanded"`
	TricksMissed int `bson:"tricksMissed" json:"tricksMissed"`
}

// User is the profile document stored in users/{uid}.
// TotalPoints is incremented exclusively by the submission approval path.
type User struct {
	UID          string    `bson:"_id" json:"uid"`
	Email        string    `bson:"email" json:"email"`
	DisplayName  string    `bson:"displayName" json:"displayName"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Roles        []string  `bson:"roles,omitempty" json:"roles,omitempty"`
	TotalPoints  int       `bson:"totalPoints" json:"totalPoints"`
	Stats        UserStats `bson:"stats" json:"stats"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
