package models

import "time"

// Invite statuses.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
	InviteStatusExpired  = "expired"
)

// Invite is a game invitation stored in invites/{id}. Pending invites that
// outlive their TTL are swept to expired by the scheduler.
type Invite struct {
	ID        string    `bson:"_id" json:"id"`
	From      string    `bson:"from" json:"from"`
	ToEmail   string    `bson:"toEmail" json:"toEmail"`
	GameID    string    `bson:"gameId" json:"gameId"`
	Status    string    `bson:"status" json:"status"`
	Message   string    `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
