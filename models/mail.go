package models

import "time"

// MailBody is the subject/text pair of an outgoing email.
type MailBody struct {
	Subject string `bson:"subject" json:"subject"`
	Text    string `bson:"text" json:"text"`
}

// Mail is a queued notification document in the mail collection. The core
// only enqueues these; delivery is an external concern.
type Mail struct {
	ID        string    `bson:"_id" json:"id"`
	To        []string  `bson:"to" json:"to"`
	Message   MailBody  `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
