package models

import "time"

// Submission statuses. A submission is decided exactly once:
// pending -> approved or pending -> rejected.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// Review decisions recorded in the approvals audit log.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// ActivityTypeSubmissionApproved is the only activity type emitted by the
// review workflow; rejections do not produce activity.
const ActivityTypeSubmissionApproved = "submission-approved"

// Submission is a moderation-queued item stored in submissions/{id}.
type Submission struct {
	ID              string     `bson:"_id" json:"id"`
	OwnerUID        string     `bson:"ownerUid" json:"ownerUid"`
	ChallengeID     string     `bson:"challengeId" json:"challengeId"`
	VideoURL        string     `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Status          string     `bson:"status" json:"status"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
	ReviewedAt      *time.Time `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy      string     `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ApprovedAt      *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// Challenge defines the point value awarded when a submission against it is
// approved. Read-only from the review workflow's perspective.
type Challenge struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Points    int       `bson:"points" json:"points"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Approval is the append-only audit record of a review decision.
type Approval struct {
	ID              string    `bson:"_id" json:"id"`
	SubmissionID    string    `bson:"submissionId" json:"submissionId"`
	ReviewedBy      string    `bson:"reviewedBy" json:"reviewedBy"`
	Decision        string    `bson:"decision" json:"decision"`
	PointsAwarded   int       `bson:"pointsAwarded" json:"pointsAwarded"`
	ReviewedAt      time.Time `bson:"reviewedAt" json:"reviewedAt"`
	RejectionReason string    `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// Activity is an append-only event feeding the points leaderboard.
type Activity struct {
	ID            string    `bson:"_id" json:"id"`
	Type          string    `bson:"type" json:"type"`
	UserID        string    `bson:"userId" json:"userId"`
	SubmissionID  string    `bson:"submissionId" json:"submissionId"`
	PointsAwarded int       `bson:"pointsAwarded" json:"pointsAwarded"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
