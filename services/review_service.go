package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/myhuemungusD/skatehubbamvp/db"
	"github.com/myhuemungusD/skatehubbamvp/models"
)

// ReviewService decides pending submissions. Each decision is a single
// store transaction crossing the submission, the owner's points, the
// approvals audit log and (for approvals) the activity feed: either all of
// it commits or none of it does. A submission is decided exactly once —
// the loser of a concurrent race observes the updated status and fails its
// precondition check.
type ReviewService struct {
	store *db.Store
	cache *LeaderboardCache
}

func NewReviewService(store *db.Store, cache *LeaderboardCache) *ReviewService {
	return &ReviewService{store: store, cache: cache}
}

// ApproveResult is the caller-facing outcome of an approval.
type ApproveResult struct {
	Success       bool   `json:"success"`
	SubmissionID  string `json:"submissionId"`
	PointsAwarded int    `json:"pointsAwarded"`
	Message       string `json:"message"`
}

// RejectResult is the caller-facing outcome of a rejection.
type RejectResult struct {
	Success      bool   `json:"success"`
	SubmissionID string `json:"submissionId"`
	Message      string `json:"message"`
}

// checkReviewable enforces the shared review preconditions: the submission
// must still be pending and the reviewer must not be its owner. verb names
// the attempted decision for the error messages.
func checkReviewable(sub *models.Submission, reviewerUID, verb string) error {
	if sub.Status != models.SubmissionStatusPending {
		return Errorf(CodeFailedPrecondition, "Cannot %s submission with status: %s", verb, sub.Status)
	}
	if sub.OwnerUID == reviewerUID {
		return Errorf(CodePermissionDenied, "Cannot %s your own submission", verb)
	}
	return nil
}

// challengePoints resolves the point value of a challenge. A missing
// challenge record is not an error; it degrades to a zero award.
func challengePoints(challenge *models.Challenge) int {
	if challenge == nil {
		return 0
	}
	return challenge.Points
}

func newApproval(submissionID, reviewerUID, decision string, points int, reason string, now time.Time) models.Approval {
	return models.Approval{
		ID:              uuid.NewString(),
		SubmissionID:    submissionID,
		ReviewedBy:      reviewerUID,
		Decision:        decision,
		PointsAwarded:   points,
		ReviewedAt:      now,
		RejectionReason: reason,
	}
}

func newActivity(submissionID, ownerUID string, points int, now time.Time) models.Activity {
	return models.Activity{
		ID:            uuid.NewString(),
		Type:          models.ActivityTypeSubmissionApproved,
		UserID:        ownerUID,
		SubmissionID:  submissionID,
		PointsAwarded: points,
		CreatedAt:     now,
	}
}

// Approve marks a pending submission approved, awards the challenge's
// points to its owner and appends the approval and activity records, all
// within one transaction. The reviewer's role was already checked at the
// boundary; no writes can originate from an unauthorized caller.
func (s *ReviewService) Approve(ctx context.Context, submissionID, reviewerUID string) (*ApproveResult, error) {
	if submissionID == "" {
		return nil, NewError(CodeInvalidArgument, "Submission ID is required")
	}

	result, err := s.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		sub, err := s.getSubmission(sc, submissionID)
		if err != nil {
			return nil, err
		}
		if err := checkReviewable(sub, reviewerUID, "approve"); err != nil {
			return nil, err
		}

		challenge, err := s.getChallenge(sc, sub.ChallengeID)
		if err != nil {
			return nil, err
		}
		points := challengePoints(challenge)
		now := time.Now()

		update := bson.M{"$set": bson.M{
			"status":     models.SubmissionStatusApproved,
			"approvedAt": now,
			"reviewedAt": now,
			"reviewedBy": reviewerUID,
			"updatedAt":  now,
		}}
		if _, err := s.store.Collection("submissions").UpdateOne(sc, bson.M{"_id": submissionID}, update); err != nil {
			return nil, err
		}

		// Upsert so a missing profile is created rather than losing the award.
		_, err = s.store.Collection("users").UpdateOne(sc,
			bson.M{"_id": sub.OwnerUID},
			bson.M{
				"$inc":         bson.M{"totalPoints": points},
				"$setOnInsert": bson.M{"createdAt": now, "stats": models.UserStats{}},
				"$set":         bson.M{"updatedAt": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, err
		}

		if _, err := s.store.Collection("approvals").InsertOne(sc,
			newApproval(submissionID, reviewerUID, models.DecisionApproved, points, "", now)); err != nil {
			return nil, err
		}
		if _, err := s.store.Collection("activity").InsertOne(sc,
			newActivity(submissionID, sub.OwnerUID, points, now)); err != nil {
			return nil, err
		}

		return &ApproveResult{
			Success:       true,
			SubmissionID:  submissionID,
			PointsAwarded: points,
			Message:       fmt.Sprintf("Submission approved successfully. %d points awarded.", points),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	// The owner's points changed; drop the cached leaderboard. Best-effort.
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("review: failed to invalidate leaderboard cache: %v", err)
	}

	return result.(*ApproveResult), nil
}

// Reject marks a pending submission rejected and appends the audit record.
// Rejections award no points and deliberately emit no activity.
func (s *ReviewService) Reject(ctx context.Context, submissionID, reviewerUID, rejectionReason string) (*RejectResult, error) {
	if submissionID == "" {
		return nil, NewError(CodeInvalidArgument, "Submission ID is required")
	}

	result, err := s.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		sub, err := s.getSubmission(sc, submissionID)
		if err != nil {
			return nil, err
		}
		if err := checkReviewable(sub, reviewerUID, "reject"); err != nil {
			return nil, err
		}

		now := time.Now()
		set := bson.M{
			"status":     models.SubmissionStatusRejected,
			"rejectedAt": now,
			"reviewedAt": now,
			"reviewedBy": reviewerUID,
			"updatedAt":  now,
		}
		if rejectionReason != "" {
			set["rejectionReason"] = rejectionReason
		}
		if _, err := s.store.Collection("submissions").UpdateOne(sc, bson.M{"_id": submissionID}, bson.M{"$set": set}); err != nil {
			return nil, err
		}

		if _, err := s.store.Collection("approvals").InsertOne(sc,
			newApproval(submissionID, reviewerUID, models.DecisionRejected, 0, rejectionReason, now)); err != nil {
			return nil, err
		}

		message := "Submission rejected successfully"
		if rejectionReason != "" {
			message = fmt.Sprintf("Submission rejected: %s", rejectionReason)
		}
		return &RejectResult{
			Success:      true,
			SubmissionID: submissionID,
			Message:      message,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*RejectResult), nil
}

func (s *ReviewService) getSubmission(sc mongo.SessionContext, id string) (*models.Submission, error) {
	var sub models.Submission
	err := s.store.Collection("submissions").FindOne(sc, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, NewError(CodeNotFound, "Submission not found")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// getChallenge returns nil without error when the challenge is missing.
func (s *ReviewService) getChallenge(sc mongo.SessionContext, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.store.Collection("challenges").FindOne(sc, bson.M{"_id": id}).Decode(&challenge)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}
