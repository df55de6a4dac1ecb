package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/myhuemungusD/skatehubbamvp/db"
	"github.com/myhuemungusD/skatehubbamvp/models"
)

// SubmissionService owns the challenge catalog and submission intake.
// Review decisions live in ReviewService.
type SubmissionService struct {
	store *db.Store
}

func NewSubmissionService(store *db.Store) *SubmissionService {
	return &SubmissionService{store: store}
}

// CreateChallenge adds a challenge to the catalog.
func (s *SubmissionService) CreateChallenge(ctx context.Context, title string, points int, createdBy string) (*models.Challenge, error) {
	if title == "" {
		return nil, NewError(CodeInvalidArgument, "Challenge title is required")
	}
	if points < 0 {
		return nil, NewError(CodeInvalidArgument, "Challenge points must not be negative")
	}

	challenge := &models.Challenge{
		ID:        uuid.NewString(),
		Title:     title,
		Points:    points,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if _, err := s.store.Collection("challenges").InsertOne(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// ListChallenges returns the catalog, newest first.
func (s *SubmissionService) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.store.Collection("challenges").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// GetChallenge loads one challenge.
func (s *SubmissionService) GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.store.Collection("challenges").FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err == mongo.ErrNoDocuments {
		return nil, NewError(CodeNotFound, "Challenge not found")
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Create files a new pending submission against a challenge.
func (s *SubmissionService) Create(ctx context.Context, ownerUID, challengeID, videoURL string) (*models.Submission, error) {
	if challengeID == "" {
		return nil, NewError(CodeInvalidArgument, "Challenge ID is required")
	}

	now := time.Now()
	sub := &models.Submission{
		ID:          uuid.NewString(),
		OwnerUID:    ownerUID,
		ChallengeID: challengeID,
		VideoURL:    videoURL,
		Status:      models.SubmissionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.store.Collection("submissions").InsertOne(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListPending returns submissions awaiting review, oldest first so the
// queue is worked in order.
func (s *SubmissionService) ListPending(ctx context.Context, limit int64) ([]models.Submission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(limit)
	cursor, err := s.store.Collection("submissions").Find(ctx,
		bson.M{"status": models.SubmissionStatusPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
