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
	"github.com/myhuemungusD/skatehubbamvp/utils"
)

// UserService owns the users collection: signup/login credentials, profile
// upserts and the aggregate game stats counters.
type UserService struct {
	store *db.Store
}

func NewUserService(store *db.Store) *UserService {
	return &UserService{store: store}
}

// EnsureIndexes creates the unique email index. The index is what makes
// concurrent signups with the same address collide instead of both landing.
func (s *UserService) EnsureIndexes(ctx context.Context) error {
	_, err := s.store.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// mapInsertUserErr translates a duplicate-key insert into the taken-email
// refusal.
func mapInsertUserErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return NewError(CodeFailedPrecondition, "An account with this email already exists")
	}
	return err
}

// Create registers a new user with a bcrypt-hashed password and a zeroed
// stats block. Fails with failed-precondition when the email is taken; the
// unique index backstops the pre-check under concurrent signups.
func (s *UserService) Create(ctx context.Context, email, password, displayName string) (*models.User, error) {
	collection := s.store.Collection("users")

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewError(CodeFailedPrecondition, "An account with this email already exists")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = utils.ExtractNameFromEmail(email)
	}

	now := time.Now()
	user := &models.User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := collection.InsertOne(ctx, user); err != nil {
		return nil, mapInsertUserErr(err)
	}
	return user, nil
}

// Authenticate verifies email/password credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.store.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, NewError(CodeUnauthenticated, "Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, NewError(CodeUnauthenticated, "Invalid email or password")
	}
	return &user, nil
}

// Get returns the profile stored in users/{uid}.
func (s *UserService) Get(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.store.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, NewError(CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetEmail resolves a uid to an email address for notifications. Missing
// users resolve to an empty string rather than an error.
func (s *UserService) GetEmail(ctx context.Context, uid string) (string, error) {
	user, err := s.Get(ctx, uid)
	if err != nil {
		if CodeOf(err) == CodeNotFound {
			return "", nil
		}
		return "", err
	}
	return user.Email, nil
}

// EnsureProfile creates the profile document if missing. Safe to call for
// every login; an upsert never clobbers an existing profile.
func (s *UserService) EnsureProfile(ctx context.Context, uid, email, displayName string) error {
	now := time.Now()
	_, err := s.store.Collection("users").UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$setOnInsert": bson.M{
			"email":       email,
			"displayName": displayName,
			"totalPoints": 0,
			"stats":       models.UserStats{},
			"createdAt":   now,
			"updatedAt":   now,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// gameResultInc builds the counter bumps for a finished game. result is
// "won" or "lost".
func gameResultInc(result string) bson.M {
	inc := bson.M{"stats.gamesPlayed": 1}
	switch result {
	case "won":
		inc["stats.gamesWon"] = 1
	case "lost":
		inc["stats.gamesLost"] = 1
	}
	return inc
}

// trickField names the counter a trick outcome bumps.
func trickField(landed bool) string {
	if landed {
		return "stats.tricksLanded"
	}
	return "stats.tricksMissed"
}

// RecordGameResult bumps the aggregate win/loss counters after a finished
// game.
func (s *UserService) RecordGameResult(ctx context.Context, uid, result string) error {
	_, err := s.store.Collection("users").UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{
			"$inc": gameResultInc(result),
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}

// RecordTrick bumps the landed or missed trick counter.
func (s *UserService) RecordTrick(ctx context.Context, uid string, landed bool) error {
	_, err := s.store.Collection("users").UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{
			"$inc": bson.M{trickField(landed): 1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}
