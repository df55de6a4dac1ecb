package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/myhuemungusD/skatehubbamvp/db"
	"github.com/myhuemungusD/skatehubbamvp/models"
	"github.com/myhuemungusD/skatehubbamvp/skate"
)

// GameService orchestrates SKATE matches: creation, joining, round uploads
// and round outcomes. Every read-modify-write on a game document runs inside
// a store transaction so concurrent outcome submissions for the same game
// serialize instead of overwriting each other.
type GameService struct {
	store  *db.Store
	users  *UserService
	notify *NotifyService
}

func NewGameService(store *db.Store, users *UserService, notify *NotifyService) *GameService {
	return &GameService{store: store, users: users, notify: notify}
}

// Create opens a new game in waiting status. The opponent slot stays empty
// until someone joins.
func (s *GameService) Create(ctx context.Context, creatorUID string) (*models.Game, error) {
	now := time.Now()
	game := &models.Game{
		ID:        uuid.NewString(),
		CreatedBy: creatorUID,
		Opponent:  "",
		Letters:   map[string]string{creatorUID: ""},
		Turn:      "",
		Status:    models.GameStatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.store.Collection("games").InsertOne(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Get loads a game by id.
func (s *GameService) Get(ctx context.Context, gameID string) (*models.Game, error) {
	var game models.Game
	err := s.store.Collection("games").FindOne(ctx, bson.M{"_id": gameID}).Decode(&game)
	if err == mongo.ErrNoDocuments {
		return nil, NewError(CodeNotFound, "Game not found")
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListForUser returns games the user created or joined, newest first.
func (s *GameService) ListForUser(ctx context.Context, uid string) ([]models.Game, error) {
	filter := bson.M{"$or": []bson.M{{"createdBy": uid}, {"opponent": uid}}}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := s.store.Collection("games").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Join puts an opponent into a waiting game and starts it: both letter
// tallies reset and the creator takes the first turn.
func (s *GameService) Join(ctx context.Context, gameID, opponentUID string) (*models.Game, error) {
	result, err := s.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		game, err := s.getForUpdate(sc, gameID)
		if err != nil {
			return nil, err
		}
		if game.CreatedBy == opponentUID {
			return nil, NewError(CodePermissionDenied, "Cannot join your own game")
		}
		if err := skate.Initialize(game, opponentUID, time.Now()); err != nil {
			return nil, Errorf(CodeFailedPrecondition, "Cannot join game with status: %s", game.Status)
		}

		update := bson.M{"$set": bson.M{
			"opponent":  game.Opponent,
			"letters":   game.Letters,
			"turn":      game.Turn,
			"status":    game.Status,
			"updatedAt": game.UpdatedAt,
		}}
		if _, err := s.store.Collection("games").UpdateOne(sc, bson.M{"_id": gameID}, update); err != nil {
			return nil, err
		}
		return game, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Game), nil
}

// CreateRound records a trick upload: the immutable round document is
// written, the turn flips to the opponent and a turn notification is queued
// after the commit. Setter rounds are always landed; only responses can miss.
func (s *GameService) CreateRound(ctx context.Context, gameID, playerID, videoURL, trickName string, isResponse, landed bool) (*models.Round, error) {
	if trickName == "" {
		trickName = "Unnamed Trick"
	}
	if !isResponse {
		landed = true
	}

	var nextPlayer string
	result, err := s.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		game, err := s.getForUpdate(sc, gameID)
		if err != nil {
			return nil, err
		}
		if ok, reason := skate.ValidateMove(game, playerID); !ok {
			return nil, NewError(CodeFailedPrecondition, reason)
		}

		round := &models.Round{
			ID:         uuid.NewString(),
			GameID:     gameID,
			Player:     playerID,
			VideoURL:   videoURL,
			TrickName:  trickName,
			IsResponse: isResponse,
			Landed:     landed,
			CreatedAt:  time.Now(),
		}
		if _, err := s.store.Collection("rounds").InsertOne(sc, round); err != nil {
			return nil, err
		}

		nextPlayer = skate.NextPlayer(playerID, game.CreatedBy, game.Opponent)
		update := bson.M{"$set": bson.M{"turn": nextPlayer, "updatedAt": time.Now()}}
		if _, err := s.store.Collection("games").UpdateOne(sc, bson.M{"_id": gameID}, update); err != nil {
			return nil, err
		}
		return round, nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort turn notification; the committed round and turn switch
	// stand even if this fails.
	s.notifyTurn(ctx, nextPlayer, gameID)

	return result.(*models.Round), nil
}

// ListRounds returns a game's rounds in creation order.
func (s *GameService) ListRounds(ctx context.Context, gameID string) ([]models.Round, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.store.Collection("rounds").Find(ctx, bson.M{"gameId": gameID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rounds []models.Round
	if err := cursor.All(ctx, &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

// RecordLandedTrick flips the turn after a landed response. Letters are
// untouched. Returns the new turn holder.
func (s *GameService) RecordLandedTrick(ctx context.Context, gameID, playerID string) (string, error) {
	var nextPlayer string
	_, err := s.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		game, err := s.getForUpdate(sc, gameID)
		if err != nil {
			return nil, err
		}
		if ok, reason := skate.ValidateMove(game, playerID); !ok {
			return nil, NewError(CodeFailedPrecondition, reason)
		}

		nextPlayer, err = skate.ApplyLand(game, playerID, time.Now())
		if err != nil {
			return nil, NewError(CodeFailedPrecondition, err.Error())
		}

		update := bson.M{"$set": bson.M{"turn": game.Turn, "updatedAt": game.UpdatedAt}}
		if _, err := s.store.Collection("games").UpdateOne(sc, bson.M{"_id": gameID}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}

	s.recordTrick(ctx, gameID, playerID, true)
	s.notifyTurn(ctx, nextPlayer, gameID)
	return nextPlayer, nil
}

// RecordMissedTrick gives the acting player their next letter. A player who
// spells SKATE loses on the spot; otherwise the turn flips. The win/loss
// notifications and stats updates run after the commit and never roll the
// game state back.
func (s *GameService) RecordMissedTrick(ctx context.Context, gameID, playerID string) (*skate.MissResult, error) {
	var game *models.Game
	result, err := s.store.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var err error
		game, err = s.getForUpdate(sc, gameID)
		if err != nil {
			return nil, err
		}
		if ok, reason := skate.ValidateMove(game, playerID); !ok {
			return nil, NewError(CodeFailedPrecondition, reason)
		}

		res, err := skate.ApplyMiss(game, playerID, time.Now())
		if err != nil {
			return nil, NewError(CodeFailedPrecondition, err.Error())
		}

		update := bson.M{"$set": bson.M{
			"letters":   game.Letters,
			"turn":      game.Turn,
			"status":    game.Status,
			"winner":    game.Winner,
			"loser":     game.Loser,
			"updatedAt": game.UpdatedAt,
		}}
		if _, err := s.store.Collection("games").UpdateOne(sc, bson.M{"_id": gameID}, update); err != nil {
			return nil, err
		}
		return &res, nil
	})
	if err != nil {
		return nil, err
	}

	res := result.(*skate.MissResult)
	s.recordTrick(ctx, gameID, playerID, false)
	if res.GameFinished {
		s.afterGameFinished(ctx, gameID, res.Winner, res.Loser)
	} else {
		s.notifyTurn(ctx, game.Turn, gameID)
	}
	return res, nil
}

// getForUpdate loads the game inside the caller's transaction context.
func (s *GameService) getForUpdate(sc mongo.SessionContext, gameID string) (*models.Game, error) {
	var game models.Game
	err := s.store.Collection("games").FindOne(sc, bson.M{"_id": gameID}).Decode(&game)
	if err == mongo.ErrNoDocuments {
		return nil, NewError(CodeNotFound, "Game not found")
	}
	if err != nil {
		return nil, err
	}
	if game.Letters == nil {
		game.Letters = map[string]string{}
	}
	return &game, nil
}

// recordTrick bumps the player's trick counters after a committed outcome.
// Best effort, same as the other post-commit side effects.
func (s *GameService) recordTrick(ctx context.Context, gameID, playerID string, landed bool) {
	if err := s.users.RecordTrick(ctx, playerID, landed); err != nil {
		log.Printf("game %s: failed to update trick stats for %s: %v", gameID, playerID, err)
	}
}

func (s *GameService) notifyTurn(ctx context.Context, playerUID, gameID string) {
	email, err := s.users.GetEmail(ctx, playerUID)
	if err != nil {
		log.Printf("game %s: failed to resolve email for %s: %v", gameID, playerUID, err)
		return
	}
	if err := s.notify.QueueTurnEmail(ctx, email, gameID); err != nil {
		log.Printf("game %s: failed to queue turn email: %v", gameID, err)
	}
}

// afterGameFinished runs the post-commit side effects of a finished game:
// outcome emails for both players and the win/loss stats counters. Failures
// are logged; the finished game stands regardless.
func (s *GameService) afterGameFinished(ctx context.Context, gameID, winnerUID, loserUID string) {
	winnerEmail, err := s.users.GetEmail(ctx, winnerUID)
	if err != nil {
		log.Printf("game %s: failed to resolve winner email: %v", gameID, err)
	}
	loserEmail, err := s.users.GetEmail(ctx, loserUID)
	if err != nil {
		log.Printf("game %s: failed to resolve loser email: %v", gameID, err)
	}

	if err := s.notify.QueueGameFinishedEmail(ctx, winnerEmail, true, loserEmail, gameID); err != nil {
		log.Printf("game %s: failed to queue winner email: %v", gameID, err)
	}
	if err := s.notify.QueueGameFinishedEmail(ctx, loserEmail, false, winnerEmail, gameID); err != nil {
		log.Printf("game %s: failed to queue loser email: %v", gameID, err)
	}

	if err := s.users.RecordGameResult(ctx, winnerUID, "won"); err != nil {
		log.Printf("game %s: failed to update winner stats: %v", gameID, err)
	}
	if err := s.users.RecordGameResult(ctx, loserUID, "lost"); err != nil {
		log.Printf("game %s: failed to update loser stats: %v", gameID, err)
	}
}
