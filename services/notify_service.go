package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/myhuemungusD/skatehubbamvp/db"
	"github.com/myhuemungusD/skatehubbamvp/models"
)

// NotifyService appends notification documents to the mail collection.
// A delivery worker outside this codebase drains the collection; the core
// only decides whether and to whom a message is warranted. Every method is
// best-effort: failures are logged by callers and never gate game state.
type NotifyService struct {
	store   *db.Store
	baseURL string
}

func NewNotifyService(store *db.Store, baseURL string) *NotifyService {
	return &NotifyService{store: store, baseURL: baseURL}
}

func (s *NotifyService) enqueue(ctx context.Context, to, subject, text string) error {
	if to == "" {
		log.Printf("notify: no email address, dropping %q", subject)
		return nil
	}
	_, err := s.store.Collection("mail").InsertOne(ctx, models.Mail{
		ID:        uuid.NewString(),
		To:        []string{to},
		Message:   models.MailBody{Subject: subject, Text: text},
		CreatedAt: time.Now(),
	})
	return err
}

// QueueTurnEmail notifies a player that their opponent acted and it is now
// their turn.
func (s *NotifyService) QueueTurnEmail(ctx context.Context, to, gameID string) error {
	return s.enqueue(ctx, to,
		"Your turn in SKATE",
		fmt.Sprintf("Opponent uploaded a trick. Respond here: %s/game/%s", s.baseURL, gameID))
}

// QueueGameFinishedEmail notifies a player of the game outcome.
func (s *NotifyService) QueueGameFinishedEmail(ctx context.Context, to string, won bool, opponentEmail, gameID string) error {
	var subject, text string
	if won {
		subject = "You won the SKATE game!"
		text = fmt.Sprintf("Congratulations! You won the SKATE game against %s. View game: %s/game/%s",
			opponentEmail, s.baseURL, gameID)
	} else {
		subject = "Game over - Better luck next time!"
		text = fmt.Sprintf("Game over! %s won this SKATE game. Ready for a rematch? %s/lobby",
			opponentEmail, s.baseURL)
	}
	return s.enqueue(ctx, to, subject, text)
}

// QueueInviteEmail invites someone to join a game.
func (s *NotifyService) QueueInviteEmail(ctx context.Context, to, fromEmail, gameID string) error {
	return s.enqueue(ctx, to,
		"You're invited to a SKATE game!",
		fmt.Sprintf("%s has challenged you to a game of SKATE on SkateHubba! Join here: %s/game/%s",
			fromEmail, s.baseURL, gameID))
}
