package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/myhuemungusD/skatehubbamvp/db"
	"github.com/myhuemungusD/skatehubbamvp/models"
)

// InviteService manages game invitations. Pending invites that outlive
// their TTL are swept to expired on a schedule.
type InviteService struct {
	store  *db.Store
	users  *UserService
	games  *GameService
	notify *NotifyService
	ttl    time.Duration
}

func NewInviteService(store *db.Store, users *UserService, games *GameService, notify *NotifyService, ttl time.Duration) *InviteService {
	return &InviteService{store: store, users: users, games: games, notify: notify, ttl: ttl}
}

// Create records an invitation and queues the invite email.
func (s *InviteService) Create(ctx context.Context, fromUID, toEmail, gameID, message string) (*models.Invite, error) {
	if toEmail == "" {
		return nil, NewError(CodeInvalidArgument, "Recipient email is required")
	}
	if gameID == "" {
		return nil, NewError(CodeInvalidArgument, "Game ID is required")
	}

	now := time.Now()
	invite := &models.Invite{
		ID:        uuid.NewString(),
		From:      fromUID,
		ToEmail:   toEmail,
		GameID:    gameID,
		Status:    models.InviteStatusPending,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.store.Collection("invites").InsertOne(ctx, invite); err != nil {
		return nil, err
	}

	fromEmail, err := s.users.GetEmail(ctx, fromUID)
	if err != nil {
		log.Printf("invite %s: failed to resolve sender email: %v", invite.ID, err)
	}
	if err := s.notify.QueueInviteEmail(ctx, toEmail, fromEmail, gameID); err != nil {
		log.Printf("invite %s: failed to queue invite email: %v", invite.ID, err)
	}
	return invite, nil
}

// get loads an invite by id.
func (s *InviteService) get(ctx context.Context, inviteID string) (*models.Invite, error) {
	var invite models.Invite
	err := s.store.Collection("invites").FindOne(ctx, bson.M{"_id": inviteID}).Decode(&invite)
	if err == mongo.ErrNoDocuments {
		return nil, NewError(CodeNotFound, "Invite not found")
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// inviteStatusErr reports an invite that already left pending.
func inviteStatusErr(status string) error {
	return Errorf(CodeFailedPrecondition, "Invite is already %s", status)
}

// checkRecipient refuses callers who are not the invite's addressee.
func checkRecipient(invite *models.Invite, callerEmail string) error {
	if !strings.EqualFold(invite.ToEmail, callerEmail) {
		return NewError(CodePermissionDenied, "This invite is not addressed to you")
	}
	return nil
}

// resolve moves a pending invite to a terminal status. The update is
// guarded on pending, so a concurrent decision makes ModifiedCount zero;
// in that case the committed status is re-read and reported.
func (s *InviteService) resolve(ctx context.Context, inviteID, status string) (*models.Invite, error) {
	invite, err := s.get(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.Status != models.InviteStatusPending {
		return nil, inviteStatusErr(invite.Status)
	}

	now := time.Now()
	res, err := s.store.Collection("invites").UpdateOne(ctx,
		bson.M{"_id": inviteID, "status": models.InviteStatusPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": now}},
	)
	if err != nil {
		return nil, err
	}
	if res.ModifiedCount == 0 {
		invite, err = s.get(ctx, inviteID)
		if err != nil {
			return nil, err
		}
		return nil, inviteStatusErr(invite.Status)
	}
	invite.Status = status
	invite.UpdatedAt = now
	return invite, nil
}

// Accept joins the caller into the invite's game and then marks the invite
// accepted. Only the addressee may accept, and the join happens first: a
// failed join leaves the invite pending and usable.
func (s *InviteService) Accept(ctx context.Context, inviteID, callerUID string) (*models.Invite, *models.Game, error) {
	invite, err := s.get(ctx, inviteID)
	if err != nil {
		return nil, nil, err
	}
	if invite.Status != models.InviteStatusPending {
		return nil, nil, inviteStatusErr(invite.Status)
	}

	caller, err := s.users.Get(ctx, callerUID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkRecipient(invite, caller.Email); err != nil {
		return nil, nil, err
	}

	game, err := s.games.Join(ctx, invite.GameID, callerUID)
	if err != nil {
		return nil, nil, err
	}

	invite, err = s.resolve(ctx, inviteID, models.InviteStatusAccepted)
	if err != nil {
		return nil, nil, err
	}
	return invite, game, nil
}

// Decline marks the invite declined. Only the addressee may decline.
func (s *InviteService) Decline(ctx context.Context, inviteID, callerUID string) (*models.Invite, error) {
	invite, err := s.get(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.Status != models.InviteStatusPending {
		return nil, inviteStatusErr(invite.Status)
	}

	caller, err := s.users.Get(ctx, callerUID)
	if err != nil {
		return nil, err
	}
	if err := checkRecipient(invite, caller.Email); err != nil {
		return nil, err
	}
	return s.resolve(ctx, inviteID, models.InviteStatusDeclined)
}

// ExpireStale flips pending invites older than the TTL to expired and
// returns how many were swept.
func (s *InviteService) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.ttl)
	res, err := s.store.Collection("invites").UpdateMany(ctx,
		bson.M{
			"status":    models.InviteStatusPending,
			"createdAt": bson.M{"$lt": cutoff},
		},
		bson.M{"$set": bson.M{"status": models.InviteStatusExpired, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// StartSweeper runs ExpireStale on the given interval. The returned
// scheduler should be shut down when the process exits.
func (s *InviteService) StartSweeper(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			n, err := s.ExpireStale(ctx)
			if err != nil {
				log.Printf("[sweeper] failed to expire invites: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[sweeper] expired %d stale invites", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
