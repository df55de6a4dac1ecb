package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/myhuemungusD/skatehubbamvp/db"
	"github.com/myhuemungusD/skatehubbamvp/models"
	"github.com/myhuemungusD/skatehubbamvp/utils"
)

const leaderboardCacheKey = "leaderboard:points"

// LeaderboardCache is a read-through Redis cache for the points leaderboard.
// A nil client disables caching; every method is a no-op then.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

func (c *LeaderboardCache) Get(ctx context.Context, dest interface{}) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	data, err := c.rdb.Get(ctx, leaderboardCacheKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, value interface{}) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, leaderboardCacheKey, data, c.ttl).Err()
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, leaderboardCacheKey).Err()
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	UID         string `json:"uid"`
	Rank        int    `json:"rank"`
	DisplayName string `json:"displayName"`
	TotalPoints int    `json:"totalPoints"`
	GamesWon    int    `json:"gamesWon"`
}

// LeaderboardService reads the aggregates the review workflow maintains:
// users ranked by totalPoints and the append-only activity feed.
type LeaderboardService struct {
	store *db.Store
	cache *LeaderboardCache
}

func NewLeaderboardService(store *db.Store, cache *LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{store: store, cache: cache}
}

// Top returns up to limit users ranked by totalPoints descending.
func (s *LeaderboardService) Top(ctx context.Context, limit int64) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	if hit, err := s.cache.Get(ctx, &entries); err != nil {
		log.Printf("leaderboard: cache read failed: %v", err)
	} else if hit {
		return entries, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "totalPoints", Value: -1}, {Key: "createdAt", Value: 1}}).
		SetLimit(limit)
	cursor, err := s.store.Collection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	for i, user := range users {
		name := user.DisplayName
		if name == "" {
			name = utils.ExtractNameFromEmail(user.Email)
		}
		entries = append(entries, LeaderboardEntry{
			UID:         user.UID,
			Rank:        i + 1,
			DisplayName: name,
			TotalPoints: user.TotalPoints,
			GamesWon:    user.Stats.GamesWon,
		})
	}

	if err := s.cache.Set(ctx, entries); err != nil {
		log.Printf("leaderboard: cache write failed: %v", err)
	}
	return entries, nil
}

// RecentActivity returns the newest activity records, newest first.
func (s *LeaderboardService) RecentActivity(ctx context.Context, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.store.Collection("activity").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activity []models.Activity
	if err := cursor.All(ctx, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}
