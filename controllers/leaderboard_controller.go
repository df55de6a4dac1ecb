package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/services"
)

// LeaderboardController serves the points leaderboard and activity feed.
type LeaderboardController struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardController(leaderboard *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboard: leaderboard}
}

func parseLimit(c *gin.Context, def, max int64) int64 {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.FormatInt(def, 10)), 10, 64)
	if err != nil || limit < 1 || limit > max {
		return def
	}
	return limit
}

// GetLeaderboard returns users ranked by total points.
func (ctrl *LeaderboardController) GetLeaderboard(c *gin.Context) {
	entries, err := ctrl.leaderboard.Top(c, parseLimit(c, 100, 500))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetActivity returns the most recent approval activity.
func (ctrl *LeaderboardController) GetActivity(c *gin.Context) {
	activity, err := ctrl.leaderboard.RecentActivity(c, parseLimit(c, 50, 200))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}
