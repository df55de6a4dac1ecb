package routes

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/controllers"
	"github.com/myhuemungusD/skatehubbamvp/middlewares"
)

// SetupAuthRoutes registers the public signup/login endpoints.
func SetupAuthRoutes(router *gin.Engine, auth *controllers.AuthController) {
	router.POST("/signup", auth.SignUp)
	router.POST("/login", auth.Login)
}

// SetupProfileRoutes registers the authenticated profile endpoint.
func SetupProfileRoutes(rg *gin.RouterGroup, auth *controllers.AuthController) {
	rg.GET("/user/profile", auth.Profile)
}

// SetupGameRoutes registers the match and invite endpoints.
func SetupGameRoutes(rg *gin.RouterGroup, games *controllers.GameController, invites *controllers.InviteController) {
	rg.POST("/games", games.CreateGame)
	rg.GET("/games", games.ListMyGames)
	rg.GET("/games/:id", games.GetGame)
	rg.POST("/games/:id/join", games.JoinGame)
	rg.POST("/games/:id/rounds", games.CreateRound)
	rg.GET("/games/:id/rounds", games.ListRounds)
	rg.POST("/games/:id/landed", games.RecordLanded)
	rg.POST("/games/:id/missed", games.RecordMissed)

	rg.POST("/invites", invites.CreateInvite)
	rg.POST("/invites/:id/accept", invites.AcceptInvite)
	rg.POST("/invites/:id/decline", invites.DeclineInvite)
}

// SetupChallengeRoutes registers the challenge catalog and submission
// intake. Creating challenges is admin-gated.
func SetupChallengeRoutes(rg *gin.RouterGroup, enforcer *casbin.Enforcer, submissions *controllers.SubmissionController) {
	rg.GET("/challenges", submissions.ListChallenges)
	rg.POST("/challenges",
		middlewares.RequirePermission(enforcer, "challenge", "create"),
		submissions.CreateChallenge)
	rg.POST("/submissions", submissions.CreateSubmission)
}

// SetupReviewRoutes registers the moderation surface: the review queue and
// the approve/reject operations, all gated on a reviewing role.
func SetupReviewRoutes(rg *gin.RouterGroup, enforcer *casbin.Enforcer, reviews *controllers.ReviewController, submissions *controllers.SubmissionController) {
	rg.GET("/submissions/pending",
		middlewares.RequirePermission(enforcer, "submission", "list"),
		submissions.ListPending)
	rg.POST("/submissions/approve",
		middlewares.RequirePermission(enforcer, "submission", "review"),
		reviews.Approve)
	rg.POST("/submissions/reject",
		middlewares.RequirePermission(enforcer, "submission", "review"),
		reviews.Reject)
}

// SetupLeaderboardRoutes registers the leaderboard and activity feed.
func SetupLeaderboardRoutes(rg *gin.RouterGroup, leaderboard *controllers.LeaderboardController) {
	rg.GET("/leaderboard", leaderboard.GetLeaderboard)
	rg.GET("/activity", leaderboard.GetActivity)
}
