package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/middlewares"
	"github.com/myhuemungusD/skatehubbamvp/services"
)

// SubmissionController handles the challenge catalog and submission intake.
type SubmissionController struct {
	submissions *services.SubmissionService
}

func NewSubmissionController(submissions *services.SubmissionService) *SubmissionController {
	return &SubmissionController{submissions: submissions}
}

type createChallengeRequest struct {
	Title  string `json:"title" binding:"required,max=200"`
	Points int    `json:"points" binding:"min=0"`
}

// CreateChallenge adds a challenge to the catalog (admin only, enforced by
// the RBAC middleware on the route).
func (ctrl *SubmissionController) CreateChallenge(c *gin.Context) {
	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	challenge, err := ctrl.submissions.CreateChallenge(c, req.Title, req.Points, middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

// ListChallenges returns the challenge catalog.
func (ctrl *SubmissionController) ListChallenges(c *gin.Context) {
	challenges, err := ctrl.submissions.ListChallenges(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

type createSubmissionRequest struct {
	ChallengeID string `json:"challengeId" binding:"required,min=1"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// CreateSubmission files a pending submission for the caller.
func (ctrl *SubmissionController) CreateSubmission(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	sub, err := ctrl.submissions.Create(c, middlewares.CallerUID(c), req.ChallengeID, req.VideoURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListPending returns the review queue, oldest first.
func (ctrl *SubmissionController) ListPending(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	subs, err := ctrl.submissions.ListPending(c, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}
