package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/middlewares"
	"github.com/myhuemungusD/skatehubbamvp/services"
)

// ReviewController exposes the role-gated submission review operations.
// The RBAC middleware has already established that the caller holds a
// reviewing role by the time these handlers run.
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

type approveSubmissionRequest struct {
	SubmissionID string `json:"submissionId" binding:"required,min=1"`
}

type rejectSubmissionRequest struct {
	SubmissionID    string `json:"submissionId" binding:"required,min=1"`
	RejectionReason string `json:"rejectionReason,omitempty" binding:"max=500"`
}

// Approve decides a pending submission in the owner's favor.
func (ctrl *ReviewController) Approve(c *gin.Context) {
	var req approveSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission ID is required", "details": err.Error()})
		return
	}

	result, err := ctrl.reviews.Approve(c, req.SubmissionID, middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reject decides a pending submission against the owner.
func (ctrl *ReviewController) Reject(c *gin.Context) {
	var req rejectSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission ID is required", "details": err.Error()})
		return
	}

	result, err := ctrl.reviews.Reject(c, req.SubmissionID, middlewares.CallerUID(c), req.RejectionReason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
