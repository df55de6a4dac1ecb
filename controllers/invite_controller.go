package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/middlewares"
	"github.com/myhuemungusD/skatehubbamvp/services"
)

// InviteController manages game invitations. Accepting an invite joins the
// referenced game.
type InviteController struct {
	invites *services.InviteService
}

func NewInviteController(invites *services.InviteService) *InviteController {
	return &InviteController{invites: invites}
}

type createInviteRequest struct {
	ToEmail string `json:"toEmail" binding:"required,email"`
	GameID  string `json:"gameId" binding:"required,min=1"`
	Message string `json:"message,omitempty" binding:"max=500"`
}

// CreateInvite sends an invitation for one of the caller's games.
func (ctrl *InviteController) CreateInvite(c *gin.Context) {
	var req createInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	invite, err := ctrl.invites.Create(c, middlewares.CallerUID(c), req.ToEmail, req.GameID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invite)
}

// AcceptInvite joins the caller into the invited game and marks the invite
// accepted.
func (ctrl *InviteController) AcceptInvite(c *gin.Context) {
	invite, game, err := ctrl.invites.Accept(c, c.Param("id"), middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invite": invite, "game": game})
}

// DeclineInvite declines the invitation.
func (ctrl *InviteController) DeclineInvite(c *gin.Context) {
	invite, err := ctrl.invites.Decline(c, c.Param("id"), middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invite)
}
