package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/middlewares"
	"github.com/myhuemungusD/skatehubbamvp/services"
	"github.com/myhuemungusD/skatehubbamvp/skate"
)

// GameController exposes the SKATE match operations.
type GameController struct {
	games *services.GameService
}

func NewGameController(games *services.GameService) *GameController {
	return &GameController{games: games}
}

// CreateGame opens a new waiting game owned by the caller.
func (ctrl *GameController) CreateGame(c *gin.Context) {
	game, err := ctrl.games.Create(c, middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// GetGame returns one game with per-player standings.
func (ctrl *GameController) GetGame(c *gin.Context) {
	game, err := ctrl.games.Get(c, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	stats := map[string]skate.Stats{}
	for uid := range game.Letters {
		stats[uid] = skate.PlayerStats(game.Letters, uid)
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "standings": stats})
}

// ListMyGames returns the caller's games.
func (ctrl *GameController) ListMyGames(c *gin.Context) {
	games, err := ctrl.games.ListForUser(c, middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// JoinGame puts the caller into a waiting game and starts it.
func (ctrl *GameController) JoinGame(c *gin.Context) {
	game, err := ctrl.games.Join(c, c.Param("id"), middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

type createRoundRequest struct {
	VideoURL   string `json:"videoUrl" binding:"required"`
	TrickName  string `json:"trickName,omitempty" binding:"max=100"`
	IsResponse bool   `json:"isResponse,omitempty"`
	Landed     bool   `json:"landed,omitempty"`
}

// CreateRound records a trick upload and switches the turn.
func (ctrl *GameController) CreateRound(c *gin.Context) {
	var req createRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	round, err := ctrl.games.CreateRound(c, c.Param("id"), middlewares.CallerUID(c),
		req.VideoURL, req.TrickName, req.IsResponse, req.Landed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

// ListRounds returns a game's rounds in creation order.
func (ctrl *GameController) ListRounds(c *gin.Context) {
	rounds, err := ctrl.games.ListRounds(c, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rounds)
}

// RecordLanded reports that the caller landed the current trick.
func (ctrl *GameController) RecordLanded(c *gin.Context) {
	nextPlayer, err := ctrl.games.RecordLandedTrick(c, c.Param("id"), middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nextPlayer": nextPlayer})
}

// RecordMissed reports that the caller missed the current trick, which may
// finish the game.
func (ctrl *GameController) RecordMissed(c *gin.Context) {
	result, err := ctrl.games.RecordMissedTrick(c, c.Param("id"), middlewares.CallerUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
