package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/services"
)

// respondError maps a service failure onto the HTTP response. Unexpected
// errors are logged in full and surfaced generically.
func respondError(c *gin.Context, err error) {
	if services.CodeOf(err) == services.CodeInternal {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(services.HTTPStatus(err), gin.H{
		"error": services.MessageOf(err),
		"code":  string(services.CodeOf(err)),
	})
}
