package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/skillmastery/server/problem"
)

// AcceptJSON answers 406 Not Acceptable, with no body, when the Accept
// header admits neither JSON nor problem+json. A missing header accepts anything.
func AcceptJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Accept") != "" && c.NegotiateFormat(binding.MIMEJSON, problem.ContentType) == "" {
			c.AbortWithStatus(http.StatusNotAcceptable)
			return
		}
		c.Next()
	}
}
