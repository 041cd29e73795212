package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillmastery/server/problem"
	"go.uber.org/zap"
)

// Recovery returns a Gin middleware that catches panics, logs them, and
// answers with a 500 problem.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("error", r),
					zap.String("trace_id", GetTraceID(c)),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				problem.Abort(c, problem.Details{
					Title:   problem.TitleUnexpected,
					Status:  http.StatusInternalServerError,
					TraceID: GetTraceID(c),
				})
			}
		}()
		c.Next()
	}
}
