package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skillmastery/server/problem"
)

const SubjectKey = "subject"

// Auth validates the Bearer JWT token signed with secret and stores its
// subject in the Gin context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "missing bearer token")
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}
		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}

// GetSubject retrieves the authenticated subject from the Gin context.
func GetSubject(c *gin.Context) string {
	if v, exists := c.Get(SubjectKey); exists {
		return v.(string)
	}
	return ""
}

func unauthorized(c *gin.Context, detail string) {
	problem.Abort(c, problem.Details{
		Title:   http.StatusText(http.StatusUnauthorized),
		Status:  http.StatusUnauthorized,
		Detail:  detail,
		TraceID: GetTraceID(c),
	})
}
