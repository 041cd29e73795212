package problem

import (
	"github.com/gin-gonic/gin"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json"

// Titles shared by the HTTP surface.
const (
	TitleNotFound   = "The specified resource was not found!"
	TitleInUse      = "The specified resource was found but is used in another resource!"
	TitleUnexpected = "An unexpected error occurred!"
	TitleValidation = "One or more validation errors occurred."
)

// Details is an RFC 7807 problem body.
type Details struct {
	Title    string              `json:"title"`
	Status   int                 `json:"status"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
	TraceID  string              `json:"traceId,omitempty"`
}

// Abort writes p as the response and stops the handler chain.
func Abort(c *gin.Context, p Details) {
	c.Abort()
	Write(c, p)
}

// Write renders p with the problem media type.
func Write(c *gin.Context, p Details) {
	c.Render(p.Status, render{p})
}
