package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/skillmastery/server/audit"
	mw "github.com/skillmastery/server/middleware"
	"github.com/skillmastery/server/model"
	"github.com/skillmastery/server/problem"
)

// entityService is the service surface a crud handler drives.
// C is the create DTO and D the full DTO.
type entityService[C, D any] interface {
	GetAll(ctx context.Context) ([]D, error)
	Create(ctx context.Context, in C) (D, error)
	Delete(ctx context.Context, id int64) (D, error)
	Edit(ctx context.Context, in D) (D, error)
}

// crud implements List, Create, Delete and Edit for one entity.
type crud[C, D any] struct {
	entity string
	svc    entityService[C, D]
	audit  *audit.Service
	idOf   func(D) int64
}

// List handles GET / and HEAD /. HEAD answers the GET status without a body.
func (h *crud[C, D]) List(c *gin.Context) {
	out, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", binding.MIMEJSON+"; charset=utf-8")
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /.
func (h *crud[C, D]) Create(c *gin.Context) {
	start := time.Now()
	var in C
	if err := c.ShouldBindJSON(&in); err != nil {
		abortValidation(c, err)
		return
	}
	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	id := h.idOf(out)
	h.record(c, model.AuditActionCreate, id, out, start)
	c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Request.URL.Path, "/"), id))
	c.JSON(http.StatusCreated, out)
}

// Delete handles DELETE /:id.
func (h *crud[C, D]) Delete(c *gin.Context) {
	start := time.Now()
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		problem.Abort(c, problem.Details{
			Title:   problem.TitleValidation,
			Status:  http.StatusBadRequest,
			Errors:  map[string][]string{"id": {fmt.Sprintf("The value '%s' is not valid.", raw)}},
			TraceID: mw.GetTraceID(c),
		})
		return
	}
	out, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.record(c, model.AuditActionDelete, id, out, start)
	c.JSON(http.StatusOK, out)
}

// Edit handles PUT /.
func (h *crud[C, D]) Edit(c *gin.Context) {
	start := time.Now()
	var in D
	if err := c.ShouldBindJSON(&in); err != nil {
		abortValidation(c, err)
		return
	}
	out, err := h.svc.Edit(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.record(c, model.AuditActionEdit, h.idOf(out), out, start)
	c.JSON(http.StatusOK, out)
}

// Register mounts the list, create, edit and delete routes on g.
func (h *crud[C, D]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.HEAD("", h.List)
	g.POST("", h.Create)
	g.PUT("", h.Edit)
	g.DELETE("/:id", h.Delete)
}

func (h *crud[C, D]) record(c *gin.Context, action string, id int64, payload D, start time.Time) {
	h.audit.Log(audit.AuditEntry{
		TraceID:    mw.GetTraceID(c),
		Entity:     h.entity,
		EntityID:   id,
		Action:     action,
		Payload:    payload,
		IP:         c.ClientIP(),
		DurationMs: int(time.Since(start).Milliseconds()),
	})
}
