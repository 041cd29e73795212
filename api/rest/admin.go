package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillmastery/server/audit"
	mw "github.com/skillmastery/server/middleware"
	"github.com/skillmastery/server/problem"
	"github.com/skillmastery/server/scheduler"
	"go.uber.org/zap"
)

const defaultAuditLimit = 50

// AdminHandler handles admin-only REST endpoints.
// Routes should be protected by AdminAuth middleware.
type AdminHandler struct {
	audit  *audit.Service
	sched  *scheduler.Scheduler
	logger *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(aud *audit.Service, sched *scheduler.Scheduler, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{audit: aud, sched: sched, logger: logger}
}

// ListAudit returns the newest audit rows.
// GET /api/admin/audit?limit=N
func (h *AdminHandler) ListAudit(c *gin.Context) {
	if h.audit == nil {
		unavailable(c, "audit log disabled")
		return
	}
	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			problem.Abort(c, problem.Details{
				Title:   problem.TitleValidation,
				Status:  http.StatusBadRequest,
				Errors:  map[string][]string{"limit": {"The limit must be a positive integer."}},
				TraceID: mw.GetTraceID(c),
			})
			return
		}
		limit = n
	}
	logs, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": logs, "count": len(logs)})
}

// ListSchedulerJobs returns every registered cron job.
// GET /api/admin/scheduler
func (h *AdminHandler) ListSchedulerJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.sched.List()})
}

// RunSchedulerJob runs a job immediately.
// POST /api/admin/scheduler/:name/run
func (h *AdminHandler) RunSchedulerJob(c *gin.Context) {
	name := c.Param("name")
	err := h.sched.Run(c.Request.Context(), name)
	switch {
	case errors.Is(err, scheduler.ErrUnknownJob):
		problem.Abort(c, problem.Details{
			Title:   problem.TitleNotFound,
			Status:  http.StatusNotFound,
			Detail:  err.Error(),
			TraceID: mw.GetTraceID(c),
		})
		return
	case err != nil:
		_ = c.Error(err)
		return
	}
	h.logger.Info("admin ran scheduler job", zap.String("name", name), zap.String("trace_id", mw.GetTraceID(c)))
	c.JSON(http.StatusOK, gin.H{"ok": true, "job": name})
}

// AdminAuth returns a middleware that checks the X-Admin-Key header.
// WARNING: if adminKey is empty all admin endpoints are disabled (503) so the
// server cannot be accidentally deployed without protection. Set a non-empty
// server.admin_key in config to enable admin routes.
func AdminAuth(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			unavailable(c, "admin endpoints disabled: set server.admin_key in config")
			return
		}
		if c.GetHeader("X-Admin-Key") != adminKey {
			problem.Abort(c, problem.Details{
				Title:   http.StatusText(http.StatusUnauthorized),
				Status:  http.StatusUnauthorized,
				TraceID: mw.GetTraceID(c),
			})
			return
		}
		c.Next()
	}
}

func unavailable(c *gin.Context, detail string) {
	problem.Abort(c, problem.Details{
		Title:   http.StatusText(http.StatusServiceUnavailable),
		Status:  http.StatusServiceUnavailable,
		Detail:  detail,
		TraceID: mw.GetTraceID(c),
	})
}
