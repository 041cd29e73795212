package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skillmastery/server/audit"
	"github.com/skillmastery/server/config"
	mw "github.com/skillmastery/server/middleware"
	"github.com/skillmastery/server/scheduler"
	"github.com/skillmastery/server/service"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// RouterDeps holds everything the HTTP surface needs.
type RouterDeps struct {
	DB        *gorm.DB
	Services  *service.Services
	Audit     *audit.Service // nil disables auditing
	Scheduler *scheduler.Scheduler
	Server    config.ServerConfig
	Security  config.SecurityConfig
	Tracing   config.TracingConfig
	Logger    *zap.Logger
}

// NewRouter builds the gin engine. Background work started for the router
// stops when ctx is done.
func NewRouter(ctx context.Context, d RouterDeps) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(mw.TraceID())
	if d.Tracing.Enabled {
		r.Use(mw.Tracing(d.Tracing.ServiceName), mw.TagSpan())
	}
	r.Use(mw.Recovery(d.Logger))
	r.Use(mw.Logger(d.Logger))
	if len(d.Security.AllowedOrigins) > 0 {
		r.Use(mw.CORS(d.Security.AllowedOrigins))
	}
	if d.Security.RateLimitRPS > 0 {
		r.Use(mw.RateLimit(ctx, rate.Limit(d.Security.RateLimitRPS), d.Security.RateLimitBurst))
	}
	r.Use(ErrorHandler(d.Logger))

	r.GET("/health", health(d.DB))

	users := NewUserHandler(d.Services.Users, d.Audit)
	skills := NewSkillHandler(d.Services.Skills, d.Audit)
	dificulties := NewDificultyHandler(d.Services.Dificulties, d.Audit)
	userSkills := NewUserSkillHandler(d.Services.UserSkills, d.Audit)
	goals := NewGoalHandler(d.Services.Goals, d.Audit)

	versions := d.Server.APIVersions
	if len(versions) == 0 {
		versions = []string{"1"}
	}
	for _, v := range versions {
		api := r.Group("/api/v"+strings.ToLower(v), mw.AcceptJSON())
		if d.Security.JWTSecret != "" {
			api.Use(mw.Auth(d.Security.JWTSecret))
		}
		users.Register(api.Group("/users"))
		skills.Register(api.Group("/skills"))
		dificulties.Register(api.Group("/dificulties"))
		userSkills.Register(api.Group("/userskills"))
		goals.Register(api.Group("/goals"))
	}

	if d.Scheduler != nil {
		admin := NewAdminHandler(d.Audit, d.Scheduler, d.Logger)
		ag := r.Group("/api/admin", mw.IPWhitelist(d.Server.AdminIPs), AdminAuth(d.Server.AdminKey))
		ag.GET("/audit", admin.ListAudit)
		ag.GET("/scheduler", admin.ListSchedulerJobs)
		ag.POST("/scheduler/:name/run", admin.RunSchedulerJob)
	}
	return r
}

const adminPrefix = "/api/admin/"

// CaseInsensitive lowercases the request path before routing, so
// /api/v1/Skills and /api/v1/skills reach the same handler. Below
// /api/admin/ only the prefix is folded; job names keep their case.
func CaseInsensitive(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path
		lower := strings.ToLower(path)
		if strings.HasPrefix(lower, adminPrefix) {
			lower = adminPrefix + path[len(adminPrefix):]
		}
		if lower != path {
			req.URL.Path = lower
			req.URL.RawPath = ""
		}
		h.ServeHTTP(w, req)
	})
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
