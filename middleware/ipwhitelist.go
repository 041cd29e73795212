package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skillmastery/server/problem"
)

// IPWhitelist returns a middleware that only allows requests from the given
// addresses or CIDR ranges. If the list is empty, all IPs are allowed.
func IPWhitelist(entries []string) gin.HandlerFunc {
	exact := make(map[string]bool, len(entries))
	var nets []*net.IPNet
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, n, err := net.ParseCIDR(e); err == nil {
			nets = append(nets, n)
			continue
		}
		exact[e] = true
	}
	return func(c *gin.Context) {
		if len(exact) == 0 && len(nets) == 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if exact[ip] || inAny(nets, net.ParseIP(ip)) {
			c.Next()
			return
		}
		problem.Abort(c, problem.Details{
			Title:   http.StatusText(http.StatusForbidden),
			Status:  http.StatusForbidden,
			Detail:  "access denied",
			TraceID: GetTraceID(c),
		})
	}
}

func inAny(nets []*net.IPNet, ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
