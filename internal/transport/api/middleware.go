package api

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	SessionHeader    = "X-Session-ID"
	DefaultSessionID = "default"
	sessionKey       = "sessionID"
)

// RequestContext attaches the server logger to every request context and
// logs the outcome once the handler returns.
func RequestContext(base context.Context) gin.HandlerFunc {
	logger := log.FromCtx(base)

	return func(c *gin.Context) {
		start := time.Now()
		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" {
			sid = DefaultSessionID
		}
		c.Set(sessionKey, sid)
		c.Header(SessionHeader, sid)

		reqLogger := logger.With().Str("session", sid).Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		reqLogger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}

func sessionID(c *gin.Context) string {
	if sid := c.GetString(sessionKey); sid != "" {
		return sid
	}
	return DefaultSessionID
}

func CORS(cfg *config.HTTPConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", SessionHeader},
		ExposeHeaders: []string{SessionHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowOrigins
	}
	return cors.New(cc)
}
