package api

import (
	"context"
	"net/http"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/gin-gonic/gin"
)

func NewRouter(ctx context.Context, cfg *config.HTTPConfig, api *API) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	router.Use(gin.Recovery(), CORS(cfg), RequestContext(ctx), limitBody(cfg.MaxUploadBytes))

	RegisterRoutes(router, api)
	return router
}

func RegisterRoutes(router *gin.Engine, api *API) {
	router.GET("/health", api.HealthHandler)
	router.POST("/chat", api.ChatHandler)

	personas := router.Group("/persona")
	{
		personas.GET("", api.GetPersonasHandler)
		personas.POST("/refine", api.RefinePersonaHandler)
		personas.POST("/from-image", api.PersonaFromImageHandler)
		personas.POST("/from-text", api.PersonaFromTextHandler)
		personas.POST("/:name", api.SwitchPersonaHandler)
	}
}

// limitBody caps request bodies, leaving room for multipart framing.
func limitBody(maxUpload int64) gin.HandlerFunc {
	const overhead = 1 << 20
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUpload+overhead)
		}
		c.Next()
	}
}
