package api

import (
	"net/http"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/gin-gonic/gin"
)

func (a *API) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"mode":     a.health.Mode,
		"provider": a.health.Provider,
	})
}

// ChatHandler answers with a JSON envelope for resolved facts and with a
// chunked text/plain stream for generated replies.
func (a *API) ChatHandler(c *gin.Context) {
	var payload struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	ctx := c.Request.Context()
	w := newReplyWriter(c)

	if err := a.agent.Handle(ctx, sessionID(c), payload.Message, w); err != nil {
		if ctx.Err() != nil {
			log.FromCtx(ctx).Debug().Err(err).Msg("client went away")
			return
		}
		log.FromCtx(ctx).Error().Err(err).Msg("chat failed")
		if !w.started {
			c.JSON(statusFor(err), gin.H{"error": messageFor(err)})
		}
		return
	}
	w.finish()
}

func (a *API) GetPersonasHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.personas.Snapshot(c.Request.Context()))
}

func (a *API) SwitchPersonaHandler(c *gin.Context) {
	name := c.Param("name")
	if err := a.state.SwitchPersona(c.Request.Context(), sessionID(c), name); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_persona": name})
}

func (a *API) RefinePersonaHandler(c *gin.Context) {
	var payload struct {
		Instruction string `json:"instruction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	rule, err := a.builder.Refine(c.Request.Context(), sessionID(c), payload.Instruction)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added_refinement": rule})
}

func (a *API) PersonaFromImageHandler(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	file, err := header.Open()
	if err != nil {
		a.fail(c, err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	p, preview, err := a.builder.FromImage(ctx, file)
	if err != nil {
		a.fail(c, err)
		return
	}
	if err := a.state.SwitchPersona(ctx, sessionID(c), p.Name); err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"created_persona": p.Name,
		"preview":         preview,
	})
}

func (a *API) PersonaFromTextHandler(c *gin.Context) {
	var payload struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	ctx := c.Request.Context()
	p, err := a.builder.FromText(ctx, payload.Text)
	if err != nil {
		a.fail(c, err)
		return
	}
	if err := a.state.SwitchPersona(ctx, sessionID(c), p.Name); err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"created_persona": p.Name})
}

func (a *API) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.FromCtx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": messageFor(err)})
}
