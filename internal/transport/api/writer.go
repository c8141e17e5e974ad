package api

import (
	"net/http"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/gin-gonic/gin"
)

const streamContentType = "text/plain; charset=utf-8"

// replyWriter maps the two reply shapes onto the response: an envelope
// becomes one JSON body, tokens become a flushed text stream.
type replyWriter struct {
	c       *gin.Context
	started bool
}

func newReplyWriter(c *gin.Context) *replyWriter {
	return &replyWriter{c: c}
}

func (w *replyWriter) WriteEnvelope(env core.Envelope) error {
	w.started = true
	w.c.JSON(http.StatusOK, env)
	return nil
}

func (w *replyWriter) WriteToken(token string) error {
	if !w.started {
		w.started = true
		w.c.Header("Content-Type", streamContentType)
		w.c.Header("X-Content-Type-Options", "nosniff")
		w.c.Header("Cache-Control", "no-cache")
		w.c.Status(http.StatusOK)
	}

	if _, err := w.c.Writer.WriteString(token); err != nil {
		return err
	}
	w.c.Writer.Flush()
	return nil
}

// finish answers with an empty stream when generation produced nothing.
func (w *replyWriter) finish() {
	if !w.started {
		w.c.Data(http.StatusOK, streamContentType, nil)
	}
}
