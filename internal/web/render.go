package web

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/shared/middleware"
)

// render buffers the page so a template error never leaves a half-written
// response. A failed page becomes a flash and a redirect like any other error.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		s.logger.Error("rendering page failed",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		s.flash.add(w, r, FlashError, "Error rendering page.")
		target := "/"
		if r.URL.Path == "/" {
			target = "/dashboard"
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
