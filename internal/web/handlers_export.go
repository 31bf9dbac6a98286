package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/service"
)

// handleExport renders the experiment to a scratch file, streams it as an
// attachment and removes it.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := s.experimentID(w, r)
	if !ok {
		return
	}
	if _, err := s.svc.Get(ctx, id); err != nil {
		s.flash.add(w, r, FlashError, service.Message(err))
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	format, err := domain.ParseExportFormat(r.PathValue("format"))
	if err != nil {
		s.logger.Warn("invalid export format", zap.Int64("experiment_id", id), zap.String("format", r.PathValue("format")))
		s.flash.add(w, r, FlashError, service.Message(err))
		http.Redirect(w, r, recordURL(id), http.StatusFound)
		return
	}

	artifact, err := s.svc.Export(ctx, id, format)
	if err != nil {
		s.flash.add(w, r, FlashError, service.Message(err))
		target := recordURL(id)
		if errors.Is(err, domain.ErrNotFound) {
			target = "/dashboard"
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	defer func() {
		if err := artifact.Release(ctx); err != nil {
			s.logger.Warn("removing export file failed", zap.String("path", artifact.Path), zap.Error(err))
		}
	}()

	file, err := artifact.Open(ctx)
	if err != nil {
		s.logger.Error("opening export file failed", zap.Int64("experiment_id", id), zap.Error(err))
		s.flash.add(w, r, FlashError, service.Message(&domain.StageError{Stage: domain.StageExport, Err: err}))
		http.Redirect(w, r, recordURL(id), http.StatusFound)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	if info, err := file.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file); err != nil {
		s.logger.Warn("streaming export failed", zap.Int64("experiment_id", id), zap.Error(err))
	}
}
