package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/service"
	"github.com/emiliopalmerini/labgenie/internal/web/templates"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := templates.IndexPage{
		Layout: templates.Layout{Title: "New experiment", Flashes: s.flash.pop(w, r)},
	}
	s.render(w, r, templates.Index(data))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.flash.add(w, r, FlashError, "Request too large.")
		} else {
			s.flash.add(w, r, FlashError, "Invalid form submission.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := s.svc.Submit(r.Context(),
		r.PostForm.Get("experiment_description"),
		r.PostForm.Get("readings"),
	)
	if err != nil {
		if domain.IsValidation(err) {
			s.logger.Info("submission rejected", zap.String("reason", err.Error()))
		}
		s.flash.add(w, r, FlashError, service.Message(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.flash.add(w, r, FlashSuccess, service.SubmittedMessage)
	http.Redirect(w, r, recordURL(id), http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	experiments, err := s.svc.List(r.Context())
	if err != nil {
		s.flash.add(w, r, FlashError, service.Message(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	data := templates.DashboardPage{
		Layout:      templates.Layout{Title: "Dashboard", Flashes: s.flash.pop(w, r)},
		Experiments: experiments,
	}
	s.render(w, r, templates.Dashboard(data))
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := s.experimentID(w, r)
	if !ok {
		return
	}

	experiment, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.flash.add(w, r, FlashError, service.Message(err))
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	data := templates.RecordPage{
		Layout:     templates.Layout{Title: experiment.Name, Flashes: s.flash.pop(w, r)},
		Experiment: experiment,
		GraphURL:   templates.GraphDataURL(experiment.Graph),
	}
	s.render(w, r, templates.Record(data))
}

// experimentID parses the {id} path value. Ids that cannot exist are
// treated as unknown experiments.
func (s *Server) experimentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		s.flash.add(w, r, FlashError, service.Message(domain.ErrNotFound))
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return 0, false
	}
	return id, true
}

func recordURL(id int64) string {
	return fmt.Sprintf("/record/%d", id)
}
