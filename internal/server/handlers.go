package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"hoshin-matrix/internal/export"
	"hoshin-matrix/internal/hoshin"
	"hoshin-matrix/internal/manual"
	"hoshin-matrix/internal/models"
	"hoshin-matrix/internal/parser"

	"github.com/rs/zerolog/hlog"
)

// withSession resolves the session and holds its lock for the handler.
func (s *HTTPServer) withSession(h func(http.ResponseWriter, *http.Request, *Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.session(w, r)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("Error creating session")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		sess.Lock()
		defer sess.Unlock()
		h(w, r, sess)
	}
}

func (s *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request, sess *Session) {
	switch sess.Mode {
	case models.ModeManual:
		s.pages.render(w, r, http.StatusOK, pageManual, newManualView(sess))
	default:
		s.pages.render(w, r, http.StatusOK, pageAutomatic, newAutomaticView(sess))
	}
}

func (s *HTTPServer) handleMode(w http.ResponseWriter, r *http.Request, sess *Session) {
	mode, err := models.ParseMode(r.FormValue("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess.Mode = mode
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *HTTPServer) handleGenerate(w http.ResponseWriter, r *http.Request, sess *Session) {
	sess.Mode = models.ModeAutomatic
	sess.Inputs = models.Inputs{
		Strategic:        r.FormValue("strategic"),
		Annual:           r.FormValue("annual"),
		Priorities:       r.FormValue("priorities"),
		KPIs:             r.FormValue("kpis"),
		Responsibilities: r.FormValue("responsibilities"),
	}
	sess.Report = nil

	report, err := s.generator.Generate(r.Context(), sess.Inputs)
	if err != nil {
		view := newAutomaticView(sess)
		if errors.Is(err, hoshin.ErrMissingFields) {
			view.Warning = models.MissingFieldsMsg
			s.pages.render(w, r, http.StatusOK, pageAutomatic, view)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("Error during generation")
		if report != nil {
			sess.Report = report
			view = newAutomaticView(sess)
		}
		view.Error = fmt.Sprintf("Error during generation: %v", err)
		s.pages.render(w, r, http.StatusBadGateway, pageAutomatic, view)
		return
	}

	sess.Report = report
	s.pages.render(w, r, http.StatusOK, pageAutomatic, newAutomaticView(sess))
}

func (s *HTTPServer) handleDownload(w http.ResponseWriter, r *http.Request, sess *Session) {
	if sess.Report == nil || sess.Report.Workbook == nil {
		http.Error(w, "no report to download", http.StatusNotFound)
		return
	}
	writeWorkbook(w, models.AutomaticFilename, sess.Report.Workbook)
}

// readManualForm stores the lists and selections of the posted form in sess.
func readManualForm(r *http.Request, sess *Session) error {
	plan := manual.ParsePlan(
		r.FormValue("strategic"),
		r.FormValue("annual"),
		r.FormValue("priorities"),
		r.FormValue("kpis"),
		r.FormValue("responsibles"),
	)
	sess.Mode = models.ModeManual
	sess.Plan = plan
	sel, err := manual.ReadSelections(plan, r.FormValue)
	if err != nil {
		return err
	}
	sess.Selections = sel
	return nil
}

func (s *HTTPServer) handleManualUpdate(w http.ResponseWriter, r *http.Request, sess *Session) {
	if err := readManualForm(r, sess); err != nil {
		view := newManualView(sess)
		view.Error = err.Error()
		s.pages.render(w, r, http.StatusBadRequest, pageManual, view)
		return
	}
	s.pages.render(w, r, http.StatusOK, pageManual, newManualView(sess))
}

func (s *HTTPServer) handleManualExport(w http.ResponseWriter, r *http.Request, sess *Session) {
	if err := readManualForm(r, sess); err != nil {
		view := newManualView(sess)
		view.Error = err.Error()
		s.pages.render(w, r, http.StatusBadRequest, pageManual, view)
		return
	}
	data, err := export.ManualWorkbook(manual.Build(sess.Plan, sess.Selections))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error exporting manual matrix")
		http.Error(w, "failed to export workbook", http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, models.ManualFilename, data)
}

func (s *HTTPServer) handleManualImport(w http.ResponseWriter, r *http.Request, sess *Session) {
	sess.Mode = models.ModeManual
	fail := func(err error) {
		view := newManualView(sess)
		view.Error = fmt.Sprintf("Unable to import workbook: %v", err)
		s.pages.render(w, r, http.StatusBadRequest, pageManual, view)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("workbook")
	if err != nil {
		fail(err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		fail(err)
		return
	}

	matrices, err := parser.ParseManualWorkbook(data)
	if err != nil {
		fail(err)
		return
	}
	plan, sel, err := manual.FromMatrices(matrices)
	if err != nil {
		fail(err)
		return
	}
	sess.Plan = plan
	sess.Selections = sel

	view := newManualView(sess)
	view.Notice = "Workbook imported."
	s.pages.render(w, r, http.StatusOK, pageManual, view)
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", models.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
