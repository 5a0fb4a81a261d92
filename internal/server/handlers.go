package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/render"

	"rootedweb/lbs-invoice/internal/aggregator"
	"rootedweb/lbs-invoice/internal/fileutils"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/metrics"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/parsererror"
	"rootedweb/lbs-invoice/internal/session"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "lbs_session"

// Form field names.
const (
	fieldInvoiceFile = "invoice_file"
	fieldSkip        = "skip"
	commentPrefix    = "comments["
	commentSuffix    = "]"
)

// User-facing messages.
const (
	msgGenerated      = "Invoice report generated successfully!"
	msgPDFMissing     = "PDF file not found or has expired."
	msgNoFile         = "Please choose an invoice file to upload."
	msgProcessPrefix  = "Error processing file: "
	msgGeneratePrefix = "Error generating PDF: "
)

// sessionID returns the caller's session id. A missing cookie, or one the
// store did not issue, gets a fresh id and cookie.
func (w *WebAPI) sessionID(rw http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		if w.deps.Store.Issued(c.Value) {
			return c.Value
		}
		w.logger.WithField(logging.FieldRemoteAddr, r.RemoteAddr).Debug("Replacing unknown session id")
	}
	id := w.deps.Store.NewID()
	http.SetCookie(rw, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// sessionDir is the output directory for one session's reports. It must
// stay inside the configured output directory.
func (w *WebAPI) sessionDir(id string) (string, error) {
	base, err := filepath.Abs(w.config.OutputDir)
	if err != nil {
		return "", fmt.Errorf("error resolving output directory: %w", err)
	}
	dir := filepath.Join(base, id)
	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == "." || rel == ".." || strings.ContainsRune(rel, filepath.Separator) {
		return "", fmt.Errorf("invalid session directory %q", id)
	}
	return dir, nil
}

func (w *WebAPI) loadSession(rw http.ResponseWriter, r *http.Request) (string, session.Data) {
	id := w.sessionID(rw, r)
	data, err := w.deps.Store.Load(id)
	if err != nil {
		w.logger.WithError(err).WithField(logging.FieldSessionID, id).Warn("Discarding unreadable session")
		return id, session.Data{}
	}
	return id, data
}

func (w *WebAPI) saveSession(id string, data session.Data) {
	if err := w.deps.Store.Save(id, data); err != nil {
		w.logger.WithError(err).WithField(logging.FieldSessionID, id).Error("Failed to save session")
	}
}

// redirectWithError stores a flash error and redirects.
func (w *WebAPI) redirectWithError(rw http.ResponseWriter, r *http.Request, id string, data session.Data, to, msg string) {
	data.Flash.Error = msg
	w.saveSession(id, data)
	http.Redirect(rw, r, to, http.StatusSeeOther)
}

func (w *WebAPI) index(rw http.ResponseWriter, r *http.Request) {
	id, data := w.loadSession(rw, r)

	page := uploadPage{
		Title:         pageTitle,
		Flash:         data.Flash,
		DownloadReady: data.Download != "" && fileutils.FileExists(data.Download),
		Accept:        acceptedTypes,
	}

	if data.Flash != (session.Flash{}) {
		data.Flash = session.Flash{}
		w.saveSession(id, data)
	}

	w.renderPage(rw, "upload", page)
}

func (w *WebAPI) upload(rw http.ResponseWriter, r *http.Request) {
	id, data := w.loadSession(rw, r)
	w.deps.Store.Sweep()

	r.Body = http.MaxBytesReader(rw, r.Body, w.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(w.config.MaxUploadBytes); err != nil {
		w.deps.Metrics.Uploads.WithLabelValues(metrics.OutcomeRejected).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.redirectWithError(rw, r, id, data, "/", fmt.Sprintf("The invoice file may not be greater than %d MB.", w.config.MaxUploadBytes>>20))
			return
		}
		w.redirectWithError(rw, r, id, data, "/", msgNoFile)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(fieldInvoiceFile)
	if err != nil {
		w.deps.Metrics.Uploads.WithLabelValues(metrics.OutcomeRejected).Inc()
		w.redirectWithError(rw, r, id, data, "/", msgNoFile)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	logger := w.logger.WithFields(
		logging.F(logging.FieldSessionID, id),
		logging.F(logging.FieldFile, header.Filename),
	)

	result, err := w.deps.Parser.ParseReader(file, header.Filename)
	if err != nil {
		var formatErr *parsererror.InvalidFormatError
		if errors.As(err, &formatErr) {
			w.deps.Metrics.Uploads.WithLabelValues(metrics.OutcomeRejected).Inc()
			logger.WithError(err).Info("Rejected upload")
			w.redirectWithError(rw, r, id, data, "/", formatErr.Error())
			return
		}
		w.deps.Metrics.Uploads.WithLabelValues(metrics.OutcomeFailed).Inc()
		logger.WithError(err).Warn("Failed to process upload")
		w.redirectWithError(rw, r, id, data, "/", msgProcessPrefix+err.Error())
		return
	}

	report := w.deps.Aggregator.BuildReport(result)
	data.Report = &report
	data.Flash = session.Flash{}
	w.saveSession(id, data)

	w.deps.Metrics.Uploads.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.WithField(logging.FieldPeriod, report.Period).Info("Upload processed")
	http.Redirect(rw, r, "/comments", http.StatusSeeOther)
}

func (w *WebAPI) comments(rw http.ResponseWriter, r *http.Request) {
	id, data := w.loadSession(rw, r)

	report, err := data.RequireReport()
	if err != nil {
		w.deps.Metrics.ExpiredSessions.Inc()
		w.redirectWithError(rw, r, id, data, "/", session.ExpiredMessage)
		return
	}

	page := commentsPage{
		Title:    pageTitle,
		Flash:    data.Flash,
		Report:   report,
		Sections: commentSections(report),
	}
	if data.Flash != (session.Flash{}) {
		data.Flash = session.Flash{}
		w.saveSession(id, data)
	}

	w.renderPage(rw, "comments", page)
}

// formAnnotations collects comments[<line id>] fields.
func formAnnotations(r *http.Request) models.AnnotationMap {
	raw := make(map[string]string)
	for key, values := range r.PostForm {
		if !strings.HasPrefix(key, commentPrefix) || !strings.HasSuffix(key, commentSuffix) || len(values) == 0 {
			continue
		}
		lineID := strings.TrimSuffix(strings.TrimPrefix(key, commentPrefix), commentSuffix)
		raw[lineID] = values[0]
	}
	return models.NewAnnotationMap(raw)
}

func (w *WebAPI) generate(rw http.ResponseWriter, r *http.Request) {
	id, data := w.loadSession(rw, r)

	report, err := data.RequireReport()
	if err != nil {
		w.deps.Metrics.ExpiredSessions.Inc()
		w.redirectWithError(rw, r, id, data, "/", session.ExpiredMessage)
		return
	}

	if err := r.ParseForm(); err != nil {
		w.redirectWithError(rw, r, id, data, "/comments", msgGeneratePrefix+err.Error())
		return
	}

	annotations := models.AnnotationMap{}
	if r.PostForm.Get(fieldSkip) == "" {
		annotations = formAnnotations(r)
	}

	logger := w.logger.WithFields(
		logging.F(logging.FieldSessionID, id),
		logging.F(logging.FieldPeriod, report.Period),
	)

	dir, err := w.sessionDir(id)
	if err != nil {
		logger.WithError(err).Error("Refusing to write report")
		w.redirectWithError(rw, r, id, data, "/comments", msgGeneratePrefix+err.Error())
		return
	}

	start := time.Now()
	path, err := w.deps.Generator.Generate(r.Context(), report, annotations, dir)
	w.deps.Metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		w.deps.Metrics.RenderFailures.Inc()
		logger.WithError(err).Error("Failed to generate report")
		// The report stays in the session so the reviewer can retry.
		w.redirectWithError(rw, r, id, data, "/comments", msgGeneratePrefix+err.Error())
		return
	}

	if data.Download != "" && data.Download != path {
		if err := fileutils.RemoveIfExists(data.Download); err != nil {
			logger.WithError(err).Warn("Failed to remove previous report")
		}
	}

	w.deps.Metrics.ReportsGenerated.Inc()
	w.deps.Metrics.Annotations.Add(float64(len(annotations)))

	w.saveSession(id, session.Data{
		Download: path,
		Flash:    session.Flash{Success: msgGenerated},
	})
	http.Redirect(rw, r, "/", http.StatusSeeOther)
}

func (w *WebAPI) download(rw http.ResponseWriter, r *http.Request) {
	id, data := w.loadSession(rw, r)

	if data.Download == "" || !fileutils.FileExists(data.Download) {
		data.Download = ""
		w.redirectWithError(rw, r, id, data, "/", msgPDFMissing)
		return
	}

	path := data.Download
	content, err := fileutils.ReadFile(path)
	if err != nil {
		w.logger.WithError(err).WithField(logging.FieldFile, path).Error("Failed to read report")
		data.Download = ""
		w.redirectWithError(rw, r, id, data, "/", msgPDFMissing)
		return
	}

	data.Download = ""
	w.saveSession(id, data)
	if err := fileutils.RemoveIfExists(path); err != nil {
		w.logger.WithError(err).WithField(logging.FieldFile, path).Warn("Failed to remove downloaded report")
	}

	rw.Header().Set("Content-Type", "application/pdf")
	rw.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	rw.Header().Set("Content-Length", fmt.Sprint(len(content)))
	if _, err := rw.Write(content); err != nil {
		w.logger.WithError(err).Warn("Failed to send report")
	}
}

// reportResponse is the JSON view of the pending report.
type reportResponse struct {
	Report models.Report       `json:"report"`
	Lines  []reviewLineResponse `json:"lines"`
}

type reviewLineResponse struct {
	ID      models.LineID `json:"id"`
	Segment string        `json:"segment"`
	Project string        `json:"project"`
	Label   string        `json:"label"`
	Detail  string        `json:"detail,omitempty"`
}

func (w *WebAPI) pendingReport(rw http.ResponseWriter, r *http.Request) {
	_, data := w.loadSession(rw, r)

	report, err := data.RequireReport()
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(rw, r, ErrResponse{Error: session.ExpiredMessage})
		return
	}

	lines := aggregator.Lines(report)
	resp := reportResponse{Report: report, Lines: make([]reviewLineResponse, 0, len(lines))}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, reviewLineResponse{
			ID:      l.Line.ID,
			Segment: l.Segment,
			Project: l.Project,
			Label:   l.Line.Label(),
			Detail:  l.Detail,
		})
	}
	render.JSON(rw, r, resp)
}
