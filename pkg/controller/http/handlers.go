package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/foodops-lab/rcagent/pkg/service/evidence"
	"github.com/foodops-lab/rcagent/pkg/usecase"
	"github.com/foodops-lab/rcagent/pkg/utils/errutil"
	"github.com/foodops-lab/rcagent/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

// maxUploadBytes bounds one multipart upload (message with photo, or CSV)
const maxUploadBytes = 16 << 20

// handleError maps domain errors onto HTTP status codes. Anything unmapped
// is an internal error.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, interfaces.ErrSessionNotFound),
		errors.Is(err, model.ErrLineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrEmptyMessage),
		errors.Is(err, model.ErrEmptyEvidence):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrInvestigationNotActive):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrInspectionNotApplicable),
		errors.Is(err, usecase.ErrReportNotAvailable):
		status = http.StatusConflict
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// lockSession serializes state-changing requests against one session
func (s *Server) lockSession(id types.SessionID) func() {
	v, _ := s.sessionLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

type lineResponse struct {
	ID           string  `json:"id"`
	Product      string  `json:"product"`
	Flow         string  `json:"flow"`
	LastCleaning string  `json:"last_cleaning"`
	RiskCategory string  `json:"risk_category"`
	Threshold    float64 `json:"threshold"`
}

func (s *Server) handleListLines(w http.ResponseWriter, r *http.Request) {
	profiles := s.uc.Lines().List()
	resp := struct {
		Lines []lineResponse `json:"lines"`
	}{
		Lines: make([]lineResponse, len(profiles)),
	}
	for i, p := range profiles {
		resp.Lines[i] = lineResponse{
			ID:           p.ID.String(),
			Product:      p.Product,
			Flow:         p.Flow,
			LastCleaning: p.LastCleaning,
			RiskCategory: p.RiskCategory.String(),
			Threshold:    p.Threshold,
		}
	}
	respondJSON(w, r, http.StatusOK, resp)
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	HasImage  bool      `json:"has_image"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	ID                 string            `json:"id"`
	LineID             string            `json:"line_id"`
	Messages           []messageResponse `json:"messages"`
	Active             bool              `json:"active"`
	RootCauseConfirmed bool              `json:"root_cause_confirmed"`
	LastVerdict        string            `json:"last_verdict,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func toMessageResponse(msg *model.Message) messageResponse {
	return messageResponse{
		ID:        msg.ID.String(),
		Role:      string(msg.Role),
		Text:      msg.Text(),
		HasImage:  msg.HasImage(),
		CreatedAt: msg.CreatedAt,
	}
}

func toSessionResponse(session *model.Session) sessionResponse {
	resp := sessionResponse{
		ID:                 session.ID.String(),
		LineID:             session.LineID.String(),
		Messages:           make([]messageResponse, len(session.Messages)),
		Active:             session.Investigation.Active,
		RootCauseConfirmed: session.Investigation.RootCauseConfirmed,
		LastVerdict:        string(session.LastVerdict),
		CreatedAt:          session.CreatedAt,
		UpdatedAt:          session.UpdatedAt,
	}
	for i, msg := range session.Messages {
		resp.Messages[i] = toMessageResponse(msg)
	}
	return resp
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LineID string `json:"line_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	lineID := types.LineID(req.LineID)
	if err := lineID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	session, err := s.uc.Session.Create(r.Context(), lineID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := types.SessionID(chi.URLParam(r, "sessionID"))
	session, err := s.uc.Session.Get(r.Context(), sessionID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toSessionResponse(session))
}

// handlePostMessage accepts one user turn as multipart form data: a "text"
// field and an optional "image" file, in any combination. The reply is the
// assistant's turn.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := types.SessionID(chi.URLParam(r, "sessionID"))
	unlock := s.lockSession(sessionID)
	defer unlock()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid multipart form"), http.StatusBadRequest)
		return
	}

	var parts []model.Part
	if text := r.FormValue("text"); text != "" {
		parts = append(parts, model.TextPart(text))
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer safe.Close(r.Context(), file)

		data, err := io.ReadAll(file)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to read image upload"), http.StatusBadRequest)
			return
		}
		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}
		parts = append(parts, model.ImagePart{MIMEType: mimeType, Data: data})
	}

	reply, err := s.uc.Chat.HandleMessage(r.Context(), sessionID, parts...)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, struct {
		Reply messageResponse `json:"reply"`
	}{Reply: toMessageResponse(reply)})
}

type observationResponse struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

type evaluationResponse struct {
	Mean               float64               `json:"mean"`
	Threshold          float64               `json:"threshold"`
	Verdict            string                `json:"verdict"`
	InspectionRequired bool                  `json:"inspection_required"`
	Series             []observationResponse `json:"series"`
}

// handlePostEvidence accepts a lab-results CSV as a multipart "file" upload
// and returns the resulting verdict
func (s *Server) handlePostEvidence(w http.ResponseWriter, r *http.Request) {
	sessionID := types.SessionID(chi.URLParam(r, "sessionID"))
	unlock := s.lockSession(sessionID)
	defer unlock()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid multipart form"), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "evidence upload requires a file field"), http.StatusBadRequest)
		return
	}
	defer safe.Close(r.Context(), file)

	series, err := evidence.ParseCSV(file)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	eval, err := s.uc.Investigation.EvaluateEvidence(r.Context(), sessionID, series)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	resp := evaluationResponse{
		Mean:               eval.Mean,
		Threshold:          eval.Threshold,
		Verdict:            string(eval.Verdict),
		InspectionRequired: eval.InspectionRequired,
		Series:             make([]observationResponse, len(eval.Series)),
	}
	for i, obs := range eval.Series {
		resp.Series[i] = observationResponse{Date: obs.Date, Count: obs.Count}
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handlePostInspection(w http.ResponseWriter, r *http.Request) {
	sessionID := types.SessionID(chi.URLParam(r, "sessionID"))
	unlock := s.lockSession(sessionID)
	defer unlock()

	var req struct {
		Outcome string `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	outcome, err := types.ParseInspectionOutcome(req.Outcome)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid inspection outcome"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.Investigation.RecordInspection(r.Context(), sessionID, outcome)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, struct {
		Outcome   string `json:"outcome"`
		Confirmed bool   `json:"confirmed"`
		Note      string `json:"note"`
	}{
		Outcome:   result.Outcome.String(),
		Confirmed: result.Confirmed,
		Note:      result.Note,
	})
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	sessionID := types.SessionID(chi.URLParam(r, "sessionID"))
	unlock := s.lockSession(sessionID)
	defer unlock()

	emitted, err := s.uc.Report.Generate(r.Context(), sessionID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, struct {
		Name      string `json:"name"`
		URL       string `json:"url"`
		Line      string `json:"line"`
		Issue     string `json:"issue"`
		RootCause string `json:"root_cause"`
		Action    string `json:"action"`
	}{
		Name:      emitted.Name,
		URL:       "/api/reports/" + emitted.Name,
		Line:      emitted.Record.Line.String(),
		Issue:     emitted.Record.Issue,
		RootCause: emitted.Record.RootCause,
		Action:    emitted.Record.Action,
	})
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "reportName")
	path, err := s.uc.Report.Open(name)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}
