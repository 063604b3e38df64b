package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/activation/internal/activation"
	"github.com/rpggio/activation/internal/domain/activity"
	"github.com/rpggio/activation/internal/domain/decision"
	"github.com/rpggio/activation/internal/domain/milestone"
	"github.com/rpggio/activation/internal/domain/workspace"
)

// maxBodyBytes bounds request bodies; artifacts are the largest payload.
const maxBodyBytes = 1 << 20

type createWorkspaceBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createDecisionBody struct {
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Status   string          `json:"status"`
	Artifact json.RawMessage `json:"artifact"`
}

type updateStatusBody struct {
	Status string `json:"status"`
}

type scheduleReviewBody struct {
	Date     string `json:"date"`
	Reminder *bool  `json:"reminder"`
}

type createMilestoneBody struct {
	Title    string `json:"title"`
	DueDate  string `json:"due_date"`
	Progress int    `json:"progress"`
}

type updateProgressBody struct {
	Progress *int `json:"progress"`
}

// NudgeResponse is the body of GET /workspaces/{id}/nudge.
type NudgeResponse struct {
	WorkspaceID    string            `json:"workspace_id"`
	DaysSinceStart int               `json:"days_since_start"`
	Nudge          *activation.Nudge `json:"nudge"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

// --- Workspaces ---

func (s *Server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Workspaces.List(r.Context(), tenant(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(list))
}

func (s *Server) createWorkspace(w http.ResponseWriter, r *http.Request) {
	var body createWorkspaceBody
	if !s.decode(w, r, &body) {
		return
	}
	ws, err := s.svc.Workspaces.Create(r.Context(), tenant(r), workspace.CreateRequest{
		ID:          body.ID,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

func (s *Server) getWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.svc.Workspaces.Get(r.Context(), tenant(r), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

// --- Progress ---

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Progress.Report(r.Context(), tenant(r), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) getNudge(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Progress.Report(r.Context(), tenant(r), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NudgeResponse{
		WorkspaceID:    report.WorkspaceID,
		DaysSinceStart: report.Snapshot.DaysSinceStart,
		Nudge:          report.Nudge,
	})
}

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}
	opts := activity.ListOptions{
		WorkspaceID: chi.URLParam(r, "workspaceID"),
		Limit:       limit,
		Offset:      offset,
	}
	q := r.URL.Query()
	if subject := q.Get("subject_id"); subject != "" {
		opts.SubjectID = &subject
	}
	if typ := q.Get("type"); typ != "" {
		t := activity.Type(typ)
		opts.Type = &t
	}

	entries, err := s.svc.Activity.Recent(r.Context(), tenant(r), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(entries))
}

// --- Decisions ---

func (s *Server) listDecisions(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}
	tenantID, workspaceID := tenant(r), chi.URLParam(r, "workspaceID")
	if _, err := s.svc.Workspaces.Get(r.Context(), tenantID, workspaceID); err != nil {
		s.fail(w, r, err)
		return
	}

	opts := decision.ListOptions{WorkspaceID: workspaceID, Limit: limit, Offset: offset}
	for _, st := range r.URL.Query()["status"] {
		opts.Statuses = append(opts.Statuses, decision.Status(st))
	}
	list, err := s.svc.Decisions.List(r.Context(), tenantID, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(list))
}

func (s *Server) createDecision(w http.ResponseWriter, r *http.Request) {
	var body createDecisionBody
	if !s.decode(w, r, &body) {
		return
	}
	tenantID, workspaceID := tenant(r), chi.URLParam(r, "workspaceID")
	if _, err := s.svc.Workspaces.Get(r.Context(), tenantID, workspaceID); err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.Decisions.Create(r.Context(), tenantID, decision.CreateRequest{
		WorkspaceID: workspaceID,
		Title:       body.Title,
		Summary:     body.Summary,
		Status:      decision.Status(body.Status),
		Artifact:    body.Artifact,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) getDecision(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Decisions.Get(r.Context(), tenant(r), chi.URLParam(r, "decisionID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) updateDecisionStatus(w http.ResponseWriter, r *http.Request) {
	var body updateStatusBody
	if !s.decode(w, r, &body) {
		return
	}
	d, err := s.svc.Decisions.UpdateStatus(r.Context(), tenant(r), decision.UpdateStatusRequest{
		ID:     chi.URLParam(r, "decisionID"),
		Status: decision.Status(body.Status),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) scheduleReview(w http.ResponseWriter, r *http.Request) {
	var body scheduleReviewBody
	if !s.decode(w, r, &body) {
		return
	}
	d, err := s.svc.Decisions.ScheduleReview(r.Context(), tenant(r), decision.ScheduleReviewRequest{
		ID:       chi.URLParam(r, "decisionID"),
		Date:     body.Date,
		Reminder: body.Reminder,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// --- Milestones ---

func (s *Server) listDecisionMilestones(w http.ResponseWriter, r *http.Request) {
	s.listMilestones(w, r, milestone.ListOptions{DecisionID: chi.URLParam(r, "decisionID")})
}

func (s *Server) listWorkspaceMilestones(w http.ResponseWriter, r *http.Request) {
	s.listMilestones(w, r, milestone.ListOptions{WorkspaceID: chi.URLParam(r, "workspaceID")})
}

func (s *Server) listMilestones(w http.ResponseWriter, r *http.Request, opts milestone.ListOptions) {
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}
	opts.Limit, opts.Offset = limit, offset
	list, err := s.svc.Milestones.List(r.Context(), tenant(r), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(list))
}

func (s *Server) createMilestone(w http.ResponseWriter, r *http.Request) {
	var body createMilestoneBody
	if !s.decode(w, r, &body) {
		return
	}
	req := milestone.CreateRequest{
		DecisionID: chi.URLParam(r, "decisionID"),
		Title:      body.Title,
		Progress:   body.Progress,
	}
	if due := strings.TrimSpace(body.DueDate); due != "" {
		parsed, err := time.Parse(time.DateOnly, due)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", fmt.Sprintf("due_date %q is not YYYY-MM-DD", due))
			return
		}
		req.DueDate = &parsed
	}

	m, err := s.svc.Milestones.Create(r.Context(), tenant(r), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) updateMilestoneProgress(w http.ResponseWriter, r *http.Request) {
	var body updateProgressBody
	if !s.decode(w, r, &body) {
		return
	}
	if body.Progress == nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "progress is required")
		return
	}
	m, err := s.svc.Milestones.UpdateProgress(r.Context(), tenant(r), chi.URLParam(r, "milestoneID"), *body.Progress)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// --- Helpers ---

func tenant(r *http.Request) string {
	tenantID, _ := TenantFromContext(r.Context())
	return tenantID
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body must be a JSON object")
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = "internal error"
	}
	writeError(w, status, code, message)
}

func pagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &limit}, {"offset", &offset}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", p.name+" must be a non-negative integer")
			return 0, 0, false
		}
		*p.dst = n
	}
	return limit, offset, true
}
