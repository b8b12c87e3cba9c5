package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/launch-orchestrator/internal/db"
	"github.com/jonathan/launch-orchestrator/internal/pipeline"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/server/middleware"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

const maxListLimit = 200

// CreateStartupRequest is the body of POST /startups
type CreateStartupRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Idea string `json:"idea" validate:"required,min=10,max=5000"`
}

// TaskInfo describes one catalog entry for GET /tasks
type TaskInfo struct {
	Task          steps.TaskID  `json:"task"`
	Category      string        `json:"category"`
	Index         int           `json:"index"`
	Output        types.Field   `json:"output"`
	Prerequisites []types.Field `json:"prerequisites"`
}

// BoardResponse is the reply of GET /startups/{id}/tasks
type BoardResponse struct {
	StartupID uuid.UUID            `json:"startup_id"`
	Name      string               `json:"name"`
	Done      int                  `json:"done"`
	Total     int                  `json:"total"`
	Tasks     []pipeline.TaskState `json:"tasks"`
}

// handleHealth reports whether the store is reachable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warnw("health check failed", "error", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListTasks returns the task catalog in pipeline order
func (s *Server) handleListTasks(w http.ResponseWriter, _ *http.Request) {
	defs := s.registry.InOrder()
	out := make([]TaskInfo, len(defs))
	for i, def := range defs {
		prereqs := def.Prerequisites
		if prereqs == nil {
			prereqs = []types.Field{}
		}
		out[i] = TaskInfo{
			Task:          def.ID,
			Category:      def.Category,
			Index:         i,
			Output:        def.Output,
			Prerequisites: prereqs,
		}
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleCreateStartup(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateStartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.writeError(w, r, err)
		return
	}

	startup, err := s.store.CreateStartup(r.Context(), &userID, req.Name, req.Idea)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to create startup: %w", err))
		return
	}
	s.logger.Infow("startup created", "startup_id", startup.ID, "user_id", userID)
	s.jsonResponse(w, http.StatusCreated, startup)
}

func (s *Server) handleListStartups(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filters := db.StartupFilters{UserID: &userID}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			s.writeError(w, r, &ErrValidation{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxListLimit)})
			return
		}
		filters.Limit = limit
	}

	startups, err := s.store.ListStartups(r.Context(), filters)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to list startups: %w", err))
		return
	}
	if startups == nil {
		startups = []db.StartupSummary{}
	}
	s.jsonResponse(w, http.StatusOK, startups)
}

func (s *Server) handleGetStartup(w http.ResponseWriter, r *http.Request) {
	startup, ok := s.ownedStartup(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, startup)
}

func (s *Server) handleDeleteStartup(w http.ResponseWriter, r *http.Request) {
	startup, ok := s.ownedStartup(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteStartup(r.Context(), startup.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTaskBoard returns every task's done, locked, and ready state
func (s *Server) handleTaskBoard(w http.ResponseWriter, r *http.Request) {
	startup, ok := s.ownedStartup(w, r)
	if !ok {
		return
	}

	states := pipeline.LockStates(s.registry, startup)
	done := 0
	for _, st := range states {
		if st.Done {
			done++
		}
	}
	s.jsonResponse(w, http.StatusOK, BoardResponse{
		StartupID: startup.ID,
		Name:      startup.Name,
		Done:      done,
		Total:     len(states),
		Tasks:     states,
	})
}

// handleRunTask runs one task. ?force=true regenerates an existing artifact.
func (s *Server) handleRunTask(w http.ResponseWriter, r *http.Request) {
	startupID, ok := s.pathStartupID(w, r)
	if !ok {
		return
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	taskID, err := s.registry.ParseTaskID(r.PathValue("task"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	force, err := parseForce(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.orchestrator.RunTask(r.Context(), startupID, taskID, pipeline.RunTaskOptions{
		Force:    force,
		CallerID: &userID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRunPipelineStream runs the whole catalog and streams progress as SSE
func (s *Server) handleRunPipelineStream(w http.ResponseWriter, r *http.Request) {
	startup, ok := s.ownedStartup(w, r)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(r)
	force, err := parseForce(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := s.runner.Run(r.Context(), startup.ID, pipeline.RunnerOptions{
		Force:    force,
		CallerID: &userID,
		OnProgress: func(event pipeline.Progress) {
			if werr := sse.WriteEvent(EventProgress, event); werr != nil {
				s.logger.Debugw("failed to write progress event", "error", werr)
			}
		},
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warnw("pipeline stream stopped", "startup_id", startup.ID, "error", err)
		}
		sse.WriteError(err)
		return
	}
	if err := sse.WriteEvent(EventComplete, report); err != nil {
		s.logger.Debugw("failed to write complete event", "error", err)
	}
}

// ownedStartup loads the startup named in the path and checks the caller owns
// it. Records without an owner are not reachable over the API. It writes the
// error reply and returns false on failure.
func (s *Server) ownedStartup(w http.ResponseWriter, r *http.Request) (*db.Startup, bool) {
	startupID, ok := s.pathStartupID(w, r)
	if !ok {
		return nil, false
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	startup, err := s.store.GetStartup(r.Context(), startupID)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to load startup: %w", err))
		return nil, false
	}
	if startup == nil {
		s.writeError(w, r, &pipeline.RecordNotFoundError{StartupID: startupID})
		return nil, false
	}
	if startup.UserID == nil || *startup.UserID != userID {
		s.writeError(w, r, &pipeline.ForbiddenError{StartupID: startupID})
		return nil, false
	}
	return startup, true
}

func (s *Server) pathStartupID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "invalid startup ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("failed %q validation", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %q validation (%s)", fe.Tag(), fe.Param())
		}
		return &ErrValidation{Field: fe.Field(), Message: msg}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

func parseForce(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("force")
	if raw == "" {
		return false, nil
	}
	force, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ErrValidation{Field: "force", Message: "must be a boolean"}
	}
	return force, nil
}
