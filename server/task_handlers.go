package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/taskbridge/go-task-server/tasks"
)

const contentTypeJSON = "application/json; charset=utf-8"

type taskDoneRequest struct {
	IsDone bool `json:"isDone"`
}

// TasksListHandler returns the caller's tasks, ordered by ascending id
// (GET /api/tasks). Other users' tasks are never visible.
func (s *Server) TasksListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			unauthorized(w, "No authenticated user")
			return
		}

		list, err := s.repos.Tasks.ListByUser(user.ID)
		if err != nil {
			log.Err(err).Msg("Failed to list tasks")
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// TaskDoneHandler updates a task's done flag (POST /api/tasks/{taskId}/done).
// A task that does not exist and a task owned by someone else both
// return 404, so the endpoint leaks nothing about other users' records.
func (s *Server) TaskDoneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			unauthorized(w, "No authenticated user")
			return
		}

		taskID, err := strconv.ParseInt(r.PathValue("taskId"), 10, 64)
		if err != nil {
			http.Error(w, `{"error":"invalid_task_id"}`, http.StatusBadRequest)
			return
		}

		var body taskDoneRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"invalid_body"}`, http.StatusBadRequest)
			return
		}

		if err := s.repos.Tasks.SetDone(taskID, user.ID, body.IsDone); err != nil {
			if err == tasks.ErrNotFound {
				http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
				return
			}
			log.Err(err).Int64("task_id", taskID).Msg("Failed to update task")
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// UserHandler returns the authenticated user's identity (GET /api/user).
func (s *Server) UserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			unauthorized(w, "No authenticated user")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}
