package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/julianstephens/nudge/internal/constants"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

// taskJSON is the wire shape of a task; ids go out as _id.
type taskJSON struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Deadline *string `json:"deadline"`
}

type taskRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Deadline *string `json:"deadline"`
}

func toJSON(t models.Task) taskJSON {
	out := taskJSON{ID: t.ID, Name: t.Name, Category: t.Category}
	if t.Deadline != nil {
		d := t.Deadline.String()
		out.Deadline = &d
	}
	return out
}

// apply copies the set fields of req onto t. An empty deadline clears it.
func (req taskRequest) apply(t *models.Task) error {
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		t.Category = strings.TrimSpace(*req.Category)
	}
	if req.Deadline != nil {
		if strings.TrimSpace(*req.Deadline) == "" {
			t.Deadline = nil
		} else {
			d, err := models.ParseTimeOfDay(*req.Deadline)
			if err != nil {
				return err
			}
			t.Deadline = &d
		}
	}
	return t.Validate()
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	tasks, err := s.store.GetAllTasks(user.ID)
	if err != nil {
		logger.Error("Failed to list tasks", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	out := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		out[i] = toJSON(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task := models.Task{ID: uuid.New().String(), Category: constants.DefaultCategory}
	if err := req.apply(&task); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if task.Category == "" {
		task.Category = constants.DefaultCategory
	}

	if err := s.store.AddTask(user.ID, task); err != nil {
		logger.Error("Failed to add task", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, toJSON(task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id := chi.URLParam(r, "id")

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := s.store.GetTask(user.ID, id)
	if err != nil {
		s.taskLookupError(w, user.ID, id, err)
		return
	}
	if err := req.apply(&task); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.UpdateTask(user.ID, task); err != nil {
		s.taskLookupError(w, user.ID, id, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSON(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteTask(user.ID, id); err != nil {
		s.taskLookupError(w, user.ID, id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func (s *Server) taskLookupError(w http.ResponseWriter, userID, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	logger.Error("Task operation failed", "user", userID, "task", id, "error", err)
	writeError(w, http.StatusInternalServerError, "Task operation failed")
}
