package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/usecase"
)

// TaskService is the inbound port the task handlers drive.
type TaskService interface {
	ListTasks(ctx context.Context, principal string) (*usecase.TaskListResponse, error)
	CreateTask(ctx context.Context, principal string, req usecase.CreateTaskRequest, meta usecase.RequestMeta) error
	UpdateTask(ctx context.Context, principal string, req usecase.UpdateTaskRequest, meta usecase.RequestMeta) error
	DeleteTask(ctx context.Context, principal string, req usecase.DeleteTaskRequest, meta usecase.RequestMeta) error
}

// TaskHandler handles the server-rendered task pages and form posts
type TaskHandler struct {
	tasks TaskService
	view  *View
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks TaskService, view *View) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		view:  view,
	}
}

// RegisterRoutes registers task routes behind the session middleware
func (h *TaskHandler) RegisterRoutes(router *mux.Router, session *SessionMiddleware) {
	router.HandleFunc("/tasks", session.RequireAuth(h.ListTasks)).Methods("GET")
	router.HandleFunc("/tasks/create", session.RequireAuth(h.CreateTask)).Methods("POST")
	router.HandleFunc("/tasks/update/{id}", session.RequireAuth(h.UpdateTask)).Methods("POST")
	router.HandleFunc("/tasks/delete/{id}", session.RequireAuth(h.DeleteTask)).Methods("POST")
}

// ListTasks renders the task list for the authenticated user
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	response, err := h.tasks.ListTasks(r.Context(), Principal(r.Context()))
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.view.Render(w, "tasks", response); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// CreateTask handles the task creation form
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	if strings.TrimSpace(title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	req := usecase.CreateTaskRequest{
		Title:       title,
		Description: r.PostFormValue("description"),
		DueDate:     r.PostFormValue("dueDate"),
	}

	if err := h.tasks.CreateTask(r.Context(), Principal(r.Context()), req, requestMeta(r)); err != nil {
		h.writeError(w, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// UpdateTask handles the task update form
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	if strings.TrimSpace(title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	req := usecase.UpdateTaskRequest{
		ID:          mux.Vars(r)["id"],
		Title:       title,
		Description: r.PostFormValue("description"),
		Status:      r.PostFormValue("status"),
		DueDate:     r.PostFormValue("dueDate"),
	}

	if err := h.tasks.UpdateTask(r.Context(), Principal(r.Context()), req, requestMeta(r)); err != nil {
		h.writeError(w, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// DeleteTask handles the task deletion form. The extra form fields are a
// legacy of the original client and are only echoed into the audit details.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	req := usecase.DeleteTaskRequest{
		ID:     mux.Vars(r)["id"],
		Title:  r.PostFormValue("title"),
		Status: r.PostFormValue("status"),
	}

	if err := h.tasks.DeleteTask(r.Context(), Principal(r.Context()), req, requestMeta(r)); err != nil {
		h.writeError(w, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func requestMeta(r *http.Request) usecase.RequestMeta {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return usecase.RequestMeta{OriginIP: host}
}
