package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/usecase"
)

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListTasks(ctx context.Context, principal string) (*usecase.TaskListResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TaskListResponse), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, principal string, req usecase.CreateTaskRequest, meta usecase.RequestMeta) error {
	args := m.Called(ctx, principal, req, meta)
	return args.Error(0)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, principal string, req usecase.UpdateTaskRequest, meta usecase.RequestMeta) error {
	args := m.Called(ctx, principal, req, meta)
	return args.Error(0)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, principal string, req usecase.DeleteTaskRequest, meta usecase.RequestMeta) error {
	args := m.Called(ctx, principal, req, meta)
	return args.Error(0)
}

// authenticated simulates the session middleware for a request
func authenticated(r *http.Request, username string) *http.Request {
	return r.WithContext(ContextWithPrincipal(r.Context(), username))
}

func newTestRouter(handler *TaskHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/tasks", handler.ListTasks).Methods("GET")
	router.HandleFunc("/tasks/create", handler.CreateTask).Methods("POST")
	router.HandleFunc("/tasks/update/{id}", handler.UpdateTask).Methods("POST")
	router.HandleFunc("/tasks/delete/{id}", handler.DeleteTask).Methods("POST")
	return router
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestTaskHandler_ListTasks(t *testing.T) {
	mockService := new(MockTaskService)
	handler := NewTaskHandler(mockService, NewView())
	router := newTestRouter(handler)

	due := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mockService.On("ListTasks", mock.Anything, "alice").Return(&usecase.TaskListResponse{
		Username: "alice",
		Tasks: []*domain.Task{
			{ID: "task-1", Title: "Buy milk", Status: domain.TaskStatusTodo, DueDate: &due, OwnerID: "user-alice"},
		},
	}, nil)

	req := authenticated(httptest.NewRequest("GET", "/tasks", nil), "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "Buy milk")
	assert.Contains(t, body, "2025-06-01T10:00:00")
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	mockService := new(MockTaskService)
	handler := NewTaskHandler(mockService, NewView())
	router := newTestRouter(handler)

	mockService.On("ListTasks", mock.Anything, "alice").Return(nil, assert.AnError)

	req := authenticated(httptest.NewRequest("GET", "/tasks", nil), "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	tests := []struct {
		name             string
		form             url.Values
		serviceError     error
		expectServiceHit bool
		expectedStatus   int
		expectedLocation string
	}{
		{
			name: "successful creation redirects to list",
			form: url.Values{
				"title":       {"Buy milk"},
				"description": {"2 liters"},
				"dueDate":     {"2025-06-01T10:00:00"},
			},
			expectServiceHit: true,
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/tasks",
		},
		{
			name:           "empty title rejected before the use case",
			form:           url.Values{"title": {"   "}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:             "malformed due date yields a validation error",
			form:             url.Values{"title": {"Buy milk"}, "dueDate": {"not-a-date"}},
			serviceError:     &domain.ValidationError{Field: "dueDate", Message: "invalid due date"},
			expectServiceHit: true,
			expectedStatus:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			handler := NewTaskHandler(mockService, NewView())
			router := newTestRouter(handler)

			if tt.expectServiceHit {
				mockService.On("CreateTask", mock.Anything, "alice",
					mock.AnythingOfType("usecase.CreateTaskRequest"),
					mock.AnythingOfType("usecase.RequestMeta")).Return(tt.serviceError)
			}

			req := authenticated(postForm("/tasks/create", tt.form), "alice")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rec.Header().Get("Location"))
			}
			if !tt.expectServiceHit {
				mockService.AssertNotCalled(t, "CreateTask")
			}
		})
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	mockService := new(MockTaskService)
	handler := NewTaskHandler(mockService, NewView())
	router := newTestRouter(handler)

	var captured usecase.UpdateTaskRequest
	mockService.On("UpdateTask", mock.Anything, "alice",
		mock.AnythingOfType("usecase.UpdateTaskRequest"),
		mock.AnythingOfType("usecase.RequestMeta")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(usecase.UpdateTaskRequest) }).
		Return(nil)

	form := url.Values{
		"title":  {"Buy bread"},
		"status": {"DONE"},
	}
	req := authenticated(postForm("/tasks/update/task-1", form), "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))
	assert.Equal(t, "task-1", captured.ID)
	assert.Equal(t, "Buy bread", captured.Title)
	assert.Equal(t, "DONE", captured.Status)
}

func TestTaskHandler_UpdateTask_UnknownStatus(t *testing.T) {
	mockService := new(MockTaskService)
	handler := NewTaskHandler(mockService, NewView())
	router := newTestRouter(handler)

	mockService.On("UpdateTask", mock.Anything, "alice",
		mock.AnythingOfType("usecase.UpdateTaskRequest"),
		mock.AnythingOfType("usecase.RequestMeta")).
		Return(&domain.ValidationError{Field: "status", Message: `unknown status "done"`})

	form := url.Values{"title": {"Buy bread"}, "status": {"done"}}
	req := authenticated(postForm("/tasks/update/task-1", form), "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "status")
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	mockService := new(MockTaskService)
	handler := NewTaskHandler(mockService, NewView())
	router := newTestRouter(handler)

	var captured usecase.DeleteTaskRequest
	mockService.On("DeleteTask", mock.Anything, "alice",
		mock.AnythingOfType("usecase.DeleteTaskRequest"),
		mock.AnythingOfType("usecase.RequestMeta")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(usecase.DeleteTaskRequest) }).
		Return(nil)

	// Legacy clients post the task fields with the delete; they are only
	// used for audit text.
	form := url.Values{"title": {"Buy milk"}, "status": {"TODO"}}
	req := authenticated(postForm("/tasks/delete/task-1", form), "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))
	assert.Equal(t, "task-1", captured.ID)
	assert.Equal(t, "Buy milk", captured.Title)
	assert.Equal(t, "TODO", captured.Status)
}

func TestRequestMeta_StripsPort(t *testing.T) {
	req := httptest.NewRequest("GET", "/tasks", nil)
	req.RemoteAddr = "192.0.2.1:54321"
	require.Equal(t, "192.0.2.1", requestMeta(req).OriginIP)
}
