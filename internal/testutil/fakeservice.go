// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdesk/internal/api"
	"taskdesk/internal/model"
	"taskdesk/internal/task"
)

type account struct {
	user     model.User
	password string
}

// FakeService is an in-memory implementation of api.Service for testing.
type FakeService struct {
	mu       sync.Mutex
	accounts []account
	tasks    []model.Task

	// Identity is what ResolveSession returns.
	Identity *model.User

	// Inputs records every create/update payload in call order.
	Inputs []model.TaskInput

	// ListTasksHook runs before ListTasks answers, outside the lock. Tests
	// use it to hold a response back.
	ListTasksHook func(ctx context.Context, filter model.Filter)

	// UpdateChecklistHook runs before UpdateChecklist answers, outside the
	// lock.
	UpdateChecklistHook func(ctx context.Context, id string)

	// Error injection for testing
	ResolveErr         error
	LoginErr           error
	RegisterErr        error
	ListTasksErr       error
	GetTaskErr         error
	CreateTaskErr      error
	UpdateTaskErr      error
	DeleteTaskErr      error
	UpdateChecklistErr error
	ExportErr          error
	ListUsersErr       error
}

var _ api.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddUser registers an account that can log in.
func (f *FakeService) AddUser(user model.User, password string) model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.accounts = append(f.accounts, account{user: user, password: password})
	return user
}

// AddTask stores a task, assigning an id when it has none.
func (f *FakeService) AddTask(t model.Task) model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Task returns the stored copy of a task.
func (f *FakeService) Task(id string) (model.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return f.tasks[i], true
}

// ResolveSession implements api.Service.
func (f *FakeService) ResolveSession(ctx context.Context) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ResolveErr != nil {
		return nil, f.ResolveErr
	}
	if f.Identity == nil {
		return nil, nil
	}
	u := *f.Identity
	return &u, nil
}

// Login implements api.Service.
func (f *FakeService) Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoginErr != nil {
		return model.AuthResult{}, f.LoginErr
	}
	for _, acc := range f.accounts {
		if acc.user.Email == creds.Email && acc.password == creds.Password {
			u := acc.user
			f.Identity = &u
			return model.AuthResult{Token: "token-" + u.ID, Identity: u}, nil
		}
	}
	return model.AuthResult{}, &api.StatusError{Code: 401, Message: "Invalid email or password"}
}

// Register implements api.Service.
func (f *FakeService) Register(ctx context.Context, profile model.Profile) (model.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RegisterErr != nil {
		return model.AuthResult{}, f.RegisterErr
	}
	for _, acc := range f.accounts {
		if acc.user.Email == profile.Email {
			return model.AuthResult{}, &api.StatusError{Code: 400, Message: "User already exists"}
		}
	}
	role := model.RoleMember
	if profile.AdminInviteToken != "" {
		role = model.RoleAdmin
	}
	u := model.User{
		ID:              uuid.NewString(),
		Name:            profile.Name,
		Email:           profile.Email,
		Role:            role,
		ProfileImageURL: profile.ProfileImageURL,
	}
	f.accounts = append(f.accounts, account{user: u, password: profile.Password})
	f.Identity = &u
	return model.AuthResult{Token: "token-" + u.ID, Identity: u}, nil
}

// ListTasks implements api.Service. The summary covers every stored task.
func (f *FakeService) ListTasks(ctx context.Context, filter model.Filter) (model.TaskPage, error) {
	if hook := f.ListTasksHook; hook != nil {
		hook(ctx, filter)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListTasksErr != nil {
		return model.TaskPage{}, f.ListTasksErr
	}

	page := model.TaskPage{Tasks: []model.Task{}}
	for _, t := range f.tasks {
		status := task.DeriveStatus(t.TodoChecklist)
		page.StatusSummary.All++
		switch status {
		case model.StatusPending:
			page.StatusSummary.PendingTask++
		case model.StatusInProgress:
			page.StatusSummary.InProgressTask++
		case model.StatusCompleted:
			page.StatusSummary.CompletedTask++
		}
		if filter == model.FilterAll || model.Filter(status) == filter {
			page.Tasks = append(page.Tasks, t)
		}
	}
	return page, nil
}

// GetTask implements api.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetTaskErr != nil {
		return model.Task{}, f.GetTaskErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %s: %w", id, api.ErrNotFound)
	}
	return f.tasks[i], nil
}

// CreateTask implements api.Service.
func (f *FakeService) CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Inputs = append(f.Inputs, in)
	if f.CreateTaskErr != nil {
		return model.Task{}, f.CreateTaskErr
	}
	t := fromInput(uuid.NewString(), in)
	t.CreatedAt = time.Now()
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements api.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in model.TaskInput) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Inputs = append(f.Inputs, in)
	if f.UpdateTaskErr != nil {
		return model.Task{}, f.UpdateTaskErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %s: %w", id, api.ErrNotFound)
	}
	t := fromInput(id, in)
	t.CreatedAt = f.tasks[i].CreatedAt
	f.tasks[i] = t
	return t, nil
}

// DeleteTask implements api.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, api.ErrNotFound)
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

// UpdateChecklist implements api.Service.
func (f *FakeService) UpdateChecklist(ctx context.Context, id string, checklist []model.ChecklistItem) (model.Task, error) {
	if hook := f.UpdateChecklistHook; hook != nil {
		hook(ctx, id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateChecklistErr != nil {
		return model.Task{}, f.UpdateChecklistErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %s: %w", id, api.ErrNotFound)
	}
	f.tasks[i].TodoChecklist = append([]model.ChecklistItem{}, checklist...)
	return f.tasks[i], nil
}

// ExportTasksReport implements api.Service.
func (f *FakeService) ExportTasksReport(ctx context.Context) (model.Report, error) {
	if f.ExportErr != nil {
		return model.Report{}, f.ExportErr
	}
	return model.Report{Filename: "task_details.xlsx", ContentType: "application/octet-stream", Data: []byte("tasks")}, nil
}

// ExportUsersReport implements api.Service.
func (f *FakeService) ExportUsersReport(ctx context.Context) (model.Report, error) {
	if f.ExportErr != nil {
		return model.Report{}, f.ExportErr
	}
	return model.Report{Filename: "user_details.xlsx", ContentType: "application/octet-stream", Data: []byte("users")}, nil
}

// ListUsers implements api.Service.
func (f *FakeService) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	users := make([]model.User, 0, len(f.accounts))
	for _, acc := range f.accounts {
		if acc.user.Role == model.RoleMember {
			users = append(users, acc.user)
		}
	}
	return users, nil
}

func (f *FakeService) indexOf(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func fromInput(id string, in model.TaskInput) model.Task {
	t := model.Task{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Priority:      in.Priority,
		AssignedTo:    append(model.UserRefs{}, in.AssignedTo...),
		TodoChecklist: append([]model.ChecklistItem{}, in.TodoChecklist...),
		Attachments:   append([]string{}, in.Attachments...),
	}
	if due, err := time.Parse(time.RFC3339, in.DueDate); err == nil {
		t.DueDate = &due
	}
	return t
}
