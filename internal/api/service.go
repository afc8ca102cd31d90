// Package api is the boundary to the external task system.
package api

import (
	"context"
	"errors"
	"fmt"

	"taskdesk/internal/model"
)

var (
	// ErrUnauthorized means the stored credential is missing or was rejected.
	ErrUnauthorized = errors.New("credential rejected")
	ErrNotFound     = errors.New("not found")

	// ErrNoCredential is returned before any request is sent when no token
	// is stored. It matches ErrUnauthorized.
	ErrNoCredential = fmt.Errorf("no stored credential: %w", ErrUnauthorized)
)

// StatusError is a non-2xx answer of the external system.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("external system answered %d", e.Code)
	}
	return fmt.Sprintf("external system answered %d: %s", e.Code, e.Message)
}

// Service defines every operation the client consumes from the external
// system. Controllers only ever talk to this interface.
type Service interface {
	// ResolveSession returns the identity behind the stored credential, or
	// nil when no credential is stored.
	ResolveSession(ctx context.Context) (*model.User, error)

	Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error)
	Register(ctx context.Context, profile model.Profile) (model.AuthResult, error)

	// ListTasks returns the tasks and status summary for a filter scope.
	ListTasks(ctx context.Context, filter model.Filter) (model.TaskPage, error)
	GetTask(ctx context.Context, id string) (model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error)
	UpdateTask(ctx context.Context, id string, in model.TaskInput) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// UpdateChecklist replaces only the checklist of a task; members use it
	// to tick items.
	UpdateChecklist(ctx context.Context, id string, checklist []model.ChecklistItem) (model.Task, error)

	ExportTasksReport(ctx context.Context) (model.Report, error)
	ExportUsersReport(ctx context.Context) (model.Report, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}
