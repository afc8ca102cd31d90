package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the derived progress classification of a task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// ChecklistItem is a named boolean sub-task.
type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// UserRefs is an ordered list of user ids. The external system sends either
// plain ids or populated user objects, both decode to ids.
type UserRefs []string

func (u *UserRefs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	refs := make(UserRefs, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			refs = append(refs, id)
			continue
		}
		var user struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(item, &user); err != nil {
			return fmt.Errorf("assignee: %w", err)
		}
		refs = append(refs, user.ID)
	}
	*u = refs
	return nil
}

// Task is a persisted task as seen by the client.
type Task struct {
	ID            string          `json:"_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      Priority        `json:"priority"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	AssignedTo    UserRefs        `json:"assignedTo"`
	TodoChecklist []ChecklistItem `json:"todoChecklist"`
	Attachments   []string        `json:"attachments"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StatusSummary holds the counts the external system computes for the
// current query scope.
type StatusSummary struct {
	All            int `json:"all"`
	PendingTask    int `json:"pendingTask"`
	InProgressTask int `json:"inProgressTask"`
	CompletedTask  int `json:"completedTask"`
}

// TaskPage is one answer of the task listing.
type TaskPage struct {
	Tasks         []Task        `json:"tasks"`
	StatusSummary StatusSummary `json:"statusSummary"`
}

// Filter selects which tasks a list shows.
type Filter string

const (
	FilterAll        Filter = "All"
	FilterPending    Filter = Filter(StatusPending)
	FilterInProgress Filter = Filter(StatusInProgress)
	FilterCompleted  Filter = Filter(StatusCompleted)
)

// QueryValue is the value sent to the external system; All means no filter.
func (f Filter) QueryValue() string {
	if f == FilterAll {
		return ""
	}
	return string(f)
}

// ParseFilter accepts the four tab labels; an empty string means All.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending, FilterInProgress, FilterCompleted:
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// Draft is the editable working copy of a task. The checklist is authored
// as plain texts; completion state is toggled elsewhere.
type Draft struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      Priority   `json:"priority"`
	DueDate       *time.Time `json:"dueDate"`
	AssignedTo    []string   `json:"assignedTo"`
	TodoChecklist []string   `json:"todoChecklist"`
	Attachments   []string   `json:"attachments"`
}

// NewDraft returns an empty draft with the default priority.
func NewDraft() Draft {
	return Draft{
		Priority:      PriorityLow,
		AssignedTo:    []string{},
		TodoChecklist: []string{},
		Attachments:   []string{},
	}
}

// TaskInput is the payload sent on create and update.
type TaskInput struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      Priority        `json:"priority"`
	DueDate       string          `json:"dueDate"`
	AssignedTo    []string        `json:"assignedTo"`
	TodoChecklist []ChecklistItem `json:"todoChecklist"`
	Attachments   []string        `json:"attachments"`
}

// Report is an exported spreadsheet handed to the caller untouched.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}
