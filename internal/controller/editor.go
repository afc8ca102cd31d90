package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"taskdesk/internal/busy"
	"taskdesk/internal/gate"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
	"taskdesk/internal/task"
)

// TaskWriter is the part of the external system the editor needs.
type TaskWriter interface {
	GetTask(ctx context.Context, id string) (model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error)
	UpdateTask(ctx context.Context, id string, in model.TaskInput) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// EditorState is the lifecycle state of a submission.
type EditorState string

const (
	EditorIdle       EditorState = "idle"
	EditorValidating EditorState = "validating"
	EditorSubmitting EditorState = "submitting"
	EditorSuccess    EditorState = "success"
	EditorFailed     EditorState = "failed"
)

func isAllowedTransition(from, to EditorState) bool {
	switch from {
	case EditorIdle:
		return to == EditorValidating
	case EditorValidating:
		return to == EditorSubmitting || to == EditorIdle
	case EditorSubmitting:
		return to == EditorSuccess || to == EditorFailed
	case EditorSuccess, EditorFailed:
		return to == EditorIdle
	default:
		return false
	}
}

// Outcome classifies a submit.
type Outcome string

const (
	OutcomeInvalid   Outcome = "invalid"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	// OutcomeRejected means another submission was still running.
	OutcomeRejected Outcome = "rejected"
)

// Result is what a submit reports back to the screen.
type Result struct {
	Outcome Outcome     `json:"outcome"`
	Message string      `json:"message"`
	Task    *model.Task `json:"task,omitempty"`
}

// Validate returns the first validation failure of d, or "" when d may be
// submitted.
func Validate(d model.Draft) string {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return "Title is required"
	case strings.TrimSpace(d.Description) == "":
		return "Description is required"
	case d.DueDate == nil:
		return "Due Date is required"
	case len(d.AssignedTo) == 0:
		return "Task must be assigned to at least one member"
	case len(d.TodoChecklist) == 0:
		return "Add at least one TODO item"
	}
	return ""
}

// Editor creates, updates and deletes tasks. It keeps the last fetched
// snapshot of every task it opened; the snapshot is only used to carry
// checklist completion over an edit.
type Editor struct {
	svc      TaskWriter
	busy     *busy.Tracker
	notifier notify.Notifier

	mu        sync.Mutex
	state     EditorState
	draft     model.Draft
	snapshots map[string]model.Task
}

func NewEditor(svc TaskWriter, tracker *busy.Tracker, notifier notify.Notifier) *Editor {
	return &Editor{
		svc:       svc,
		busy:      tracker,
		notifier:  notifier,
		state:     EditorIdle,
		draft:     model.NewDraft(),
		snapshots: make(map[string]model.Task),
	}
}

// State returns the current submission state.
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Draft returns the working draft.
func (e *Editor) Draft() model.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyDraft(e.draft)
}

// SetDraft replaces the working draft.
func (e *Editor) SetDraft(d model.Draft) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = copyDraft(d)
}

// Reset clears the working draft.
func (e *Editor) Reset() {
	e.SetDraft(model.NewDraft())
}

func (e *Editor) transition(from, to EditorState) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != from {
		return fmt.Errorf("invalid editor transition: expected %s, got %s", from, e.state)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed editor transition: %s -> %s", from, to)
	}
	e.state = to
	return nil
}

// Open fetches task id, remembers it as the reconciliation snapshot and
// makes it the working draft.
func (e *Editor) Open(ctx context.Context, id string) (model.Draft, bool) {
	var t model.Task
	err := e.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		t, err = e.svc.GetTask(ctx, id)
		return err
	})
	if err != nil {
		log.Err(err).Str("task", id).Msg("error fetching task")
		e.notifier.Error("Failed to load task")
		return e.Draft(), false
	}

	d := task.DraftOf(t)
	e.mu.Lock()
	e.snapshots[id] = t
	e.draft = copyDraft(d)
	e.mu.Unlock()
	return d, true
}

// Snapshot returns the cached task for id.
func (e *Editor) Snapshot(id string) (model.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.snapshots[id]
	return t, ok
}

// Submit validates d and creates it, or updates existingID when it is not
// empty. Invalid drafts never reach the external system.
func (e *Editor) Submit(ctx context.Context, d model.Draft, existingID string) Result {
	if err := e.transition(EditorIdle, EditorValidating); err != nil {
		log.Debug().Err(err).Msg("submit rejected")
		return Result{Outcome: OutcomeRejected, Message: "A submission is already in progress"}
	}
	e.SetDraft(d)

	if msg := Validate(d); msg != "" {
		e.mustTransition(EditorValidating, EditorIdle)
		return Result{Outcome: OutcomeInvalid, Message: msg}
	}
	e.mustTransition(EditorValidating, EditorSubmitting)
	defer e.recoverSubmitting()

	var result Result
	if existingID == "" {
		result = e.create(ctx, d)
	} else {
		result = e.update(ctx, d, existingID)
	}

	if result.Outcome == OutcomeSucceeded {
		e.mustTransition(EditorSubmitting, EditorSuccess)
		e.mustTransition(EditorSuccess, EditorIdle)
	} else {
		e.mustTransition(EditorSubmitting, EditorFailed)
		e.mustTransition(EditorFailed, EditorIdle)
	}
	return result
}

func (e *Editor) create(ctx context.Context, d model.Draft) Result {
	in := task.Input(d, nil)

	var created model.Task
	err := e.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		created, err = e.svc.CreateTask(ctx, in)
		return err
	})
	if err != nil {
		log.Err(err).Str("title", d.Title).Msg("error creating task")
		e.notifier.Error("Task creation failed")
		return Result{Outcome: OutcomeFailed, Message: "Task creation failed"}
	}

	e.Reset()
	e.notifier.Success("Task created successfully")
	return Result{Outcome: OutcomeSucceeded, Message: "Task created successfully", Task: &created}
}

func (e *Editor) update(ctx context.Context, d model.Draft, id string) Result {
	previous, ok := e.Snapshot(id)
	if !ok {
		// Without the stored checklist every carried-over item would be
		// sent as not completed.
		err := e.busy.Track(ctx, func(ctx context.Context) error {
			var err error
			previous, err = e.svc.GetTask(ctx, id)
			return err
		})
		if err != nil {
			log.Err(err).Str("task", id).Msg("error fetching task before update")
			e.notifier.Error("Failed to load task")
			return Result{Outcome: OutcomeFailed, Message: "Failed to load task"}
		}
		e.mu.Lock()
		e.snapshots[id] = previous
		e.mu.Unlock()
	}
	in := task.Input(d, previous.TodoChecklist)

	var updated model.Task
	err := e.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		updated, err = e.svc.UpdateTask(ctx, id, in)
		return err
	})
	if err != nil {
		log.Err(err).Str("task", id).Msg("error updating task")
		e.notifier.Error("Task update failed")
		return Result{Outcome: OutcomeFailed, Message: "Task update failed"}
	}

	e.mu.Lock()
	e.snapshots[id] = updated
	e.mu.Unlock()
	e.notifier.Success("Task updated successfully")
	return Result{Outcome: OutcomeSucceeded, Message: "Task updated successfully", Task: &updated}
}

// Delete removes task id and moves nav to the admin task list.
func (e *Editor) Delete(ctx context.Context, id string, nav Navigator) bool {
	err := e.busy.Track(ctx, func(ctx context.Context) error {
		return e.svc.DeleteTask(ctx, id)
	})
	if err != nil {
		log.Err(err).Str("task", id).Msg("error deleting task")
		e.notifier.Error("Failed to delete task")
		return false
	}

	e.mu.Lock()
	delete(e.snapshots, id)
	e.mu.Unlock()
	e.notifier.Success("Task deleted successfully")
	if nav != nil {
		nav.Navigate(gate.PathAdminTasks)
	}
	return true
}

// recoverSubmitting returns the editor to idle when a submission was cut
// short by a panic in the external call.
func (e *Editor) recoverSubmitting() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == EditorSubmitting {
		log.Warn().Msg("submission aborted, resetting editor")
		e.state = EditorIdle
	}
}

// mustTransition is used where the editor itself owns the state; a failure
// means a bug in Submit.
func (e *Editor) mustTransition(from, to EditorState) {
	if err := e.transition(from, to); err != nil {
		panic(err)
	}
}

func copyDraft(d model.Draft) model.Draft {
	if d.DueDate != nil {
		due := *d.DueDate
		d.DueDate = &due
	}
	d.AssignedTo = append([]string{}, d.AssignedTo...)
	d.TodoChecklist = append([]string{}, d.TodoChecklist...)
	d.Attachments = append([]string{}, d.Attachments...)
	return d
}
