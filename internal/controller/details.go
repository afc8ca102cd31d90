package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"taskdesk/internal/busy"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

// ChecklistUpdater is what a member needs to tick checklist items.
type ChecklistUpdater interface {
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateChecklist(ctx context.Context, id string, checklist []model.ChecklistItem) (model.Task, error)
}

// TaskDetails shows one task to its assignee and toggles checklist items.
type TaskDetails struct {
	svc      ChecklistUpdater
	busy     *busy.Tracker
	notifier notify.Notifier

	mu    sync.Mutex
	tasks map[string]model.Task
	locks map[string]*sync.Mutex
}

func NewTaskDetails(svc ChecklistUpdater, tracker *busy.Tracker, notifier notify.Notifier) *TaskDetails {
	return &TaskDetails{
		svc:      svc,
		busy:     tracker,
		notifier: notifier,
		tasks:    make(map[string]model.Task),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Open fetches task id.
func (d *TaskDetails) Open(ctx context.Context, id string) (TaskCard, bool) {
	var t model.Task
	err := d.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		t, err = d.svc.GetTask(ctx, id)
		return err
	})
	if err != nil {
		log.Err(err).Str("task", id).Msg("error fetching task details")
		d.notifier.Error("Failed to load task")
		return TaskCard{}, false
	}

	d.mu.Lock()
	d.tasks[id] = t
	d.mu.Unlock()
	return CardOf(t), true
}

// Toggle flips the completion of checklist item index and sends the whole
// checklist. The task is fetched first when it was never opened.
func (d *TaskDetails) Toggle(ctx context.Context, id string, index int) (TaskCard, bool) {
	// Toggles of one task run one at a time so each starts from the
	// checklist the previous one wrote.
	lock := d.taskLock(id)
	lock.Lock()
	defer lock.Unlock()

	d.mu.Lock()
	t, ok := d.tasks[id]
	d.mu.Unlock()
	if !ok {
		if _, ok := d.Open(ctx, id); !ok {
			return TaskCard{}, false
		}
		d.mu.Lock()
		t = d.tasks[id]
		d.mu.Unlock()
	}

	if index < 0 || index >= len(t.TodoChecklist) {
		log.Warn().Str("task", id).Int("index", index).Msg("checklist index out of range")
		d.notifier.Error("Failed to update checklist")
		return CardOf(t), false
	}

	checklist := append([]model.ChecklistItem{}, t.TodoChecklist...)
	checklist[index].Completed = !checklist[index].Completed

	var updated model.Task
	err := d.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		updated, err = d.svc.UpdateChecklist(ctx, id, checklist)
		if err != nil {
			return fmt.Errorf("toggle item %d: %w", index, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("task", id).Msg("error updating checklist")
		d.notifier.Error("Failed to update checklist")
		return CardOf(t), false
	}

	d.mu.Lock()
	d.tasks[id] = updated
	d.mu.Unlock()
	return CardOf(updated), true
}

func (d *TaskDetails) taskLock(id string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[id] = lock
	}
	return lock
}
