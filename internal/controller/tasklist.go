package controller

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"taskdesk/internal/busy"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
	"taskdesk/internal/task"
)

// TaskLister is the part of the external system a task list needs.
type TaskLister interface {
	ListTasks(ctx context.Context, filter model.Filter) (model.TaskPage, error)
}

// Tab is one status tab with its count.
type Tab struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TaskCard is a task with its derived status, as shown in lists.
type TaskCard struct {
	model.Task
	Status         model.Status `json:"status"`
	CompletedCount int          `json:"completedTodoCount"`
	TotalCount     int          `json:"todoCount"`
}

// CardOf derives the display status of t.
func CardOf(t model.Task) TaskCard {
	done, total := task.Progress(t.TodoChecklist)
	return TaskCard{
		Task:           t,
		Status:         task.DeriveStatus(t.TodoChecklist),
		CompletedCount: done,
		TotalCount:     total,
	}
}

// TaskListView is the state a list screen renders.
type TaskListView struct {
	Filter   model.Filter        `json:"filter"`
	Tasks    []TaskCard          `json:"tasks"`
	Summary  model.StatusSummary `json:"statusSummary"`
	Tabs     []Tab               `json:"tabs,omitempty"`
	ShowTabs bool                `json:"showTabs"`
	Loading  bool                `json:"loading"`
}

// TaskList loads tasks for a status filter. Loads are never cancelled;
// each one takes a generation number and only the newest generation may
// apply its response.
type TaskList struct {
	svc      TaskLister
	busy     *busy.Tracker
	notifier notify.Notifier

	mu         sync.Mutex
	generation uint64
	filter     model.Filter
	tasks      []model.Task
	summary    model.StatusSummary
}

func NewTaskList(svc TaskLister, tracker *busy.Tracker, notifier notify.Notifier) *TaskList {
	return &TaskList{
		svc:      svc,
		busy:     tracker,
		notifier: notifier,
		filter:   model.FilterAll,
		tasks:    []model.Task{},
	}
}

// Load queries the tasks of filter. It reports whether the response was
// applied; a failed or superseded load leaves the previous list in place.
func (l *TaskList) Load(ctx context.Context, filter model.Filter) bool {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.filter = filter
	l.mu.Unlock()

	var page model.TaskPage
	err := l.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		page, err = l.svc.ListTasks(ctx, filter)
		return err
	})

	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		log.Debug().Str("filter", string(filter)).Uint64("generation", gen).Msg("discarding stale task list response")
		return false
	}
	if err != nil {
		l.mu.Unlock()
		log.Err(err).Str("filter", string(filter)).Msg("error fetching tasks")
		l.notifier.Error("Failed to fetch tasks")
		return false
	}
	l.tasks = page.Tasks
	if l.tasks == nil {
		l.tasks = []model.Task{}
	}
	l.summary = page.StatusSummary
	l.mu.Unlock()
	return true
}

// Refresh reloads the current filter.
func (l *TaskList) Refresh(ctx context.Context) bool {
	return l.Load(ctx, l.Filter())
}

func (l *TaskList) Filter() model.Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

func (l *TaskList) Tasks() []model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Task{}, l.tasks...)
}

func (l *TaskList) Summary() model.StatusSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summary
}

// Tabs labels the summary counts in display order.
func (l *TaskList) Tabs() []Tab {
	return tabsOf(l.Summary())
}

// ShowTabs is false while the query scope holds no task at all.
func (l *TaskList) ShowTabs() bool {
	return l.Summary().All > 0
}

// View assembles everything a list screen needs.
func (l *TaskList) View() TaskListView {
	l.mu.Lock()
	defer l.mu.Unlock()

	v := TaskListView{
		Filter:   l.filter,
		Tasks:    make([]TaskCard, 0, len(l.tasks)),
		Summary:  l.summary,
		ShowTabs: l.summary.All > 0,
		Loading:  l.busy.IsBusy(),
	}
	for _, t := range l.tasks {
		v.Tasks = append(v.Tasks, CardOf(t))
	}
	if v.ShowTabs {
		v.Tabs = tabsOf(l.summary)
	}
	return v
}

func tabsOf(s model.StatusSummary) []Tab {
	return []Tab{
		{Label: string(model.FilterAll), Count: s.All},
		{Label: string(model.FilterPending), Count: s.PendingTask},
		{Label: string(model.FilterInProgress), Count: s.InProgressTask},
		{Label: string(model.FilterCompleted), Count: s.CompletedTask},
	}
}
