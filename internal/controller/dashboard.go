package controller

import (
	"context"
	"sort"

	"taskdesk/internal/busy"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

const recentLimit = 5

// DashboardView summarises the tasks in scope of the session.
type DashboardView struct {
	Summary  model.StatusSummary    `json:"statusSummary"`
	Priority map[model.Priority]int `json:"priorityBreakdown"`
	Recent   []TaskCard             `json:"recentTasks"`
}

// Dashboard builds the admin and member landing pages. The external system
// scopes the "All" list to what the caller may see.
type Dashboard struct {
	list *TaskList
}

func NewDashboard(svc TaskLister, tracker *busy.Tracker, notifier notify.Notifier) *Dashboard {
	return &Dashboard{list: NewTaskList(svc, tracker, notifier)}
}

// Load refreshes the dashboard. On failure the last good view is returned.
func (d *Dashboard) Load(ctx context.Context) DashboardView {
	d.list.Load(ctx, model.FilterAll)
	return Summarize(d.list.Summary(), d.list.Tasks())
}

// Summarize computes a dashboard from a task list.
func Summarize(summary model.StatusSummary, tasks []model.Task) DashboardView {
	v := DashboardView{
		Summary: summary,
		Priority: map[model.Priority]int{
			model.PriorityLow:    0,
			model.PriorityMedium: 0,
			model.PriorityHigh:   0,
		},
		Recent: []TaskCard{},
	}
	for _, t := range tasks {
		if t.Priority.Valid() {
			v.Priority[t.Priority]++
		}
	}

	sorted := append([]model.Task{}, tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	for _, t := range sorted {
		v.Recent = append(v.Recent, CardOf(t))
	}
	return v
}
