package cli

import (
	"bytes"
	"testing"
	"time"

	"taskdesk/internal/controller"
	"taskdesk/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestWriteTasks(t *testing.T) {
	due := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	view := controller.TaskListView{
		Tasks: []controller.TaskCard{
			controller.CardOf(model.Task{ID: "t1", Title: "Write report", Priority: model.PriorityHigh, DueDate: &due,
				TodoChecklist: []model.ChecklistItem{{Text: "a", Completed: true}, {Text: "b"}}}),
		},
		Summary:  model.StatusSummary{All: 1, InProgressTask: 1},
		ShowTabs: true,
		Tabs: []controller.Tab{
			{Label: "All", Count: 1}, {Label: "Pending", Count: 0},
			{Label: "In Progress", Count: 1}, {Label: "Completed", Count: 0},
		},
	}

	var out bytes.Buffer
	writeTasks(&out, view)

	assert.Contains(t, out.String(), "All (1)  Pending (0)  In Progress (1)  Completed (0)")
	assert.Contains(t, out.String(), "Write report")
	assert.Contains(t, out.String(), "In Progress")
	assert.Contains(t, out.String(), "1/2")
	assert.Contains(t, out.String(), "2025-03-14")
}

func TestWriteTasks_Empty(t *testing.T) {
	var out bytes.Buffer
	writeTasks(&out, controller.TaskListView{})

	assert.Equal(t, "No tasks found.\n", out.String())
}
