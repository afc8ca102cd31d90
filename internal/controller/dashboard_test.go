package controller_test

import (
	"context"
	"testing"
	"time"

	"taskdesk/internal/busy"
	"taskdesk/internal/controller"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
	"taskdesk/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Load(t *testing.T) {
	svc := testutil.NewFakeService()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	priorities := []model.Priority{model.PriorityLow, model.PriorityHigh, model.PriorityHigh, model.PriorityMedium, model.PriorityLow, model.PriorityLow}
	for i, p := range priorities {
		svc.AddTask(model.Task{
			ID:            string(rune('a' + i)),
			Priority:      p,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
			TodoChecklist: items("x", i%2 == 0),
		})
	}
	dashboard := controller.NewDashboard(svc, busy.New(), notify.NewInbox(0))

	view := dashboard.Load(context.Background())

	assert.Equal(t, 6, view.Summary.All)
	assert.Equal(t, 3, view.Summary.CompletedTask)
	assert.Equal(t, map[model.Priority]int{model.PriorityLow: 3, model.PriorityMedium: 1, model.PriorityHigh: 2}, view.Priority)
	require.Len(t, view.Recent, 5)
	assert.Equal(t, "f", view.Recent[0].ID)
	assert.Equal(t, "b", view.Recent[4].ID)
}

func TestSummarize_Empty(t *testing.T) {
	view := controller.Summarize(model.StatusSummary{}, nil)

	assert.Empty(t, view.Recent)
	assert.Equal(t, 0, view.Priority[model.PriorityHigh])
}
