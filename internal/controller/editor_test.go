package controller_test

import (
	"context"
	"errors"
	"testing"

	"taskdesk/internal/busy"
	"taskdesk/internal/controller"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
	"taskdesk/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(svc *testutil.FakeService) (*controller.Editor, *notify.Inbox, *busy.Tracker) {
	inbox := notify.NewInbox(0)
	tracker := busy.New()
	return controller.NewEditor(svc, tracker, inbox), inbox, tracker
}

func TestValidate_FirstFailureInOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *model.Draft)
		want   string
	}{
		{"valid", func(d *model.Draft) {}, ""},
		{"blank title", func(d *model.Draft) { d.Title = "   "; d.Description = "" }, "Title is required"},
		{"blank description", func(d *model.Draft) { d.Description = "\t"; d.DueDate = nil }, "Description is required"},
		{"no due date", func(d *model.Draft) { d.DueDate = nil; d.AssignedTo = nil }, "Due Date is required"},
		{"no assignee", func(d *model.Draft) { d.AssignedTo = []string{}; d.TodoChecklist = nil }, "Task must be assigned to at least one member"},
		{"no checklist", func(d *model.Draft) { d.TodoChecklist = []string{} }, "Add at least one TODO item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft("x")
			tt.mutate(&d)
			assert.Equal(t, tt.want, controller.Validate(d))
		})
	}
}

func TestSubmit_InvalidDraftMakesNoCall(t *testing.T) {
	svc := testutil.NewFakeService()
	editor, inbox, _ := newEditor(svc)

	d := validDraft()
	res := editor.Submit(context.Background(), d, "")

	assert.Equal(t, controller.OutcomeInvalid, res.Outcome)
	assert.Equal(t, "Add at least one TODO item", res.Message)
	assert.Empty(t, svc.Inputs)
	assert.Empty(t, messages(inbox))
	assert.Equal(t, controller.EditorIdle, editor.State())
}

func TestSubmit_CreateResetsDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	editor, inbox, tracker := newEditor(svc)

	res := editor.Submit(context.Background(), validDraft("x", "y"), "")

	require.Equal(t, controller.OutcomeSucceeded, res.Outcome)
	require.NotNil(t, res.Task)
	require.Len(t, svc.Inputs, 1)
	assert.Equal(t, items("x", false, "y", false), svc.Inputs[0].TodoChecklist)
	assert.Equal(t, "2025-03-14T00:00:00Z", svc.Inputs[0].DueDate)
	assert.Equal(t, model.NewDraft(), editor.Draft())
	assert.Equal(t, []string{"success: Task created successfully"}, messages(inbox))
	assert.Equal(t, controller.EditorIdle, editor.State())
	assert.False(t, tracker.IsBusy())
}

func TestSubmit_CreateFailurePreservesDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("boom")
	editor, inbox, tracker := newEditor(svc)

	d := validDraft("x")
	res := editor.Submit(context.Background(), d, "")

	assert.Equal(t, controller.OutcomeFailed, res.Outcome)
	assert.Equal(t, "Task creation failed", res.Message)
	assert.Equal(t, d, editor.Draft())
	assert.Equal(t, []string{"error: Task creation failed"}, messages(inbox))
	assert.Equal(t, controller.EditorIdle, editor.State())
	assert.False(t, tracker.IsBusy())
}

func TestSubmit_EditCarriesCompletionOver(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	editor, inbox, _ := newEditor(svc)

	created := editor.Submit(ctx, validDraft("x", "y"), "")
	require.Equal(t, controller.OutcomeSucceeded, created.Outcome)
	id := created.Task.ID
	assert.Equal(t, items("x", false, "y", false), svc.Inputs[0].TodoChecklist)

	// the assignee ticks "y"
	_, err := svc.UpdateChecklist(ctx, id, items("x", false, "y", true))
	require.NoError(t, err)

	draft, ok := editor.Open(ctx, id)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, draft.TodoChecklist)

	draft.TodoChecklist = []string{"y", "z"}
	res := editor.Submit(ctx, draft, id)

	require.Equal(t, controller.OutcomeSucceeded, res.Outcome)
	require.Len(t, svc.Inputs, 2)
	assert.Equal(t, items("y", true, "z", false), svc.Inputs[1].TodoChecklist)
	stored, _ := svc.Task(id)
	assert.Equal(t, items("y", true, "z", false), stored.TodoChecklist)
	assert.Equal(t, []string{"success: Task created successfully", "success: Task updated successfully"}, messages(inbox))
}

func TestSubmit_UpdateFailure(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	task := svc.AddTask(model.Task{Title: "t", TodoChecklist: items("a", true)})
	editor, inbox, _ := newEditor(svc)
	_, ok := editor.Open(ctx, task.ID)
	require.True(t, ok)

	svc.UpdateTaskErr = errors.New("boom")
	d := validDraft("a")
	res := editor.Submit(ctx, d, task.ID)

	assert.Equal(t, controller.OutcomeFailed, res.Outcome)
	assert.Equal(t, d, editor.Draft())
	assert.Equal(t, []string{"error: Task update failed"}, messages(inbox))
}

func TestOpen_Failure(t *testing.T) {
	editor, inbox, tracker := newEditor(testutil.NewFakeService())

	_, ok := editor.Open(context.Background(), "missing")

	assert.False(t, ok)
	assert.Equal(t, []string{"error: Failed to load task"}, messages(inbox))
	assert.False(t, tracker.IsBusy())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	task := svc.AddTask(model.Task{Title: "t"})
	editor, inbox, _ := newEditor(svc)

	var navigated []string
	nav := controller.NavigatorFunc(func(path string) { navigated = append(navigated, path) })

	assert.True(t, editor.Delete(ctx, task.ID, nav))
	assert.Equal(t, []string{"/admin/tasks"}, navigated)
	assert.Equal(t, []string{"success: Task deleted successfully"}, messages(inbox))

	assert.False(t, editor.Delete(ctx, task.ID, nav))
	assert.Equal(t, []string{"/admin/tasks"}, navigated, "no navigation on failure")
	assert.Equal(t, []string{"error: Failed to delete task"}, messages(inbox))
}

func TestSubmit_UpdateWithoutOpenFetchesSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	task := svc.AddTask(model.Task{Title: "t", TodoChecklist: items("x", false, "y", true)})
	editor, _, tracker := newEditor(svc)

	res := editor.Submit(ctx, validDraft("y", "z"), task.ID)

	require.Equal(t, controller.OutcomeSucceeded, res.Outcome)
	require.Len(t, svc.Inputs, 1)
	assert.Equal(t, items("y", true, "z", false), svc.Inputs[0].TodoChecklist)
	assert.False(t, tracker.IsBusy())
}

func TestSubmit_UpdateWithoutOpenFetchFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	editor, inbox, _ := newEditor(svc)

	d := validDraft("y")
	res := editor.Submit(context.Background(), d, "missing")

	assert.Equal(t, controller.OutcomeFailed, res.Outcome)
	assert.Equal(t, "Failed to load task", res.Message)
	assert.Empty(t, svc.Inputs)
	assert.Equal(t, d, editor.Draft())
	assert.Equal(t, []string{"error: Failed to load task"}, messages(inbox))
	assert.Equal(t, controller.EditorIdle, editor.State())
}

// Task writer whose create call panics
type panickingWriter struct {
	*testutil.FakeService
}

func (p panickingWriter) CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	panic("transport exploded")
}

func TestSubmit_PanicLeavesEditorIdle(t *testing.T) {
	svc := testutil.NewFakeService()
	tracker := busy.New()
	editor := controller.NewEditor(panickingWriter{svc}, tracker, notify.NewInbox(0))

	assert.Panics(t, func() {
		editor.Submit(context.Background(), validDraft("x"), "")
	})
	assert.Equal(t, controller.EditorIdle, editor.State())
	assert.False(t, tracker.IsBusy())

	// a stuck editor would reject instead of calling the service again
	assert.Panics(t, func() {
		editor.Submit(context.Background(), validDraft("x"), "")
	})
}
