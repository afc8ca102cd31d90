package controller_test

import (
	"time"

	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

func messages(inbox *notify.Inbox) []string {
	var out []string
	for _, n := range inbox.Drain() {
		out = append(out, string(n.Level)+": "+n.Message)
	}
	return out
}

func validDraft(checklist ...string) model.Draft {
	due := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	d := model.NewDraft()
	d.Title = "Write report"
	d.Description = "Quarterly numbers"
	d.Priority = model.PriorityHigh
	d.DueDate = &due
	d.AssignedTo = []string{"u1"}
	d.TodoChecklist = checklist
	return d
}

func items(pairs ...any) []model.ChecklistItem {
	out := []model.ChecklistItem{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.ChecklistItem{Text: pairs[i].(string), Completed: pairs[i+1].(bool)})
	}
	return out
}
