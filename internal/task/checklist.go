package task

import (
	"time"

	"taskdesk/internal/model"
)

// Reconcile builds the checklist to submit from the previously fetched
// checklist and the edited list of texts. Items are matched by exact text and
// keep their completion flag; new texts start uncompleted and texts missing
// from edited are dropped. The result follows edited's order.
//
// When edited repeats a text, every copy reuses the first matching previous
// item.
func Reconcile(previous []model.ChecklistItem, edited []string) []model.ChecklistItem {
	first := make(map[string]bool, len(previous))
	for _, item := range previous {
		if _, seen := first[item.Text]; !seen {
			first[item.Text] = item.Completed
		}
	}

	out := make([]model.ChecklistItem, 0, len(edited))
	for _, text := range edited {
		out = append(out, model.ChecklistItem{
			Text:      text,
			Completed: first[text],
		})
	}
	return out
}

// Texts returns the item texts of a checklist in order.
func Texts(checklist []model.ChecklistItem) []string {
	texts := make([]string, len(checklist))
	for i, item := range checklist {
		texts[i] = item.Text
	}
	return texts
}

// DraftOf turns a fetched task into an editable draft.
func DraftOf(t model.Task) model.Draft {
	d := model.NewDraft()
	d.Title = t.Title
	d.Description = t.Description
	if t.Priority != "" {
		d.Priority = t.Priority
	}
	if t.DueDate != nil {
		due := dateOnly(*t.DueDate)
		d.DueDate = &due
	}
	d.AssignedTo = append(d.AssignedTo, t.AssignedTo...)
	d.TodoChecklist = Texts(t.TodoChecklist)
	d.Attachments = append(d.Attachments, t.Attachments...)
	return d
}

// Input builds the create/update payload for d, reconciling its checklist
// against previous. Duplicate assignees are collapsed keeping first
// occurrence.
func Input(d model.Draft, previous []model.ChecklistItem) model.TaskInput {
	in := model.TaskInput{
		Title:         d.Title,
		Description:   d.Description,
		Priority:      d.Priority,
		AssignedTo:    uniqueIDs(d.AssignedTo),
		TodoChecklist: Reconcile(previous, d.TodoChecklist),
		Attachments:   append([]string{}, d.Attachments...),
	}
	if in.Priority == "" {
		in.Priority = model.PriorityLow
	}
	if d.DueDate != nil {
		in.DueDate = dateOnly(*d.DueDate).Format(time.RFC3339)
	}
	return in
}

func dateOnly(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
