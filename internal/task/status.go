// Package task holds the pure rules of the task aggregate: status derivation
// and checklist reconciliation.
package task

import "taskdesk/internal/model"

// DeriveStatus classifies a checklist. An empty checklist has no completed
// work and counts as pending.
func DeriveStatus(checklist []model.ChecklistItem) model.Status {
	completed := 0
	for _, item := range checklist {
		if item.Completed {
			completed++
		}
	}

	switch {
	case completed == 0:
		return model.StatusPending
	case completed < len(checklist):
		return model.StatusInProgress
	default:
		return model.StatusCompleted
	}
}

// Progress returns the number of completed items and the checklist length.
func Progress(checklist []model.ChecklistItem) (completed, total int) {
	for _, item := range checklist {
		if item.Completed {
			completed++
		}
	}
	return completed, len(checklist)
}
