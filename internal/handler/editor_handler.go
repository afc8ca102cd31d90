package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/controller"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

const dateLayout = "2006-01-02"

// EditorHandler serves the create/edit task screen. The task being edited
// is selected with the taskId query parameter.
type EditorHandler struct {
	base
	editor *controller.Editor
}

func NewEditorHandler(editor *controller.Editor, inbox *notify.Inbox) *EditorHandler {
	return &EditorHandler{base: base{inbox: inbox}, editor: editor}
}

// DraftRequest is the task form. DueDate is a calendar date (YYYY-MM-DD).
type DraftRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Priority      model.Priority `json:"priority"`
	DueDate       string         `json:"dueDate"`
	AssignedTo    []string       `json:"assignedTo"`
	TodoChecklist []string       `json:"todoChecklist"`
	Attachments   []string       `json:"attachments"`
}

func (r DraftRequest) draft() (model.Draft, error) {
	d := model.NewDraft()
	d.Title = r.Title
	d.Description = r.Description
	if r.Priority != "" {
		d.Priority = r.Priority
	}
	if due := strings.TrimSpace(r.DueDate); due != "" {
		t, err := time.Parse(dateLayout, due)
		if err != nil {
			return d, err
		}
		d.DueDate = &t
	}
	d.AssignedTo = append(d.AssignedTo, r.AssignedTo...)
	d.TodoChecklist = append(d.TodoChecklist, r.TodoChecklist...)
	d.Attachments = append(d.Attachments, r.Attachments...)
	return d, nil
}

// Open godoc
// @Summary  Open the task form
// @Tags     Tasks
// @Produce  json
// @Param    taskId  query     string  false  "Task to edit"
// @Success  200     {object}  Response
// @Failure  502     {object}  Response
// @Router   /admin/create-task [get]
func (h *EditorHandler) Open(c *gin.Context) {
	id := c.Query("taskId")
	if id == "" {
		h.editor.Reset()
		h.respond(c, http.StatusOK, h.editor.Draft())
		return
	}

	draft, ok := h.editor.Open(c.Request.Context(), id)
	if !ok {
		h.fail(c, http.StatusBadGateway, "Failed to load task")
		return
	}
	h.respond(c, http.StatusOK, draft)
}

// Submit godoc
// @Summary  Create or update a task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Param    taskId  query     string        false  "Task to update"
// @Param    draft   body      DraftRequest  true   "Task form"
// @Success  200     {object}  Response
// @Success  201     {object}  Response
// @Failure  400     {object}  Response
// @Failure  409     {object}  Response
// @Failure  422     {object}  Response
// @Failure  502     {object}  Response
// @Router   /admin/create-task [post]
func (h *EditorHandler) Submit(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	draft, err := req.draft()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid due date")
		return
	}

	id := c.Query("taskId")
	res := h.editor.Submit(c.Request.Context(), draft, id)
	switch res.Outcome {
	case controller.OutcomeSucceeded:
		status := http.StatusOK
		if id == "" {
			status = http.StatusCreated
		}
		h.respond(c, status, res)
	case controller.OutcomeInvalid:
		h.fail(c, http.StatusUnprocessableEntity, res.Message)
	case controller.OutcomeRejected:
		h.fail(c, http.StatusConflict, res.Message)
	default:
		h.fail(c, http.StatusBadGateway, res.Message)
	}
}

// Delete godoc
// @Summary  Delete a task
// @Tags     Tasks
// @Produce  json
// @Param    taskId  query     string  true  "Task to delete"
// @Success  200     {object}  Response
// @Failure  400     {object}  Response
// @Failure  502     {object}  Response
// @Router   /admin/create-task [delete]
func (h *EditorHandler) Delete(c *gin.Context) {
	id := c.Query("taskId")
	if id == "" {
		h.fail(c, http.StatusBadRequest, "taskId is required")
		return
	}

	var target string
	ok := h.editor.Delete(c.Request.Context(), id, controller.NavigatorFunc(func(path string) {
		target = path
	}))
	if !ok {
		h.fail(c, http.StatusBadGateway, "Failed to delete task")
		return
	}
	h.redirect(c, target, nil)
}
