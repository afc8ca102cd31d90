package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/controller"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

// TaskHandler serves a task list screen. Admin and member screens each get
// their own handler so a filter change on one never touches the other.
type TaskHandler struct {
	base
	list    *controller.TaskList
	reports *controller.Reports
}

func NewTaskHandler(list *controller.TaskList, reports *controller.Reports, inbox *notify.Inbox) *TaskHandler {
	return &TaskHandler{base: base{inbox: inbox}, list: list, reports: reports}
}

// List godoc
// @Summary      List tasks
// @Description  Loads the tasks of a status tab. An empty status means All.
// @Tags         Tasks
// @Produce      json
// @Param        status  query     string  false  "All, Pending, In Progress or Completed"
// @Success      200     {object}  Response
// @Failure      400     {object}  Response
// @Router       /admin/tasks [get]
// @Router       /user/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	filter, err := model.ParseFilter(c.Query("status"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	h.list.Load(c.Request.Context(), filter)
	h.respond(c, http.StatusOK, h.list.View())
}

// Report godoc
// @Summary   Download the tasks report
// @Tags      Reports
// @Produce   application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success   200
// @Failure   502  {object}  Response
// @Router    /admin/tasks/report [get]
func (h *TaskHandler) Report(c *gin.Context) {
	report, ok := h.reports.Tasks(c.Request.Context())
	if !ok {
		h.fail(c, http.StatusBadGateway, "Failed to download report")
		return
	}
	h.attach(c, report)
}
