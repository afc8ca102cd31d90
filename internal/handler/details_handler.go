package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/controller"
	"taskdesk/internal/notify"
)

type DetailsHandler struct {
	base
	details *controller.TaskDetails
}

func NewDetailsHandler(details *controller.TaskDetails, inbox *notify.Inbox) *DetailsHandler {
	return &DetailsHandler{base: base{inbox: inbox}, details: details}
}

// Get godoc
// @Summary  Show a task to its assignee
// @Tags     Tasks
// @Produce  json
// @Param    id   path      string  true  "Task ID"
// @Success  200  {object}  Response
// @Failure  502  {object}  Response
// @Router   /user/task-details/{id} [get]
func (h *DetailsHandler) Get(c *gin.Context) {
	card, ok := h.details.Open(c.Request.Context(), c.Param("id"))
	if !ok {
		h.fail(c, http.StatusBadGateway, "Failed to load task")
		return
	}
	h.respond(c, http.StatusOK, card)
}

// Toggle godoc
// @Summary  Tick or untick a checklist item
// @Tags     Tasks
// @Produce  json
// @Param    id     path      string  true  "Task ID"
// @Param    index  path      int     true  "Checklist item index"
// @Success  200    {object}  Response
// @Failure  400    {object}  Response
// @Failure  502    {object}  Response
// @Router   /user/task-details/{id}/todo/{index} [post]
func (h *DetailsHandler) Toggle(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid checklist index")
		return
	}

	card, ok := h.details.Toggle(c.Request.Context(), c.Param("id"), index)
	if !ok {
		h.fail(c, http.StatusBadGateway, "Failed to update checklist")
		return
	}
	h.respond(c, http.StatusOK, card)
}
