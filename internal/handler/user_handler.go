package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/controller"
	"taskdesk/internal/notify"
)

type UserHandler struct {
	base
	users   *controller.Users
	reports *controller.Reports
}

func NewUserHandler(users *controller.Users, reports *controller.Reports, inbox *notify.Inbox) *UserHandler {
	return &UserHandler{base: base{inbox: inbox}, users: users, reports: reports}
}

// List godoc
// @Summary  List team members with their task counters
// @Tags     Users
// @Produce  json
// @Success  200  {object}  Response
// @Router   /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	h.respond(c, http.StatusOK, h.users.Load(c.Request.Context()))
}

// Report godoc
// @Summary  Download the users report
// @Tags     Reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success  200
// @Failure  502  {object}  Response
// @Router   /admin/users/report [get]
func (h *UserHandler) Report(c *gin.Context) {
	report, ok := h.reports.Users(c.Request.Context())
	if !ok {
		h.fail(c, http.StatusBadGateway, "Failed to download report")
		return
	}
	h.attach(c, report)
}
