package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/controller"
	"taskdesk/internal/middleware"
	"taskdesk/internal/notify"
)

type DashboardHandler struct {
	base
	dashboard *controller.Dashboard
}

func NewDashboardHandler(dashboard *controller.Dashboard, inbox *notify.Inbox) *DashboardHandler {
	return &DashboardHandler{base: base{inbox: inbox}, dashboard: dashboard}
}

// Show godoc
// @Summary  Landing page of the logged in role
// @Tags     Dashboard
// @Produce  json
// @Success  200  {object}  Response
// @Router   /admin/dashboard [get]
// @Router   /user/dashboard [get]
func (h *DashboardHandler) Show(c *gin.Context) {
	view := h.dashboard.Load(c.Request.Context())
	user, _ := middleware.CurrentIdentity(c)
	h.respond(c, http.StatusOK, gin.H{"user": user, "dashboard": view})
}
