package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/busy"
	"taskdesk/internal/gate"
	"taskdesk/internal/middleware"
)

// StatusResponse reports what the loading indicator and router need.
type StatusResponse struct {
	Busy     bool       `json:"busy"`
	State    gate.State `json:"state"`
	Home     string     `json:"home,omitempty"`
	UserID   string     `json:"userId,omitempty"`
	UserRole string     `json:"role,omitempty"`
}

type StatusHandler struct {
	session middleware.SessionSource
	busy    *busy.Tracker
}

func NewStatusHandler(session middleware.SessionSource, tracker *busy.Tracker) *StatusHandler {
	return &StatusHandler{session: session, busy: tracker}
}

// Status godoc
// @Summary  Busy flag and session state
// @Tags     Status
// @Produce  json
// @Success  200  {object}  StatusResponse
// @Router   /status [get]
func (h *StatusHandler) Status(c *gin.Context) {
	snap := h.session.Snapshot()
	decision := gate.Root(snap)

	resp := StatusResponse{Busy: h.busy.IsBusy(), State: decision.State}
	if snap.Identity != nil {
		resp.Home = decision.Redirect
		resp.UserID = snap.Identity.ID
		resp.UserRole = string(snap.Identity.Role)
	}
	c.JSON(http.StatusOK, resp)
}
