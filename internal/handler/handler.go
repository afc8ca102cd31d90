// Package handler serves the client screens as JSON view models.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

// Response wraps every screen answer together with the notifications
// raised while producing it.
type Response struct {
	Data          any                   `json:"data,omitempty"`
	Error         string                `json:"error,omitempty"`
	Redirect      string                `json:"redirect,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

type base struct {
	inbox *notify.Inbox
}

func (b base) respond(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Data: data, Notifications: b.inbox.Drain()})
}

func (b base) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Error: msg, Notifications: b.inbox.Drain()})
}

func (b base) redirect(c *gin.Context, path string, data any) {
	c.JSON(http.StatusOK, Response{Data: data, Redirect: path, Notifications: b.inbox.Drain()})
}

func (b base) attach(c *gin.Context, report model.Report) {
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
