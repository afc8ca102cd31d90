// Package controller orchestrates the task views: it calls the external
// system, tracks busy state and turns every failure into a notification.
// Nothing returned from here is an error the caller must handle.
package controller

import (
	"errors"

	"taskdesk/internal/api"
)

// Navigator moves the caller to another route.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a func to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

const fallbackMessage = "Something went wrong. Please try again."

// serverMessage returns the message the external system attached to err,
// or fallback.
func serverMessage(err error, fallback string) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return fallback
}
