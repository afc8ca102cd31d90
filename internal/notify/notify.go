// Package notify carries non-blocking user-facing messages out of the
// controllers.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast-style message.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Inbox keeps notifications until a view drains them.
type Inbox struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

// NewInbox returns an inbox that keeps at most limit pending messages,
// dropping the oldest first. limit <= 0 means unbounded.
func NewInbox(limit int) *Inbox {
	return &Inbox{limit: limit}
}

func (i *Inbox) Success(msg string) { i.push(LevelSuccess, msg) }
func (i *Inbox) Error(msg string)   { i.push(LevelError, msg) }

func (i *Inbox) push(level Level, msg string) {
	log.Debug().Str("kind", string(level)).Msg(msg)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, Notification{Level: level, Message: msg, At: time.Now()})
	if i.limit > 0 && len(i.items) > i.limit {
		i.items = i.items[len(i.items)-i.limit:]
	}
}

// Drain returns the pending notifications and forgets them.
func (i *Inbox) Drain() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.items
	i.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Printer writes notifications as lines, for the command line.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func (p Printer) Success(msg string) { fmt.Fprintln(p.Out, msg) }
func (p Printer) Error(msg string)   { fmt.Fprintln(p.Err, "error:", msg) }
