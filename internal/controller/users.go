package controller

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"taskdesk/internal/busy"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

// UserLister lists the members of the external system.
type UserLister interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

// Users is the admin user directory.
type Users struct {
	svc      UserLister
	busy     *busy.Tracker
	notifier notify.Notifier

	mu    sync.Mutex
	users []model.User
}

func NewUsers(svc UserLister, tracker *busy.Tracker, notifier notify.Notifier) *Users {
	return &Users{svc: svc, busy: tracker, notifier: notifier, users: []model.User{}}
}

// Load fetches the users. An empty answer keeps the previous list.
func (u *Users) Load(ctx context.Context) []model.User {
	var users []model.User
	err := u.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		users, err = u.svc.ListUsers(ctx)
		return err
	})
	if err != nil {
		log.Err(err).Msg("error fetching users")
		u.notifier.Error("Failed to fetch users")
		return u.List()
	}

	u.mu.Lock()
	if len(users) > 0 {
		u.users = users
	}
	u.mu.Unlock()
	return u.List()
}

func (u *Users) List() []model.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]model.User{}, u.users...)
}
