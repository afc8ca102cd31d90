// Package session holds the process-wide authenticated identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"taskdesk/internal/api"
	"taskdesk/internal/auth"
	"taskdesk/internal/model"
)

// TokenStore persists the single credential token.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Resolver looks up the identity behind the stored credential.
type Resolver interface {
	ResolveSession(ctx context.Context) (*model.User, error)
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Identity  *model.User
	Resolving bool
}

// Authenticated reports whether an identity is present.
func (s Snapshot) Authenticated() bool {
	return !s.Resolving && s.Identity != nil
}

// Store is the single source of truth for who is logged in. It starts in
// the resolving state; Initialize ends it exactly once.
type Store struct {
	tokens   TokenStore
	resolver Resolver
	now      func() time.Time

	once sync.Once

	// notifyMu orders mutations and their fan-out, so subscribers see
	// snapshots in the order the store took them. Subscribers must not
	// mutate the store.
	notifyMu sync.Mutex

	mu          sync.RWMutex
	identity    *model.User
	resolving   bool
	nextID      int
	subscribers map[int]func(Snapshot)
}

// NewStore returns a store in the resolving state.
func NewStore(tokens TokenStore, resolver Resolver) *Store {
	return &Store{
		tokens:      tokens,
		resolver:    resolver,
		now:         time.Now,
		resolving:   true,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Initialize restores the identity from the stored credential. It runs once
// per process; later calls return immediately. Whatever happens, the store
// leaves the resolving state. An expired or rejected credential is discarded.
func (s *Store) Initialize(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		var identity *model.User
		identity, err = s.restore(ctx)
		s.replace(identity, false)
	})
	return err
}

func (s *Store) restore(ctx context.Context) (*model.User, error) {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored credential: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	if auth.Expired(token, s.now()) {
		log.Info().Msg("stored credential expired, discarding it")
		return nil, s.discard(ctx)
	}

	identity, err := s.resolver.ResolveSession(ctx)
	if errors.Is(err, api.ErrUnauthorized) {
		log.Info().Msg("stored credential rejected, discarding it")
		return nil, s.discard(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return identity, nil
}

func (s *Store) discard(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("discard stored credential: %w", err)
	}
	return nil
}

// Login persists token and makes identity current.
func (s *Store) Login(ctx context.Context, token string, identity model.User) error {
	if err := s.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	s.SetIdentity(identity)
	return nil
}

// SetIdentity replaces the current identity.
func (s *Store) SetIdentity(identity model.User) {
	s.replace(&identity, false)
}

// Clear empties the identity and discards the stored credential. The
// identity is cleared even when the credential cannot be removed.
func (s *Store) Clear(ctx context.Context) error {
	s.replace(nil, false)
	return s.discard(ctx)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Identity returns the current identity, if any.
func (s *Store) Identity() (model.User, bool) {
	snap := s.Snapshot()
	if snap.Identity == nil {
		return model.User{}, false
	}
	return *snap.Identity, true
}

// Subscribe registers fn to be called with the new state after every
// mutation, before the mutating call returns. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) replace(identity *model.User, resolving bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.identity = identity
	s.resolving = resolving
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{Resolving: s.resolving}
	if s.identity != nil {
		u := *s.identity
		snap.Identity = &u
	}
	return snap
}
