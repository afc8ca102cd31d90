package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taskdesk/internal/api"
	"taskdesk/internal/model"
	"taskdesk/internal/session"
	"taskdesk/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock session resolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveSession(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func jwtWithExpiry(exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	})
	s, _ := token.SignedString([]byte("secret"))
	return s
}

var ada = model.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin}

func TestStore_StartsResolving(t *testing.T) {
	store := session.NewStore(testutil.NewMemoryTokens(""), new(MockResolver))

	snap := store.Snapshot()
	assert.True(t, snap.Resolving)
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Authenticated())
}

func TestInitialize_NoStoredToken(t *testing.T) {
	resolver := new(MockResolver)
	store := session.NewStore(testutil.NewMemoryTokens(""), resolver)

	err := store.Initialize(context.Background())

	assert.NoError(t, err)
	assert.False(t, store.Snapshot().Resolving)
	assert.Nil(t, store.Snapshot().Identity)
	resolver.AssertNotCalled(t, "ResolveSession", mock.Anything)
}

func TestInitialize_RestoresIdentity(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveSession", mock.Anything).Return(&ada, nil).Once()
	store := session.NewStore(testutil.NewMemoryTokens(jwtWithExpiry(time.Now().Add(time.Hour))), resolver)

	err := store.Initialize(context.Background())

	assert.NoError(t, err)
	identity, ok := store.Identity()
	assert.True(t, ok)
	assert.Equal(t, ada, identity)
	assert.True(t, store.Snapshot().Authenticated())
	resolver.AssertExpectations(t)
}

func TestInitialize_RunsOnce(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveSession", mock.Anything).Return(&ada, nil).Once()
	store := session.NewStore(testutil.NewMemoryTokens("opaque-token"), resolver)

	assert.NoError(t, store.Initialize(context.Background()))
	assert.NoError(t, store.Initialize(context.Background()))

	resolver.AssertNumberOfCalls(t, "ResolveSession", 1)
}

func TestInitialize_ExpiredTokenIsDiscarded(t *testing.T) {
	resolver := new(MockResolver)
	tokens := testutil.NewMemoryTokens(jwtWithExpiry(time.Now().Add(-time.Hour)))
	store := session.NewStore(tokens, resolver)

	err := store.Initialize(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, tokens.Token())
	assert.False(t, store.Snapshot().Resolving)
	assert.Nil(t, store.Snapshot().Identity)
	resolver.AssertNotCalled(t, "ResolveSession", mock.Anything)
}

func TestInitialize_RejectedTokenIsDiscarded(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveSession", mock.Anything).Return(nil, api.ErrUnauthorized)
	tokens := testutil.NewMemoryTokens("opaque-token")
	store := session.NewStore(tokens, resolver)

	err := store.Initialize(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, tokens.Token())
	assert.Nil(t, store.Snapshot().Identity)
}

func TestInitialize_TransportErrorKeepsToken(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveSession", mock.Anything).Return(nil, errors.New("connection refused"))
	tokens := testutil.NewMemoryTokens("opaque-token")
	store := session.NewStore(tokens, resolver)

	err := store.Initialize(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "opaque-token", tokens.Token())
	assert.False(t, store.Snapshot().Resolving, "resolution ends on failure too")
	assert.Nil(t, store.Snapshot().Identity)
}

func TestSubscribe_SeesMutationsSynchronously(t *testing.T) {
	store := session.NewStore(testutil.NewMemoryTokens(""), new(MockResolver))
	var seen []session.Snapshot
	unsubscribe := store.Subscribe(func(s session.Snapshot) { seen = append(seen, s) })

	assert.NoError(t, store.Initialize(context.Background()))
	store.SetIdentity(ada)
	assert.Len(t, seen, 2)
	assert.False(t, seen[0].Resolving)
	assert.Equal(t, "u1", seen[1].Identity.ID)

	unsubscribe()
	assert.NoError(t, store.Clear(context.Background()))
	assert.Len(t, seen, 2)
}

func TestSubscribe_MutationsWaitForFanOut(t *testing.T) {
	store := session.NewStore(testutil.NewMemoryTokens(""), new(MockResolver))
	bob := model.User{ID: "u2", Name: "Bob", Role: model.RoleMember}

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var last session.Snapshot
	store.Subscribe(func(s session.Snapshot) {
		if s.Identity != nil && s.Identity.ID == "u1" {
			close(entered)
			<-release
		}
		mu.Lock()
		last = s
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		store.SetIdentity(ada)
		close(done)
	}()
	<-entered

	second := make(chan struct{})
	go func() {
		store.SetIdentity(bob)
		close(second)
	}()
	time.Sleep(20 * time.Millisecond)
	identity, _ := store.Identity()
	assert.Equal(t, "u1", identity.ID, "second mutation must wait for the first fan-out")

	close(release)
	<-done
	<-second

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, store.Snapshot(), last)
	assert.Equal(t, "u2", last.Identity.ID)
}

func TestLoginAndClear(t *testing.T) {
	tokens := testutil.NewMemoryTokens("")
	store := session.NewStore(tokens, new(MockResolver))

	assert.NoError(t, store.Login(context.Background(), "fresh", ada))
	assert.Equal(t, "fresh", tokens.Token())
	assert.True(t, store.Snapshot().Authenticated())

	assert.NoError(t, store.Clear(context.Background()))
	assert.Empty(t, tokens.Token())
	_, ok := store.Identity()
	assert.False(t, ok)
}

func TestLogin_StoreFailureKeepsSessionEmpty(t *testing.T) {
	tokens := testutil.NewMemoryTokens("")
	tokens.SetErr = errors.New("disk full")
	store := session.NewStore(tokens, new(MockResolver))
	assert.NoError(t, store.Initialize(context.Background()))

	err := store.Login(context.Background(), "fresh", ada)

	assert.Error(t, err)
	_, ok := store.Identity()
	assert.False(t, ok)
}
