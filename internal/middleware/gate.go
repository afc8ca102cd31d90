package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/gate"
	"taskdesk/internal/model"
	"taskdesk/internal/session"
)

// IdentityKey is the gin context key of the authorized model.User.
const IdentityKey = "identity"

// retryAfterSeconds is sent while the session is still resolving.
const retryAfterSeconds = "1"

// SessionSource exposes the current session state.
type SessionSource interface {
	Snapshot() session.Snapshot
}

// Guard renders the route only for identities allowed by d. The decision is
// taken on every request from the current session snapshot.
func Guard(store SessionSource, d gate.Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := store.Snapshot()
		decision := gate.Decide(snap, d)
		if !apply(c, decision) {
			return
		}
		c.Set(IdentityKey, *snap.Identity)
		c.Next()
	}
}

// GuardRoute guards a route registered under one of the gate.Routes paths.
// Sub-routes pass the path of the screen they belong to.
func GuardRoute(store SessionSource, path string) gin.HandlerFunc {
	d, ok := gate.Lookup(path)
	if !ok {
		panic(fmt.Sprintf("no guard descriptor for %s", path))
	}
	return Guard(store, d)
}

// apply answers the request for every state but Authorized and reports
// whether the handler may run.
func apply(c *gin.Context, decision gate.Decision) bool {
	switch decision.State {
	case gate.Resolving:
		c.Header("Retry-After", retryAfterSeconds)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"state": string(gate.Resolving)})
		return false
	case gate.Anonymous, gate.Forbidden:
		c.Redirect(http.StatusFound, decision.Redirect)
		c.Abort()
		return false
	}
	return true
}

// RootRedirect sends "/" to the landing page of the session.
func RootRedirect(store SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := gate.Root(store.Snapshot())
		if decision.State == gate.Resolving {
			apply(c, decision)
			return
		}
		c.Redirect(http.StatusFound, decision.Redirect)
	}
}

// CurrentIdentity returns the identity Guard stored in c.
func CurrentIdentity(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
