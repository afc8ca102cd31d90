package controller

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"taskdesk/internal/busy"
	"taskdesk/internal/gate"
	"taskdesk/internal/model"
)

// Authenticator is the part of the external system login and signup need.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error)
	Register(ctx context.Context, profile model.Profile) (model.AuthResult, error)
}

// SessionWriter records who is logged in.
type SessionWriter interface {
	Login(ctx context.Context, token string, identity model.User) error
	Clear(ctx context.Context) error
}

// AuthOutcome is what the auth screens show next. Error is empty on
// success, Redirect is empty on failure.
type AuthOutcome struct {
	Error    string      `json:"error,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Identity *model.User `json:"identity,omitempty"`
}

// Auth drives login, signup and logout.
type Auth struct {
	svc      Authenticator
	session  SessionWriter
	busy     *busy.Tracker
	validate *validator.Validate
}

func NewAuth(svc Authenticator, session SessionWriter, tracker *busy.Tracker) *Auth {
	return &Auth{
		svc:      svc,
		session:  session,
		busy:     tracker,
		validate: validator.New(),
	}
}

func (a *Auth) validEmail(email string) bool {
	return a.validate.Var(email, "required,email") == nil
}

// Login authenticates creds and starts the session.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) AuthOutcome {
	creds.Email = strings.TrimSpace(creds.Email)
	if !a.validEmail(creds.Email) {
		return AuthOutcome{Error: "Please enter a valid email address"}
	}
	if creds.Password == "" {
		return AuthOutcome{Error: "Please enter the password"}
	}

	var res model.AuthResult
	err := a.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		res, err = a.svc.Login(ctx, creds)
		return err
	})
	if err != nil {
		log.Err(err).Str("email", creds.Email).Msg("login failed")
		return AuthOutcome{Error: serverMessage(err, fallbackMessage)}
	}
	return a.start(ctx, res)
}

// Signup registers profile and starts the session. A non-empty admin invite
// token asks the external system for the admin role.
func (a *Auth) Signup(ctx context.Context, profile model.Profile) AuthOutcome {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)
	switch {
	case profile.Name == "":
		return AuthOutcome{Error: "Please enter full name"}
	case !a.validEmail(profile.Email):
		return AuthOutcome{Error: "Please enter a valid email address"}
	case profile.Password == "":
		return AuthOutcome{Error: "Please enter the password"}
	}

	var res model.AuthResult
	err := a.busy.Track(ctx, func(ctx context.Context) error {
		var err error
		res, err = a.svc.Register(ctx, profile)
		return err
	})
	if err != nil {
		log.Err(err).Str("email", profile.Email).Msg("signup failed")
		return AuthOutcome{Error: serverMessage(err, fallbackMessage)}
	}
	return a.start(ctx, res)
}

func (a *Auth) start(ctx context.Context, res model.AuthResult) AuthOutcome {
	if res.Token == "" {
		log.Warn().Str("user", res.Identity.ID).Msg("external system returned no token")
		return AuthOutcome{Error: fallbackMessage}
	}
	if err := a.session.Login(ctx, res.Token, res.Identity); err != nil {
		log.Err(err).Msg("error storing credential")
		return AuthOutcome{Error: fallbackMessage}
	}
	identity := res.Identity
	return AuthOutcome{Redirect: gate.HomeFor(identity.Role), Identity: &identity}
}

// Logout ends the session and returns the login path.
func (a *Auth) Logout(ctx context.Context) string {
	if err := a.session.Clear(ctx); err != nil {
		log.Err(err).Msg("error discarding credential")
	}
	return gate.PathLogin
}
