package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/controller"
	"taskdesk/internal/model"
	"taskdesk/internal/notify"
)

type AuthHandler struct {
	base
	auth *controller.Auth
}

func NewAuthHandler(auth *controller.Auth, inbox *notify.Inbox) *AuthHandler {
	return &AuthHandler{base: base{inbox: inbox}, auth: auth}
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the signup form.
type SignupRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ProfileImageURL  string `json:"profileImageUrl"`
	AdminInviteToken string `json:"adminInviteToken"`
}

// Login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Credentials"
// @Success      200          {object}  Response
// @Failure      400          {object}  Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	out := h.auth.Login(c.Request.Context(), model.Credentials{Email: req.Email, Password: req.Password})
	if out.Error != "" {
		h.fail(c, http.StatusBadRequest, out.Error)
		return
	}
	h.redirect(c, out.Redirect, out.Identity)
}

// Signup godoc
// @Summary      Create an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        profile  body      SignupRequest  true  "Profile"
// @Success      200      {object}  Response
// @Failure      400      {object}  Response
// @Router       /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	out := h.auth.Signup(c.Request.Context(), model.Profile{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		ProfileImageURL:  req.ProfileImageURL,
		AdminInviteToken: req.AdminInviteToken,
	})
	if out.Error != "" {
		h.fail(c, http.StatusBadRequest, out.Error)
		return
	}
	h.redirect(c, out.Redirect, out.Identity)
}

// Logout godoc
// @Summary  Log out
// @Tags     Auth
// @Produce  json
// @Success  200  {object}  Response
// @Router   /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.redirect(c, h.auth.Logout(c.Request.Context()), nil)
}

// Unauthorized is shown when a role may not open a screen.
func (h *AuthHandler) Unauthorized(c *gin.Context) {
	h.fail(c, http.StatusForbidden, "You are not allowed to view this page")
}
