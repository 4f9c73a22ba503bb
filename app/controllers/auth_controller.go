package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/pkg/auth"
	"github.com/shashiranjanraj/dinehub/pkg/bind"
	"github.com/shashiranjanraj/dinehub/pkg/logger"
	"github.com/shashiranjanraj/dinehub/pkg/middleware"
	"github.com/shashiranjanraj/dinehub/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginInput struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials, sets the signed httpOnly token cookie, and
// returns the user. The token is also returned in the body for non-browser
// clients that prefer the Authorization header.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("login failed", "username", input.Username)
		response.FromError(w, err)
		return
	}

	auth.SetTokenCookie(w, token)
	response.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout clears the token cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookie(w)
	response.Success(w, map[string]string{"message": "Logged out"})
}

// Profile returns the authenticated caller's account.
func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(r.Context(), identity.UserID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, user)
}
