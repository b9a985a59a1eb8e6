package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/authd/internal/api/request"
	"github.com/edvin/authd/internal/api/response"
	"github.com/edvin/authd/internal/core"
	"github.com/edvin/authd/internal/model"
)

type Auth struct {
	svc *core.AuthService
}

func NewAuth(svc *core.AuthService) *Auth {
	return &Auth{svc: svc}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userView is the public projection of a user returned from login.
// The password hash and internal id never appear here.
type userView struct {
	Username string  `json:"username"`
	APIKey   *string `json:"apiKey"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// Register creates a new user account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrUsernameTaken) {
			response.WriteError(w, http.StatusBadRequest, "Username already taken")
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("registration failed")
		response.WriteError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	response.WriteMessage(w, http.StatusOK, "User registered")
}

// Login authenticates a user and returns a bearer token plus the public
// view of the account.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			response.WriteError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("login failed")
		response.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	response.WriteJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  publicView(user),
	})
}

func publicView(user *model.User) userView {
	return userView{
		Username: user.Username,
		APIKey:   user.APIKey,
	}
}
