package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/authd/internal/api/middleware"
	"github.com/edvin/authd/internal/api/request"
	"github.com/edvin/authd/internal/api/response"
	"github.com/edvin/authd/internal/core"
)

type APIKey struct {
	svc *core.UserService
}

func NewAPIKey(svc *core.UserService) *APIKey {
	return &APIKey{svc: svc}
}

type rotateRequest struct {
	APIKey string `json:"api_key"`
}

type rotateResponse struct {
	Message string `json:"message"`
	APIKey  string `json:"apiKey"`
}

// Rotate overwrites the user's API key. A key supplied in the body is
// adopted verbatim; with no body a fresh random key is generated.
func (h *APIKey) Rotate(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		response.WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req rotateRequest
	if err := request.DecodeOptional(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, err := h.svc.RotateAPIKey(r.Context(), user.ID, req.APIKey)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("user_id", user.ID).Msg("api key update failed")
		response.WriteError(w, http.StatusInternalServerError, "Could not update API key")
		return
	}

	response.WriteJSON(w, http.StatusOK, rotateResponse{
		Message: "API key updated",
		APIKey:  key,
	})
}
