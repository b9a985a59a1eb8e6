package handler

import (
	"net/http"

	"github.com/edvin/authd/internal/api/middleware"
	"github.com/edvin/authd/internal/api/response"
)

// apiKeyPlaceholder is returned instead of a null when no key has been
// rotated in yet.
const apiKeyPlaceholder = "No API key yet"

type Me struct{}

func NewMe() *Me {
	return &Me{}
}

type profileResponse struct {
	Username string `json:"username"`
	APIKey   string `json:"apiKey"`
}

// Get returns the current authenticated user's profile.
func (h *Me) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		response.WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	apiKey := apiKeyPlaceholder
	if user.APIKey != nil {
		apiKey = *user.APIKey
	}

	response.WriteJSON(w, http.StatusOK, profileResponse{
		Username: user.Username,
		APIKey:   apiKey,
	})
}
