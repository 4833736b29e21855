package profile

import (
	"net/http"

	"github.com/recipespace/server/internal/auth"
	"github.com/recipespace/server/internal/httpapi"
	"github.com/recipespace/server/internal/recipes"
	"github.com/recipespace/server/internal/users"
)

func NewHandler(profiles *users.Profiles) *Handler {
	return &Handler{profiles: profiles}
}

type Handler struct {
	profiles *users.Profiles
}

type profileResponse struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type setNicknameRequest struct {
	Nickname string `json:"nickname"`
}

// GetProfile returns the signed-in user's profile, or 404 while it is
// incomplete so the frontend can show the nickname flow.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		httpapi.WriteError(w, r, recipes.ErrUnauthenticated)
		return
	}
	u, err := h.profiles.Get(r.Context(), uid)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, profileResponse{
		UID:      u.UID,
		Email:    u.Email,
		Nickname: u.Nickname,
	})
}

// SetNickname creates or updates the signed-in user's profile document.
func (h *Handler) SetNickname(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		httpapi.WriteError(w, r, recipes.ErrUnauthenticated)
		return
	}
	var req setNicknameRequest
	if err := httpapi.Decode(w, r, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := h.profiles.SetNickname(r.Context(), uid, auth.Email(r.Context()), req.Nickname); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
