package togglefavorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recipespace/server/internal/auth"
	"github.com/recipespace/server/internal/httpapi"
	"github.com/recipespace/server/internal/recipes"
)

func NewHandler(recipes *recipes.Service) *Handler {
	return &Handler{recipes: recipes}
}

type Handler struct {
	recipes *recipes.Service
}

type toggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

// ToggleFavorite flips the signed-in user's favorite on a recipe and
// reports the new state.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	favorited, err := h.recipes.ToggleFavorite(r.Context(), chi.URLParam(r, "recipeID"), auth.UserID(r.Context()))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toggleFavoriteResponse{Favorited: favorited})
}
