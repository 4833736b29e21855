package deleterecipe

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

// DeleteRecipe removes a recipe and its images. Author only.
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.Delete(r.Context(), chi.URLParam(r, "recipeID"), auth.UserID(r.Context())); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
