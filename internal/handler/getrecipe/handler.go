package getrecipe

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

type getRecipeResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	VideoLink      string   `json:"videoLink,omitempty"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
	ImageURLs      []string `json:"imageUrls"`
	AuthorID       string   `json:"authorId"`
	AuthorNickname string   `json:"authorNickname"`
	CreatedAt      string   `json:"createdAt"`
	FavoriteCount  int      `json:"favoriteCount"`
	IsFavorited    bool     `json:"isFavorited"`
}

// GetRecipe returns one recipe. The favorite flag is only meaningful for
// signed-in viewers.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.recipes.Get(r.Context(), chi.URLParam(r, "recipeID"), auth.UserID(r.Context()))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, getRecipeResponse{
		ID:             recipe.ID,
		Title:          recipe.Title,
		VideoLink:      recipe.VideoLink,
		Ingredients:    recipe.Ingredients,
		Instructions:   recipe.Instructions,
		ImageURLs:      recipe.ImageURLs,
		AuthorID:       recipe.AuthorID,
		AuthorNickname: recipe.AuthorNickname,
		CreatedAt:      recipe.CreatedAt,
		FavoriteCount:  len(recipe.Favorites),
		IsFavorited:    recipe.IsFavorited,
	})
}
