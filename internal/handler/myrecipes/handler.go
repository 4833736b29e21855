package myrecipes

import (
	"net/http"

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

type recipeSnippet struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	AuthorNickname string `json:"authorNickname"`
	CreatedAt      string `json:"createdAt"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

type myRecipesResponse struct {
	Recipes []recipeSnippet `json:"recipes"`
}

// MyRecipes returns the signed-in user's own recipes.
func (h *Handler) MyRecipes(w http.ResponseWriter, r *http.Request) {
	list, err := h.recipes.ListByAuthor(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}

	snippets := make([]recipeSnippet, len(list))
	for i, recipe := range list {
		snippet := recipeSnippet{
			ID:             recipe.ID,
			Title:          recipe.Title,
			AuthorNickname: recipe.AuthorNickname,
			CreatedAt:      recipe.CreatedAt,
		}
		if len(recipe.ImageURLs) > 0 {
			snippet.ImageURL = recipe.ImageURLs[0]
		}
		snippets[i] = snippet
	}
	httpapi.WriteJSON(w, http.StatusOK, myRecipesResponse{Recipes: snippets})
}
