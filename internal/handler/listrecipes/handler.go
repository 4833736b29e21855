package listrecipes

import (
	"net/http"

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

type listRecipesResponse struct {
	Recipes []recipeSnippet `json:"recipes"`
}

// ListRecipes returns the general feed ordered by title, optionally
// filtered by the q query parameter.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	list, err := h.recipes.List(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	list = recipes.Search(list, r.URL.Query().Get("q"))

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
	httpapi.WriteJSON(w, http.StatusOK, listRecipesResponse{Recipes: snippets})
}
