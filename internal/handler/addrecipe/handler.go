package addrecipe

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

type imageFile struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

type addRecipeRequest struct {
	Title        string      `json:"title"`
	VideoLink    string      `json:"videoLink"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	Images       []imageFile `json:"images"`
}

type addRecipeResponse struct {
	RecipeID string `json:"recipeId"`
}

// AddRecipe creates a recipe owned by the signed-in user.
func (h *Handler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	var req addRecipeRequest
	if err := httpapi.Decode(w, r, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}

	in := recipes.Input{
		Title:        req.Title,
		VideoLink:    req.VideoLink,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
	for _, img := range req.Images {
		in.Images = append(in.Images, recipes.ImageFile{Name: img.Name, DataURL: img.DataURL})
	}

	id, err := h.recipes.Create(r.Context(), auth.UserID(r.Context()), in)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, addRecipeResponse{RecipeID: id})
}
