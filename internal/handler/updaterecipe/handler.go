package updaterecipe

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

type imageFile struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

type updateRecipeRequest struct {
	Title        string      `json:"title"`
	VideoLink    string      `json:"videoLink"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	Images       []imageFile `json:"images"`
	RemoveImages bool        `json:"removeImages"`
}

// UpdateRecipe edits a recipe's writable fields. Only the author may call
// this; the author and creation time never change.
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var req updateRecipeRequest
	if err := httpapi.Decode(w, r, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}

	in := recipes.Input{
		Title:        req.Title,
		VideoLink:    req.VideoLink,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		RemoveImages: req.RemoveImages,
	}
	for _, img := range req.Images {
		in.Images = append(in.Images, recipes.ImageFile{Name: img.Name, DataURL: img.DataURL})
	}

	if err := h.recipes.Update(r.Context(), chi.URLParam(r, "recipeID"), auth.UserID(r.Context()), in); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
