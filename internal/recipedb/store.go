package recipedb

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("recipedb: not found")

// Store is the document store for recipes and user profiles. Implementations
// must assign recipe IDs on creation and return ErrNotFound for absent
// documents on reads.
type Store interface {
	// CreateRecipe persists a new recipe and returns its assigned ID.
	CreateRecipe(ctx context.Context, r *Recipe) (string, error)

	// GetRecipe fetches one recipe by ID.
	GetRecipe(ctx context.Context, id string) (*Recipe, error)

	// AllRecipes fetches every recipe. An empty store yields an empty slice.
	AllRecipes(ctx context.Context) ([]Recipe, error)

	// RecipesByAuthor fetches the recipes created by the given user.
	RecipesByAuthor(ctx context.Context, authorID string) ([]Recipe, error)

	// UpdateRecipe writes the full recipe document identified by r.ID.
	UpdateRecipe(ctx context.Context, r *Recipe) error

	// DeleteRecipe removes the recipe document.
	DeleteRecipe(ctx context.Context, id string) error

	// GetUser fetches one user profile by UID.
	GetUser(ctx context.Context, uid string) (*User, error)

	// SetUser writes the full user profile document keyed by u.UID.
	SetUser(ctx context.Context, u *User) error
}
