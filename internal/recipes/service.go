// Package recipes owns every operation over recipe records: CRUD, listing
// with author-nickname enrichment, favorite toggling, and image
// orchestration. The views are plain consumers of this service.
package recipes

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"

	"github.com/recipespace/server/internal/blob"
	"github.com/recipespace/server/internal/i18n"
	"github.com/recipespace/server/internal/recipedb"
	"github.com/recipespace/server/internal/users"
)

// imagePrefix is where recipe images live in the bucket. Objects keep the
// uploaded file's original name, so identical names overwrite each other.
const imagePrefix = "recipes/"

// nicknameFanout bounds concurrent profile reads during list enrichment.
const nicknameFanout = 8

// Recipe is a stored recipe enriched with display-only fields.
type Recipe struct {
	recipedb.Recipe

	// AuthorNickname is the author's display name, or "Unknown".
	AuthorNickname string

	// IsFavorited reports whether the viewing user favorited the recipe.
	// Only set by Get when a viewer is supplied.
	IsFavorited bool
}

// NewService returns a Service over the given adapters. The adapters are
// created once at startup and injected; the service never re-acquires them.
func NewService(store recipedb.Store, blobs blob.Store, nicknames *users.Resolver) *Service {
	return &Service{
		store:     store,
		blobs:     blobs,
		nicknames: nicknames,
	}
}

// Service is the recipe repository.
type Service struct {
	store     recipedb.Store
	blobs     blob.Store
	nicknames *users.Resolver
}

// List returns every recipe with author nicknames attached, ordered by title
// with a collator for the caller's language. An empty store yields an empty
// slice.
func (s *Service) List(ctx context.Context) ([]Recipe, error) {
	records, err := s.store.AllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("recipes: listing recipes: %w", err)
	}
	recipes, err := s.enrich(ctx, records)
	if err != nil {
		return nil, err
	}
	c := collate.New(i18n.Tag(ctx))
	slices.SortStableFunc(recipes, func(a, b Recipe) int {
		return c.CompareString(a.Title, b.Title)
	})
	return recipes, nil
}

// ListByAuthor returns the recipes created by userID, enriched like List.
// Ordering follows the store.
func (s *Service) ListByAuthor(ctx context.Context, userID string) ([]Recipe, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	records, err := s.store.RecipesByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recipes: listing recipes by author: %w", err)
	}
	return s.enrich(ctx, records)
}

// Get returns one recipe with its author nickname and, when viewerID is
// non-empty, whether the viewer favorited it.
func (s *Service) Get(ctx context.Context, id string, viewerID string) (*Recipe, error) {
	record, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	nickname, err := s.nicknames.Nickname(ctx, record.AuthorID)
	if err != nil {
		return nil, err
	}
	return &Recipe{
		Recipe:         *record,
		AuthorNickname: nickname,
		IsFavorited:    viewerID != "" && slices.Contains(record.Favorites, viewerID),
	}, nil
}

// Create validates the input, uploads attached images in order, and persists
// a new recipe owned by authorID. A failed upload aborts the whole write;
// earlier uploads are not rolled back.
func (s *Service) Create(ctx context.Context, authorID string, in Input) (string, error) {
	if authorID == "" {
		return "", ErrUnauthenticated
	}
	if err := in.validate(); err != nil {
		return "", err
	}
	imageURLs, err := s.uploadImages(ctx, in.Images)
	if err != nil {
		return "", err
	}
	id, err := s.store.CreateRecipe(ctx, &recipedb.Recipe{
		Title:        in.Title,
		VideoLink:    in.VideoLink,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		ImageURLs:    imageURLs,
		AuthorID:     authorID,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the writable fields of a recipe. Only the author may
// update; the author and creation time never change. New images append to
// the existing list unless RemoveImages is set, in which case the existing
// blobs are deleted first and only the new uploads remain.
func (s *Service) Update(ctx context.Context, id string, requesterID string, in Input) error {
	if requesterID == "" {
		return ErrUnauthenticated
	}
	if err := in.validate(); err != nil {
		return err
	}
	record, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if record.AuthorID != requesterID {
		return ErrForbidden
	}

	imageURLs := record.ImageURLs
	if in.RemoveImages {
		for _, url := range record.ImageURLs {
			if err := s.blobs.Delete(ctx, url); err != nil {
				return fmt.Errorf("recipes: removing image: %w", err)
			}
		}
		imageURLs = nil
	}
	uploaded, err := s.uploadImages(ctx, in.Images)
	if err != nil {
		return err
	}
	imageURLs = append(imageURLs, uploaded...)

	record.Title = in.Title
	record.VideoLink = in.VideoLink
	record.Ingredients = in.Ingredients
	record.Instructions = in.Instructions
	record.ImageURLs = imageURLs
	if err := s.store.UpdateRecipe(ctx, record); err != nil {
		return err
	}
	return nil
}

// Delete removes a recipe and its image blobs. Blob deletion is best-effort:
// an orphaned blob beats a record that cannot be deleted.
func (s *Service) Delete(ctx context.Context, id string, requesterID string) error {
	if requesterID == "" {
		return ErrUnauthenticated
	}
	record, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if record.AuthorID != requesterID {
		return ErrForbidden
	}
	for _, url := range record.ImageURLs {
		if err := s.blobs.Delete(ctx, url); err != nil {
			slog.ErrorContext(ctx, "recipes: deleting image blob", "url", url, "error", err)
		}
	}
	if err := s.store.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	return nil
}

// ToggleFavorite adds userID to the recipe's favorites set, or removes it if
// already present, and reports the new membership. The write is
// read-modify-write over the whole set; two racing toggles can lose one
// update.
func (s *Service) ToggleFavorite(ctx context.Context, id string, userID string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}
	record, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return false, err
	}
	favorited := !slices.Contains(record.Favorites, userID)
	if favorited {
		record.Favorites = append(record.Favorites, userID)
	} else {
		record.Favorites = slices.DeleteFunc(record.Favorites, func(uid string) bool {
			return uid == userID
		})
	}
	if err := s.store.UpdateRecipe(ctx, record); err != nil {
		return false, err
	}
	return favorited, nil
}

// uploadImages decodes and uploads attached files sequentially; the first
// failure aborts the remainder.
func (s *Service) uploadImages(ctx context.Context, images []ImageFile) ([]string, error) {
	var urls []string
	for _, img := range images {
		ct, data, err := parseDataURL(img.DataURL)
		if err != nil {
			return nil, err
		}
		url, err := s.blobs.Write(ctx, imagePrefix+img.Name, ct, data)
		if err != nil {
			return nil, fmt.Errorf("recipes: uploading image %s: %w", img.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// enrich attaches author nicknames, fanning out one profile read per unique
// author.
func (s *Service) enrich(ctx context.Context, records []recipedb.Recipe) ([]Recipe, error) {
	nicknames := make(map[string]string, len(records))
	for _, r := range records {
		nicknames[r.AuthorID] = ""
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nicknameFanout)
	for authorID := range nicknames {
		g.Go(func() error {
			nickname, err := s.nicknames.Nickname(gctx, authorID)
			if err != nil {
				return err
			}
			mu.Lock()
			nicknames[authorID] = nickname
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("recipes: resolving author nicknames: %w", err)
	}

	recipes := make([]Recipe, len(records))
	for i, r := range records {
		recipes[i] = Recipe{
			Recipe:         r,
			AuthorNickname: nicknames[r.AuthorID],
		}
	}
	return recipes, nil
}
