package recipedb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	recipesCollection = "recipes"
	usersCollection   = "users"
)

// NewFirestore returns a Store backed by Firestore.
func NewFirestore(client *firestore.Client) Store {
	return &firestoreStore{client: client}
}

type firestoreStore struct {
	client *firestore.Client
}

func (s *firestoreStore) CreateRecipe(ctx context.Context, r *Recipe) (string, error) {
	doc := s.client.Collection(recipesCollection).NewDoc()
	if _, err := doc.Create(ctx, r); err != nil {
		return "", fmt.Errorf("recipedb: creating recipe: %w", err)
	}
	return doc.ID, nil
}

func (s *firestoreStore) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	doc, err := s.client.Collection(recipesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recipedb: getting recipe: %w", err)
	}
	var r Recipe
	if err := doc.DataTo(&r); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling recipe: %w", err)
	}
	r.ID = doc.Ref.ID
	return &r, nil
}

func (s *firestoreStore) AllRecipes(ctx context.Context) ([]Recipe, error) {
	return s.queryRecipes(ctx, s.client.Collection(recipesCollection).Query)
}

func (s *firestoreStore) RecipesByAuthor(ctx context.Context, authorID string) ([]Recipe, error) {
	q := s.client.Collection(recipesCollection).Where("authorId", "==", authorID)
	return s.queryRecipes(ctx, q)
}

func (s *firestoreStore) queryRecipes(ctx context.Context, q firestore.Query) ([]Recipe, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	recipes := []Recipe{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("recipedb: fetching recipes: %w", err)
		}
		var r Recipe
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("recipedb: unmarshalling recipe: %w", err)
		}
		r.ID = doc.Ref.ID
		recipes = append(recipes, r)
	}
	return recipes, nil
}

func (s *firestoreStore) UpdateRecipe(ctx context.Context, r *Recipe) error {
	if _, err := s.client.Collection(recipesCollection).Doc(r.ID).Set(ctx, r); err != nil {
		return fmt.Errorf("recipedb: updating recipe: %w", err)
	}
	return nil
}

func (s *firestoreStore) DeleteRecipe(ctx context.Context, id string) error {
	if _, err := s.client.Collection(recipesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("recipedb: deleting recipe: %w", err)
	}
	return nil
}

func (s *firestoreStore) GetUser(ctx context.Context, uid string) (*User, error) {
	doc, err := s.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recipedb: getting user: %w", err)
	}
	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling user: %w", err)
	}
	return &u, nil
}

func (s *firestoreStore) SetUser(ctx context.Context, u *User) error {
	if _, err := s.client.Collection(usersCollection).Doc(u.UID).Set(ctx, u); err != nil {
		return fmt.Errorf("recipedb: saving user: %w", err)
	}
	return nil
}
