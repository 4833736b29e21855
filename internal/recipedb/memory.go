package recipedb

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory stores documents in process memory. It backs tests and local
// development without a Firestore project.
type Memory struct {
	mu      sync.RWMutex
	recipes map[string]*Recipe
	users   map[string]*User
	nextID  int
}

// NewMemory returns an initialized in-memory store.
func NewMemory() *Memory {
	return &Memory{
		recipes: make(map[string]*Recipe),
		users:   make(map[string]*User),
	}
}

func cloneRecipe(r *Recipe) *Recipe {
	c := *r
	c.Ingredients = slices.Clone(r.Ingredients)
	c.Instructions = slices.Clone(r.Instructions)
	c.ImageURLs = slices.Clone(r.ImageURLs)
	c.Favorites = slices.Clone(r.Favorites)
	return &c
}

func (m *Memory) CreateRecipe(_ context.Context, r *Recipe) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("recipe-%04d", m.nextID)
	c := cloneRecipe(r)
	c.ID = id
	m.recipes[id] = c
	return id, nil
}

func (m *Memory) GetRecipe(_ context.Context, id string) (*Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecipe(r), nil
}

func (m *Memory) AllRecipes(_ context.Context) ([]Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recipes := []Recipe{}
	for _, id := range m.sortedIDs() {
		recipes = append(recipes, *cloneRecipe(m.recipes[id]))
	}
	return recipes, nil
}

func (m *Memory) RecipesByAuthor(_ context.Context, authorID string) ([]Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recipes := []Recipe{}
	for _, id := range m.sortedIDs() {
		if m.recipes[id].AuthorID == authorID {
			recipes = append(recipes, *cloneRecipe(m.recipes[id]))
		}
	}
	return recipes, nil
}

// sortedIDs keeps list results deterministic. Callers must hold the lock.
func (m *Memory) sortedIDs() []string {
	ids := make([]string, 0, len(m.recipes))
	for id := range m.recipes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *Memory) UpdateRecipe(_ context.Context, r *Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[r.ID]; !ok {
		return ErrNotFound
	}
	m.recipes[r.ID] = cloneRecipe(r)
	return nil
}

func (m *Memory) DeleteRecipe(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[id]; !ok {
		return ErrNotFound
	}
	delete(m.recipes, id)
	return nil
}

func (m *Memory) GetUser(_ context.Context, uid string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[uid]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *Memory) SetUser(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *u
	m.users[u.UID] = &c
	return nil
}
