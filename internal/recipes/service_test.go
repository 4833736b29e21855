package recipes

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/recipespace/server/internal/blob"
	"github.com/recipespace/server/internal/recipedb"
	"github.com/recipespace/server/internal/users"
)

func newTestService() (*Service, *recipedb.Memory, *blob.Memory) {
	store := recipedb.NewMemory()
	blobs := blob.NewMemory()
	return NewService(store, blobs, users.NewResolver(store)), store, blobs
}

func pngDataURL(content string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func validInput() Input {
	return Input{
		Title:        "Soup",
		VideoLink:    "https://example.com/watch?v=abc",
		Ingredients:  []string{"Water", "Salt"},
		Instructions: []string{"Boil"},
	}
}

// failingBlobs wraps the in-memory blob store with injectable failures.
type failingBlobs struct {
	*blob.Memory
	failWritesAfter int
	failDeletes     bool
	writes          int
}

func (f *failingBlobs) Write(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	f.writes++
	if f.writes > f.failWritesAfter {
		return "", errors.New("upload failed")
	}
	return f.Memory.Write(ctx, path, contentType, data)
}

func (f *failingBlobs) Delete(ctx context.Context, url string) error {
	if f.failDeletes {
		return errors.New("delete failed")
	}
	return f.Memory.Delete(ctx, url)
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, blobs := newTestService()

	in := validInput()
	in.Images = []ImageFile{
		{Name: "one.png", DataURL: pngDataURL("first")},
		{Name: "two.png", DataURL: pngDataURL("second")},
	}

	id, err := svc.Create(ctx, "user-a", in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	got, err := svc.Get(ctx, id, "")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != "Soup" {
		t.Errorf("title = %q, want Soup", got.Title)
	}
	if got.VideoLink != in.VideoLink {
		t.Errorf("videoLink = %q, want %q", got.VideoLink, in.VideoLink)
	}
	if !slices.Equal(got.Ingredients, []string{"Water", "Salt"}) {
		t.Errorf("ingredients = %v", got.Ingredients)
	}
	if !slices.Equal(got.Instructions, []string{"Boil"}) {
		t.Errorf("instructions = %v", got.Instructions)
	}
	wantURLs := []string{
		"https://storage.googleapis.com/memory/recipes/one.png",
		"https://storage.googleapis.com/memory/recipes/two.png",
	}
	if !slices.Equal(got.ImageURLs, wantURLs) {
		t.Errorf("imageUrls = %v, want %v", got.ImageURLs, wantURLs)
	}
	if got.AuthorID != "user-a" {
		t.Errorf("authorId = %q, want user-a", got.AuthorID)
	}
	if got.AuthorNickname != users.UnknownNickname {
		t.Errorf("authorNickname = %q, want %q", got.AuthorNickname, users.UnknownNickname)
	}
	if len(got.Favorites) != 0 {
		t.Errorf("favorites = %v, want empty", got.Favorites)
	}
	if _, err := time.Parse(time.RFC3339, got.CreatedAt); err != nil {
		t.Errorf("createdAt %q is not RFC 3339: %v", got.CreatedAt, err)
	}
	if blobs.Len() != 2 {
		t.Errorf("stored objects = %d, want 2", blobs.Len())
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty title", func(in *Input) { in.Title = "" }},
		{"whitespace title", func(in *Input) { in.Title = "   " }},
		{"no ingredients", func(in *Input) { in.Ingredients = nil }},
		{"blank ingredients", func(in *Input) { in.Ingredients = []string{"", "  "} }},
		{"no instructions", func(in *Input) { in.Instructions = nil }},
		{"blank instructions", func(in *Input) { in.Instructions = []string{" "} }},
		{"unnamed image", func(in *Input) {
			in.Images = []ImageFile{{Name: " ", DataURL: pngDataURL("x")}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, _ := newTestService()
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, "user-a", in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Create error = %v, want ValidationError", err)
			}
			recs, _ := store.AllRecipes(ctx)
			if len(recs) != 0 {
				t.Errorf("store has %d recipes after rejected create", len(recs))
			}
		})
	}
}

func TestCreateTrimsBlankEntries(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	in := validInput()
	in.Ingredients = []string{" Water ", "", "  "}
	in.Instructions = []string{"Boil", ""}

	id, err := svc.Create(ctx, "user-a", in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	got, err := svc.Get(ctx, id, "")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !slices.Equal(got.Ingredients, []string{"Water"}) {
		t.Errorf("ingredients = %v, want [Water]", got.Ingredients)
	}
	if !slices.Equal(got.Instructions, []string{"Boil"}) {
		t.Errorf("instructions = %v, want [Boil]", got.Instructions)
	}
}

func TestCreateUnauthenticated(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Create(context.Background(), "", validInput()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Create error = %v, want ErrUnauthenticated", err)
	}
}

func TestCreateUploadFailureAborts(t *testing.T) {
	ctx := context.Background()
	store := recipedb.NewMemory()
	blobs := &failingBlobs{Memory: blob.NewMemory(), failWritesAfter: 1}
	svc := NewService(store, blobs, users.NewResolver(store))

	in := validInput()
	in.Images = []ImageFile{
		{Name: "one.png", DataURL: pngDataURL("first")},
		{Name: "two.png", DataURL: pngDataURL("second")},
	}

	if _, err := svc.Create(ctx, "user-a", in); err == nil {
		t.Fatal("Create succeeded despite failed upload")
	}
	recs, _ := store.AllRecipes(ctx)
	if len(recs) != 0 {
		t.Errorf("store has %d recipes, want 0", len(recs))
	}
	// The first upload is not compensated; the orphan is the documented
	// trade-off, not silent record loss.
	if blobs.Memory.Len() != 1 {
		t.Errorf("stored objects = %d, want 1 orphan", blobs.Memory.Len())
	}
}

func TestUpdateByNonAuthorForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	id, err := svc.Create(ctx, "user-a", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	in := validInput()
	in.Title = "Stolen soup"
	if err := svc.Update(ctx, id, "user-b", in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Update error = %v, want ErrForbidden", err)
	}

	got, err := svc.Get(ctx, id, "")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != "Soup" {
		t.Errorf("title = %q after forbidden update, want Soup", got.Title)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Update(context.Background(), "missing", "user-a", validInput())
	if !errors.Is(err, recipedb.ErrNotFound) {
		t.Fatalf("Update error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAppendsImages(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	in := validInput()
	in.Images = []ImageFile{{Name: "old.png", DataURL: pngDataURL("old")}}
	id, err := svc.Create(ctx, "user-a", in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	before, _ := svc.Get(ctx, id, "")

	up := validInput()
	up.Title = "Better soup"
	up.Images = []ImageFile{{Name: "new.png", DataURL: pngDataURL("new")}}
	if err := svc.Update(ctx, id, "user-a", up); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := svc.Get(ctx, id, "")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	wantURLs := []string{
		"https://storage.googleapis.com/memory/recipes/old.png",
		"https://storage.googleapis.com/memory/recipes/new.png",
	}
	if !slices.Equal(got.ImageURLs, wantURLs) {
		t.Errorf("imageUrls = %v, want %v", got.ImageURLs, wantURLs)
	}
	if got.Title != "Better soup" {
		t.Errorf("title = %q, want Better soup", got.Title)
	}
	if got.AuthorID != "user-a" || got.CreatedAt != before.CreatedAt {
		t.Errorf("author/createdAt changed: %q %q", got.AuthorID, got.CreatedAt)
	}
}

func TestUpdateRemoveImages(t *testing.T) {
	ctx := context.Background()
	svc, _, blobs := newTestService()

	in := validInput()
	in.Images = []ImageFile{
		{Name: "one.png", DataURL: pngDataURL("first")},
		{Name: "two.png", DataURL: pngDataURL("second")},
	}
	id, err := svc.Create(ctx, "user-a", in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	up := validInput()
	up.RemoveImages = true
	up.Images = []ImageFile{{Name: "fresh.png", DataURL: pngDataURL("fresh")}}
	if err := svc.Update(ctx, id, "user-a", up); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, _ := svc.Get(ctx, id, "")
	wantURLs := []string{"https://storage.googleapis.com/memory/recipes/fresh.png"}
	if !slices.Equal(got.ImageURLs, wantURLs) {
		t.Errorf("imageUrls = %v, want %v", got.ImageURLs, wantURLs)
	}
	if blobs.Len() != 1 {
		t.Errorf("stored objects = %d, want 1", blobs.Len())
	}
	if _, ok := blobs.Object("recipes/fresh.png"); !ok {
		t.Error("fresh.png missing from blob store")
	}
}

func TestUpdateKeepsFavorites(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	id, err := svc.Create(ctx, "user-a", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.ToggleFavorite(ctx, id, "user-b"); err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}

	if err := svc.Update(ctx, id, "user-a", validInput()); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, _ := svc.Get(ctx, id, "user-b")
	if !got.IsFavorited {
		t.Error("favorite lost across update")
	}
}

func TestDeleteRemovesRecordAndBlobs(t *testing.T) {
	ctx := context.Background()
	svc, _, blobs := newTestService()

	in := validInput()
	in.Images = []ImageFile{{Name: "one.png", DataURL: pngDataURL("first")}}
	id, err := svc.Create(ctx, "user-a", in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(ctx, id, "user-a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, id, ""); !errors.Is(err, recipedb.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if blobs.Len() != 0 {
		t.Errorf("stored objects = %d, want 0", blobs.Len())
	}
}

func TestDeleteByNonAuthorForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	id, err := svc.Create(ctx, "user-a", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(ctx, id, "user-b"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Delete error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, id, ""); err != nil {
		t.Fatalf("recipe gone after forbidden delete: %v", err)
	}
}

func TestDeleteSurvivesBlobFailure(t *testing.T) {
	ctx := context.Background()
	store := recipedb.NewMemory()
	blobs := &failingBlobs{Memory: blob.NewMemory(), failWritesAfter: 10, failDeletes: true}
	svc := NewService(store, blobs, users.NewResolver(store))

	in := validInput()
	in.Images = []ImageFile{{Name: "one.png", DataURL: pngDataURL("first")}}
	id, err := svc.Create(ctx, "user-a", in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(ctx, id, "user-a"); err != nil {
		t.Fatalf("Delete returned error despite best-effort blob policy: %v", err)
	}
	if _, err := svc.Get(ctx, id, ""); !errors.Is(err, recipedb.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestToggleFavoriteInvolution(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	id, err := svc.Create(ctx, "user-a", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	favorited, err := svc.ToggleFavorite(ctx, id, "user-b")
	if err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if !favorited {
		t.Error("first toggle = false, want true")
	}
	got, _ := svc.Get(ctx, id, "user-b")
	if !got.IsFavorited {
		t.Error("IsFavorited = false after first toggle")
	}

	favorited, err = svc.ToggleFavorite(ctx, id, "user-b")
	if err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if favorited {
		t.Error("second toggle = true, want false")
	}
	got, _ = svc.Get(ctx, id, "user-b")
	if got.IsFavorited || len(got.Favorites) != 0 {
		t.Errorf("favorites = %v after toggle pair, want empty", got.Favorites)
	}
}

func TestToggleFavoriteTwoUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	id, err := svc.Create(ctx, "user-a", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.ToggleFavorite(ctx, id, "user-b"); err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if _, err := svc.ToggleFavorite(ctx, id, "user-c"); err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}

	got, _ := svc.Get(ctx, id, "")
	if !slices.Contains(got.Favorites, "user-b") || !slices.Contains(got.Favorites, "user-c") {
		t.Errorf("favorites = %v, want both users", got.Favorites)
	}
}

func TestToggleFavoriteUnauthenticated(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.ToggleFavorite(context.Background(), "any", ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("ToggleFavorite error = %v, want ErrUnauthenticated", err)
	}
}

func TestToggleFavoriteNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.ToggleFavorite(context.Background(), "missing", "user-b"); !errors.Is(err, recipedb.ErrNotFound) {
		t.Fatalf("ToggleFavorite error = %v, want ErrNotFound", err)
	}
}

func TestListEmptyStore(t *testing.T) {
	svc, _, _ := newTestService()
	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("List on empty store = %v, want empty", list)
	}
}

func TestListSortsByTitleAndResolvesNicknames(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	if err := store.SetUser(ctx, &recipedb.User{UID: "user-a", Email: "a@example.com", Nickname: "Chef A"}); err != nil {
		t.Fatalf("SetUser returned error: %v", err)
	}

	for _, r := range []struct{ title, author string }{
		{"Soup", "user-a"},
		{"apple pie", "user-b"},
		{"Banana bread", "user-a"},
	} {
		in := validInput()
		in.Title = r.title
		if _, err := svc.Create(ctx, r.author, in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	var titles []string
	for _, r := range list {
		titles = append(titles, r.Title)
	}
	// Collated order, not byte order: lowercase titles interleave.
	want := []string{"apple pie", "Banana bread", "Soup"}
	if !slices.Equal(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
	for _, r := range list {
		switch r.AuthorID {
		case "user-a":
			if r.AuthorNickname != "Chef A" {
				t.Errorf("nickname for user-a = %q, want Chef A", r.AuthorNickname)
			}
		case "user-b":
			if r.AuthorNickname != users.UnknownNickname {
				t.Errorf("nickname for user-b = %q, want %q", r.AuthorNickname, users.UnknownNickname)
			}
		}
	}
}

func TestListByAuthor(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	for i, author := range []string{"user-a", "user-b", "user-a"} {
		in := validInput()
		in.Title = fmt.Sprintf("Recipe %d", i)
		if _, err := svc.Create(ctx, author, in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	list, err := svc.ListByAuthor(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListByAuthor returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByAuthor returned %d recipes, want 2", len(list))
	}
	for _, r := range list {
		if r.AuthorID != "user-a" {
			t.Errorf("recipe %s has author %q", r.ID, r.AuthorID)
		}
	}

	if _, err := svc.ListByAuthor(ctx, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("ListByAuthor error = %v, want ErrUnauthenticated", err)
	}
}
