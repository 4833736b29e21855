package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recipespace/server/internal/blob"
	"github.com/recipespace/server/internal/config"
	"github.com/recipespace/server/internal/handler/addrecipe"
	"github.com/recipespace/server/internal/handler/deleterecipe"
	"github.com/recipespace/server/internal/handler/getrecipe"
	"github.com/recipespace/server/internal/handler/listrecipes"
	"github.com/recipespace/server/internal/handler/myrecipes"
	"github.com/recipespace/server/internal/handler/profile"
	"github.com/recipespace/server/internal/handler/togglefavorite"
	"github.com/recipespace/server/internal/handler/updaterecipe"
	"github.com/recipespace/server/internal/i18n"
	"github.com/recipespace/server/internal/recipedb"
	"github.com/recipespace/server/internal/recipes"
	"github.com/recipespace/server/internal/users"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()

	bucket := conf.Storage.Bucket
	if bucket == "" {
		bucket = conf.Google.Project + "-public"
	}

	store := recipedb.NewFirestore(firestore)
	blobs := blob.NewGCS(storage, bucket)
	nicknames := users.NewResolver(store)
	profiles := users.NewProfiles(store)
	svc := recipes.NewService(store, blobs, nicknames)

	// Browsing is anonymous; everything else needs a verified token. A
	// token on a public route is still verified so the viewer's favorites
	// show up.
	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		if r.Header.Get("Authorization") == "" && isPublicRoute(r) {
			return false
		}
		return true
	}))

	mux.Use(i18n.Middleware())

	mux.Get("/api/recipes", listrecipes.NewHandler(svc).ListRecipes)
	mux.Get("/api/recipes/{recipeID}", getrecipe.NewHandler(svc).GetRecipe)
	mux.Post("/api/recipes", addrecipe.NewHandler(svc).AddRecipe)
	mux.Put("/api/recipes/{recipeID}", updaterecipe.NewHandler(svc).UpdateRecipe)
	mux.Delete("/api/recipes/{recipeID}", deleterecipe.NewHandler(svc).DeleteRecipe)
	mux.Post("/api/recipes/{recipeID}/favorite", togglefavorite.NewHandler(svc).ToggleFavorite)
	mux.Get("/api/my/recipes", myrecipes.NewHandler(svc).MyRecipes)

	p := profile.NewHandler(profiles)
	mux.Get("/api/profile", p.GetProfile)
	mux.Put("/api/profile", p.SetNickname)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}

func isPublicRoute(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	return r.URL.Path == "/api/recipes" || strings.HasPrefix(r.URL.Path, "/api/recipes/")
}
