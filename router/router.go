package router

import (
	"database/sql"
	"net/http"

	"github.com/salvadorperezm/ror-api-creation/config"
	"github.com/salvadorperezm/ror-api-creation/events"
	postHandler "github.com/salvadorperezm/ror-api-creation/internal/post"
	postRepo "github.com/salvadorperezm/ror-api-creation/internal/post/repository"
	"github.com/salvadorperezm/ror-api-creation/internal/post/service"
	userRepo "github.com/salvadorperezm/ror-api-creation/internal/user/repository"
	"github.com/salvadorperezm/ror-api-creation/middleware"
	"github.com/salvadorperezm/ror-api-creation/pkg/ttlcache"
)

func Setup(db *sql.DB, hub *events.Hub, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	users := userRepo.NewUserRepository(db)
	posts := postRepo.NewPostRepository(db)
	searchCache := ttlcache.New[[]int64](cfg.SearchCacheTTL)
	postService := service.NewPostService(posts, users, searchCache, hub, cfg.ListIncludeOwnDrafts)
	posth := postHandler.NewPostHandler(postService)

	optional := func(h http.HandlerFunc) http.Handler { return middleware.WithUser(users, h) }
	protected := func(h http.HandlerFunc) http.Handler { return middleware.RequireUser(users, h) }

	mux.Handle("GET /posts", optional(posth.ListPosts))
	mux.Handle("GET /posts/{id}", optional(posth.ShowPost))
	mux.Handle("POST /posts", protected(posth.CreatePost))
	mux.Handle("PUT /posts/{id}", protected(posth.UpdatePost))

	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		events.ServeWs(hub, w, r)
	})

	return middleware.CORSMiddleware(middleware.RequestLog(mux))
}
