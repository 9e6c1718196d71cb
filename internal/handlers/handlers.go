package handlers

import (
	"Linkshelf/internal/config"
	"Linkshelf/internal/middleware"
	"Linkshelf/internal/service"
	"Linkshelf/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Services: набор сервисов, которые обслуживает роутер.
type Services struct {
	Users       *service.UserService
	Tags        *service.TagService
	Collections *service.CollectionService
	Bookmarks   *service.BookmarkService
	Assist      *service.AssistService
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	svc Services,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	base := responder{logger: logger, validate: validation.New()}
	userHandler := NewUserHandler(svc.Users, base)
	tagHandler := NewTagHandler(svc.Tags, base)
	collectionHandler := NewCollectionHandler(svc.Collections, base)
	bookmarkHandler := NewBookmarkHandler(svc.Bookmarks, svc.Assist, base)

	r.Route("/api", func(r chi.Router) {
		// User routes
		r.Get("/users/", userHandler.List)
		r.Post("/users/", userHandler.Create)
		r.Get("/users/{id}", userHandler.Get)
		r.Put("/users/{id}", userHandler.Update)
		r.Delete("/users/{id}", userHandler.Delete)

		// Tag routes
		r.Get("/tags/", tagHandler.List)
		r.Post("/tags/", tagHandler.Create)
		r.Get("/tags/{id}", tagHandler.Get)
		r.Put("/tags/{id}", tagHandler.Update)
		r.Delete("/tags/{id}", tagHandler.Delete)

		// Collection routes
		r.Get("/collections/", collectionHandler.List)
		r.Post("/collections/", collectionHandler.Create)
		r.Get("/collections/{id}", collectionHandler.Get)
		r.Put("/collections/{id}", collectionHandler.Update)
		r.Delete("/collections/{id}", collectionHandler.Delete)

		// Bookmark routes
		r.Get("/bookmarks/", bookmarkHandler.List)
		r.Post("/bookmarks/", bookmarkHandler.Create)
		r.Post("/bookmarks/suggest-tags", bookmarkHandler.SuggestTags)
		r.Post("/bookmarks/analyze-url", bookmarkHandler.AnalyzeURL)
		r.Post("/bookmarks/recommend-similar", bookmarkHandler.RecommendSimilar)
		r.Get("/bookmarks/{id}", bookmarkHandler.Get)
		r.Put("/bookmarks/{id}", bookmarkHandler.Update)
		r.Delete("/bookmarks/{id}", bookmarkHandler.Delete)
	})

	logger.Debugw("router ready", "listen", config.ListenAddr)
	return &Handler{Router: r}
}
