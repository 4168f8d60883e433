package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideahub/ideahub-api/internal/metrics"
	"github.com/ideahub/ideahub-api/internal/middleware"
)

// Deps bundles everything the router needs.
type Deps struct {
	JWTSecret string
	Metrics   *metrics.Collector
	Auth      *AuthHandler
	Users     *UserHandler
	Ideas     *IdeaHandler
	Reactions *ReactionHandler
	Sources   *SourceHandler
}

// NewRouter wires up all routes. Shared between main and the end-to-end
// tests.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	if d.Metrics != nil {
		r.Use(d.Metrics.HTTPMiddleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/users/signup", d.Auth.HandleSignup)
		r.Post("/api/users/login", d.Auth.HandleLogin)
	})

	r.Get("/api/ideas/random", d.Ideas.HandleRandomIdea)
	r.Get("/api/ideas/search", d.Ideas.HandleSearchIdeas)
	r.Get("/api/sources", d.Sources.HandleListSources)
	r.Get("/api/sources/{sourceId}", d.Sources.HandleGetSource)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(d.JWTSecret))

		r.Get("/api/users/{userId}", d.Users.HandleGetUser)
		r.Patch("/api/users/{userId}", d.Users.HandleEditUser)

		r.Post("/api/ideas/", d.Ideas.HandlePostIdea)
		r.Get("/api/ideas/random-unseen", d.Ideas.HandleRandomUnseenIdea)
		r.Get("/api/ideas/popular", d.Ideas.HandlePopularIdea)
		r.Get("/api/ideas/agreeable", d.Ideas.HandleAgreeableIdea)
		r.Get("/api/ideas/disagreeable", d.Ideas.HandleDisagreeableIdea)
		r.Get("/api/ideas/viewed", d.Reactions.HandleViewedIdeas)
		r.Get("/api/ideas/viewed-with-relationships", d.Reactions.HandleViewedIdeasWithRelationships)
		r.Get("/api/ideas/user/{userId}", d.Ideas.HandlePostedIdeas)
		r.Post("/api/ideas/{ideaId}/react", d.Reactions.HandleReact)
		r.Get("/api/ideas/{ideaId}/reactions", d.Ideas.HandleIdeaReactions)
		r.Get("/api/ideas/{ideaId}", d.Ideas.HandleIdeaDetails)
		r.Delete("/api/ideas/{ideaId}", d.Ideas.HandleDeleteIdea)
	})

	return r
}
