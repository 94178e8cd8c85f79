package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/conduitapp/conduit/app/controllers"
	"github.com/conduitapp/conduit/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	requireAuth := middleware.RequireAuth()
	optionalAuth := middleware.OptionalAuth()

	// users and authentication
	api.Post("/users", controllers.HandleRegister)
	api.Post("/users/login", controllers.HandleLogin)
	api.Get("/user", requireAuth, controllers.HandleGetCurrentUser)
	api.Put("/user", requireAuth, controllers.HandleUpdateCurrentUser)

	// profiles and follows
	api.Get("/profiles/:username", optionalAuth, controllers.HandleGetProfile)
	api.Post("/profiles/:username/follow", requireAuth, controllers.HandleFollowUser)
	api.Delete("/profiles/:username/follow", requireAuth, controllers.HandleUnfollowUser)

	// articles; /articles/feed must register before /articles/:slug
	api.Get("/articles", optionalAuth, controllers.HandleListArticles)
	api.Get("/articles/feed", requireAuth, controllers.HandleFeed)
	api.Post("/articles", requireAuth, controllers.HandleCreateArticle)
	api.Get("/articles/:slug", optionalAuth, controllers.HandleGetArticle)
	api.Put("/articles/:slug", requireAuth, controllers.HandleUpdateArticle)
	api.Delete("/articles/:slug", requireAuth, controllers.HandleDeleteArticle)

	// favorites
	api.Post("/articles/:slug/favorite", requireAuth, controllers.HandleFavoriteArticle)
	api.Delete("/articles/:slug/favorite", requireAuth, controllers.HandleUnfavoriteArticle)

	// comments
	api.Get("/articles/:slug/comments", optionalAuth, controllers.HandleListComments)
	api.Post("/articles/:slug/comments", requireAuth, controllers.HandleCreateComment)
	api.Delete("/articles/:slug/comments/:id", requireAuth, controllers.HandleDeleteComment)

	// tags
	api.Get("/tags", controllers.HandleGetTags)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
