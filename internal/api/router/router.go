package router

import (
	"qna_board_service/internal/api/handlers"
	"qna_board_service/pkg/middlewares"
	t_token "qna_board_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers handlers mounted by RegisterRoutes, Thumbnail / DevIssuer 可為 nil
type Handlers struct {
	Member    *handlers.MemberHandler
	Message   *handlers.MessageHandler
	Auth      *handlers.AuthHandler
	Thumbnail *handlers.ThumbnailHandler
	// DevIssuer expose POST /api/auth.token
	DevIssuer bool
}

// RegisterRoutes 註冊 board 相關的路由
// @title QnA Board Service API
// @version 1.0
// @description Anonymous question board: members, messages and card thumbnails
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func RegisterRoutes(app *fiber.App, h Handlers, provider t_token.Provider) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	api := app.Group("/api")
	api.Post("/members.add", h.Member.Add)
	api.Get("/users.info/:screenName", h.Member.FindByScreenName)

	api.Post("/messages.add", h.Message.Post)
	api.Get("/messages.list", h.Message.List)
	api.Get("/messages.info", h.Message.Get)

	if h.Thumbnail != nil {
		api.Get("/thumbnail", h.Thumbnail.Get)
	}
	if h.DevIssuer {
		api.Post("/auth.token", h.Auth.Token)
	}

	auth := middlewares.IdentityMiddleware(provider)
	api.Post("/messages.add.reply", auth, h.Message.Reply)
	api.Post("/messages.deny", auth, h.Message.Deny)
	api.Post("/auth.signout", auth, h.Auth.SignOut)
}

// NewApp fiber app with the board error handler, bodyKiB request limit
func NewApp(bodyKiB int) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		BodyLimit:             bodyKiB * 1024,
		UnescapePath:          true,
		DisableStartupMessage: true,
	})
}
