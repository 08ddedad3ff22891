package restapi

import (
	"github.com/Jacky088/Edgeone-Imgbed/config"
	v1 "github.com/Jacky088/Edgeone-Imgbed/internal/controller/restapi/v1"
	"github.com/Jacky088/Edgeone-Imgbed/internal/usecase"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewRouter(app *fiber.App, cfg *config.Config, img usecase.ImageUseCase, l logger.Interface) {
	app.Use(requestLogger(l))

	v1.NewImageRoutes(app, img, cfg.Site.Password, l)
}

func requestLogger(l logger.Interface) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		l.Info("%s %s", ctx.Method(), ctx.OriginalURL())

		return ctx.Next()
	}
}
