package v1

import (
	"github.com/Jacky088/Edgeone-Imgbed/internal/usecase"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewImageRoutes(app fiber.Router, img usecase.ImageUseCase, sitePassword string, l logger.Interface) {
	r := &V1{img: img, password: sitePassword, logger: l}

	{
		// API
		app.Post("/auth/verify", r.verifyAuth)
		app.Get("/admin/list", r.listImages)
		app.Post("/admin/delete", r.deleteImage)
		app.Post("/upload/img", r.uploadImage)

		// proxy reads, both historical path spellings
		app.Get("/img/*", r.proxyImage)
		app.Get("/image/*", r.proxyImage)

		// liveness
		app.Get("/", r.hello)
	}
}
