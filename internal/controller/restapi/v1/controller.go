package v1

import (
	"github.com/Jacky088/Edgeone-Imgbed/internal/controller/restapi/v1/response"
	"github.com/Jacky088/Edgeone-Imgbed/internal/usecase"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type V1 struct {
	img      usecase.ImageUseCase
	password string
	logger   logger.Interface
}

func okResponse(ctx *fiber.Ctx, message string, data any) error {
	return ctx.JSON(response.Reply{Code: 0, Message: message, Data: data})
}

func errorResponse(ctx *fiber.Ctx, status, code int, message string) error {
	return ctx.Status(status).JSON(response.Reply{Code: code, Message: message, Data: nil})
}
