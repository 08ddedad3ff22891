package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Jacky088/Edgeone-Imgbed/internal/controller/restapi/v1/response"
	"github.com/Jacky088/Edgeone-Imgbed/internal/controller/restapi/v1/validate"
	"github.com/Jacky088/Edgeone-Imgbed/internal/dto"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

func (r *V1) hello(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "imgbed is running"})
}

func (r *V1) listImages(ctx *fiber.Ctx) error {
	list, err := r.img.List(ctx.UserContext())
	if err != nil {
		r.logger.Error(err, "restapi - v1 - listImages")

		return errorResponse(ctx, http.StatusInternalServerError, 1, "storage problems")
	}

	return okResponse(ctx, "ok", list)
}

type deleteRequest struct {
	ID string `json:"id"`
}

func (r *V1) deleteImage(ctx *fiber.Ctx) error {
	var req deleteRequest
	if err := ctx.BodyParser(&req); err != nil || req.ID == "" {
		return errorResponse(ctx, http.StatusBadRequest, 1, "id is required")
	}

	result, err := r.img.Delete(ctx.UserContext(), req.ID)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - deleteImage")

		return errorResponse(ctx, http.StatusInternalServerError, 1, "delete failed")
	}

	switch {
	case !result.Removed:
		return okResponse(ctx, "record removed (file was already gone)", nil)
	case result.Warning != "":
		return okResponse(ctx, "deleted, "+result.Warning, nil)
	default:
		return okResponse(ctx, "deleted", nil)
	}
}

func (r *V1) proxyImage(ctx *fiber.Ctx) error {
	path := ctx.Params("*")

	obj, err := r.img.Proxy(ctx.UserContext(), path, ctx.Get(fiber.HeaderRange))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidPath):
			return errorResponse(ctx, http.StatusBadRequest, 1, "invalid image path")
		case errors.Is(err, errs.ErrBlobNotFound):
			return errorResponse(ctx, http.StatusNotFound, 1, "not found")
		}

		var storageErr *errs.StorageError
		if errors.As(err, &storageErr) {
			return errorResponse(ctx, storageErr.Status, 1, "upstream error")
		}

		r.logger.Error(err, "restapi - v1 - proxyImage")

		return errorResponse(ctx, http.StatusInternalServerError, 1, "internal server error")
	}

	ctx.Set(fiber.HeaderContentType, obj.ContentType)
	// blobs are immutable once written, so clients may cache forever
	ctx.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")

	if obj.ContentRange != "" {
		ctx.Set(fiber.HeaderContentRange, obj.ContentRange)
		ctx.Status(http.StatusPartialContent)
	}

	if obj.ContentLength > 0 {
		return ctx.SendStream(obj.Body, int(obj.ContentLength))
	}

	return ctx.SendStream(obj.Body)
}

func (r *V1) uploadImage(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, 1, "file is required")
	}

	if file.Size == 0 {
		return errorResponse(ctx, http.StatusBadRequest, 1, "file is empty")
	}

	if file.Size > validate.MaxFileSize {
		return errorResponse(ctx, http.StatusRequestEntityTooLarge, 1,
			fmt.Sprintf("file size cant be more than %d bytes", validate.MaxFileSize))
	}

	main, err := readUpload(file)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage")

		return errorResponse(ctx, http.StatusInternalServerError, 1, "problems with opening the file")
	}

	var thumbnail *dto.FileUpload
	if thumbFile, thumbErr := ctx.FormFile("thumbnail"); thumbErr == nil {
		if thumbFile.Size > validate.MaxThumbnailSize {
			return errorResponse(ctx, http.StatusRequestEntityTooLarge, 1,
				fmt.Sprintf("thumbnail size cant be more than %d bytes", validate.MaxThumbnailSize))
		}

		thumbnail, err = readUpload(thumbFile)
		if err != nil {
			r.logger.Error(err, "restapi - v1 - uploadImage")

			return errorResponse(ctx, http.StatusInternalServerError, 1, "problems with opening the thumbnail")
		}
	}

	record, err := r.img.Upload(ctx.UserContext(), *main, thumbnail)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage")

		return errorResponse(ctx, http.StatusInternalServerError, 1, "storage problems")
	}

	return okResponse(ctx, "uploaded", response.Upload{
		ID:                   record.ID,
		URL:                  record.URL,
		URLOriginal:          record.URLOriginal,
		ThumbnailURL:         record.ThumbnailURL,
		ThumbnailOriginalURL: record.ThumbnailOriginalURL,
	})
}

func readUpload(header *multipart.FileHeader) (*dto.FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("header.Open: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &dto.FileUpload{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        data,
	}, nil
}

