package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/Jacky088/Edgeone-Imgbed/internal/controller/restapi/v1"
	"github.com/Jacky088/Edgeone-Imgbed/internal/dto"
	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/logger"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockImageUseCase struct {
	mock.Mock
}

func (m *MockImageUseCase) Upload(ctx context.Context, main dto.FileUpload, thumbnail *dto.FileUpload) (*entity.ImageRecord, error) {
	args := m.Called(ctx, main, thumbnail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ImageRecord), args.Error(1)
}

func (m *MockImageUseCase) Delete(ctx context.Context, id string) (dto.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.DeleteResult), args.Error(1)
}

func (m *MockImageUseCase) List(ctx context.Context) ([]entity.ImageRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ImageRecord), args.Error(1)
}

func (m *MockImageUseCase) Proxy(ctx context.Context, path, rangeHeader string) (*entity.BlobObject, error) {
	args := m.Called(ctx, path, rangeHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlobObject), args.Error(1)
}

type reply struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(img *MockImageUseCase, password string) *fiber.App {
	app := fiber.New()
	v1.NewImageRoutes(app, img, password, logger.New("error"))

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, reply) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var env reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp, env
}

func TestVerifyAuth_NoPasswordConfigured(t *testing.T) {
	app := newApp(new(MockImageUseCase), "")

	for _, password := range []string{"", "anything"} {
		resp, env := doJSON(t, app, http.MethodPost, "/auth/verify", fiber.Map{"password": password})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 0, env.Code)
		assert.Contains(t, string(env.Data), "open-access")
	}
}

func TestVerifyAuth_Match(t *testing.T) {
	app := newApp(new(MockImageUseCase), "s3cret")

	resp, env := doJSON(t, app, http.MethodPost, "/auth/verify", fiber.Map{"password": "s3cret"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.Code)
	assert.Contains(t, string(env.Data), "authorized")
}

func TestVerifyAuth_Mismatch(t *testing.T) {
	app := newApp(new(MockImageUseCase), "s3cret")

	resp, env := doJSON(t, app, http.MethodPost, "/auth/verify", fiber.Map{"password": "wrong"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 403, env.Code)
}

func TestListImages(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("List", mock.Anything).Return([]entity.ImageRecord{{ID: "u1", Name: "cat.png"}}, nil)
	app := newApp(img, "")

	resp, env := doJSON(t, app, http.MethodGet, "/admin/list", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.Code)

	var list []entity.ImageRecord
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].ID)
}

func TestDeleteImage_MissingID(t *testing.T) {
	img := new(MockImageUseCase)
	app := newApp(img, "")

	resp, env := doJSON(t, app, http.MethodPost, "/admin/delete", fiber.Map{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, env.Code)
	img.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteImage_Success(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Delete", mock.Anything, "u1").Return(dto.DeleteResult{Removed: true}, nil)
	app := newApp(img, "")

	resp, env := doJSON(t, app, http.MethodPost, "/admin/delete", fiber.Map{"id": "u1"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "deleted", env.Message)
}

func TestDeleteImage_WarningSurfacesInMessage(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Delete", mock.Anything, "u1").
		Return(dto.DeleteResult{Removed: true, Warning: "blob cleanup failed for u1.png"}, nil)
	app := newApp(img, "")

	resp, env := doJSON(t, app, http.MethodPost, "/admin/delete", fiber.Map{"id": "u1"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.Code)
	assert.Contains(t, env.Message, "blob cleanup failed")
}

func TestProxyImage_Success(t *testing.T) {
	payload := []byte("fake png bytes")

	img := new(MockImageUseCase)
	img.On("Proxy", mock.Anything, "u1.png", "").Return(&entity.BlobObject{
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentType:   "image/png",
		ContentLength: int64(len(payload)),
	}, nil)
	app := newApp(img, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/img/u1.png", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get("Cache-Control"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestProxyImage_AlternatePath(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Proxy", mock.Anything, "u1.png", "").Return(&entity.BlobObject{
		Body: io.NopCloser(strings.NewReader("x")),
	}, nil)
	app := newApp(img, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/image/u1.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProxyImage_InvalidPath(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Proxy", mock.Anything, mock.Anything, mock.Anything).Return(nil, errs.ErrInvalidPath)
	app := newApp(img, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/img/a..b.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProxyImage_NotFound(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Proxy", mock.Anything, "missing.png", "").Return(nil, errs.ErrBlobNotFound)
	app := newApp(img, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/img/missing.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProxyImage_UpstreamStatusPropagates(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Proxy", mock.Anything, "u1.png", "").
		Return(nil, &errs.StorageError{Op: "get u1.png", Status: http.StatusBadGateway})
	app := newApp(img, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/img/u1.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return buf, writer.FormDataContentType()
}

func TestUploadImage_MissingFile(t *testing.T) {
	img := new(MockImageUseCase)
	app := newApp(img, "")

	body, contentType := multipartBody(t, map[string][]byte{})
	req := httptest.NewRequest(http.MethodPost, "/upload/img", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	img.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImage_Success(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Upload", mock.Anything, mock.MatchedBy(func(main dto.FileUpload) bool {
		return main.Name == "file.png" && bytes.Equal(main.Data, []byte("fake png"))
	}), (*dto.FileUpload)(nil)).Return(&entity.ImageRecord{
		ID:          "u1",
		Name:        "file.png",
		URL:         "https://img.example.com/img/u1.png",
		URLOriginal: "https://files.example.com/u1.png",
	}, nil)
	app := newApp(img, "")

	body, contentType := multipartBody(t, map[string][]byte{"file": []byte("fake png")})
	req := httptest.NewRequest(http.MethodPost, "/upload/img", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, 0, env.Code)
	assert.Contains(t, string(env.Data), "https://img.example.com/img/u1.png")

	img.AssertExpectations(t)
}

func TestUploadImage_WithThumbnail(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(thumb *dto.FileUpload) bool {
		return thumb != nil && bytes.Equal(thumb.Data, []byte("tiny"))
	})).Return(&entity.ImageRecord{ID: "u2", ThumbnailURL: "https://img.example.com/img/u2_thumb.webp"}, nil)
	app := newApp(img, "")

	body, contentType := multipartBody(t, map[string][]byte{
		"file":      []byte("fake png"),
		"thumbnail": []byte("tiny"),
	})
	req := httptest.NewRequest(http.MethodPost, "/upload/img", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	img.AssertExpectations(t)
}

func TestUploadImage_StorageFailure(t *testing.T) {
	img := new(MockImageUseCase)
	img.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &errs.StorageError{Op: "put", Status: 500})
	app := newApp(img, "")

	body, contentType := multipartBody(t, map[string][]byte{"file": []byte("x")})
	req := httptest.NewRequest(http.MethodPost, "/upload/img", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
