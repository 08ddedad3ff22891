package persistent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
	"github.com/Jacky088/Edgeone-Imgbed/internal/repo"
	"github.com/Jacky088/Edgeone-Imgbed/pkg/types/errs"
)

// Generic artifact namespace every key is addressed under.
const (
	packageName    = "imgbed-assets"
	packageVersion = "v1"
)

const _defaultRequestTimeout = 10 * time.Second

// CNBRepo stores blobs in the generic artifact registry of a CNB repository.
// Objects live at {apiBase}/{slug}/-/packages/generic/{package}/{version}/{key}.
type CNBRepo struct {
	client   *http.Client
	token    string
	readBase string
}

var _ repo.BlobRepo = (*CNBRepo)(nil)

func NewCNBRepo(apiBase, slug, token string, timeout time.Duration) *CNBRepo {
	if timeout <= 0 {
		timeout = _defaultRequestTimeout
	}

	return &CNBRepo{
		client: &http.Client{Timeout: timeout},
		token:  token,
		readBase: fmt.Sprintf("%s/%s/-/packages/generic/%s/%s/",
			strings.TrimSuffix(apiBase, "/"), slug, packageName, packageVersion),
	}
}

func (r *CNBRepo) ReadBase() string {
	return r.readBase
}

func (r *CNBRepo) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.readBase+key, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("CNBRepo - Upload - http.NewRequestWithContext: %w", err)
	}
	r.authorize(req)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("CNBRepo - Upload - r.client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errs.StorageError{Op: "put " + key, Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	return nil
}

func (r *CNBRepo) Download(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.readBase+key, nil)
	if err != nil {
		return nil, fmt.Errorf("CNBRepo - Download - http.NewRequestWithContext: %w", err)
	}
	r.authorize(req)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CNBRepo - Download - r.client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.ErrBlobNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.StorageError{Op: "get " + key, Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("CNBRepo - Download - io.ReadAll: %w", err)
	}

	return b, nil
}

func (r *CNBRepo) Fetch(ctx context.Context, path, rangeHeader string) (*entity.BlobObject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.readBase+path, nil)
	if err != nil {
		return nil, fmt.Errorf("CNBRepo - Fetch - http.NewRequestWithContext: %w", err)
	}
	r.authorize(req)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CNBRepo - Fetch - r.client.Do: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errs.ErrBlobNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &errs.StorageError{Op: "get " + path, Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	obj := &entity.BlobObject{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}
	if resp.StatusCode == http.StatusPartialContent {
		obj.ContentRange = resp.Header.Get("Content-Range")
	}

	return obj, nil
}

func (r *CNBRepo) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.readBase+key, nil)
	if err != nil {
		return fmt.Errorf("CNBRepo - Delete - http.NewRequestWithContext: %w", err)
	}
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("CNBRepo - Delete - r.client.Do: %w", err)
	}
	defer resp.Body.Close()

	// a key that is already gone counts as deleted
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errs.StorageError{Op: "delete " + key, Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	return nil
}

func (r *CNBRepo) authorize(req *http.Request) {
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
}

func readBody(body io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return ""
	}

	return string(bytes.TrimSpace(b))
}
