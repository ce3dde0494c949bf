package backdrop

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// FileQuery configures file listing requests.
type FileQuery struct {
	Page  int
	Limit int
}

// ListFiles fetches one page of managed files.
func (c *Client) ListFiles(ctx context.Context, query FileQuery) (Page[File], error) {
	raw, err := c.do(ctx, http.MethodGet, "files/list", pageValues(query.Page, query.Limit), nil)
	if err != nil {
		return Page[File]{}, err
	}
	return decodePage[File](raw)
}

// FileSource supplies the bytes and name for an upload. Platform pickers
// (or anything else that can produce a named byte stream) implement it.
type FileSource interface {
	Filename() string
	Open() (io.ReadCloser, error)
}

// DiskFile is a FileSource backed by a local path.
type DiskFile string

// Filename returns the base name of the underlying path.
func (d DiskFile) Filename() string { return filepath.Base(string(d)) }

// Open opens the underlying file for reading.
func (d DiskFile) Open() (io.ReadCloser, error) { return os.Open(string(d)) }

// UploadFile sends the source's bytes as a multipart form and returns the
// stored file record.
func (c *Client) UploadFile(ctx context.Context, src FileSource) (File, error) {
	if src == nil {
		return File{}, fmt.Errorf("file source required")
	}
	rc, err := src.Open()
	if err != nil {
		return File{}, fmt.Errorf("open upload source: %w", err)
	}
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", src.Filename())
	if err != nil {
		return File{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return File{}, fmt.Errorf("read upload source: %w", err)
	}
	if err := form.Close(); err != nil {
		return File{}, fmt.Errorf("finish upload form: %w", err)
	}

	raw, err := c.doRaw(ctx, http.MethodPost, "files/upload", nil, &buf, form.FormDataContentType())
	if err != nil {
		return File{}, err
	}
	return decodeEnvelope[File](raw)
}

// DeleteFile removes a managed file.
func (c *Client) DeleteFile(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("file id required")
	}
	raw, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("files/%d", id), nil, nil)
	if err != nil {
		return "", err
	}
	return decodeAck(raw)
}
