package formulaic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

type sourceKind int

const (
	bytesSource sourceKind = iota + 1
	pathSource
)

// FileSource is the content of a file to upload: either bytes held in memory
// or a path on disk. Construct one with Bytes or Path; the zero value is not
// a valid source.
type FileSource struct {
	kind sourceKind
	data []byte
	path string
}

// Bytes is a file source backed by data.
func Bytes(data []byte) FileSource {
	return FileSource{kind: bytesSource, data: data}
}

// Path is a file source read from the file at path.
func Path(path string) FileSource {
	return FileSource{kind: pathSource, path: path}
}

// UploadFile uploads a file to the formula as a multipart form with the
// content under the "file" field. For a path source an empty fileName
// defaults to the base name of the path.
func (c *Client) UploadFile(ctx context.Context, formulaID string, file FileSource, fileName string) (Resource, error) {
	if formulaID == "" {
		return nil, errFormulaIDRequired
	}

	var content io.Reader
	switch file.kind {
	case bytesSource:
		content = bytes.NewReader(file.data)
	case pathSource:
		if file.path == "" {
			return nil, &InvalidFileTypeError{}
		}
		if fileName == "" {
			fileName = filepath.Base(file.path)
		}
		f, err := c.open(file.path)
		if err != nil {
			return nil, &OperationError{Op: OpUploadFile, Err: err}
		}
		defer f.Close()
		content = f
	default:
		return nil, &InvalidFileTypeError{}
	}
	if fileName == "" {
		return nil, errFileNameRequired
	}

	body, contentType, err := multipartBody(content, fileName)
	if err != nil {
		return nil, &OperationError{Op: OpUploadFile, Err: err}
	}
	headers := http.Header{"Content-Type": []string{contentType}}

	raw, err := c.send(ctx, "POST", c.endpoint("api", "recipes", formulaID, "files"), body, headers)
	if err != nil {
		return nil, &OperationError{Op: OpUploadFile, Err: err}
	}
	uploaded, err := decode[Resource](raw)
	if err != nil {
		return nil, &OperationError{Op: OpUploadFile, Err: err}
	}
	return uploaded, nil
}

// multipartBody encodes content as a multipart form and returns the body
// along with its content type, which carries the boundary.
func multipartBody(content io.Reader, fileName string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("reading file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// GetFiles lists the files of a formula.
func (c *Client) GetFiles(ctx context.Context, formulaID string) ([]Resource, error) {
	if formulaID == "" {
		return nil, errFormulaIDRequired
	}
	return call[[]Resource](ctx, c, OpGetFiles, "GET", nil, "api", "recipes", formulaID, "files")
}

// GetFile retrieves a file of a formula.
func (c *Client) GetFile(ctx context.Context, formulaID, fileID string) (Resource, error) {
	if err := validateFileIDs(formulaID, fileID); err != nil {
		return nil, err
	}
	return call[Resource](ctx, c, OpGetFile, "GET", nil, "api", "recipes", formulaID, "files", fileID)
}

// UpdateFile patches a file of a formula with data.
func (c *Client) UpdateFile(ctx context.Context, formulaID, fileID string, data Resource) (Resource, error) {
	if err := validateFileIDs(formulaID, fileID); err != nil {
		return nil, err
	}
	return call[Resource](ctx, c, OpUpdateFile, "PATCH", data, "api", "recipes", formulaID, "files", fileID)
}

// DeleteFile deletes a file of a formula.
func (c *Client) DeleteFile(ctx context.Context, formulaID, fileID string) error {
	if err := validateFileIDs(formulaID, fileID); err != nil {
		return err
	}
	// the response body, if any, is not decoded
	if _, err := c.send(ctx, "DELETE", c.endpoint("api", "recipes", formulaID, "files", fileID), nil, nil); err != nil {
		return &OperationError{Op: OpDeleteFile, Err: err}
	}
	return nil
}

func validateFileIDs(formulaID, fileID string) error {
	if formulaID == "" {
		return errFormulaIDRequired
	}
	if fileID == "" {
		return errFileIDRequired
	}
	return nil
}
