package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// FilePart описывает файл для multipart-загрузки.
type FilePart struct {
	Name        string
	ContentType string
	Data        []byte
}

func writeParts(field string, files []FilePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		pw, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form part: %w", err)
		}
		if _, err := io.Copy(pw, bytes.NewReader(f.Data)); err != nil {
			return nil, "", fmt.Errorf("failed to write form part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}

func postMultipart[T any](ctx context.Context, c *Client, path, field string, files []FilePart, target *T) error {
	body, contentType, err := writeParts(field, files)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, body, contentType)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	return decodeResponse(resp, target)
}

// UploadFile отправляет один файл (поле "file") и возвращает его URL.
func (c *Client) UploadFile(ctx context.Context, f FilePart) (string, error) {
	var url string
	if err := postMultipart(ctx, c, collegesPrefix+"/upload", "file", []FilePart{f}, &url); err != nil {
		return "", err
	}
	if url == "" {
		return "", &APIError{Status: http.StatusOK, Message: "upload returned empty url"}
	}
	return url, nil
}

// UploadFiles отправляет пачку файлов одним запросом (поле "files").
func (c *Client) UploadFiles(ctx context.Context, files []FilePart) ([]string, error) {
	var urls []string
	if err := postMultipart(ctx, c, collegesPrefix+"/upload-multiple", "files", files, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// SignedURL возвращает подписанную ссылку на приватный файл по его ключу.
func (c *Client) SignedURL(ctx context.Context, fileKey string) (string, error) {
	var url string
	body := struct {
		FileName string `json:"fileName"`
	}{FileName: fileKey}
	if err := call(ctx, c, http.MethodPost, collegesPrefix+"/signed-url", body, &url); err != nil {
		return "", err
	}
	return url, nil
}
