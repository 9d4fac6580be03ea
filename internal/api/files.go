package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
)

// Upload is a multipart body: metadata fields plus an optional file part.
type Upload struct {
	Field    string
	Filename string
	Content  io.Reader
	Fields   map[string]string
}

// postMultipart sends up without the JSON content type; only the bearer
// header is added. fallback is the error message when the server gives none.
func (c *Client) postMultipart(ctx context.Context, endpoint string, up Upload, out any, fallback string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(up.Fields))
	for k := range up.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, up.Fields[k]); err != nil {
			return fmt.Errorf("api: write field %s: %w", k, err)
		}
	}

	if up.Content != nil {
		field := up.Field
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, up.Filename)
		if err != nil {
			return fmt.Errorf("api: create form file: %w", err)
		}
		if _, err := io.Copy(part, up.Content); err != nil {
			return fmt.Errorf("api: write file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(ctx, req, endpoint, out, fallback)
}

// downloadURL builds a browser navigation target. Navigations cannot carry
// headers, so the token travels as a query parameter.
func (c *Client) downloadURL(ctx context.Context, endpoint string) string {
	u := c.PublicURL + endpoint
	if c.Tokens != nil {
		if tok := c.Tokens.Token(ctx); tok != "" {
			u += "?token=" + url.QueryEscape(tok)
		}
	}
	return u
}
