package api

import (
	"context"
	"net/http"
	"net/url"
)

// Materials lists course materials, optionally for one course.
func (c *Client) Materials(ctx context.Context, courseID ID) ([]Material, error) {
	var out struct {
		Materials []Material `json:"materials"`
	}
	ep := withQuery("/materials/", url.Values{"course_id": {string(courseID)}})
	err := c.Do(ctx, http.MethodGet, ep, nil, &out)
	return out.Materials, err
}

func (c *Client) Material(ctx context.Context, id ID) (Material, error) {
	var out struct {
		Material Material `json:"material"`
	}
	err := c.Do(ctx, http.MethodGet, "/materials/"+seg(id), nil, &out)
	return out.Material, err
}

// UploadMaterial posts a file with its metadata fields (course_id, title, ...).
func (c *Client) UploadMaterial(ctx context.Context, up Upload) (Material, error) {
	var out struct {
		Material Material `json:"material"`
	}
	err := c.postMultipart(ctx, "/materials/", up, &out, "Upload failed")
	return out.Material, err
}

func (c *Client) UpdateMaterial(ctx context.Context, id ID, p Payload) (Material, error) {
	var out struct {
		Material Material `json:"material"`
	}
	err := c.Do(ctx, http.MethodPut, "/materials/"+seg(id), p, &out)
	return out.Material, err
}

func (c *Client) DeleteMaterial(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/materials/"+seg(id), nil, nil)
}

// MaterialDownloadURL is the browser link for a material file.
func (c *Client) MaterialDownloadURL(ctx context.Context, id ID) string {
	return c.downloadURL(ctx, "/materials/"+seg(id)+"/download")
}
