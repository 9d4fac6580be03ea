package api

import (
	"context"
	"net/http"
)

func (c *Client) Assignments(ctx context.Context) ([]Assignment, error) {
	var out struct {
		Assignments []Assignment `json:"assignments"`
	}
	err := c.Do(ctx, http.MethodGet, "/assignments/", nil, &out)
	return out.Assignments, err
}

func (c *Client) Assignment(ctx context.Context, id ID) (Assignment, error) {
	var out struct {
		Assignment Assignment `json:"assignment"`
	}
	err := c.Do(ctx, http.MethodGet, "/assignments/"+seg(id), nil, &out)
	return out.Assignment, err
}

func (c *Client) CreateAssignment(ctx context.Context, p Payload) (Assignment, error) {
	var out struct {
		Assignment Assignment `json:"assignment"`
	}
	err := c.Do(ctx, http.MethodPost, "/assignments/", p, &out)
	return out.Assignment, err
}

func (c *Client) UpdateAssignment(ctx context.Context, id ID, p Payload) (Assignment, error) {
	var out struct {
		Assignment Assignment `json:"assignment"`
	}
	err := c.Do(ctx, http.MethodPut, "/assignments/"+seg(id), p, &out)
	return out.Assignment, err
}

func (c *Client) DeleteAssignment(ctx context.Context, id ID) error {
	return c.Do(ctx, http.MethodDelete, "/assignments/"+seg(id), nil, nil)
}

// SubmitAssignment uploads a submission file as multipart form data.
func (c *Client) SubmitAssignment(ctx context.Context, id ID, up Upload) (Submission, error) {
	var out struct {
		Submission Submission `json:"submission"`
	}
	err := c.postMultipart(ctx, "/assignments/"+seg(id)+"/submit", up, &out, "Submission failed")
	return out.Submission, err
}

func (c *Client) Submissions(ctx context.Context, assignmentID ID) ([]Submission, error) {
	var out struct {
		Submissions []Submission `json:"submissions"`
	}
	err := c.Do(ctx, http.MethodGet, "/assignments/"+seg(assignmentID)+"/submissions", nil, &out)
	return out.Submissions, err
}

// SubmissionDownloadURL is the browser link for a submitted file.
func (c *Client) SubmissionDownloadURL(ctx context.Context, submissionID ID) string {
	return c.downloadURL(ctx, "/assignments/submissions/"+seg(submissionID)+"/download")
}

func (c *Client) GradeSubmission(ctx context.Context, submissionID ID, marks float64, feedback string) (Submission, error) {
	var out struct {
		Submission Submission `json:"submission"`
	}
	err := c.Do(ctx, http.MethodPost, "/assignments/submissions/"+seg(submissionID)+"/grade", map[string]any{
		"marks":    marks,
		"feedback": feedback,
	}, &out)
	return out.Submission, err
}

func (c *Client) Grades(ctx context.Context) ([]Grade, error) {
	var out struct {
		Grades []Grade `json:"grades"`
	}
	err := c.Do(ctx, http.MethodGet, "/assignments/grades", nil, &out)
	return out.Grades, err
}
