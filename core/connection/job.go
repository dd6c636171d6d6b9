package connection

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/openeo/openeo-go/internal/utils"
)

// Job is the client-side handle for one batch job on the backend.
type Job struct {
	conn *Connection
	id   string
}

// ID returns the backend's job identifier.
func (j *Job) ID() string {
	return j.id
}

// Describe returns the backend's job document.
func (j *Job) Describe(ctx context.Context) (*JobInfo, error) {
	return requestAs[JobInfo](ctx, j.conn, http.MethodGet, "/jobs/"+j.id, nil)
}

// Status returns the backend's current status string for the job
// ("created", "queued", "running", "finished", "error").
func (j *Job) Status(ctx context.Context) (string, error) {
	info, err := j.Describe(ctx)
	if err != nil {
		return "", err
	}
	return info.Status, nil
}

// Start queues the job for processing.
func (j *Job) Start(ctx context.Context) error {
	_, _, err := utils.DoJSON(ctx, j.conn.send, http.MethodPost,
		j.conn.baseURL+"/jobs/"+j.id+"/results", j.conn.authHeaders(), nil)
	if err != nil {
		return fmt.Errorf("starting job %s: %w", j.id, err)
	}
	return nil
}

// Delete removes the job and its results from the backend.
func (j *Job) Delete(ctx context.Context) error {
	_, _, err := utils.DoJSON(ctx, j.conn.send, http.MethodDelete,
		j.conn.baseURL+"/jobs/"+j.id, j.conn.authHeaders(), nil)
	if err != nil {
		return fmt.Errorf("deleting job %s: %w", j.id, err)
	}
	return nil
}

// ResultURLs returns the download URLs of the job's result assets. Both the
// current assets mapping and the legacy plain URL list are understood.
func (j *Job) ResultURLs(ctx context.Context) ([]string, error) {
	doc, err := requestAs[jobResultsDocument](ctx, j.conn, http.MethodGet, "/jobs/"+j.id+"/results", nil)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(doc.Assets)+len(doc.Links))
	for _, asset := range doc.Assets {
		urls = append(urls, asset.Href)
	}
	urls = append(urls, doc.Links...)
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: job %s has no result assets", ErrNotFound, j.id)
	}
	return urls, nil
}

// DownloadResult streams the job's first result asset into w and returns the
// number of bytes written.
func (j *Job) DownloadResult(ctx context.Context, w io.Writer) (int64, error) {
	urls, err := j.ResultURLs(ctx)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urls[0], nil)
	if err != nil {
		return 0, fmt.Errorf("building result download request: %w", err)
	}
	for key, values := range j.conn.authHeaders() {
		req.Header[key] = values
	}

	res, err := j.conn.send.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading result of job %s: %w", j.id, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("openeo: result download of job %s failed with status %d", j.id, res.StatusCode)
	}
	return io.Copy(w, res.Body)
}
