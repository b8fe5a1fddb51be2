// Package repository is the client side of the remote activity store. It
// speaks the store's three HTTP endpoints and maps every outcome onto the
// error taxonomy the coordinator understands.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
)

// ErrTransport is returned when a request never completed.
var ErrTransport = errors.New("remote store unreachable")

// ErrMalformed is returned when a response body cannot be parsed.
var ErrMalformed = errors.New("malformed response")

// DetailError is a failure the remote store reported with a non-success status.
type DetailError struct {
	Status int
	// Detail is the server-supplied message; empty when the body carried none.
	Detail string
}

func (e *DetailError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("remote store: status %d", e.Status)
	}
	return fmt.Sprintf("remote store: status %d: %s", e.Status, e.Detail)
}

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// ActivityRepository talks to the remote store.
type ActivityRepository struct {
	base   *url.URL
	client *http.Client
}

// NewActivityRepository constructs an ActivityRepository rooted at baseURL.
// A nil client gets a default one with the given timeout.
func NewActivityRepository(baseURL string, client *http.Client, timeout time.Duration) (*ActivityRepository, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote url %q must be absolute", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &ActivityRepository{base: u, client: client}, nil
}

// ─── Endpoints ────────────────────────────────────────────────────────────────

// List fetches the full activity collection: GET /activities.
func (r *ActivityRepository) List(ctx context.Context) (*model.ActivityCollection, error) {
	resp, err := r.do(ctx, http.MethodGet, "/activities", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var coll model.ActivityCollection
	if err := decode(resp.Body, &coll); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return &coll, nil
}

// Signup enrolls email in activity: POST /activities/{name}/signup?email=.
// It returns the server's confirmation message.
func (r *ActivityRepository) Signup(ctx context.Context, activity, email string) (string, error) {
	resp, err := r.do(ctx, http.MethodPost, activityPath(activity, "signup"), url.Values{"email": {email}})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	var body model.MessageResponse
	if err := decode(resp.Body, &body); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	return body.Message, nil
}

// Unregister removes email from activity: DELETE /activities/{name}/participants?email=.
// Only the status matters; a success body, if any, is discarded.
func (r *ActivityRepository) Unregister(ctx context.Context, activity, email string) error {
	resp, err := r.do(ctx, http.MethodDelete, activityPath(activity, "participants"), url.Values{"email": {email}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("unregister: %w", err)
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
	return nil
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

// activityPath builds /activities/{name}/{action} with name escaped as a
// single path segment.
func activityPath(activity, action string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action
}

func (r *ActivityRepository) do(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	target := r.base.String() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	return resp, nil
}

// checkStatus turns a non-2xx response into a *DetailError, reading the
// detail field when the body carries one.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body model.ErrorResponse
	if err := decode(resp.Body, &body); err != nil {
		return err
	}
	return &DetailError{Status: resp.StatusCode, Detail: body.Detail}
}

func decode(body io.Reader, dst any) error {
	data, err := io.ReadAll(io.LimitReader(body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
