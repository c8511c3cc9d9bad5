package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/model"
)

// RejectionError is a non-2xx response from the backend. Detail carries the
// server-provided reason when the body had one; it is extracted tolerantly,
// so an absent or garbled body leaves it empty.
type RejectionError struct {
	StatusCode int
	Detail     string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend rejected request (%d)", e.StatusCode)
	}
	return fmt.Sprintf("backend rejected request (%d): %s", e.StatusCode, e.Detail)
}

// Client is the typed REST client of the activities backend.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(conf *appconfig.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.BackendURL, "/"),
		client: &http.Client{
			Timeout: conf.BoardRequestTimeout,
		},
	}
}

// FetchActivities loads the whole catalog. The response object is keyed by
// activity name; the keys are copied onto the returned records.
func (c *Client) FetchActivities(ctx context.Context) (map[string]*model.Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build activities request")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch activities")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read activities response")
	}
	if res.StatusCode != http.StatusOK {
		return nil, rejection(res.StatusCode, body)
	}

	activities := make(map[string]*model.Activity)
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, errors.Wrap(err, "failed to decode activities response")
	}
	for name, activity := range activities {
		activity.Name = name
	}

	return activities, nil
}

// Signup signs email up for the named activity and returns the server's
// confirmation message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, activity, "signup", email)
}

// Unregister removes email from the named activity and returns the server's
// confirmation message.
func (c *Client) Unregister(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, activity, "unregister", email)
}

func (c *Client) mutate(ctx context.Context, activity, action, email string) (string, error) {
	q := url.Values{"email": []string{email}}
	u := c.baseURL + "/activities/" + url.PathEscape(activity) + "/" + action + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, http.NoBody)
	if err != nil {
		return "", errors.Wrapf(err, "failed to build %s request", action)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to request %s", action)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s response", action)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return "", rejection(res.StatusCode, body)
	}

	return gjson.GetBytes(body, "message").String(), nil
}

func rejection(statusCode int, body []byte) *RejectionError {
	return &RejectionError{
		StatusCode: statusCode,
		Detail:     gjson.GetBytes(body, "detail").String(),
	}
}
