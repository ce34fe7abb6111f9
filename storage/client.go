package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrObjectNotFound reports that the object is already absent from the
// bucket. Callers treat this as a successful removal.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectStore is the elevated-credential storage accessor. It bypasses any
// caller-scoped restriction, so handlers must authorize before reaching it.
type ObjectStore interface {
	RemoveObject(bucket, objectPath string) error
}

// Client talks to the storage service's object API with a service-role key
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient builds a storage client for the given base URL and service key
func NewClient(baseURL, serviceKey string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(serviceKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, baseURL: baseURL}
}

// RemoveObject deletes the object at objectPath inside bucket. A 404 from the
// service is reported as ErrObjectNotFound so callers can tell "already gone"
// apart from real failures.
func (c *Client) RemoveObject(bucket, objectPath string) error {
	resp, err := c.http.R().
		Delete(fmt.Sprintf("/storage/v1/object/%s/%s", bucket, escapePath(objectPath)))
	if err != nil {
		return fmt.Errorf("storage request failed: %w", err)
	}

	switch {
	case resp.StatusCode() == 404:
		return ErrObjectNotFound
	case resp.IsError():
		return fmt.Errorf("storage returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// escapePath re-escapes each segment of a decoded object path so names with
// spaces or percent characters become a valid request target again
func escapePath(objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

// PublicURL builds the canonical public URL for an object, the inverse of
// ResolveObjectPath
func (c *Client) PublicURL(bucket, objectPath string) string {
	return c.baseURL + publicMarker + bucket + "/" + objectPath
}
