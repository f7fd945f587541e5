package storageclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// MaxUploadSize mirrors the dashboard's cover form limit.
	MaxUploadSize = 5 * 1024 * 1024

	rateLimit = 5 // requests per second
	rateBurst = 10
)

// allowed cover content types
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ErrUnsupportedType is returned for uploads that are not JPEG or PNG.
var ErrUnsupportedType = fmt.Errorf("only JPEG or PNG files are allowed")

// ErrTooLarge is returned for uploads over MaxUploadSize.
var ErrTooLarge = fmt.Errorf("file size must be less than 5MB")

// Client talks to the hosted object store over HTTP with rate limiting.
type Client struct {
	baseURL     string
	bucket      string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// New creates a new object store client for one bucket.
func New(baseURL, bucket, apiKey string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bucket:      bucket,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// CoverKey builds a collision-free object key for a book's cover.
func CoverKey(bookID, contentType string) string {
	ext := allowedContentTypes[contentType]
	return path.Join("covers", bookID, uuid.New().String()+ext)
}

// Upload stores an object and returns its public URL. Content type and size
// are validated against the dashboard's cover constraints.
func (c *Client) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if _, ok := allowedContentTypes[contentType]; !ok {
		return "", ErrUnsupportedType
	}
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed: %s", resp.Status)
	}
	return c.PublicURL(key), nil
}

// PublicURL returns the publicly servable URL for an object key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, key)
}

// KeyFromPublicURL recovers the object key from a public URL previously built
// by PublicURL. ok is false for URLs pointing anywhere else.
func (c *Client) KeyFromPublicURL(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/object/public/%s/", c.baseURL, c.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// Delete removes an object. A 404 is treated as success since the desired end
// state is "object gone".
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete failed: %s", resp.Status)
	}
	return nil
}
