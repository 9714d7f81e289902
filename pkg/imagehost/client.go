package imagehost

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.cloudinary.com"
	pingTimeout    = 5 * time.Second
)

// Asset is the hosted image record Cloudinary reports for an upload.
type Asset struct {
	PublicID string `json:"public_id"`
	URL      string `json:"secure_url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int64  `json:"bytes"`
	Format   string `json:"format"`
}

// Config carries the Cloudinary account credentials.
type Config struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

// Client talks to the Cloudinary upload and admin APIs directly over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cfg        Config
	now        func() time.Time
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Option customizes the client, mainly for tests.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a Cloudinary client from account credentials.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.CloudName == "" {
		return nil, errors.New("cloudinary cloud name is required")
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary api credentials are required")
	}

	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		cfg:        cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Upload pushes raw image bytes to the account's upload folder and returns the
// hosted asset. Cloudinary decodes the image server side, so the returned
// width/height/format reflect the actual file contents, not the filename.
func (c *Client) Upload(ctx context.Context, filename string, contents io.Reader) (*Asset, error) {
	params := map[string]string{
		"timestamp": fmt.Sprintf("%d", c.now().Unix()),
	}
	if c.cfg.UploadFolder != "" {
		params["folder"] = c.cfg.UploadFolder
	}
	params["signature"] = c.sign(params)
	params["api_key"] = c.cfg.APIKey

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return nil, fmt.Errorf("copying upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, url.PathEscape(c.cfg.CloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	asset := &Asset{}
	if err := c.do(req, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Resource looks up the stored asset by public id via the admin API.
func (c *Client) Resource(ctx context.Context, publicID string) (*Asset, error) {
	if publicID == "" {
		return nil, errors.New("public id is required")
	}

	endpoint := fmt.Sprintf(
		"%s/v1_1/%s/resources/image/upload/%s",
		c.baseURL,
		url.PathEscape(c.cfg.CloudName),
		escapePublicID(publicID),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	asset := &Asset{}
	if err := c.do(req, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Destroy removes the asset from the image host.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return errors.New("public id is required")
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": fmt.Sprintf("%d", c.now().Unix()),
	}
	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("signature", c.sign(params))
	form.Set("api_key", c.cfg.APIKey)

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseURL, url.PathEscape(c.cfg.CloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result struct {
		Result string `json:"result"`
	}
	if err := c.do(req, &result); err != nil {
		return err
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("destroy returned %q", result.Result)
	}
	return nil
}

// Ping verifies credentials against the admin API.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("imagehost client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1_1/%s/ping", c.baseURL, url.PathEscape(c.cfg.CloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	var result struct {
		Status string `json:"status"`
	}
	return c.do(req, &result)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if len(b) > 0 {
			return fmt.Errorf("image host returned %s: %s", resp.Status, strings.TrimSpace(string(b)))
		}
		return fmt.Errorf("image host returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding image host response: %w", err)
	}
	return nil
}

// sign computes the SHA-1 request signature over the sorted non-auth params.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

func escapePublicID(publicID string) string {
	segments := strings.Split(publicID, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
