// ABOUTME: HTTP client for the ticketing backend API
// ABOUTME: Attaches the stored bearer token and applies the 401 eviction policy

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/1234-ad/ticketing-system/internal/credentials"
)

// Client wraps the ticketing backend's REST API. Every request carries the
// stored bearer token when one is present; a 401 response evicts the token and
// fires the unauthorized hook before the caller sees the error. There are no
// retries anywhere in this layer.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          *credentials.Store
	onUnauthorized func()
}

// New creates an API client with the given base URL and credential store.
func New(baseURL string, creds *credentials.Store) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// OnUnauthorized registers the hook that runs after a 401 response has cleared
// the credential store. At most one hook; the UI uses it to return to the
// sign-in screen.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// newRequest builds a request with the bearer token attached when present.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.creds.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send performs the request. On a 401 response it clears the credential store
// and invokes the unauthorized hook, exactly once per response, then returns
// the decoded error. Any other failure status is returned as an *APIError for
// the caller to handle.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(req.Context(), err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := decodeError(resp)
		resp.Body.Close()
		if err := c.creds.Clear(); err != nil {
			// Keep going: the session is dead either way
			_ = err
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		resp.Body.Close()
		return nil, apiErr
	}

	return resp, nil
}

// doJSON sends a JSON request and decodes a JSON response into out.
// A nil body sends no payload; a nil out discards the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, query, contentType, reader)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// uploadFile sends a multipart form with a single "file" field.
func (c *Client) uploadFile(ctx context.Context, path, fileName string, content io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), &buf)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// downloadFile streams a binary response body into w.
func (c *Client) downloadFile(ctx context.Context, path string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.send(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download interrupted: %w", err)
	}
	return n, nil
}

// requestError converts transport failures to user-facing messages.
func (c *Client) requestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}
