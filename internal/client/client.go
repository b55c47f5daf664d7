// Package client is a typed HTTP client for the VidGallery JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnexpectedResponse marks a reply that was not JSON at all, for
// example a proxy error page. Callers surface it as a retryable failure.
var ErrUnexpectedResponse = errors.New("unexpected non-JSON response from server")

// APIError is a JSON error body returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Video mirrors the server's record shape.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Views       int    `json:"views"`
	Likes       int    `json:"likes"`
	IsLiked     bool   `json:"isLiked"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Uploader    string `json:"uploader"`
	Date        string `json:"date"`
}

type CreateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken installs a previously issued bearer token.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

func (c *Client) Signup(ctx context.Context, username, password string) error {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodPost, "/api/signup",
		map[string]string{"username": username, "password": password}, &resp)
}

// Login authenticates and keeps the issued token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var resp LoginResult
	err := c.do(ctx, http.MethodPost, "/api/login",
		map[string]string{"username": username, "password": password}, &resp)
	if err != nil {
		return LoginResult{}, err
	}
	c.token = resp.Token
	return resp, nil
}

func (c *Client) Videos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.do(ctx, http.MethodGet, "/api/videos", nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (c *Client) CreateVideo(ctx context.Context, req CreateVideoRequest) (Video, error) {
	var rec Video
	err := c.do(ctx, http.MethodPost, "/api/videos", req, &rec)
	return rec, err
}

func (c *Client) ToggleLike(ctx context.Context, id string) (Video, error) {
	var rec Video
	err := c.do(ctx, http.MethodPost, "/api/videos/"+id+"/like", nil, &rec)
	return rec, err
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodDelete, "/api/videos/"+id, nil, &resp)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return fmt.Errorf("%w (status %d)", ErrUnexpectedResponse, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &errBody); err != nil || errBody.Error == "" {
			return fmt.Errorf("%w (status %d)", ErrUnexpectedResponse, resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
		}
	}
	return nil
}
