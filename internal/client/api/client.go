// Package api implements the HTTP client for the gallery backend. It keeps
// the bearer token from the last successful register/login and attaches it
// to subsequent requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Item mirrors the server's item representation.
type Item struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

// User mirrors the server's public user representation.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	NickName  string    `json:"nick_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemPatch is a partial item update; nil fields are left out of the request
// body so the server keeps their current values.
type ItemPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	Images      *[]string `json:"images,omitempty"`
}

// Upload is a presigned upload slot: PUT the image bytes to URL, then store
// Key as the item's image reference.
type Upload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type itemList struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the gallery HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient constructs a Client for the API at baseURL, e.g.
// "http://localhost:8000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

// SetToken installs a previously issued token, e.g. one restored from disk.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s (%d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("server: unexpected status %d", resp.StatusCode)
	}

	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// Register creates an account and stores the issued token on the client.
func (c *Client) Register(ctx context.Context, email, password, nickName string) error {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/register", map[string]string{
		"email":     email,
		"password":  password,
		"nick_name": nickName,
	}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Login authenticates and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Logout revokes the session server-side and clears the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// CurrentUser returns the caller's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateItem stores a new item owned by the caller.
func (c *Client) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	var created Item
	if err := c.do(ctx, http.MethodPost, "/api/items", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListItems returns a page of everyone's items, newest first.
func (c *Client) ListItems(ctx context.Context, skip, limit int) ([]Item, error) {
	var resp itemList
	path := fmt.Sprintf("/api/items?skip=%d&limit=%d", skip, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// MyItems returns the caller's items, newest first.
func (c *Client) MyItems(ctx context.Context) ([]Item, error) {
	var resp itemList
	if err := c.do(ctx, http.MethodGet, "/api/items/my", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetItem returns a single item by ID.
func (c *Client) GetItem(ctx context.Context, id int64) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/items/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update to an item owned by the caller.
func (c *Client) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/items/%d", id), patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item owned by the caller.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil)
}

// NewUpload asks the server for a presigned upload slot.
func (c *Client) NewUpload(ctx context.Context) (*Upload, error) {
	var upload Upload
	if err := c.do(ctx, http.MethodPost, "/api/uploads", nil, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// ItemImages returns fetchable URLs for an item's images.
func (c *Client) ItemImages(ctx context.Context, id int64) ([]string, error) {
	var resp struct {
		URLs []string `json:"urls"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/items/%d/images", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.URLs, nil
}
