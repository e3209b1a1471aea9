// Package client talks to the TripWise HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atinyakov/tripwise/internal/models"
)

// Client calls the TripWise API at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for baseURL. A nil hc gets a client with a timeout
// long enough for the slowest simulated operation.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}
}

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// NewPost is the payload of a community post.
type NewPost struct {
	Content     string `json:"content"`
	Image       string `json:"image,omitempty"`
	LocationTag string `json:"locationTag,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			apiErr.Message, apiErr.Code = payload.Error, payload.Code
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Login signs in with email, as administrator when admin is set.
func (c *Client) Login(ctx context.Context, email string, admin bool) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]any{"email": email, "admin": admin}, &u)
	return u, err
}

// Signup registers and signs in a new user.
func (c *Client) Signup(ctx context.Context, name, email string) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{"name": name, "email": email}, &u)
	return u, err
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Session returns the signed-in user or nil.
func (c *Client) Session(ctx context.Context) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &out)
	return out.User, err
}

// Spots lists destinations matching q and region; empty values match all.
func (c *Client) Spots(ctx context.Context, q string, region models.Region) ([]models.Spot, error) {
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	if region != "" {
		v.Set("region", string(region))
	}
	var spots []models.Spot
	err := c.do(ctx, http.MethodGet, withQuery("/api/spots", v), nil, &spots)
	return spots, err
}

// Hotels lists hotels, optionally at one location.
func (c *Client) Hotels(ctx context.Context, location string) ([]models.Hotel, error) {
	v := url.Values{}
	if location != "" {
		v.Set("location", location)
	}
	var hotels []models.Hotel
	err := c.do(ctx, http.MethodGet, withQuery("/api/hotels", v), nil, &hotels)
	return hotels, err
}

// Cars lists rental cars, optionally of one type.
func (c *Client) Cars(ctx context.Context, carType models.CarType) ([]models.Car, error) {
	v := url.Values{}
	if carType != "" {
		v.Set("type", string(carType))
	}
	var cars []models.Car
	err := c.do(ctx, http.MethodGet, withQuery("/api/cars", v), nil, &cars)
	return cars, err
}

// UpdateHotel replaces a hotel record. Requires an administrator session.
func (c *Client) UpdateHotel(ctx context.Context, h models.Hotel) error {
	return c.do(ctx, http.MethodPut, "/api/hotels/"+url.PathEscape(h.ID), h, nil)
}

// UpdateCar replaces a car record. Requires an administrator session.
func (c *Client) UpdateCar(ctx context.Context, car models.Car) error {
	return c.do(ctx, http.MethodPut, "/api/cars/"+url.PathEscape(car.ID), car, nil)
}

// Posts returns the community feed, newest first.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts)
	return posts, err
}

// CreatePost publishes a post and returns it as stored.
func (c *Client) CreatePost(ctx context.Context, p NewPost) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodPost, "/api/posts", p, &post)
	return post, err
}

// Recommend asks the planner for destinations.
func (c *Client) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := c.do(ctx, http.MethodPost, "/api/planner/recommendations", req, &recs)
	return recs, err
}

// Ask sends a question to the travel assistant.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	err := c.do(ctx, http.MethodPost, "/api/planner/chat", map[string]string{"query": query}, &out)
	return out.Reply, err
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}
