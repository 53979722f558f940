package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/app/models/dto"
)

// DefaultBaseURL is where a locally started API listens
const DefaultBaseURL = "http://localhost:3001"

const unknownErrorMessage = "An unknown error occurred"

// Envelope is the raw response body, data left undecoded
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// APIError is returned for every failed call. StatusCode is 0 when no HTTP
// response was received or it could not be decoded.
type APIError struct {
	Message    string
	StatusCode int
	Response   *Envelope
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return unknownErrorMessage
	}
	return e.Message
}

// Client calls the student registration API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger logs each call at debug level
func WithLogger(lgr zerolog.Logger) Option {
	return func(c *Client) { c.logger = lgr }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckHealth calls /api/health
func (c *Client) CheckHealth(ctx context.Context) (*dto.HealthResponse, error) {
	var out dto.HealthResponse
	if err := c.post(ctx, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHello calls /api/hello
func (c *Client) GetHello(ctx context.Context) (*dto.HelloResponse, error) {
	var out dto.HelloResponse
	if err := c.post(ctx, "/api/hello", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAllStudents lists students newest first
func (c *Client) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	out := []models.Student{}
	if err := c.post(ctx, "/api/getAllStudents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStudent registers a student and returns it as stored
func (c *Client) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	var out models.Student
	if err := c.post(ctx, "/api/createStudent", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends body as JSON and decodes the envelope's data into out.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: err.Error()}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("path", path).Msg("API request failed")
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("API request")

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Message: fmt.Sprintf("decode response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return &APIError{Message: msg, StatusCode: resp.StatusCode, Response: &env}
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "API request failed"
		}
		return &APIError{Message: msg, StatusCode: resp.StatusCode, Response: &env}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Message: fmt.Sprintf("decode data: %v", err)}
	}
	return nil
}
