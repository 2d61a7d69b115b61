package emsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/veles-works/ems-console/internal/metrics"
	"github.com/veles-works/ems-console/internal/models"
)

// Client is a typed client for the remote EMS REST API. All state the
// console shows is owned by that API; the client holds no cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      TokenProvider
	log        *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates an EMS API client. Every request is bounded by the
// given timeout so a stalled upstream cannot pin a page load forever.
func NewClient(
	log *slog.Logger,
	appMetrics *metrics.Metrics,
	baseURL string,
	timeout time.Duration,
	creds TokenProvider,
) *Client {
	httpClient := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		log:        log,
		metrics:    appMetrics,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Key string `json:"key"`
}

// Login exchanges credentials for an auth token. A 400 response means
// the credentials were rejected and maps to ErrBadCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("failed to encode login request: %w", err)
	}

	var result loginResponse
	err = c.do(ctx, "login", http.MethodPost, "/api/auth/login/", bytes.NewReader(body), "application/json", &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return "", fmt.Errorf("%w: %w", ErrBadCredentials, apiErr)
		}

		return "", err
	}

	if result.Key == "" {
		return "", errors.New("login response did not contain a token")
	}

	return result.Key, nil
}

// ListEmployees fetches every employee record.
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.do(ctx, "list_employees", http.MethodGet, "/api/ems/employees/", nil, "", &employees); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetEmployee fetches one employee record by its internal id.
func (c *Client) GetEmployee(ctx context.Context, id int) (models.Employee, error) {
	var employee models.Employee
	path := "/api/ems/employees/" + strconv.Itoa(id) + "/"
	if err := c.do(ctx, "get_employee", http.MethodGet, path, nil, "", &employee); err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

// CreateEmployee posts a new record as multipart form data and returns
// the record the server created.
func (c *Client) CreateEmployee(ctx context.Context, payload *Payload) (models.Employee, error) {
	body, contentType, err := payload.Encode()
	if err != nil {
		return models.Employee{}, err
	}

	var employee models.Employee
	err = c.do(ctx, "create_employee", http.MethodPost, "/api/ems/employees/", body, contentType, &employee)
	if err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

// UpdateEmployee patches an existing record, addressed by its internal
// id, with only the fields present in the payload.
func (c *Client) UpdateEmployee(ctx context.Context, id int, payload *Payload) (models.Employee, error) {
	body, contentType, err := payload.Encode()
	if err != nil {
		return models.Employee{}, err
	}

	var employee models.Employee
	path := "/api/ems/employees/" + strconv.Itoa(id) + "/"
	if err = c.do(ctx, "update_employee", http.MethodPatch, path, body, contentType, &employee); err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

// DeleteEmployee removes a record by its internal id.
func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	path := "/api/ems/employees/" + strconv.Itoa(id) + "/"
	return c.do(ctx, "delete_employee", http.MethodDelete, path, nil, "", nil)
}

// ListDepartments fetches the department reference list.
func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := c.do(ctx, "list_departments", http.MethodGet, "/api/ems/departments/", nil, "", &departments)
	if err != nil {
		return nil, err
	}

	return departments, nil
}

// do executes one request against the EMS API, attaching the credential
// from the TokenProvider and decoding a JSON response into out when it
// is non-nil. Non-2xx responses come back as *APIError.
func (c *Client) do(
	ctx context.Context,
	operation, method, path string,
	body io.Reader,
	contentType string,
	out any,
) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}

	req.Header.Set("User-Agent", models.UserAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.creds.Token(ctx); ok {
		req.Header.Set("Authorization", "Token "+token)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime).Seconds()
	if err != nil {
		c.metrics.APIRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		return fmt.Errorf("failed to request %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.metrics.APIRequestDuration.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Observe(duration)
	c.log.DebugContext(ctx, "EMS API request completed",
		"operation", operation, "status", resp.StatusCode, "duration", duration)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err = json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}

	return nil
}
