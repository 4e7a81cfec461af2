// Package client talks to the contact book REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/youthere/internal/model"
)

// ErrNotFound is returned when the service answers NOT FOUND.
var ErrNotFound = errors.New("not found")

// Client sends requests to a contact book service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the service at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// apiError is the error body of the service.
type apiError struct {
	Message string `json:"message"`
}

// sendRequest executes the request and returns the response body. Responses with a status code
// of 400 and above are turned into errors.
func (c *Client) sendRequest(ctx context.Context, method string, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making http request: %w", err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		_ = json.Unmarshal(resBody, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = res.Status
		}
		if res.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
		}
		return nil, errors.New(apiErr.Message)
	}
	return resBody, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.sendRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// List returns the contacts sorted by last name. An empty lastNamePrefix matches all contacts.
func (c *Client) List(ctx context.Context, lastNamePrefix string) ([]model.Contact, error) {
	path := "/contacts"
	if lastNamePrefix != "" {
		path += "?lastname=" + url.QueryEscape(lastNamePrefix)
	}
	var result []model.Contact
	if err := c.getJSON(ctx, path, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns a single contact.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (model.Contact, error) {
	var contact model.Contact
	err := c.getJSON(ctx, "/contacts/"+id.String(), &contact)
	return contact, err
}

// Create submits the form and returns the new contact.
func (c *Client) Create(ctx context.Context, form model.ContactForm) (model.Contact, error) {
	var contact model.Contact
	data, err := c.sendRequest(ctx, http.MethodPost, "/contacts", form)
	if err != nil {
		return contact, err
	}
	err = json.Unmarshal(data, &contact)
	return contact, err
}

// Delete removes a contact.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := c.sendRequest(ctx, http.MethodDelete, "/contacts/"+id.String(), nil)
	return err
}

// Photo returns the JPEG photo of a contact.
func (c *Client) Photo(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return c.sendRequest(ctx, http.MethodGet, "/contacts/"+id.String()+"/photo", nil)
}

// Location returns the map pin of a contact.
func (c *Client) Location(ctx context.Context, id uuid.UUID) (model.LocationAnnotation, error) {
	var annotation model.LocationAnnotation
	err := c.getJSON(ctx, "/contacts/"+id.String()+"/location", &annotation)
	return annotation, err
}

// StartTracking allows the service to store positions with new contacts.
func (c *Client) StartTracking(ctx context.Context) error {
	_, err := c.sendRequest(ctx, http.MethodPut, "/location/tracking", nil)
	return err
}

// ReportLocation sends the current position of the device.
func (c *Client) ReportLocation(ctx context.Context, position model.Coordinate) error {
	body := map[string][]model.Coordinate{"locations": {position}}
	_, err := c.sendRequest(ctx, http.MethodPost, "/location", body)
	return err
}

// Available reports whether the service answers the contact list request.
func (c *Client) Available(ctx context.Context) bool {
	_, err := c.sendRequest(ctx, http.MethodGet, "/contacts", nil)
	return err == nil
}
