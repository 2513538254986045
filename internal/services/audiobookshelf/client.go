package audiobookshelf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shelfsync/internal/catalog"
	"shelfsync/internal/services"
)

// Credentials carries the login inputs. A non-empty Token skips the login
// call entirely.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Client provides access to the Audiobookshelf server API.
type Client struct {
	baseURL     string
	credentials Credentials
	token       string
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an Audiobookshelf client.
func New(baseURL string, credentials Credentials, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("audiobookshelf base url required")
	}
	client := &Client{
		baseURL:     baseURL,
		credentials: credentials,
		token:       strings.TrimSpace(credentials.Token),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Authenticate establishes a session token. A pre-issued token short-circuits
// the login call. Failures carry the authentication marker and abort a run.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	if c.credentials.Username == "" || c.credentials.Password == "" {
		return services.Wrap(services.ErrAuthentication, "audiobookshelf", "login", "credentials not configured", nil)
	}

	body, err := json.Marshal(map[string]string{
		"username": c.credentials.Username,
		"password": c.credentials.Password,
	})
	if err != nil {
		return services.Wrap(services.ErrAuthentication, "audiobookshelf", "login", "encode credentials", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrAuthentication, "audiobookshelf", "login", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrAuthentication, "audiobookshelf", "login", "", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrAuthentication, "audiobookshelf", "login", fmt.Sprintf("server returned %d", resp.StatusCode), nil)
	}

	var payload struct {
		User struct {
			Token string `json:"token"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return services.Wrap(services.ErrAuthentication, "audiobookshelf", "login", "decode response", err)
	}
	if payload.User.Token == "" {
		return services.Wrap(services.ErrAuthentication, "audiobookshelf", "login", "response carried no token", nil)
	}
	c.token = payload.User.Token
	return nil
}

// Libraries lists the libraries visible to the authenticated user.
func (c *Client) Libraries(ctx context.Context) ([]catalog.Library, error) {
	var payload struct {
		Libraries []catalog.Library `json:"libraries"`
	}
	if err := c.getJSON(ctx, "/api/libraries", nil, &payload); err != nil {
		return nil, services.Wrap(services.ErrTransport, "audiobookshelf", "list libraries", "", err)
	}
	return payload.Libraries, nil
}

// LibraryItems lists the items of one library, sorted per the supplied key.
// Items whose bulk payload lacks progress data are enriched with a
// best-effort per-item progress fetch; enrichment failures are ignored.
func (c *Client) LibraryItems(ctx context.Context, libraryID, sortBy string, sortDesc bool) ([]catalog.Item, error) {
	desc := "0"
	if sortDesc {
		desc = "1"
	}
	params := url.Values{}
	params.Set("sort", sortBy)
	params.Set("desc", desc)
	params.Set("include", "progress,rssfeed")

	var payload struct {
		Results []catalog.Item `json:"results"`
	}
	endpoint := "/api/libraries/" + url.PathEscape(libraryID) + "/items"
	if err := c.getJSON(ctx, endpoint, params, &payload); err != nil {
		return nil, services.Wrap(services.ErrTransport, "audiobookshelf", "list items", "library "+libraryID, err)
	}

	items := payload.Results
	for i := range items {
		if items[i].Progress != nil {
			continue
		}
		if record, err := c.ItemProgress(ctx, items[i].ID); err == nil && record != nil {
			items[i].Progress = record
		}
	}
	return items, nil
}

// ItemProgress fetches the user's progress for a single item. Absent progress
// yields (nil, nil).
func (c *Client) ItemProgress(ctx context.Context, itemID string) (*catalog.ProgressRecord, error) {
	var record catalog.ProgressRecord
	err := c.getJSON(ctx, "/api/me/progress/"+url.PathEscape(itemID), nil, &record)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrTransport, "audiobookshelf", "item progress", itemID, err)
	}
	if record.LibraryItemID == "" {
		record.LibraryItemID = itemID
	}
	return &record, nil
}

// ListeningSessions returns the user's listening session history.
func (c *Client) ListeningSessions(ctx context.Context) ([]catalog.Session, error) {
	params := url.Values{}
	params.Set("itemsPerPage", "1000")

	var payload struct {
		Sessions []catalog.Session `json:"sessions"`
	}
	if err := c.getJSON(ctx, "/api/me/listening-sessions", params, &payload); err != nil {
		return nil, services.Wrap(services.ErrTransport, "audiobookshelf", "listening sessions", "", err)
	}
	return payload.Sessions, nil
}

// MediaProgress returns the direct media-progress records. The endpoint may
// answer with a single object or an array; both decode to a slice.
func (c *Client) MediaProgress(ctx context.Context) ([]catalog.ProgressRecord, error) {
	raw := json.RawMessage{}
	if err := c.getJSON(ctx, "/api/me/progress", nil, &raw); err != nil {
		return nil, services.Wrap(services.ErrTransport, "audiobookshelf", "media progress", "", err)
	}

	var records []catalog.ProgressRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}
	var single catalog.ProgressRecord
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, services.Wrap(services.ErrTransport, "audiobookshelf", "media progress", "decode response", err)
	}
	return []catalog.ProgressRecord{single}, nil
}

// coverProbeEndpoints lists the candidate cover locations in priority order.
// Server deployments differ in path prefix and item route naming.
var coverProbeEndpoints = []string{
	"/audiobookshelf/api/items/%s/cover",
	"/api/items/%s/cover",
	"/audiobookshelf/api/library-items/%s/cover",
	"/api/library-items/%s/cover",
}

// ProbeCover checks whether the server exposes cover art for an item. The
// candidates are probed in order; the first success wins. No binary data is
// retained. A probe that exhausts all candidates reports false, never an
// error.
func (c *Client) ProbeCover(ctx context.Context, itemID string) bool {
	for _, pattern := range coverProbeEndpoints {
		endpoint := fmt.Sprintf(pattern, url.PathEscape(itemID))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
		if err != nil {
			continue
		}
		c.authorize(req)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return true
		}
	}
	return false
}

var errNotFound = errors.New("not found")

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.token == "" {
		return errors.New("not authenticated")
	}
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("server returned %d for %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}
