package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/common"
)

// HTTPClient implements Client over the server's JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

func (c *HTTPClient) setTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// doJSON performs one request. A nil out skips body decoding.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
	}

	status, data, err := c.roundTrip(ctx, method, path, payload, authed)
	if err != nil {
		return err
	}

	// One refresh-and-retry on an expired access token.
	if status == http.StatusUnauthorized && authed {
		if err := c.refresh(ctx); err != nil {
			return err
		}
		status, data, err = c.roundTrip(ctx, method, path, payload, authed)
		if err != nil {
			return err
		}
	}

	if err := statusToError(status, data); err != nil {
		return err
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, payload []byte, authed bool) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		access, _ := c.tokens()
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp.StatusCode, data, nil
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	_, refreshToken := c.tokens()
	if refreshToken == "" {
		return common.ErrorUnauthorized
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return err
	}
	status, data, err := c.roundTrip(ctx, http.MethodPost, "/auth/refresh", payload, false)
	if err != nil {
		return err
	}
	if err := statusToError(status, data); err != nil {
		c.setTokens("", "")
		return err
	}

	var pair models.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("error decoding token response: %w", err)
	}
	c.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func statusToError(status int, data []byte) error {
	if status < 400 {
		return nil
	}

	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(data, &body)

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, body.Error)
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	var pair models.TokenPair
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username, "password": password,
	}, &pair, false)
	if err != nil {
		return err
	}
	c.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	var pair models.TokenPair
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username, "password": password,
	}, &pair, false)
	if err != nil {
		return err
	}
	c.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, refreshToken := c.tokens()
	c.setTokens("", "")
	if refreshToken == "" {
		return nil
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", map[string]string{
		"refreshToken": refreshToken,
	}, nil, false)
}

func (c *HTTPClient) ListNotes(ctx context.Context, sortKey string, ascending bool) ([]models.Note, error) {
	order := "desc"
	if ascending {
		order = "asc"
	}
	path := "/api/notes?sort=" + url.QueryEscape(sortKey) + "&order=" + order

	var out struct {
		Notes []models.Note `json:"notes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

func (c *HTTPClient) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, draft *models.NoteDraft) (*models.Note, error) {
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes", draft, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id string, patch *models.NotePatch) (*models.Note, error) {
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPatch, "/api/notes/"+url.PathEscape(id), patch, &note, true); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil, true)
}

func (c *HTTPClient) ListFolders(ctx context.Context) ([]models.Folder, error) {
	var out struct {
		Folders []models.Folder `json:"folders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/folders", nil, &out, true); err != nil {
		return nil, err
	}
	return out.Folders, nil
}

func (c *HTTPClient) CreateFolder(ctx context.Context, name string, color *string) (*models.Folder, error) {
	var folder models.Folder
	body := map[string]any{"name": name}
	if color != nil {
		body["color"] = *color
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/folders", body, &folder, true); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (c *HTTPClient) UpdateFolder(ctx context.Context, id string, patch *models.FolderPatch) (*models.Folder, error) {
	var folder models.Folder
	if err := c.doJSON(ctx, http.MethodPatch, "/api/folders/"+url.PathEscape(id), patch, &folder, true); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (c *HTTPClient) DeleteFolder(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/folders/"+url.PathEscape(id), nil, nil, true)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/profile", nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) SaveProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	var saved models.Profile
	if err := c.doJSON(ctx, http.MethodPut, "/api/profile", profile, &saved, true); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) AvatarUploadURL(ctx context.Context) (string, string, error) {
	var out struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/profile/avatar", nil, &out, true); err != nil {
		return "", "", err
	}
	return out.Key, out.URL, nil
}

func (c *HTTPClient) AvatarDownloadURL(ctx context.Context, key string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/profile/avatar?key="+url.QueryEscape(key), nil, &out, true); err != nil {
		return "", err
	}
	return out.URL, nil
}
