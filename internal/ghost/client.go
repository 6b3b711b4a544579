// Package ghost is a thin session-authenticated client for the Ghost Admin
// API: the read and write operations the migration pipeline needs, nothing
// more. A single failed request surfaces immediately to the caller; there is
// no retry policy.
package ghost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ghost_migrator/internal/domain"
)

const (
	sessionCookieName = "ghost-admin-api-session"
	userAgent         = "Mozilla/5.0 (Windows NT 10.0; rv:110.0) Gecko/20100101 Firefox/110.0"
)

// Config holds Ghost Admin API connection settings.
type Config struct {
	APIURL   string
	SiteURL  string
	Username string
	Password string
	Version  string
	Timeout  time.Duration
}

// Client talks to one Ghost instance. The session cookie is established on
// first use and cached for the process lifetime.
type Client struct {
	httpClient *http.Client
	apiURL     string
	siteURL    string
	username   string
	password   string
	version    string
	logger     *slog.Logger

	mu      sync.Mutex
	session string
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiURL:   strings.TrimSuffix(cfg.APIURL, "/"),
		siteURL:  strings.TrimSuffix(cfg.SiteURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		version:  cfg.Version,
		logger:   logger.With("component", "ghost"),
	}
}

// ensureSession logs in on first use and returns the cached admin session
// cookie afterwards.
func (c *Client) ensureSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != "" {
		return c.session, nil
	}

	body, err := json.Marshal(sessionRequest{Username: c.username, Password: c.password})
	if err != nil {
		return "", fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/session/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Origin", c.siteURL)
	req.Header.Set("Accept-Version", "v3.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute session request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("session login: %s", statusError(resp))
	}

	for _, cookie := range resp.Header.Values("Set-Cookie") {
		first, _, _ := strings.Cut(cookie, ";")
		if strings.Contains(first, sessionCookieName) {
			c.session = strings.TrimSpace(first)
			c.logger.Debug("established admin session")
			return c.session, nil
		}
	}

	return "", fmt.Errorf("session login: no %s cookie in response", sessionCookieName)
}

// do issues an authenticated JSON request against the admin API and decodes
// the response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	cookie, err := c.ensureSession(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, cookie)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", method, path, statusError(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, cookie string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Origin", c.siteURL)
	req.Header.Set("Referer", c.siteURL+"/ghost/")
	req.Header.Set("X-Ghost-Version", c.version)
}

// FindRoles fetches the assignable role catalog.
func (c *Client) FindRoles(ctx context.Context) ([]domain.RemoteRole, error) {
	var resp rolesResponse
	if err := c.do(ctx, http.MethodGet, "/roles/?permissions=assign", nil, &resp); err != nil {
		return nil, err
	}

	roles := make([]domain.RemoteRole, 0, len(resp.Roles))
	for _, r := range resp.Roles {
		roles = append(roles, r.toDomain())
	}
	return roles, nil
}

// FindRoleByName resolves a role by its display name. The migration relies
// on the role existing, so a miss is an error, not a nil result.
func (c *Client) FindRoleByName(ctx context.Context, name string) (*domain.RemoteRole, error) {
	roles, err := c.FindRoles(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.Name == name {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("role %q not found", name)
}

// FindPosts fetches one page of published posts.
func (c *Client) FindPosts(ctx context.Context, limit, page int) ([]domain.RemotePost, error) {
	path := fmt.Sprintf("/posts/?formats=mobiledoc%%2Clexical&limit=%d&page=%d&filter=status%%3Apublished", limit, page)

	var resp postsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	posts := make([]domain.RemotePost, 0, len(resp.Posts))
	for _, p := range resp.Posts {
		posts = append(posts, p.toDomain())
	}
	return posts, nil
}

// FindUsers fetches every user with its roles expanded.
func (c *Client) FindUsers(ctx context.Context) ([]domain.RemoteUser, error) {
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, "/users/?limit=all&include=roles", nil, &resp); err != nil {
		return nil, err
	}

	users := make([]domain.RemoteUser, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, u.toDomain())
	}
	return users, nil
}

// UpdatePostAuthor sets author as the post's primary author and sole entry
// in its author list.
func (c *Client) UpdatePostAuthor(ctx context.Context, post domain.RemotePost, author domain.RemoteUser) error {
	body := updatePostsRequest{Posts: []postUpdate{{
		UpdatedAt:     post.UpdatedAt,
		PrimaryAuthor: idRef{ID: author.ID},
		Authors:       []idRef{{ID: author.ID}},
	}}}

	path := "/posts/" + post.ID + "/?formats=mobiledoc%2Clexical"
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("update post %s: %w", post.Slug, err)
	}

	c.logger.Debug("updated post author", "slug", post.Slug, "author", author.Slug)
	return nil
}

// UpdateUserRoles replaces the user's role set with exactly one role.
func (c *Client) UpdateUserRoles(ctx context.Context, user domain.RemoteUser, role domain.RemoteRole) error {
	body := updateUsersRequest{Users: []userUpdate{{
		UpdatedAt: user.UpdatedAt,
		Roles:     []idRef{{ID: role.ID}},
	}}}

	if err := c.do(ctx, http.MethodPut, "/users/"+user.ID+"/?include=roles", body, nil); err != nil {
		return fmt.Errorf("update user %s: %w", user.Slug, err)
	}

	c.logger.Debug("updated user roles", "slug", user.Slug, "role", role.Name)
	return nil
}

// ImportFile uploads a migration artifact (JSON package or asset archive) to
// the bulk-import endpoint. Problems reported by the importer are logged;
// the reconciliation loops repair the known ones afterwards.
func (c *Client) ImportFile(ctx context.Context, path string) error {
	cookie, err := c.ensureSession(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("importfile", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy import file: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/db", &buf)
	if err != nil {
		return fmt.Errorf("create import request: %w", err)
	}
	c.setHeaders(req, cookie)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "text/plain, */*; q=0.01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute import request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("import %s: %s", filepath.Base(path), statusError(resp))
	}

	var result importResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && len(result.Problems) > 0 {
		c.logger.Warn("importer reported problems",
			"file", filepath.Base(path),
			"problems", len(result.Problems),
		)
	}

	c.logger.Info("imported file", "file", filepath.Base(path))
	return nil
}

func statusError(resp *http.Response) string {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
}
