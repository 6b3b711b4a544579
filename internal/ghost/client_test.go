package ghost

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghost_migrator/internal/domain"
)

type fakeGhost struct {
	logins      atomic.Int64
	lastPath    string
	lastQuery   string
	lastBody    []byte
	importField string
	importName  string

	rolesBody string
	postsBody string
	usersBody string
}

func (g *fakeGhost) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /session/", func(w http.ResponseWriter, r *http.Request) {
		g.logins.Add(1)

		var creds sessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@site.com", creds.Username)
		assert.Equal(t, "secret", creds.Password)

		w.Header().Add("Set-Cookie", "ghost-admin-api-session=abc123; Path=/; HttpOnly")
		w.WriteHeader(http.StatusCreated)
	})

	record := func(r *http.Request) {
		assert.Equal(t, "ghost-admin-api-session=abc123", r.Header.Get("Cookie"))
		g.lastPath = r.URL.Path
		g.lastQuery = r.URL.RawQuery
	}

	mux.HandleFunc("GET /roles/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, g.rolesBody)
	})
	mux.HandleFunc("GET /posts/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, g.postsBody)
	})
	mux.HandleFunc("GET /users/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, g.usersBody)
	})
	mux.HandleFunc("PUT /posts/{id}/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		g.lastBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"posts":[]}`)
	})
	mux.HandleFunc("PUT /users/{id}/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		g.lastBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"users":[]}`)
	})
	mux.HandleFunc("POST /db", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		file, header, err := r.FormFile("importfile")
		require.NoError(t, err)
		defer file.Close()

		g.importField = "importfile"
		g.importName = header.Filename
		g.lastBody, _ = io.ReadAll(file)
		io.WriteString(w, `{"problems":[]}`)
	})

	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeGhost) {
	t.Helper()
	ghost := &fakeGhost{
		rolesBody: `{"roles":[{"id":"r1","name":"Administrator"},{"id":"r2","name":"Contributor"}]}`,
		postsBody: `{"posts":[{"id":"p1","slug":"first-post","title":"First","status":"published","updated_at":"2023-01-01T00:00:00.000Z","primary_author":{"id":"u1","slug":"jane-doe","email":"jane-doe@example.com"}}]}`,
		usersBody: `{"users":[{"id":"u1","slug":"jane-doe","name":"Jane Doe","email":"jane-doe@example.com","updated_at":"2023-01-01T00:00:00.000Z","roles":[{"id":"r2","name":"Contributor"}]}]}`,
	}

	srv := httptest.NewServer(ghost.handler(t))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := New(Config{
		APIURL:   srv.URL,
		SiteURL:  srv.URL,
		Username: "admin@site.com",
		Password: "secret",
		Version:  "5.39",
		Timeout:  5 * time.Second,
	}, logger)

	return client, ghost
}

func TestSessionEstablishedOnceAndReused(t *testing.T) {
	client, ghost := newTestClient(t)
	ctx := context.Background()

	_, err := client.FindRoles(ctx)
	require.NoError(t, err)
	_, err = client.FindUsers(ctx)
	require.NoError(t, err)
	_, err = client.FindPosts(ctx, 10, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), ghost.logins.Load())
}

func TestFindRoleByName(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	role, err := client.FindRoleByName(ctx, "Contributor")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, domain.RemoteRole{ID: "r2", Name: "Contributor"}, *role)

	_, err = client.FindRoleByName(ctx, "Owner")
	assert.ErrorContains(t, err, `role "Owner" not found`)
}

func TestFindPosts_QueryParameters(t *testing.T) {
	client, ghost := newTestClient(t)

	posts, err := client.FindPosts(context.Background(), 42, 2)
	require.NoError(t, err)

	assert.Equal(t, "formats=mobiledoc%2Clexical&limit=42&page=2&filter=status%3Apublished", ghost.lastQuery)
	require.Len(t, posts, 1)
	assert.Equal(t, "first-post", posts[0].Slug)
	require.NotNil(t, posts[0].PrimaryAuthor)
	assert.Equal(t, "jane-doe@example.com", posts[0].PrimaryAuthor.Email)
}

func TestFindUsers_RolesIncluded(t *testing.T) {
	client, ghost := newTestClient(t)

	users, err := client.FindUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "limit=all&include=roles", ghost.lastQuery)
	require.Len(t, users, 1)
	require.Len(t, users[0].Roles, 1)
	assert.Equal(t, "Contributor", users[0].Roles[0].Name)
}

func TestUpdatePostAuthor_RequestShape(t *testing.T) {
	client, ghost := newTestClient(t)

	post := domain.RemotePost{ID: "p1", Slug: "first-post", UpdatedAt: "2023-01-01T00:00:00.000Z"}
	author := domain.RemoteUser{ID: "u1", Slug: "jane-doe"}

	require.NoError(t, client.UpdatePostAuthor(context.Background(), post, author))

	assert.Equal(t, "/posts/p1/", ghost.lastPath)

	var body updatePostsRequest
	require.NoError(t, json.Unmarshal(ghost.lastBody, &body))
	require.Len(t, body.Posts, 1)
	assert.Equal(t, "2023-01-01T00:00:00.000Z", body.Posts[0].UpdatedAt)
	assert.Equal(t, idRef{ID: "u1"}, body.Posts[0].PrimaryAuthor)
	assert.Equal(t, []idRef{{ID: "u1"}}, body.Posts[0].Authors)
}

func TestUpdateUserRoles_RequestShape(t *testing.T) {
	client, ghost := newTestClient(t)

	user := domain.RemoteUser{ID: "u1", Slug: "jane-doe", UpdatedAt: "2023-01-01T00:00:00.000Z"}
	role := domain.RemoteRole{ID: "r2", Name: "Contributor"}

	require.NoError(t, client.UpdateUserRoles(context.Background(), user, role))

	assert.Equal(t, "/users/u1/", ghost.lastPath)

	var body updateUsersRequest
	require.NoError(t, json.Unmarshal(ghost.lastBody, &body))
	require.Len(t, body.Users, 1)
	assert.Equal(t, []idRef{{ID: "r2"}}, body.Users[0].Roles)
}

func TestImportFile_MultipartUpload(t *testing.T) {
	client, ghost := newTestClient(t)

	path := filepath.Join(t.TempDir(), "migration.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"db":[]}`), 0o644))

	require.NoError(t, client.ImportFile(context.Background(), path))

	assert.Equal(t, "/db", ghost.lastPath)
	assert.Equal(t, "importfile", ghost.importField)
	assert.Equal(t, "migration.json", ghost.importName)
	assert.Equal(t, `{"db":[]}`, string(ghost.lastBody))
}

func TestServerErrorSurfacesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/session/" {
			w.Header().Add("Set-Cookie", "ghost-admin-api-session=abc123; Path=/")
			w.WriteHeader(http.StatusCreated)
			return
		}
		http.Error(w, `{"errors":[{"message":"maintenance"}]}`, http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := New(Config{APIURL: srv.URL, SiteURL: srv.URL, Timeout: 5 * time.Second}, logger)

	_, err := client.FindUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "maintenance")
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := New(Config{APIURL: srv.URL, SiteURL: srv.URL, Timeout: 5 * time.Second}, logger)

	_, err := client.FindRoles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session login")
	assert.Contains(t, err.Error(), "401")
}
