package export

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghost_migrator/internal/domain"
	"ghost_migrator/internal/mobiledoc"
	"ghost_migrator/testdata/utils"
)

var adminUsers = []string{"Admin One", "Admin Two"}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestExporter(t *testing.T) (*Exporter, string, string) {
	t.Helper()
	authorsDir := t.TempDir()
	postsDir := t.TempDir()
	return New(authorsDir, postsDir, adminUsers, testLogger()), authorsDir, postsDir
}

func TestExportUsers_ReservedAndSequentialIDs(t *testing.T) {
	e, authorsDir, _ := newTestExporter(t)
	writeFile(t, authorsDir, "admin-one.mdx", "---\nname: Admin One\nemail: one@site.com\nphoto: one.png\n---\nbio\n")
	writeFile(t, authorsDir, "jane-doe.mdx", "---\nname: Jane Doe\nphoto: jane.png\n---\nbio\n")
	writeFile(t, authorsDir, "zed-zhou.mdx", "---\nname: Zed Zhou\nemail: zed@site.com\nphoto: zed.png\ntwitter: zedzhou\n---\nbio\n")

	users, err := e.ExportUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)

	byName := make(map[string]domain.User)
	seen := make(map[int64]bool)
	for _, u := range users {
		byName[u.Name] = u
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}

	assert.Equal(t, int64(1), byName["Admin One"].ID)
	assert.Equal(t, int64(3), byName["Jane Doe"].ID)
	assert.Equal(t, int64(4), byName["Zed Zhou"].ID)
}

func TestExportUsers_EmailFallbackFromSlug(t *testing.T) {
	e, authorsDir, _ := newTestExporter(t)
	writeFile(t, authorsDir, "jane-doe.mdx", "---\nname: Jane Doe\nphoto: jane.png\n---\nbio\n")

	users, err := e.ExportUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)

	assert.Equal(t, "jane-doe", users[0].Slug)
	assert.Equal(t, "jane-doe@example.com", users[0].Email)
	assert.Equal(t, "/content/images/jane.png", users[0].ProfileImage)
	assert.Nil(t, users[0].Twitter)
}

func TestExportUsers_MalformedFrontMatterAbortsRun(t *testing.T) {
	e, authorsDir, _ := newTestExporter(t)
	writeFile(t, authorsDir, "good.mdx", "---\nname: Good Author\n---\nbio\n")
	writeFile(t, authorsDir, "broken.mdx", "---\nname: [unclosed\n---\nbio\n")

	_, err := e.ExportUsers()
	assert.ErrorContains(t, err, "broken")
}

func TestExportPosts_BindsAuthorAndDate(t *testing.T) {
	e, _, postsDir := newTestExporter(t)
	writeFile(t, postsDir, "first-post.mdx",
		"---\ntitle: First Post\nauthor: Jane Doe\ndate: 2023-01-01\ncoverImage: cover.png\n---\n\nHello ![a](/images/posts/first/a.png)\n")

	users := []domain.User{{ID: 5, Slug: "jane-doe", Name: "Jane Doe", Email: "jane-doe@example.com"}}

	posts, err := e.ExportPosts(users)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "first-post", post.Slug)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, "First Post", post.Title)
	assert.Equal(t, "/content/images/posts/cover.png", post.FeatureImage)
	assert.Equal(t, "published", post.Status)

	wantDate := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, wantDate, post.CreatedAt)
	assert.Equal(t, wantDate, post.UpdatedAt)
	assert.Equal(t, wantDate, post.PublishedAt)

	require.NotNil(t, post.AuthorID)
	assert.Equal(t, int64(5), *post.AuthorID)

	body, err := mobiledoc.Decode(post.Mobiledoc)
	require.NoError(t, err)
	assert.Contains(t, body, "/content/images/posts/first/a.png")
	assert.NotContains(t, body, "title: First Post")
}

func TestExportPosts_UnknownAuthorLeftUnbound(t *testing.T) {
	e, _, postsDir := newTestExporter(t)
	writeFile(t, postsDir, "orphan.mdx", "---\ntitle: Orphan\nauthor: Nobody Known\ndate: 2023-02-02\n---\nbody\n")

	posts, err := e.ExportPosts([]domain.User{{ID: 1, Name: "Jane Doe"}})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].AuthorID)
}

func TestExportPosts_SequentialIDsInSortedOrder(t *testing.T) {
	e, _, postsDir := newTestExporter(t)
	writeFile(t, postsDir, "b-second.mdx", "---\ntitle: B\ndate: 2023-01-02\n---\nbody\n")
	writeFile(t, postsDir, "a-first.mdx", "---\ntitle: A\ndate: 2023-01-01\n---\nbody\n")

	posts, err := e.ExportPosts(nil)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "a-first", posts[0].Slug)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, "b-second", posts[1].Slug)
	assert.Equal(t, int64(2), posts[1].ID)
}

func TestExportPostsAuthors_OneJoinPerBoundPost(t *testing.T) {
	e, _, _ := newTestExporter(t)

	posts := []domain.Post{
		{ID: 1, AuthorID: utils.Ptr(int64(5))},
		{ID: 2},
		{ID: 3, AuthorID: utils.Ptr(int64(7))},
	}

	joins := e.ExportPostsAuthors(posts)
	require.Len(t, joins, 2)
	assert.Equal(t, domain.PostAuthor{PostID: 1, UserID: 5}, joins[0])
	assert.Equal(t, domain.PostAuthor{PostID: 3, UserID: 7}, joins[1])
}

func TestWritePackage(t *testing.T) {
	e, _, _ := newTestExporter(t)
	path := filepath.Join(t.TempDir(), "out", "migration.json")

	data := &domain.ExportData{
		Meta: domain.ExportMeta{ExportedOn: 1700000000000, Version: "5.38.0"},
		Data: domain.ExportBody{
			Posts:        []domain.Post{{ID: 1, Slug: "first-post", Status: "published"}},
			Users:        []domain.User{{ID: 3, Slug: "jane-doe", Name: "Jane Doe"}},
			PostsAuthors: []domain.PostAuthor{{PostID: 1, UserID: 3}},
			RolesUsers:   []domain.RoleUser{{UserID: 3, RoleID: "role-1"}},
		},
	}

	require.NoError(t, e.WritePackage(path, data))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.ExportData
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, data.Meta, decoded.Meta)
	assert.Equal(t, data.Data, decoded.Data)
}
