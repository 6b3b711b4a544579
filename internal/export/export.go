// Package export turns the on-disk author and post corpus into the backend's
// import schema: user and post records with synthetic ids plus the join
// tables the importer expects.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ghost_migrator/internal/domain"
	"ghost_migrator/internal/markdown"
	"ghost_migrator/internal/mobiledoc"
)

// Reserved synthetic ids for the first two configured admin users.
const (
	firstAdminID  = 1
	secondAdminID = 2
	firstUserID   = 3
	firstPostID   = 1
)

type Exporter struct {
	authorsDir string
	postsDir   string
	adminUsers []string
	logger     *slog.Logger
}

func New(authorsDir, postsDir string, adminUsers []string, logger *slog.Logger) *Exporter {
	return &Exporter{
		authorsDir: authorsDir,
		postsDir:   postsDir,
		adminUsers: adminUsers,
		logger:     logger.With("component", "export"),
	}
}

// ExportUsers builds one user record per file in the authors directory.
// Entries are processed in lexicographic filename order, so ids are stable
// across runs and platforms. The first two admin-list names get the
// reserved ids; everyone else gets a dense sequence from 3.
func (e *Exporter) ExportUsers() ([]domain.User, error) {
	entries, err := os.ReadDir(e.authorsDir)
	if err != nil {
		return nil, fmt.Errorf("read authors dir: %w", err)
	}

	now := time.Now().UnixMilli()
	nextID := int64(firstUserID)
	users := make([]domain.User, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		slug := slugFromFile(entry.Name())
		doc, err := e.parseFile(filepath.Join(e.authorsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("author %s: %w", slug, err)
		}

		name := doc.Str("name")
		var id int64
		switch {
		case len(e.adminUsers) > 0 && name == e.adminUsers[0]:
			id = firstAdminID
		case len(e.adminUsers) > 1 && name == e.adminUsers[1]:
			id = secondAdminID
		default:
			id = nextID
			nextID++
		}

		email := doc.Str("email")
		if email == "" {
			email = slug + "@example.com"
		}

		user := domain.User{
			Slug:         slug,
			ID:           id,
			Name:         name,
			Email:        email,
			ProfileImage: "/content/images/" + doc.Str("photo"),
			CreatedAt:    now,
			CreatedBy:    firstAdminID,
			UpdatedAt:    now,
			UpdatedBy:    firstAdminID,
		}
		if twitter := doc.Str("twitter"); twitter != "" {
			user.Twitter = &twitter
		}

		users = append(users, user)
	}

	e.logger.Info("exported users", "count", len(users))
	return users, nil
}

// ExportPosts builds one post record per file in the posts directory, with
// sequential ids from 1 in lexicographic order. The front-matter author name
// is resolved against the exported users; a post whose author is unknown is
// exported without a binding rather than failing.
func (e *Exporter) ExportPosts(users []domain.User) ([]domain.Post, error) {
	entries, err := os.ReadDir(e.postsDir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}

	byName := make(map[string]domain.User, len(users))
	for _, u := range users {
		byName[strings.TrimSpace(u.Name)] = u
	}

	id := int64(firstPostID)
	posts := make([]domain.Post, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		slug := slugFromFile(entry.Name())
		doc, err := e.parseFile(filepath.Join(e.postsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", slug, err)
		}

		encoded, err := mobiledoc.Encode(doc.Body)
		if err != nil {
			return nil, fmt.Errorf("post %s: encode mobiledoc: %w", slug, err)
		}

		date, ok := doc.DateMillis()
		if !ok {
			e.logger.Warn("post has no parsable date", "slug", slug)
		}

		post := domain.Post{
			Slug:         slug,
			ID:           id,
			Title:        doc.Str("title"),
			Mobiledoc:    encoded,
			FeatureImage: "/content/images/posts/" + doc.Str("coverImage"),
			CreatedAt:    date,
			UpdatedAt:    date,
			PublishedAt:  date,
			Status:       "published",
		}
		id++

		if author, found := byName[strings.TrimSpace(doc.Str("author"))]; found {
			post.AuthorID = &author.ID
			post.PublishedBy = &author.ID
		} else {
			e.logger.Warn("post author not found among exported users",
				"slug", slug,
				"author", doc.Str("author"),
			)
		}

		posts = append(posts, post)
	}

	e.logger.Info("exported posts", "count", len(posts))
	return posts, nil
}

// ExportPostsAuthors derives the post↔author join table: exactly one record
// per post with a bound author.
func (e *Exporter) ExportPostsAuthors(posts []domain.Post) []domain.PostAuthor {
	joins := make([]domain.PostAuthor, 0, len(posts))
	for _, p := range posts {
		if p.AuthorID == nil {
			continue
		}
		joins = append(joins, domain.PostAuthor{PostID: p.ID, UserID: *p.AuthorID})
	}
	return joins
}

// WritePackage writes the export package as indented JSON, replacing any
// file from a previous run.
func (e *Exporter) WritePackage(path string, data *domain.ExportData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode package to %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) parseFile(path string) (*markdown.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return markdown.Parse(string(raw))
}

func slugFromFile(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
