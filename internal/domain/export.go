package domain

// User is an author record in the export package. IDs 1 and 2 are reserved
// for the configured admin users; everyone else gets a sequential id from 3.
type User struct {
	Slug         string  `json:"slug"`
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	ProfileImage string  `json:"profile_image"`
	Twitter      *string `json:"twitter"`
	Bio          *string `json:"bio"`
	CoverImage   *string `json:"cover_image"`
	Website      *string `json:"website"`
	Location     *string `json:"location"`
	CreatedAt    int64   `json:"created_at"`
	CreatedBy    int64   `json:"created_by"`
	UpdatedAt    int64   `json:"updated_at"`
	UpdatedBy    int64   `json:"updated_by"`
}

// Post is a post record in the export package. AuthorID is nil when the
// front-matter author name did not match any exported user.
type Post struct {
	Slug         string `json:"slug"`
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Mobiledoc    string `json:"mobiledoc"`
	FeatureImage string `json:"feature_image"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
	PublishedAt  int64  `json:"published_at"`
	Status       string `json:"status"`
	AuthorID     *int64 `json:"author_id,omitempty"`
	PublishedBy  *int64 `json:"published_by,omitempty"`
}

// PostAuthor links an exported post to its exported author.
type PostAuthor struct {
	PostID int64 `json:"post_id"`
	UserID int64 `json:"user_id"`
}

// RoleUser assigns a backend role to an exported user. Role ids are
// backend-issued object ids, not synthetic integers.
type RoleUser struct {
	UserID int64  `json:"user_id"`
	RoleID string `json:"role_id"`
}

// ExportData is the import-file payload Ghost expects.
type ExportData struct {
	Meta ExportMeta `json:"meta"`
	Data ExportBody `json:"data"`
}

type ExportMeta struct {
	ExportedOn int64  `json:"exported_on"`
	Version    string `json:"version"`
}

type ExportBody struct {
	Posts        []Post       `json:"posts"`
	Users        []User       `json:"users"`
	PostsAuthors []PostAuthor `json:"posts_authors"`
	RolesUsers   []RoleUser   `json:"roles_users"`
}
