package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"ghost_migrator/internal/archive"
	"ghost_migrator/internal/domain"
)

// Backend is the Ghost Admin API surface the migration needs.
type Backend interface {
	FindRoleByName(ctx context.Context, name string) (*domain.RemoteRole, error)
	FindPosts(ctx context.Context, limit, page int) ([]domain.RemotePost, error)
	FindUsers(ctx context.Context) ([]domain.RemoteUser, error)
	UpdatePostAuthor(ctx context.Context, post domain.RemotePost, author domain.RemoteUser) error
	UpdateUserRoles(ctx context.Context, user domain.RemoteUser, role domain.RemoteRole) error
	ImportFile(ctx context.Context, path string) error
}

// Exporter builds the export package from the on-disk corpus.
type Exporter interface {
	ExportUsers() ([]domain.User, error)
	ExportPosts(users []domain.User) ([]domain.Post, error)
	ExportPostsAuthors(posts []domain.Post) []domain.PostAuthor
	WritePackage(path string, data *domain.ExportData) error
}

// Packager bundles the image assets into an archive.
type Packager interface {
	Build(path string) ([]archive.SubtreeResult, error)
}

// RunStore persists run history. Optional; a nil store is skipped.
type RunStore interface {
	Record(ctx context.Context, stats *domain.MigrationStats) error
}

// Publisher emits migration events for downstream consumers. Optional; a
// nil publisher is skipped.
type Publisher interface {
	Publish(ctx context.Context, event domain.MigrationEvent) error
	Close() error
}
