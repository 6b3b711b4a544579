package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ghost_migrator/internal/config"
	"ghost_migrator/internal/domain"
)

// MigrationService runs the export-import-reconcile pipeline: build the
// export package and asset archive, optionally push both into the backend,
// then detect and repair the two inconsistency classes the backend's
// importer is known to leave behind (post authorship, user roles).
type MigrationService struct {
	exporter  Exporter
	packager  Packager
	backend   Backend
	runs      RunStore
	publisher Publisher
	logger    *slog.Logger
	cfg       config.MigrationConfig
	out       config.OutputConfig
	admins    map[string]bool
}

func NewMigrationService(
	exporter Exporter,
	packager Packager,
	backend Backend,
	runs RunStore,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.MigrationConfig,
	out config.OutputConfig,
) *MigrationService {
	admins := make(map[string]bool)
	for _, name := range cfg.AdminUserList() {
		admins[name] = true
	}

	return &MigrationService{
		exporter:  exporter,
		packager:  packager,
		backend:   backend,
		runs:      runs,
		publisher: publisher,
		logger:    logger.With("component", "migration"),
		cfg:       cfg,
		out:       out,
		admins:    admins,
	}
}

// Run regenerates the export artifacts from the current corpus and, when
// autoImport is set, imports them and reconciles the backend. Stages run
// strictly in sequence; any stage failure aborts the rest of the run.
func (s *MigrationService) Run(ctx context.Context, autoImport bool) (*domain.MigrationStats, error) {
	startTime := time.Now()
	stats := &domain.MigrationStats{}

	users, err := s.exporter.ExportUsers()
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	stats.UsersExported = len(users)

	rolesUsers, err := s.exportRolesUsers(ctx, users)
	if err != nil {
		return nil, fmt.Errorf("export roles_users: %w", err)
	}

	posts, err := s.exporter.ExportPosts(users)
	if err != nil {
		return nil, fmt.Errorf("export posts: %w", err)
	}
	stats.PostsExported = len(posts)
	for _, p := range posts {
		if p.AuthorID != nil {
			stats.AuthorsBound++
		} else {
			stats.AuthorsUnbound++
		}
	}

	data := &domain.ExportData{
		Meta: domain.ExportMeta{
			ExportedOn: time.Now().UnixMilli(),
			Version:    s.cfg.ExportVersion,
		},
		Data: domain.ExportBody{
			Posts:        posts,
			Users:        users,
			PostsAuthors: s.exporter.ExportPostsAuthors(posts),
			RolesUsers:   rolesUsers,
		},
	}

	if err := s.exporter.WritePackage(s.out.PackagePath(), data); err != nil {
		return nil, fmt.Errorf("write package: %w", err)
	}

	if _, err := s.packager.Build(s.out.ArchivePath()); err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}

	if autoImport {
		if err := s.importAndReconcile(ctx, posts, users, stats); err != nil {
			return nil, err
		}
		stats.Imported = true
	}

	stats.Duration = time.Since(startTime)

	if s.runs != nil {
		if err := s.runs.Record(ctx, stats); err != nil {
			s.logger.Warn("failed to record run history", "error", err)
		}
	}
	s.publishEvent(ctx, domain.MigrationEvent{Action: domain.EventRunCompleted, Stats: stats})

	s.logger.Info("migration run completed",
		"users", stats.UsersExported,
		"posts", stats.PostsExported,
		"authors_unbound", stats.AuthorsUnbound,
		"imported", stats.Imported,
		"authors_fixed", stats.AuthorsFixed,
		"roles_fixed", stats.RolesFixed,
		"duration", stats.Duration,
	)

	return stats, nil
}

// exportRolesUsers assigns the contributor role to every non-admin user.
// The role catalog lives on the backend, so this is the one export step
// that needs a live lookup; a missing contributor role is a hard error.
func (s *MigrationService) exportRolesUsers(ctx context.Context, users []domain.User) ([]domain.RoleUser, error) {
	role, err := s.backend.FindRoleByName(ctx, s.cfg.ContributorRole)
	if err != nil {
		return nil, err
	}

	joins := make([]domain.RoleUser, 0, len(users))
	for _, u := range users {
		if s.admins[u.Name] {
			continue
		}
		joins = append(joins, domain.RoleUser{UserID: u.ID, RoleID: role.ID})
	}
	return joins, nil
}

func (s *MigrationService) importAndReconcile(ctx context.Context, posts []domain.Post, users []domain.User, stats *domain.MigrationStats) error {
	s.logger.Info("importing package", "file", s.out.PackagePath())
	if err := s.backend.ImportFile(ctx, s.out.PackagePath()); err != nil {
		return fmt.Errorf("import package: %w", err)
	}

	if err := s.checkPostsAuthorsAndFix(ctx, posts, users, stats); err != nil {
		return fmt.Errorf("fix post authors: %w", err)
	}

	if err := s.checkUsersRolesAndFix(ctx, users, stats); err != nil {
		return fmt.Errorf("fix user roles: %w", err)
	}

	s.logger.Info("importing archive", "file", s.out.ArchivePath())
	if err := s.backend.ImportFile(ctx, s.out.ArchivePath()); err != nil {
		return fmt.Errorf("import archive: %w", err)
	}

	return s.verifyConsistent(ctx, posts, users)
}

type authorMismatch struct {
	remote   domain.RemotePost
	expected domain.User
}

// findAuthorMismatches fetches the backend's view of the exported posts,
// over-fetching to tolerate pagination, and returns those whose primary
// author differs from the exported binding.
func (s *MigrationService) findAuthorMismatches(ctx context.Context, posts []domain.Post, users []domain.User) ([]authorMismatch, error) {
	remote, err := s.backend.FindPosts(ctx, len(posts)+s.cfg.Overfetch, 1)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]domain.Post, len(posts))
	for _, p := range posts {
		bySlug[p.Slug] = p
	}
	byID := make(map[int64]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var mismatched []authorMismatch
	for _, rp := range remote {
		p, exported := bySlug[rp.Slug]
		if !exported || p.AuthorID == nil {
			continue
		}
		expected, known := byID[*p.AuthorID]
		if !known {
			continue
		}
		if rp.PrimaryAuthor != nil && rp.PrimaryAuthor.Email == expected.Email {
			continue
		}
		mismatched = append(mismatched, authorMismatch{remote: rp, expected: expected})
	}
	return mismatched, nil
}

// checkPostsAuthorsAndFix repairs posts whose backend primary author does
// not match the export. With no mismatches it is a pure read. Corrective
// writes fan out concurrently and fail fast; writes already applied when
// another fails are not rolled back — re-running converges.
func (s *MigrationService) checkPostsAuthorsAndFix(ctx context.Context, posts []domain.Post, users []domain.User, stats *domain.MigrationStats) error {
	mismatched, err := s.findAuthorMismatches(ctx, posts, users)
	if err != nil {
		return err
	}
	if len(mismatched) == 0 {
		s.logger.Info("post authorship consistent")
		return nil
	}
	s.logger.Info("repairing post authorship", "mismatches", len(mismatched))

	remoteUsers, err := s.backend.FindUsers(ctx)
	if err != nil {
		return err
	}
	bySlug := make(map[string]domain.RemoteUser, len(remoteUsers))
	for _, u := range remoteUsers {
		bySlug[u.Slug] = u
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, m := range mismatched {
		author, found := bySlug[m.expected.Slug]
		if !found {
			return fmt.Errorf("user %s not found on backend", m.expected.Slug)
		}
		g.Go(func() error {
			if err := s.backend.UpdatePostAuthor(gctx, m.remote, author); err != nil {
				return err
			}
			mu.Lock()
			stats.AuthorsFixed++
			stats.Repairs = append(stats.Repairs, domain.Repair{Kind: domain.RepairPostAuthor, Slug: m.remote.Slug})
			mu.Unlock()
			s.publishEvent(ctx, domain.MigrationEvent{Action: domain.EventPostAuthorFixed, Slug: m.remote.Slug})
			return nil
		})
	}
	return g.Wait()
}

// findRoleMismatches returns exported non-admin users holding any backend
// role other than the contributor role.
func (s *MigrationService) findRoleMismatches(ctx context.Context, users []domain.User) ([]domain.RemoteUser, error) {
	remote, err := s.backend.FindUsers(ctx)
	if err != nil {
		return nil, err
	}

	exported := make(map[string]bool, len(users))
	for _, u := range users {
		exported[u.Slug] = true
	}

	var invalid []domain.RemoteUser
	for _, ru := range remote {
		if !exported[ru.Slug] || s.admins[ru.Name] {
			continue
		}
		for _, role := range ru.Roles {
			if role.Name != s.cfg.ContributorRole {
				invalid = append(invalid, ru)
				break
			}
		}
	}
	return invalid, nil
}

// checkUsersRolesAndFix demotes exported non-admin users back to the
// contributor role. Same barrier semantics as the author repair.
func (s *MigrationService) checkUsersRolesAndFix(ctx context.Context, users []domain.User, stats *domain.MigrationStats) error {
	invalid, err := s.findRoleMismatches(ctx, users)
	if err != nil {
		return err
	}
	if len(invalid) == 0 {
		s.logger.Info("user roles consistent")
		return nil
	}
	s.logger.Info("repairing user roles", "mismatches", len(invalid))

	role, err := s.backend.FindRoleByName(ctx, s.cfg.ContributorRole)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, user := range invalid {
		g.Go(func() error {
			if err := s.backend.UpdateUserRoles(gctx, user, *role); err != nil {
				return err
			}
			mu.Lock()
			stats.RolesFixed++
			stats.Repairs = append(stats.Repairs, domain.Repair{Kind: domain.RepairUserRole, Slug: user.Slug})
			mu.Unlock()
			s.publishEvent(ctx, domain.MigrationEvent{Action: domain.EventUserRoleFixed, Slug: user.Slug})
			return nil
		})
	}
	return g.Wait()
}

// verifyConsistent re-runs both checks read-only until the backend settles
// or the attempt budget runs out. The backend applies imports
// non-atomically, so the first check after a repair can still observe stale
// state; residual drift after the budget is logged, not fatal.
func (s *MigrationService) verifyConsistent(ctx context.Context, posts []domain.Post, users []domain.User) error {
	ticker := time.NewTicker(s.cfg.VerifyInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= s.cfg.VerifyAttempts; attempt++ {
		authorDrift, err := s.findAuthorMismatches(ctx, posts, users)
		if err != nil {
			return fmt.Errorf("verify post authors: %w", err)
		}
		roleDrift, err := s.findRoleMismatches(ctx, users)
		if err != nil {
			return fmt.Errorf("verify user roles: %w", err)
		}

		if len(authorDrift) == 0 && len(roleDrift) == 0 {
			s.logger.Info("backend state verified", "attempt", attempt)
			return nil
		}

		s.logger.Warn("backend state still drifting",
			"attempt", attempt,
			"author_mismatches", len(authorDrift),
			"role_mismatches", len(roleDrift),
		)

		if attempt == s.cfg.VerifyAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	s.logger.Warn("verification budget exhausted; backend may need another run")
	return nil
}

func (s *MigrationService) publishEvent(ctx context.Context, event domain.MigrationEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "action", event.Action, "error", err)
	}
}
