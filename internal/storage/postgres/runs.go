package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"ghost_migrator/internal/domain"
)

// RunStore keeps a write-only history of migration runs for operators. The
// pipeline never reads it back to influence a run; every invocation starts
// from a clean slate over the corpus.
type RunStore struct {
	db *sqlx.DB
	tx *TransactionManager
}

func NewRunStore(db *sqlx.DB) *RunStore {
	return &RunStore{db: db, tx: NewTransactionManager(db)}
}

type RunRecord struct {
	ID             int64     `db:"id"`
	UsersExported  int       `db:"users_exported"`
	PostsExported  int       `db:"posts_exported"`
	AuthorsUnbound int       `db:"authors_unbound"`
	Imported       bool      `db:"imported"`
	AuthorsFixed   int       `db:"authors_fixed"`
	RolesFixed     int       `db:"roles_fixed"`
	DurationMS     int64     `db:"duration_ms"`
	CreatedAt      time.Time `db:"created_at"`
}

// Record inserts the run row and its repair rows in one transaction, so a
// run never appears in history without the repairs it applied.
func (s *RunStore) Record(ctx context.Context, stats *domain.MigrationStats) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		ex := GetExecutor(txCtx, s.db)

		query := `
			INSERT INTO migration_runs (
				users_exported, posts_exported, authors_unbound,
				imported, authors_fixed, roles_fixed, duration_ms
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`

		var runID int64
		err := ex.QueryRowxContext(txCtx, query,
			stats.UsersExported,
			stats.PostsExported,
			stats.AuthorsUnbound,
			stats.Imported,
			stats.AuthorsFixed,
			stats.RolesFixed,
			stats.Duration.Milliseconds(),
		).Scan(&runID)
		if err != nil {
			return err
		}

		for _, repair := range stats.Repairs {
			_, err := ex.ExecContext(txCtx,
				"INSERT INTO migration_repairs (run_id, kind, slug) VALUES ($1, $2, $3)",
				runID, repair.Kind, repair.Slug,
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// LastRun returns the most recent run, or nil when no run was recorded yet.
func (s *RunStore) LastRun(ctx context.Context) (*RunRecord, error) {
	var run RunRecord
	query := `
		SELECT id, users_exported, posts_exported, authors_unbound,
		       imported, authors_fixed, roles_fixed, duration_ms, created_at
		FROM migration_runs
		ORDER BY id DESC
		LIMIT 1`

	err := s.db.GetContext(ctx, &run, query)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Repairs returns the corrective writes recorded for one run.
func (s *RunStore) Repairs(ctx context.Context, runID int64) ([]domain.Repair, error) {
	var repairs []domain.Repair
	query := `SELECT kind, slug FROM migration_repairs WHERE run_id = $1 ORDER BY id`

	rows, err := s.db.QueryxContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.Repair
		if err := rows.Scan(&r.Kind, &r.Slug); err != nil {
			return nil, err
		}
		repairs = append(repairs, r)
	}
	return repairs, rows.Err()
}
