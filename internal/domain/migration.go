package domain

import "time"

// Repair kinds recorded by the reconciliation loops.
const (
	RepairPostAuthor = "post_author"
	RepairUserRole   = "user_role"
)

// Repair is one corrective write applied to the backend.
type Repair struct {
	Kind string `json:"kind"`
	Slug string `json:"slug"`
}

// MigrationStats holds statistics about a single migration run.
type MigrationStats struct {
	UsersExported  int
	PostsExported  int
	AuthorsBound   int
	AuthorsUnbound int
	Imported       bool
	AuthorsFixed   int
	RolesFixed     int
	Repairs        []Repair
	Duration       time.Duration
}

// Event actions published after a run or a corrective write.
const (
	EventRunCompleted    = "run_completed"
	EventPostAuthorFixed = "post_author_fixed"
	EventUserRoleFixed   = "user_role_fixed"
)

// MigrationEvent is the message published to downstream consumers.
type MigrationEvent struct {
	Action    string          `json:"action"`
	Slug      string          `json:"slug,omitempty"`
	Stats     *MigrationStats `json:"stats,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
