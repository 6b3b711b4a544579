package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Ghost     GhostConfig     `yaml:"ghost"`
	Content   ContentConfig   `yaml:"content"`
	Images    ImagesConfig    `yaml:"images"`
	Output    OutputConfig    `yaml:"output"`
	Migration MigrationConfig `yaml:"migration"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	LogLevel  string          `yaml:"log_level"`
}

// GhostConfig holds the Admin API connection settings. Credentials arrive
// through ${ENV_VAR} references in the yaml file.
type GhostConfig struct {
	APIURL   string        `yaml:"api_url"`
	SiteURL  string        `yaml:"site_url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Version  string        `yaml:"version"`
	Timeout  time.Duration `yaml:"timeout"`
}

type ContentConfig struct {
	AuthorsDir string `yaml:"authors_dir"`
	PostsDir   string `yaml:"posts_dir"`
}

type ImagesConfig struct {
	PostsDir   string `yaml:"posts_dir"`
	AuthorsDir string `yaml:"authors_dir"`
}

type OutputConfig struct {
	Dir         string `yaml:"dir"`
	PackageFile string `yaml:"package_file"`
	ArchiveFile string `yaml:"archive_file"`
}

func (o OutputConfig) PackagePath() string {
	return filepath.Join(o.Dir, o.PackageFile)
}

func (o OutputConfig) ArchivePath() string {
	return filepath.Join(o.Dir, o.ArchiveFile)
}

type MigrationConfig struct {
	// Comma-separated display names; the first two get reserved ids 1 and 2
	// and are excluded from contributor-role assignment.
	AdminUsers      string        `yaml:"admin_users"`
	ContributorRole string        `yaml:"contributor_role"`
	Overfetch       int           `yaml:"overfetch"`
	ExportVersion   string        `yaml:"export_version"`
	VerifyAttempts  int           `yaml:"verify_attempts"`
	VerifyInterval  time.Duration `yaml:"verify_interval"`
}

// AdminUserList splits and trims the configured admin display names.
func (m MigrationConfig) AdminUserList() []string {
	var names []string
	for _, name := range strings.Split(m.AdminUsers, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fails closed: a missing credential or admin list is a fatal
// startup condition, not something to discover mid-run.
func (c *Config) Validate() error {
	var missing []string
	if c.Ghost.APIURL == "" {
		missing = append(missing, "ghost.api_url")
	}
	if c.Ghost.SiteURL == "" {
		missing = append(missing, "ghost.site_url")
	}
	if c.Ghost.Username == "" {
		missing = append(missing, "ghost.username")
	}
	if c.Ghost.Password == "" {
		missing = append(missing, "ghost.password")
	}
	if len(c.Migration.AdminUserList()) == 0 {
		missing = append(missing, "migration.admin_users")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Ghost.Version == "" {
		c.Ghost.Version = "5.39"
	}
	if c.Ghost.Timeout == 0 {
		c.Ghost.Timeout = 30 * time.Second
	}
	if c.Content.AuthorsDir == "" {
		c.Content.AuthorsDir = "src/content/authors"
	}
	if c.Content.PostsDir == "" {
		c.Content.PostsDir = "src/content/blog"
	}
	if c.Images.PostsDir == "" {
		c.Images.PostsDir = "public/images/posts"
	}
	if c.Images.AuthorsDir == "" {
		c.Images.AuthorsDir = "public/images/authors"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = ".ghost"
	}
	if c.Output.PackageFile == "" {
		c.Output.PackageFile = "migration.json"
	}
	if c.Output.ArchiveFile == "" {
		c.Output.ArchiveFile = "images.zip"
	}
	if c.Migration.ContributorRole == "" {
		c.Migration.ContributorRole = "Contributor"
	}
	if c.Migration.Overfetch == 0 {
		c.Migration.Overfetch = 100
	}
	if c.Migration.ExportVersion == "" {
		c.Migration.ExportVersion = "5.38.0"
	}
	if c.Migration.VerifyAttempts == 0 {
		c.Migration.VerifyAttempts = 3
	}
	if c.Migration.VerifyInterval == 0 {
		c.Migration.VerifyInterval = 5 * time.Second
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "ghost_migrator"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "migration"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "migration_events"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
