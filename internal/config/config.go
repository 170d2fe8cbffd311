package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values applied when neither marygen.yaml nor the environment sets a key.
const (
	DefaultModelNamespace = `App\Models`
	DefaultViewPath       = "resources/views/livewire"
	DefaultRoutesFile     = "routes/web.php"
	DefaultManifest       = "composer.json"
	DefaultAppURL         = "http://localhost"
	DefaultTranslateURL   = "https://translate.googleapis.com/translate_a/single"
	DefaultTimeout        = 10 * time.Second
)

// Config represents the marygen.yaml configuration.
type Config struct {
	ComponentPrefix string           `yaml:"component_prefix"`
	ModelNamespace  string           `yaml:"model_namespace" validate:"required"`
	ViewPath        string           `yaml:"view_path" validate:"required"`
	RoutesFile      string           `yaml:"routes_file" validate:"required"`
	Manifest        string           `yaml:"manifest" validate:"required"`
	AppURL          string           `yaml:"app_url" validate:"required"`
	SearchFilter    bool             `yaml:"search_filter"`
	Database        Database         `yaml:"database" validate:"-"`
	Translate       Translate        `yaml:"translate"`
	Models          map[string]Model `yaml:"models"`

	// ProjectDir is the directory relative paths are resolved against.
	ProjectDir string `yaml:"-"`
}

// Database holds connection parameters for the schema introspector.
type Database struct {
	Driver   string   `yaml:"driver" validate:"required,oneof=pgsql mysql mariadb sqlite"`
	Host     string   `yaml:"host" validate:"required_unless=Driver sqlite"`
	Port     int      `yaml:"port"`
	Database string   `yaml:"database" validate:"required"`
	Username string   `yaml:"username" validate:"required_unless=Driver sqlite"`
	Password string   `yaml:"password"`
	SSLMode  string   `yaml:"sslmode"`
	Schemas  []string `yaml:"schemas"`
}

// Translate configures the translation service.
type Translate struct {
	Endpoint string        `yaml:"endpoint" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Model overrides the conventions used to find a model's table.
type Model struct {
	Table      string `yaml:"table"`
	PrimaryKey string `yaml:"primary_key"`
}

// Default returns a Config with every documented default filled in.
func Default() *Config {
	return &Config{
		ModelNamespace: DefaultModelNamespace,
		ViewPath:       DefaultViewPath,
		RoutesFile:     DefaultRoutesFile,
		Manifest:       DefaultManifest,
		Translate: Translate{
			Endpoint: DefaultTranslateURL,
			Timeout:  DefaultTimeout,
		},
	}
}

// Load reads an optional YAML config file and the project's .env file.
// A missing config file is not an error; defaults and env vars are used instead.
func Load(path, projectDir string) (*Config, error) {
	cfg := Default()
	cfg.ProjectDir = projectDir

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	dotenv, err := godotenv.Read(filepath.Join(projectDir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env file: %w", err)
	}

	cfg.applyEnv(env(dotenv))
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// env resolves variables from the process environment first, then the .env file.
type env map[string]string

// first returns the first non-empty value from the given names.
func (e env) first(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
		if v := e[n]; v != "" {
			return v
		}
	}
	return ""
}

// applyEnv fills in empty fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (c *Config) applyEnv(e env) {
	if c.AppURL == "" {
		c.AppURL = e.first("APP_URL")
	}

	db := &c.Database
	if db.Driver == "" {
		db.Driver = e.first("DB_CONNECTION")
	}
	if db.Host == "" {
		db.Host = e.first("DB_HOST", "PGHOST")
	}
	if db.Port == 0 {
		if s := e.first("DB_PORT", "PGPORT"); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				db.Port = p
			}
		}
	}
	if db.Database == "" {
		db.Database = e.first("DB_DATABASE", "PGDATABASE")
	}
	if db.Username == "" {
		db.Username = e.first("DB_USERNAME", "PGUSER")
	}
	if db.Password == "" {
		db.Password = e.first("DB_PASSWORD", "PGPASSWORD")
	}
	if db.SSLMode == "" {
		db.SSLMode = e.first("PGSSLMODE")
	}
}

func (c *Config) applyDefaults() {
	if c.AppURL == "" {
		c.AppURL = DefaultAppURL
	}
	if c.Translate.Timeout == 0 {
		c.Translate.Timeout = DefaultTimeout
	}

	db := &c.Database
	if db.Port == 0 {
		switch db.Driver {
		case "pgsql":
			db.Port = 5432
		case "mysql", "mariadb":
			db.Port = 3306
		}
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if len(db.Schemas) == 0 {
		db.Schemas = []string{"public"}
	}
}

// ValidateDatabase checks the connection settings. Load leaves them unchecked
// so commands that never connect work without a database configured.
func (c *Config) ValidateDatabase() error {
	if err := validator.New().Struct(c.Database); err != nil {
		return fmt.Errorf("invalid database config: %w", err)
	}
	return nil
}

// Path resolves p against the project directory unless it is absolute.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectDir, p)
}

// ModelFor returns the overrides configured for a model, if any.
func (c *Config) ModelFor(name string) Model {
	return c.Models[name]
}

// DSN builds the driver-specific data source name.
func (c *Config) DSN() string {
	db := &c.Database
	switch db.Driver {
	case "mysql", "mariadb":
		mc := mysql.NewConfig()
		mc.User = db.Username
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
		mc.DBName = db.Database
		return mc.FormatDSN()
	case "sqlite":
		return c.Path(db.Database)
	default:
		return fmt.Sprintf(
			"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			db.Host, db.Port, db.Database, db.Username, db.Password, db.SSLMode,
		)
	}
}
