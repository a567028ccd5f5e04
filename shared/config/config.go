package config

import (
	"errors"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Storage        string        `yaml:"storage" validate:"required,oneof=memory postgres"`
	HttpPort       int           `yaml:"http_port" validate:"required,min=1,max=65535"`
	JwtTTL         time.Duration `yaml:"jwt_ttl" validate:"required"` // in seconds
	BoardsPerPage  int           `yaml:"boards_per_page" validate:"required,min=1"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

// Admin is created at startup when missing. Admin accounts cannot be
// registered anonymously, so this is how the first one appears.
type Admin struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key" validate:"required"`
	Pg     *Pg    `yaml:"pg"`
	Admin  *Admin `yaml:"admin"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

// Validate checks required fields. Postgres settings are required only
// when the postgres storage is selected.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return err
	}
	if err := validate.Struct(c.Private); err != nil {
		return err
	}
	if c.Public.Storage == StoragePostgres && c.Private.Pg == nil {
		return errMissingPg
	}
	return nil
}

var errMissingPg = errors.New("pg section is required for postgres storage")
