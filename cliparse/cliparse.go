package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	ElectionName   string
	ElectionAdmin  string
	CallerKeySalt  string
	DeploymentInfo string
	LogLevel       string
	LogFormat      string
	ConfigFile     string

	// Seed is applied only when the journal is empty.
	Seed Seed
}

type Seed struct {
	Candidates []string `yaml:"candidates"`
	Voters     []string `yaml:"voters"`
}

// fileConfig mirrors the YAML config file.
type fileConfig struct {
	Port           int    `yaml:"port"`
	DatabaseURL    string `yaml:"database_url"`
	DatabaseType   string `yaml:"database_type"`
	CallerKeySalt  string `yaml:"caller_key_salt"`
	DeploymentInfo string `yaml:"deployment_info"`
	Election       struct {
		Name  string `yaml:"name"`
		Admin string `yaml:"admin"`
		Seed  `yaml:",inline"`
	} `yaml:"election"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

const defaultPort = 3318

// ParseFlags builds the Config. Precedence: flags, then environment, then the
// YAML config file, then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-elect", flag.ContinueOnError)

	fs.StringVar(&cfg.ConfigFile, "c", "", "YAML config file")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.ElectionName, "name", "", "Election name")
	fs.StringVar(&cfg.ElectionAdmin, "admin", "", "Election admin identity")
	fs.StringVar(&cfg.DeploymentInfo, "deployment-info", "", "Path of the deployment info JSON file")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CallerKeySalt, "key-salt", "", "Caller key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("ELECTION_CONFIG")
	}
	var file fileConfig
	if cfg.ConfigFile != "" {
		buf, err := os.ReadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, &file); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
		cfg.Seed = file.Election.Seed
	}

	// Fall back to environment variables, then the file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = defaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	cfg.DatabaseType = pick(cfg.DatabaseType, "DATABASE_TYPE", file.DatabaseType, "sqlite")
	cfg.DatabaseURL = pick(cfg.DatabaseURL, "DATABASE_URL", file.DatabaseURL, "")
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "election.db"
	}

	cfg.ElectionName = pick(cfg.ElectionName, "ELECTION_NAME", file.Election.Name, "")
	cfg.ElectionAdmin = pick(cfg.ElectionAdmin, "ELECTION_ADMIN", file.Election.Admin, "")
	if cfg.ElectionAdmin == "" {
		return Config{}, errors.New("ELECTION_ADMIN required")
	}

	cfg.DeploymentInfo = pick(cfg.DeploymentInfo, "DEPLOYMENT_INFO", file.DeploymentInfo, "")
	cfg.LogLevel = pick(cfg.LogLevel, "LOG_LEVEL", file.Log.Level, "info")
	cfg.LogFormat = pick(cfg.LogFormat, "LOG_FORMAT", file.Log.Format, "text")

	// Secrets - MUST be provided
	cfg.CallerKeySalt = pick(cfg.CallerKeySalt, "CALLER_KEY_SALT", file.CallerKeySalt, "")
	if cfg.CallerKeySalt == "" {
		return Config{}, errors.New("CALLER_KEY_SALT required")
	}

	return cfg, nil
}

// pick returns the first non-empty of the flag value, the env variable, the
// file value and the default.
func pick(flagVal, envKey, fileVal, def string) string {
	for _, v := range []string{flagVal, os.Getenv(envKey), fileVal} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}
