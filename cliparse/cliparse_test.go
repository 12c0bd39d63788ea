// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ELECTION_ADMIN", "admin")
	t.Setenv("CALLER_KEY_SALT", "test-salt")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ELECTION_NAME", "Board 2025")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database config: %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.ElectionName != "Board 2025" || cfg.ElectionAdmin != "admin" {
		t.Errorf("unexpected election config: %q %q", cfg.ElectionName, cfg.ElectionAdmin)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != "election.db" {
		t.Errorf("expected sqlite election.db, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected log defaults: %s %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ELECTION_ADMIN", "env-admin")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin", "cli-admin", "-key-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.ElectionAdmin != "cli-admin" {
		t.Errorf("CLI should override env: expected cli-admin, got %s", cfg.ElectionAdmin)
	}
}

func TestParseFlags_Required(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing admin", map[string]string{"CALLER_KEY_SALT": "s"}, nil},
		{"missing salt", map[string]string{"ELECTION_ADMIN": "admin"}, nil},
		{"postgres without url", map[string]string{"ELECTION_ADMIN": "admin", "CALLER_KEY_SALT": "s"}, []string{"-t", "postgres"}},
		{"bad port env", map[string]string{"ELECTION_ADMIN": "admin", "CALLER_KEY_SALT": "s", "PORT": "abc"}, nil},
		{"port out of range", map[string]string{"ELECTION_ADMIN": "admin", "CALLER_KEY_SALT": "s"}, []string{"-p", "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "election.yaml")
	content := `
port: 4000
database_type: sqlite
database_url: /tmp/from-file.db
caller_key_salt: file-salt
election:
  name: Student Council
  admin: file-admin
  candidates:
    - Alice
    - Bob
  voters:
    - voter1
    - voter2
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ELECTION_CONFIG", path)
	t.Setenv("ELECTION_NAME", "Env Name")

	cfg, err := ParseFlags([]string{"-p", "5000"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 5000 {
		t.Errorf("flag should override file: expected 5000, got %d", cfg.Port)
	}
	if cfg.ElectionName != "Env Name" {
		t.Errorf("env should override file: got %q", cfg.ElectionName)
	}
	if cfg.ElectionAdmin != "file-admin" || cfg.CallerKeySalt != "file-salt" {
		t.Errorf("file values not applied: %q %q", cfg.ElectionAdmin, cfg.CallerKeySalt)
	}
	if cfg.DatabaseURL != "/tmp/from-file.db" {
		t.Errorf("unexpected database URL %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("unexpected log config: %s %s", cfg.LogLevel, cfg.LogFormat)
	}
	want := Seed{Candidates: []string{"Alice", "Bob"}, Voters: []string{"voter1", "voter2"}}
	if !reflect.DeepEqual(cfg.Seed, want) {
		t.Errorf("Seed = %+v, want %+v", cfg.Seed, want)
	}
}

func TestParseFlags_BadConfigFile(t *testing.T) {
	setRequiredEnv(t)

	if _, err := ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("expected an error for a missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [not a number"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFlags([]string{"-c", path}); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
